// Package trace records what the expander is doing: which files it loads,
// how long lexing and expansion take, and how many items each file had.
//
// # Usage
//
//	displaystr expand --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: zero-overhead no-op tracer when disabled
//   - StreamTracer: immediate write to a file or stderr (text or NDJSON)
//   - RingTracer: keeps the last events in memory, dumped when a run fails
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// ScopeDriver covers a whole command, ScopePass a pipeline phase (load,
// lex, expand, write), ScopeFile one input file and ScopeItem one
// annotated enum. LevelPhase emits driver and pass events, LevelDetail adds
// files, LevelDebug adds items.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeFile, path)
//	defer span.End("")
//
// Spans started from a context carrying a span become its children.
package trace
