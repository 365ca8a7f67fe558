// Package diag defines the diagnostic model shared by the lexer, the tree
// builder and the expander.
//
// Diagnostics describe problems in user input. They are never Go errors:
// producers call a Reporter, the driver collects them in a Bag, and
// internal/diagfmt renders them. Infrastructure failures (I/O, config,
// cache) stay ordinary wrapped errors.
//
// # Data model
//
//   - Severity – Info, Warning, Error.
//   - Code – numeric identifier with a stable string form (LEX1001, EXP3003).
//   - Message – short, actionable text. For expansion diagnostics it is the
//     exact text that ends up inside the generated compile_error!.
//   - Primary – the source.Span the problem points at.
//   - Notes – secondary spans with extra context.
//   - Fixes – optional textual edits that would resolve the problem.
//
// # Code ranges
//
//	1000-1999  LEX  lexical errors
//	2000-2999  SYN  delimiter structure
//	3000-3999  EXP  attribute expansion
//
// # Determinism
//
// Bag.Sort orders by file, start, end, severity (desc) and code, so output
// is stable across parallel runs.
package diag
