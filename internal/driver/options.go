package driver

import (
	"context"
	"time"

	"displaystr/internal/format"
	"displaystr/internal/observ"
	"displaystr/internal/trace"
)

// Options configure file and directory expansion.
type Options struct {
	// Attribute is the attribute name searched for; empty means "display".
	Attribute string
	// Doc forces doc annotations on every expansion.
	Doc    bool
	Layout format.Layout
	// MaxDiagnostics limits each file's bag; 0 means unlimited.
	MaxDiagnostics int

	// Jobs bounds ExpandDir concurrency; <= 0 means GOMAXPROCS.
	Jobs int
	// Extensions selects files in directory runs.
	Extensions []string
	// OutputSuffix marks generated files, which directory runs skip.
	OutputSuffix string

	Cache *DiskCache
	Timer *observ.Timer

	// PhaseObserver and FileObserver may be called from several
	// goroutines during ExpandDir.
	PhaseObserver PhaseObserver
	FileObserver  FileObserver
}

func (o Options) attribute() string {
	if o.Attribute == "" {
		return "display"
	}
	return o.Attribute
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return []string{".rs"}
	}
	return o.Extensions
}

// phase opens a pass span and returns the function closing it. The
// duration goes to the timer and the observer.
func (o Options) phase(ctx context.Context, name string) func(note string) time.Duration {
	if o.PhaseObserver != nil {
		o.PhaseObserver(PhaseEvent{Name: name, Status: PhaseStart})
	}
	span, _ := trace.Start(ctx, trace.ScopePass, name)
	return func(note string) time.Duration {
		d := span.End(note)
		o.Timer.Add(name, d)
		if o.PhaseObserver != nil {
			o.PhaseObserver(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: d})
		}
		return d
	}
}
