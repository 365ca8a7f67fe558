package driver

import "time"

// PhaseStatus reports whether a phase started or finished.
type PhaseStatus int

const (
	// PhaseStart indicates that a pipeline phase has begun.
	PhaseStart PhaseStatus = iota
	PhaseEnd
)

// PhaseEvent describes a timing phase boundary.
type PhaseEvent struct {
	Name    string
	Status  PhaseStatus
	Elapsed time.Duration
}

// PhaseObserver receives phase events emitted during expansion.
type PhaseObserver func(PhaseEvent)

// FileStatus is the state of one file in a directory run.
type FileStatus int

const (
	FileQueued FileStatus = iota
	FileWorking
	FileDone
	FileCached
	FileFailed
)

func (s FileStatus) String() string {
	switch s {
	case FileQueued:
		return "queued"
	case FileWorking:
		return "working"
	case FileDone:
		return "done"
	case FileCached:
		return "cached"
	case FileFailed:
		return "failed"
	}
	return "unknown"
}

// FileEvent reports progress of one file.
type FileEvent struct {
	Path   string
	Index  int
	Total  int
	Status FileStatus
	Errors int
}

// FileObserver receives per-file progress during ExpandDir.
type FileObserver func(FileEvent)
