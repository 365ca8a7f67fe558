package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// OutputPath is where `expand --write` puts the expansion of path.
func OutputPath(path, suffix string) string {
	return path + suffix
}

// WriteOutput stores res.Output next to its source file, replacing any
// previous output atomically.
func WriteOutput(ctx context.Context, res *FileResult, suffix string, opts Options) (string, error) {
	done := opts.phase(ctx, "write")
	defer done(res.Path)

	target := OutputPath(res.Path, suffix)
	f, err := os.CreateTemp(filepath.Dir(target), ".displaystr-*")
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	if _, err := f.Write(res.Output); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	if err := os.Rename(f.Name(), target); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}

// CheckOutput reports whether the existing output file matches res. A
// missing file is a mismatch, not an error.
func CheckOutput(res *FileResult, suffix string) (bool, error) {
	target := OutputPath(res.Path, suffix)
	// #nosec G304 -- derived from a path given on the command line
	existing, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", target, err)
	}
	return bytes.Equal(existing, res.Output), nil
}
