package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"displaystr/internal/diag"
	"displaystr/internal/driver"
	"displaystr/internal/source"
)

// cacheApp names the cache directory under $XDG_CACHE_HOME.
const cacheApp = "displaystr"

// runOutcome is what one expansion run produced.
type runOutcome struct {
	fs      *source.FileSet
	results []*driver.FileResult
	dir     bool
}

// hasErrors reports whether any file has error diagnostics.
func (o *runOutcome) hasErrors() bool {
	for _, r := range o.results {
		if r.Bag.HasErrors() {
			return true
		}
	}
	return false
}

// mergedBag collects every file's diagnostics into one bag of at most max
// entries, sorted by position.
func (o *runOutcome) mergedBag(max int) *diag.Bag {
	bag := diag.NewBag(max)
	for _, r := range o.results {
		bag.Merge(r.Bag)
	}
	bag.Sort()
	return bag
}

// expandRequest describes which input to expand and how.
type expandRequest struct {
	path    string
	opts    driver.Options
	noCache bool
	ui      uiMode
	quiet   bool
}

// runExpansion expands a file, stdin ("-") or a directory.
func runExpansion(cmd *cobra.Command, req expandRequest) (*runOutcome, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	opts := req.opts
	if !req.noCache {
		cache, err := driver.OpenDiskCache(cacheApp)
		if err != nil {
			if !req.quiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: cache disabled: %v\n", err)
			}
		} else {
			opts.Cache = cache
		}
	}

	if req.path != "-" {
		st, err := os.Stat(req.path)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", req.path, err)
		}
		if st.IsDir() {
			return runDir(ctx, cmd.ErrOrStderr(), req, opts)
		}
	}

	fs, res, err := driver.ExpandFile(ctx, req.path, opts)
	if err != nil {
		return nil, err
	}
	return &runOutcome{fs: fs, results: []*driver.FileResult{res}}, nil
}

func runDir(ctx context.Context, errOut io.Writer, req expandRequest, opts driver.Options) (*runOutcome, error) {
	var (
		fs      *source.FileSet
		results []*driver.FileResult
		err     error
	)
	if !req.quiet && shouldUseTUI(req.ui, errOut) {
		fs, results, err = runDirWithUI(ctx, errOut, "expanding "+req.path, req.path, opts)
	} else {
		fs, results, err = driver.ExpandDir(ctx, req.path, opts)
	}
	if err != nil {
		return nil, err
	}
	return &runOutcome{fs: fs, results: results, dir: true}, nil
}
