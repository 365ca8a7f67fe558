package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"displaystr/internal/driver"
	"displaystr/internal/source"
	"displaystr/internal/ui"
)

type dirOutcome struct {
	fs      *source.FileSet
	results []*driver.FileResult
	err     error
}

// runDirWithUI runs ExpandDir while a progress view renders to out.
func runDirWithUI(ctx context.Context, out io.Writer, title, dir string, opts driver.Options) (*source.FileSet, []*driver.FileResult, error) {
	events := make(chan driver.FileEvent, 256)
	outcomeCh := make(chan dirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.FileObserver = func(ev driver.FileEvent) { events <- ev }
		fs, results, err := driver.ExpandDir(ctx, dir, optsCopy)
		outcomeCh <- dirOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	if uiErr != nil {
		// досчитываем без UI, иначе горутина заблокируется на events
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
