package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"cfront/internal/diag"
	"cfront/internal/driver"
	"cfront/internal/ui"
)

type scanOutcome struct {
	results []driver.FileReport
	bag     *diag.Bag
	err     error
}

// runScanWithUI runs ScanDir in the background while a Bubble Tea
// program renders its progress events.
func runScanWithUI(ctx context.Context, dir string, opts driver.ScanOptions) ([]driver.FileReport, *diag.Bag, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	files, err := driver.ListSourceFiles(dir, opts.Exts)
	if err != nil {
		return nil, nil, err
	}

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		results, bag, err := driver.ScanDir(ctx, dir, optsCopy)
		outcomeCh <- scanOutcome{results: results, bag: bag, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("scanning "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, outcome.bag, uiErr
	}
	return outcome.results, outcome.bag, outcome.err
}
