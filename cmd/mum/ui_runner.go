package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"mum/internal/driver"
	"mum/internal/source"
	"mum/internal/ui"
)

type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return uiModeAuto, nil
	case "on":
		return uiModeOn, nil
	case "off":
		return uiModeOff, nil
	default:
		return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// shouldUseTUI decides on the progress view. auto needs a terminal and
// more than one file.
func shouldUseTUI(mode uiMode, files int) bool {
	switch mode {
	case uiModeOn:
		return true
	case uiModeOff:
		return false
	default:
		return files > 1 && isTerminal(os.Stdout)
	}
}

type runOutcome struct {
	fs      *source.FileSet
	results []*driver.Result
	err     error
}

// runFiles runs the driver, with a progress view when useUI is set.
// after runs on the worker goroutine once the pipeline is done, so its
// events still reach the view.
func runFiles(ctx context.Context, title string, files []string, opts driver.Options, useUI bool, after func([]*driver.Result, driver.ProgressSink)) (*source.FileSet, []*driver.Result, error) {
	if !useUI {
		fs, results, err := driver.RunFiles(ctx, files, opts)
		if err == nil && after != nil {
			after(results, nil)
		}
		return fs, results, err
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan runOutcome, 1)
	go func() {
		sink := driver.ChannelSink{Ch: events}
		opts.Progress = sink
		fs, results, err := driver.RunFiles(ctx, files, opts)
		if err == nil && after != nil {
			after(results, sink)
		}
		outcomeCh <- runOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	if uiErr != nil {
		// вид упал, но конвейер должен дочитать канал
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
