package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"flexparse/internal/driver"
	"flexparse/internal/source"
	"flexparse/internal/ui"
)

// progressMode is the value of check --ui.
type progressMode string

const (
	progressAuto progressMode = "auto"
	progressOn   progressMode = "on"
	progressOff  progressMode = "off"
)

func (m *progressMode) String() string {
	if *m == "" {
		return string(progressAuto)
	}
	return string(*m)
}

func (m *progressMode) Type() string { return "mode" }

func (m *progressMode) Set(v string) error {
	switch mode := progressMode(strings.ToLower(strings.TrimSpace(v))); mode {
	case "", progressAuto:
		*m = progressAuto
	case progressOn, progressOff:
		*m = mode
	default:
		return fmt.Errorf("expected auto|on|off, got %q", v)
	}
	return nil
}

// enabled reports whether the progress view is shown for n files. Auto
// wants a terminal on stdout and more than one file.
func (m progressMode) enabled(n int) bool {
	switch m {
	case progressOn:
		return true
	case progressOff:
		return false
	}
	return n > 1 && isTerminal(os.Stdout)
}

// checkWithProgress runs driver.Check on a worker goroutine and feeds its
// events into the progress view; the view exits when the check closes the
// channel.
func checkWithProgress(ctx context.Context, title string, files []string, opts driver.Options) (*source.UnitSet, []driver.UnitResult, error) {
	var (
		events  = make(chan driver.Event, 256)
		done    = make(chan struct{})
		us      *source.UnitSet
		results []driver.UnitResult
		err     error
	)
	opts.Progress = driver.ChannelSink{Ch: events}
	go func() {
		defer close(done)
		defer close(events)
		us, results, err = driver.Check(ctx, files, opts)
	}()

	_, viewErr := tea.NewProgram(ui.NewProgressModel(title, files, events), tea.WithOutput(os.Stdout)).Run()
	<-done
	if viewErr != nil {
		return us, results, fmt.Errorf("progress view: %w", viewErr)
	}
	return us, results, err
}
