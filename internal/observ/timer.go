// Package observ measures the stages of a CLI run.
package observ

import (
	"fmt"
	"io"
	"time"
)

// Stage is one measured step of a run: input collection, checking,
// rendering.
type Stage struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer records stages in the order they begin. It is not safe for
// concurrent use; the driver measures units through trace spans instead.
type Timer struct {
	stages []Stage
}

func NewTimer() *Timer { return &Timer{stages: make([]Stage, 0, 4)} }

// Begin opens a stage and returns its handle for End.
func (t *Timer) Begin(name string) int {
	t.stages = append(t.stages, Stage{Name: name, Start: time.Now()})
	return len(t.stages) - 1
}

// End closes the stage. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.stages) {
		return
	}
	s := &t.stages[idx]
	s.Dur = time.Since(s.Start)
	s.Note = note
}

// StageReport is a stage in milliseconds.
type StageReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report holds every stage plus the total.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Stages  []StageReport `json:"stages"`
}

func (t *Timer) Report() Report {
	rep := Report{Stages: make([]StageReport, len(t.stages))}
	var total time.Duration
	for i, s := range t.stages {
		total += s.Dur
		rep.Stages[i] = StageReport{Name: s.Name, DurationMS: millis(s.Dur), Note: s.Note}
	}
	rep.TotalMS = millis(total)
	return rep
}

// WriteSummary prints one aligned line per stage and a total line.
func (t *Timer) WriteSummary(w io.Writer) error {
	rep := t.Report()
	if _, err := io.WriteString(w, "timings:\n"); err != nil {
		return err
	}
	for _, s := range rep.Stages {
		line := fmt.Sprintf("  %-12s %8.2f ms", s.Name, s.DurationMS)
		if s.Note != "" {
			line += "  (" + s.Note + ")"
		}
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "  %-12s %8.2f ms\n", "total", rep.TotalMS)
	return err
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
