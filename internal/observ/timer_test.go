package observ

import (
	"bytes"
	"strings"
	"testing"
)

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	collect := tm.Begin("collect")
	tm.End(collect, "3 files")
	check := tm.Begin("check")
	tm.End(check, "")
	tm.End(42, "ignored")

	rep := tm.Report()
	if len(rep.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(rep.Stages))
	}
	if rep.Stages[0].Name != "collect" || rep.Stages[0].Note != "3 files" {
		t.Fatalf("first stage = %+v", rep.Stages[0])
	}
	sum := rep.Stages[0].DurationMS + rep.Stages[1].DurationMS
	if rep.TotalMS != sum {
		t.Fatalf("total %.4f != sum %.4f", rep.TotalMS, sum)
	}
}

func TestTimerWriteSummary(t *testing.T) {
	tm := NewTimer()
	tm.End(tm.Begin("render"), "pretty")

	var buf bytes.Buffer
	if err := tm.WriteSummary(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"timings:\n", "  render ", "(pretty)\n", "  total "} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestEmptyTimer(t *testing.T) {
	rep := NewTimer().Report()
	if rep.TotalMS != 0 || len(rep.Stages) != 0 {
		t.Fatalf("empty report = %+v", rep)
	}
}
