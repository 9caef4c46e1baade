package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, true},
		{LevelError, ScopePass, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeUnit, false},
		{LevelDetail, ScopeUnit, true},
		{LevelDetail, ScopeRule, false},
		{LevelDebug, ScopeRule, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel(DEBUG) = %v, %v", l, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if f, err := ParseFormat("chrome"); err != nil || f != FormatChrome {
		t.Fatalf("ParseFormat(chrome) = %v, %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(r, ScopeRule, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap))
	}
	var names []string
	for _, ev := range snap {
		names = append(names, ev.Name)
	}
	if got := strings.Join(names, ","); got != "c,d,e" {
		t.Fatalf("unexpected order %q", got)
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDetail, FormatText)

	outer := Begin(st, ScopePass, "parse", 0)
	inner := Begin(st, ScopeRule, "rule:expr", outer.ID())
	// правило отфильтровано и прозрачно для потомков
	if inner.ID() != outer.ID() {
		t.Fatalf("filtered span id = %d, want parent %d", inner.ID(), outer.ID())
	}
	inner.End("")
	outer.WithExtra("unit", "a.kv").WithExtra("atoms", "12").End("ok")

	out := buf.String()
	if strings.Count(out, "\n") != 2 {
		t.Fatalf("expected 2 lines, got:\n%s", out)
	}
	if !strings.Contains(out, "← parse (ok) {atoms=12, unit=a.kv}") {
		t.Fatalf("missing sorted extras:\n%s", out)
	}
}

func TestStreamTracerChromeIsValidJSON(t *testing.T) {
	var buf bytes.Buffer
	st := NewStreamTracer(&buf, LevelDebug, FormatChrome)
	sp := Begin(st, ScopeUnit, "unit:a.kv", 0)
	Point(st, ScopeRule, "backtrack", "alt", sp.ID())
	sp.End("")
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		TraceEvents []map[string]any `json:"traceEvents"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid chrome json: %v\n%s", err, buf.String())
	}
	if len(doc.TraceEvents) != 3 {
		t.Fatalf("expected 3 events, got %d", len(doc.TraceEvents))
	}
	phases := ""
	for _, ev := range doc.TraceEvents {
		phases += ev["ph"].(string)
	}
	if phases != "BiE" {
		t.Fatalf("unexpected phases %q", phases)
	}
}

func TestMultiTracerCopiesEvents(t *testing.T) {
	a := NewRingTracer(8, LevelDebug)
	b := NewRingTracer(8, LevelDebug)
	m := NewMultiTracer(LevelDebug, a, b)
	Point(m, ScopeDriver, "start", "", 0)
	if len(a.Snapshot()) != 1 || len(b.Snapshot()) != 1 {
		t.Fatal("each tracer should receive the event")
	}
}

func TestContextTracer(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("expected Nop without tracer")
	}
	r := NewRingTracer(4, LevelPhase)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Fatal("tracer not propagated")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if tr.Enabled() {
		t.Fatal("expected disabled tracer")
	}
	sp := Begin(tr, ScopeDriver, "x", 0)
	if sp.End("") != 0 {
		t.Fatal("nop span should report zero duration")
	}
}

func TestFilteredSpanChildrenAttachToParent(t *testing.T) {
	r := NewRingTracer(16, LevelPhase)
	root := Begin(r, ScopeDriver, "check", 0)
	unit := root.Child(ScopeUnit, "unit")
	lex := unit.Child(ScopePass, "lex")
	lex.End("")
	unit.End("")
	root.End("")

	snap := r.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("expected check and lex begin/end only, got %d events", len(snap))
	}
	for _, ev := range snap {
		if ev.Name == "lex" && ev.ParentID != root.ID() {
			t.Fatalf("lex parent = %d, want %d", ev.ParentID, root.ID())
		}
	}
}

func TestContextParent(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if ParentID(ctx) != 0 {
		t.Fatal("expected root context")
	}
	run := BeginFrom(ctx, ScopeDriver, "check")
	ctx = WithSpan(ctx, run)
	unit := BeginFrom(ctx, ScopeUnit, "unit")
	unit.End("ok")
	run.End("")

	snap := r.Snapshot()
	if snap[1].Name != "unit" || snap[1].ParentID != run.ID() {
		t.Fatalf("unit event = %+v, want parent %d", snap[1], run.ID())
	}
}

func TestRingDumpOnClose(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeRing, Output: &buf, Format: FormatNDJSON, RingSize: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"a", "b", "c"} {
		Point(tr, ScopePass, name, "", 0)
	}
	if buf.Len() != 0 {
		t.Fatal("ring mode must not write before Close")
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"name":"b"`) || !strings.Contains(lines[1], `"name":"c"`) {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
	if ring, ok := RingOf(tr); !ok || ring.Len() != 2 {
		t.Fatal("RingOf should expose the ring")
	}
}

func TestRingOfBothMode(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Mode: ModeBoth, Output: &buf, Format: FormatText})
	if err != nil {
		t.Fatal(err)
	}
	Point(tr, ScopeRule, "x", "", 0)
	ring, ok := RingOf(tr)
	if !ok || ring.Len() != 1 {
		t.Fatal("both mode keeps a ring")
	}
	if !strings.Contains(buf.String(), "x") {
		t.Fatalf("both mode streams too, got %q", buf.String())
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"":                FormatText,
		"-":               FormatText,
		"run.ndjson":      FormatNDJSON,
		"run.json":        FormatChrome,
		"run.chrome.json": FormatChrome,
		"run.log":         FormatText,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestHeartbeatStops(t *testing.T) {
	if StartHeartbeat(Nop, time.Millisecond) != nil {
		t.Fatal("no heartbeat without tracing")
	}
	r := NewRingTracer(64, LevelPhase)
	h := StartHeartbeat(r, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for r.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()

	snap := r.Snapshot()
	if len(snap) == 0 || snap[0].Kind != KindHeartbeat {
		t.Fatalf("expected heartbeat events, got %+v", snap)
	}
	if !strings.HasPrefix(snap[0].Extra["spans"], "+") {
		t.Fatalf("heartbeat extra = %v", snap[0].Extra)
	}
}
