package input

import (
	"testing"

	"flexparse/internal/source"
)

func newText(t *testing.T, content string) (*source.UnitSet, *Text) {
	t.Helper()
	us := source.NewUnitSet()
	return us, NewText(us.Get(us.AddText("input.txt", content)))
}

func drain(src Source) []Atom {
	var out []Atom
	for {
		a, ok := src.Peek()
		if !ok {
			return out
		}
		out = append(out, a)
		src.Advance()
	}
}

func TestTextGraphemes(t *testing.T) {
	// flag emoji, e + combining acute, and CRLF are single atoms
	_, src := newText(t, "\U0001F1E9\U0001F1EAe\u0301\r\nx")
	atoms := drain(src)
	want := []string{"\U0001F1E9\U0001F1EA", "e\u0301", "\r\n", "x"}
	if len(atoms) != len(want) {
		t.Fatalf("got %d atoms, want %d: %+v", len(atoms), len(want), atoms)
	}
	for i, a := range atoms {
		if a.Text != want[i] {
			t.Errorf("atom %d = %q, want %q", i, a.Text, want[i])
		}
		if int(a.Span.Len()) != len(want[i]) {
			t.Errorf("atom %d span %v splits a character", i, a.Span)
		}
	}
}

func TestTextLineColMatchesResolve(t *testing.T) {
	content := "ab\n\t\u0436e\u0301\r\n\n\U0001F1E9\U0001F1EAz\rq"
	us, src := newText(t, content)
	for _, a := range drain(src) {
		from, to := us.Resolve(a.Span)
		if a.Span.From != from || a.Span.To != to {
			t.Fatalf("atom %q: incremental %v-%v, resolved %v-%v", a.Text, a.Span.From, a.Span.To, from, to)
		}
	}
	end := src.End()
	if end.Start != uint32(len(content)) || !end.Empty() {
		t.Fatalf("End() = %v", end)
	}
}

func TestTextExhaustionIsIdempotent(t *testing.T) {
	_, src := newText(t, "a")
	src.Advance()
	for range 3 {
		if _, ok := src.Peek(); ok {
			t.Fatal("Peek after end must keep returning false")
		}
		src.Advance()
	}
}

func TestTextCheckpointRestore(t *testing.T) {
	_, src := newText(t, "a\nbc")
	src.Advance()
	mark := src.Checkpoint()
	first := drain(src)

	src.Restore(mark)
	second := drain(src)
	if len(first) != len(second) {
		t.Fatalf("replay length differs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("atom %d differs after restore: %+v vs %+v", i, first[i], second[i])
		}
	}
	if second[1].Span.From != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("line tracking lost on restore: %+v", second[1].Span)
	}
}
