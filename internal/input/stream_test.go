package input

import (
	"errors"
	"testing"

	"flexparse/internal/source"
	"flexparse/internal/token"
)

func mkTok(unit source.UnitID, k token.Kind, text string, start uint32) token.Token {
	return token.Token{
		Kind: k,
		Text: text,
		Span: source.Span{Unit: unit, Start: start, End: start + uint32(len(text))},
	}
}

func TestStreamSkipsTrivia(t *testing.T) {
	toks := []token.Token{
		mkTok(2, token.Ident, "a", 0),
		mkTok(2, token.Space, " ", 1),
		mkTok(2, token.Punct, "+", 2),
		mkTok(2, token.Newline, "\n", 3),
		{Kind: token.EOF, Span: source.Span{Unit: 2, Start: 4, End: 4}},
	}

	all, err := NewStream(2, toks, StreamOptions{})
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	if got := len(drain(all)); got != 4 {
		t.Fatalf("without skipping: %d atoms, want 4", got)
	}

	src, err := NewStream(2, toks, StreamOptions{SkipTrivia: true})
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	atoms := drain(src)
	if len(atoms) != 2 || atoms[0].Text != "a" || atoms[1].Text != "+" {
		t.Fatalf("unexpected atoms: %+v", atoms)
	}
	if atoms[1].Span != toks[2].Span || atoms[1].Token.Kind != token.Punct {
		t.Fatalf("token span not preserved: %+v", atoms[1])
	}
	if end := src.End(); end.Start != 4 || !end.Empty() {
		t.Fatalf("End() = %v, want the EOF token position", end)
	}
}

func TestStreamRejectsMixedUnits(t *testing.T) {
	toks := []token.Token{
		mkTok(1, token.Ident, "a", 0),
		mkTok(3, token.Ident, "b", 0),
	}
	_, err := NewStream(1, toks, StreamOptions{})
	if !errors.Is(err, source.ErrCrossUnitSpan) {
		t.Fatalf("expected ErrCrossUnitSpan, got %v", err)
	}
}

func TestStreamEndWithoutEOF(t *testing.T) {
	src, err := NewStream(1, []token.Token{mkTok(1, token.Ident, "abc", 5)}, StreamOptions{})
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	if end := src.End(); end.Start != 8 || end.End != 8 {
		t.Fatalf("End() = %v, want empty span after last token", end)
	}

	empty, err := NewStream(4, nil, StreamOptions{})
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	if _, ok := empty.Peek(); ok {
		t.Fatal("empty stream yielded an atom")
	}
	if end := empty.End(); end.Unit != 4 || !end.Empty() {
		t.Fatalf("End() = %v", end)
	}
}

func TestStreamCheckpointRestore(t *testing.T) {
	src, err := NewStream(1, []token.Token{
		mkTok(1, token.Ident, "a", 0),
		mkTok(1, token.Ident, "b", 2),
	}, StreamOptions{})
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	mark := src.Checkpoint()
	src.Advance()
	src.Advance()
	src.Advance()
	src.Restore(mark)
	if a, ok := src.Peek(); !ok || a.Text != "a" {
		t.Fatalf("restore did not rewind: %+v %v", a, ok)
	}
}

func TestReindex(t *testing.T) {
	us := source.NewUnitSet()
	toks := []token.Token{
		mkTok(0, token.Ident, "x", 0),
		mkTok(0, token.Punct, "+", 2),
		{Kind: token.EOF, Span: source.Span{Unit: 0, Start: 3, End: 3}},
	}
	id, out := Reindex(us, "macro#1", toks)

	unit := us.Get(id)
	if unit.Kind != source.UnitStream || unit.Tokens != 2 {
		t.Fatalf("unexpected unit: %+v", unit)
	}
	if out[1].Span != (source.Span{Unit: id, Kind: source.UnitStream, Start: 1, End: 2}) {
		t.Fatalf("token 1 span = %v", out[1].Span)
	}
	if eof := out[2].Span; eof.Start != 2 || !eof.Empty() {
		t.Fatalf("eof span = %v", eof)
	}
	if toks[1].Span.Unit != 0 {
		t.Fatal("Reindex modified its input")
	}

	src, err := NewStream(id, out, StreamOptions{})
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	if got := us.Render(src.End()); got != "macro#1:[2..2)" {
		t.Fatalf("rendered end = %q", got)
	}
}
