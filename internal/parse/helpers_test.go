package parse_test

import (
	"testing"

	"flexparse/internal/cursor"
	"flexparse/internal/input"
	"flexparse/internal/lexer"
	"flexparse/internal/parse"
	"flexparse/internal/source"
)

func textState(t *testing.T, text string) *parse.State {
	t.Helper()
	us := source.NewUnitSet()
	id := us.AddText("test.txt", text)
	return parse.NewState(cursor.New(input.NewText(us.Get(id))))
}

func streamState(t *testing.T, text string) *parse.State {
	t.Helper()
	us := source.NewUnitSet()
	id := us.AddText("test.calc", text)
	toks := lexer.Tokenize(us.Get(id), lexer.Options{})
	src, err := input.NewStream(id, toks, input.StreamOptions{SkipTrivia: true})
	if err != nil {
		t.Fatalf("NewStream: %v", err)
	}
	return parse.NewState(cursor.New(src))
}

func checkSpan(t *testing.T, what string, sp source.Span, start, end uint32) {
	t.Helper()
	if sp.Start != start || sp.End != end {
		t.Errorf("%s span = [%d,%d), want [%d,%d)", what, sp.Start, sp.End, start, end)
	}
}
