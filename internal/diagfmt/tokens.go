package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"flexparse/internal/source"
	"flexparse/internal/token"
)

// TokenOutput is one element of the tokens json array.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Spacing string      `json:"spacing,omitempty"`
	Value   any         `json:"value,omitempty"`
}

// untilEOF cuts toks after the first EOF.
func untilEOF(toks []token.Token) []token.Token {
	for i, t := range toks {
		if t.Kind == token.EOF {
			return toks[:i+1]
		}
	}
	return toks
}

// FormatTokensPretty пишет по строке на токен:
// номер, вид, текст, позиция и пометка joint для склеенной пунктуации.
func FormatTokensPretty(w io.Writer, tokens []token.Token, us *source.UnitSet) error {
	var row strings.Builder
	for i, tok := range untilEOF(tokens) {
		row.Reset()
		fmt.Fprintf(&row, "%3d: %-10s", i+1, tok.Kind)
		if tok.Text != "" {
			fmt.Fprintf(&row, " %q", tok.Text)
		}
		row.WriteString(" at " + location(us, tok.Span))
		if tok.Kind == token.Punct && tok.Spacing == token.Joint {
			row.WriteString(" (joint)")
		}
		if _, err := fmt.Fprintln(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}

// location is the position part of a token row: "l:c-l:c" or "[s..e)".
func location(us *source.UnitSet, sp source.Span) string {
	switch {
	case sp.Kind == source.UnitStream:
		return fmt.Sprintf("[%d..%d)", sp.Start, sp.End)
	case us == nil || us.Get(sp.Unit) == nil:
		return fmt.Sprintf("%d-%d", sp.Start, sp.End)
	}
	from, to := us.Resolve(sp)
	return fmt.Sprintf("%d:%d-%d:%d", from.Line, from.Col, to.Line, to.Col)
}

// literalValue is the decoded value of a literal token, nil otherwise.
func literalValue(tok token.Token) any {
	switch tok.Kind {
	case token.IntLit:
		return tok.Value.Int
	case token.FloatLit:
		return tok.Value.Float
	case token.StringLit:
		return tok.Value.Str
	case token.CharLit:
		return string(tok.Value.Char)
	}
	return nil
}

// FormatTokensJSON пишет токены json-массивом.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	toks := untilEOF(tokens)
	out := make([]TokenOutput, len(toks))
	for i, tok := range toks {
		out[i] = TokenOutput{Kind: tok.Kind.String(), Text: tok.Text, Span: tok.Span, Value: literalValue(tok)}
		if tok.Kind == token.Punct {
			out[i].Spacing = tok.Spacing.String()
		}
	}
	return encodeJSON(w, out)
}
