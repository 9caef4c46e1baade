package token

import "strings"

// Display reconstructs source-like text from toks. Gaps between consecutive
// token spans of the same unit are filled with spaces, so a stream with its
// whitespace tokens removed still prints readably.
func Display(toks []Token) string {
	var b strings.Builder
	var lastEnd uint32
	first := true
	var prev Token
	for _, tok := range toks {
		if tok.Kind == EOF {
			break
		}
		if !first && tok.Span.SameUnit(prev.Span) && tok.Span.Start > lastEnd {
			b.WriteString(strings.Repeat(" ", int(tok.Span.Start-lastEnd)))
		}
		b.WriteString(tok.Text)
		lastEnd = tok.Span.End
		prev = tok
		first = false
	}
	return b.String()
}
