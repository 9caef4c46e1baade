package parse

import (
	"slices"
	"strings"

	"flexparse/internal/input"
	"flexparse/internal/token"
)

// Stream-mode terminals. Each atom carries the token it was built from.

func tok(what string, pred func(token.Token) bool) Parser[token.Token] {
	return Map(atom(what, func(a input.Atom) bool { return pred(a.Token) }),
		func(a input.Atom) token.Token { return a.Token })
}

// Kind matches one token of kind k.
func Kind(k token.Kind) Parser[token.Token] {
	return tok(k.String(), func(t token.Token) bool { return t.Kind == k })
}

// Punct matches a punctuation sequence such as "==" or "->". Every token but
// the last must be joint with its successor, so "= =" does not match "==".
// The last token's spacing is not checked; use Puncts to prefer longer
// operators. Like Literal it fails at the mismatching token and rewinds.
func Punct(p string) Parser[string] {
	what := "`" + p + "`"
	chars := []rune(p)
	return Func[string](func(st *State) Result[string] {
		start := st.Cur.Position()
		for i, ch := range chars {
			a, ok := st.Cur.Peek(0)
			if !ok || !a.Token.IsPunct(ch) || (i < len(chars)-1 && a.Token.Spacing != token.Joint) {
				r := expected[string](st, what)
				st.Cur.Restore(start)
				return r
			}
			st.Cur.Advance()
		}
		return Success(p, st.Cur.SpanSince(start))
	})
}

// Keyword matches the identifier word.
func Keyword(word string) Parser[string] {
	return Map(tok("`"+word+"`", func(t token.Token) bool { return t.IsKeyword(word) }),
		func(t token.Token) string { return t.Text })
}

// IdentTok matches an identifier that is not reserved. The value is the
// NFC-normalized name.
func IdentTok(reserved token.Keywords) Parser[string] {
	return Map(tok("identifier", func(t token.Token) bool {
		return t.Kind == token.Ident && !reserved.Lookup(t.Text)
	}), func(t token.Token) string { return t.Value.Str })
}

// IntLit matches an integer literal.
func IntLit() Parser[int64] {
	return Map(Kind(token.IntLit), func(t token.Token) int64 { return t.Value.Int })
}

// FloatLit matches a float literal.
func FloatLit() Parser[float64] {
	return Map(Kind(token.FloatLit), func(t token.Token) float64 { return t.Value.Float })
}

// StringLit matches a string literal and yields its unescaped contents.
func StringLit() Parser[string] {
	return Map(Kind(token.StringLit), func(t token.Token) string { return t.Value.Str })
}

// CharLit matches a character literal.
func CharLit() Parser[rune] {
	return Map(Kind(token.CharLit), func(t token.Token) rune { return t.Value.Char })
}

// Puncts matches any of the given punctuation sequences, longest first.
func Puncts(ps ...string) Parser[string] {
	sorted := slices.Clone(ps)
	// длинные операторы раньше коротких: "<=" до "<"
	slices.SortStableFunc(sorted, func(a, b string) int { return len(b) - len(a) })
	alts := make([]Parser[string], len(sorted))
	for i, p := range sorted {
		alts[i] = Punct(p)
	}
	return Label(strings.Join(quoteAll(ps), " or "), Alt(alts...))
}

func quoteAll(ps []string) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = "`" + p + "`"
	}
	return out
}
