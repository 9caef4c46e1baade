package parse

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"flexparse/internal/input"
)

// Text-mode terminals. Every atom is one grapheme cluster and predicates see
// its first rune, so "é" is a letter.

func firstRune(a input.Atom) rune {
	r, _ := utf8.DecodeRuneInString(a.Text)
	return r
}

// Literal matches s atom by atom. A partial match fails at the first
// mismatching atom but leaves the cursor where it started.
func Literal(s string) Parser[string] {
	what := strconv.Quote(s)
	return Func[string](func(st *State) Result[string] {
		start := st.Cur.Position()
		rest := s
		for rest != "" {
			a, ok := st.Cur.Peek(0)
			if !ok || a.Text == "" || !strings.HasPrefix(rest, a.Text) {
				r := expected[string](st, what)
				st.Cur.Restore(start)
				return r
			}
			st.Cur.Advance()
			rest = rest[len(a.Text):]
		}
		return Success(s, st.Cur.SpanSince(start))
	})
}

// Satisfy matches one atom whose first rune passes pred.
func Satisfy(what string, pred func(rune) bool) Parser[string] {
	return Map(atom(what, func(a input.Atom) bool {
		return a.Text != "" && pred(firstRune(a))
	}), func(a input.Atom) string { return a.Text })
}

// Char matches the single character ch.
func Char(ch rune) Parser[string] {
	return Satisfy(strconv.QuoteRune(ch), func(r rune) bool { return r == ch })
}

// Digit matches one ASCII digit.
func Digit() Parser[string] {
	return Satisfy("digit", func(r rune) bool { return '0' <= r && r <= '9' })
}

// Letter matches one Unicode letter.
func Letter() Parser[string] {
	return Satisfy("letter", unicode.IsLetter)
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}

// Ident matches a letter or '_' followed by letters, digits and '_'.
func Ident() Parser[string] {
	return Func[string](func(st *State) Result[string] {
		start := st.Cur.Position()
		a, ok := st.Cur.Peek(0)
		if !ok || a.Text == "" || !isIdentStart(firstRune(a)) {
			return expected[string](st, "identifier")
		}
		var sb strings.Builder
		for ok && a.Text != "" && isIdentContinue(firstRune(a)) {
			sb.WriteString(a.Text)
			st.Cur.Advance()
			a, ok = st.Cur.Peek(0)
		}
		return Success(sb.String(), st.Cur.SpanSince(start))
	})
}

// Spaces matches zero or more whitespace atoms, line breaks included.
func Spaces() Parser[string] {
	return spaces(func(r rune) bool { return unicode.IsSpace(r) })
}

// Blanks matches zero or more spaces and tabs.
func Blanks() Parser[string] {
	return spaces(func(r rune) bool { return r == ' ' || r == '\t' })
}

func spaces(pred func(rune) bool) Parser[string] {
	return Func[string](func(st *State) Result[string] {
		start := st.Cur.Position()
		var sb strings.Builder
		for {
			a, ok := st.Cur.Peek(0)
			if !ok || a.Text == "" || strings.IndexFunc(a.Text, func(r rune) bool { return !pred(r) }) >= 0 {
				break
			}
			sb.WriteString(a.Text)
			st.Cur.Advance()
		}
		return Success(sb.String(), st.Cur.SpanSince(start))
	})
}

// Lexeme runs p and then skips trailing blanks.
func Lexeme[T any](p Parser[T]) Parser[T] {
	return Func[T](func(st *State) Result[T] {
		r := p.Parse(st)
		if !r.Ok() {
			return r
		}
		Blanks().Parse(st)
		return r
	})
}

// Until collects atoms up to, not including, the first one matching stop or
// the end of input.
func Until(stop func(rune) bool) Parser[string] {
	return Func[string](func(st *State) Result[string] {
		start := st.Cur.Position()
		var sb strings.Builder
		for {
			a, ok := st.Cur.Peek(0)
			if !ok || (a.Text != "" && stop(firstRune(a))) {
				break
			}
			sb.WriteString(a.Text)
			st.Cur.Advance()
		}
		return Success(sb.String(), st.Cur.SpanSince(start))
	})
}
