package parse

import (
	"strconv"

	"flexparse/internal/diag"
	"flexparse/internal/input"
	"flexparse/internal/token"
)

// found describes the atom under the cursor for "expected X, found Y".
func found(st *State) string {
	a, ok := st.Cur.Peek(0)
	if !ok {
		return "end of input"
	}
	if a.Token.Kind != token.Invalid {
		return a.Token.String()
	}
	return strconv.Quote(a.Text)
}

// expected fails at the atom under the cursor.
func expected[T any](st *State, what string) Result[T] {
	sp := st.Cur.AtomSpan()
	code := diag.SynExpected
	if st.Cur.AtEnd() {
		code = diag.SynUnexpectedEOF
	}
	return Failure[T](sp, diag.NewError(code, sp, "expected "+what+", found "+found(st)))
}

// atom consumes one atom accepted by pred.
func atom(what string, pred func(input.Atom) bool) Parser[input.Atom] {
	return Func[input.Atom](func(st *State) Result[input.Atom] {
		a, ok := st.Cur.Peek(0)
		if !ok || !pred(a) {
			return expected[input.Atom](st, what)
		}
		st.Cur.Advance()
		return Success(a, a.Span)
	})
}

// Any consumes one atom of any kind.
func Any() Parser[input.Atom] {
	return atom("anything", func(input.Atom) bool { return true })
}

// EOF matches the end of input.
func EOF() Parser[struct{}] {
	return Func[struct{}](func(st *State) Result[struct{}] {
		if st.Cur.AtEnd() {
			return Success(struct{}{}, st.Cur.Here())
		}
		sp := st.Cur.AtomSpan()
		return Failure[struct{}](sp, diag.NewError(diag.SynTrailingInput, sp, "expected end of input, found "+found(st)))
	})
}
