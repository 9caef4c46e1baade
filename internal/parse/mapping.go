package parse

import (
	"errors"

	"flexparse/internal/diag"
)

// Map transforms the value of a successful match.
func Map[T, U any](p Parser[T], f func(T) U) Parser[U] {
	return Func[U](func(st *State) Result[U] {
		r := p.Parse(st)
		if !r.Ok() {
			return failAs[U](r)
		}
		return Success(f(r.Value), r.Span, r.Diags...)
	})
}

// TryMap transforms the value and turns an error into a validation failure.
// The diagnostic covers the consumed span; the failure itself stops at its
// end, so a rejected match still counts as progress inside Alt.
func TryMap[T, U any](p Parser[T], f func(T) (U, error)) Parser[U] {
	return Func[U](func(st *State) Result[U] {
		r := p.Parse(st)
		if !r.Ok() {
			return failAs[U](r)
		}
		v, err := f(r.Value)
		if err != nil {
			d := validationDiag(r, err)
			return Failure[U](r.Span.EndPoint(), append(append([]diag.Diagnostic(nil), r.Diags...), d)...)
		}
		return Success(v, r.Span, r.Diags...)
	})
}

// Validate re-checks a successful match and downgrades it to a failure when
// check returns an error. Use Invalid to choose the diagnostic code;
// otherwise SemValidation is used.
func Validate[T any](p Parser[T], check func(T) error) Parser[T] {
	return TryMap(p, func(v T) (T, error) {
		return v, check(v)
	})
}

func validationDiag[T any](r Result[T], err error) diag.Diagnostic {
	code := diag.SemValidation
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Code != diag.UnknownCode {
		code = ve.Code
	}
	return diag.NewError(code, r.Span, err.Error())
}

// Label replaces the diagnostics of a failure that made no progress with a
// single "expected <what>" diagnostic.
func Label[T any](what string, p Parser[T]) Parser[T] {
	return Func[T](func(st *State) Result[T] {
		at, desc := st.Cur.AtomSpan(), found(st)
		code := diag.SynExpected
		if st.Cur.AtEnd() {
			code = diag.SynUnexpectedEOF
		}
		r := p.Parse(st)
		if !r.Failed() || !r.Span.SameUnit(at) || r.Span.Start != at.Start {
			return r
		}
		d := diag.NewError(code, at, "expected "+what+", found "+desc)
		return Failure[T](r.Span, d)
	})
}
