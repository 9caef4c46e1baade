package parse

import (
	"flexparse/internal/diag"
)

// Peek runs p and rewinds whatever the outcome. On success the value is kept
// but p's diagnostics are not.
func Peek[T any](p Parser[T]) Parser[T] {
	return Func[T](func(st *State) Result[T] {
		start := st.Cur.Position()
		r := p.Parse(st)
		st.Cur.Restore(start)
		if !r.Ok() {
			return r
		}
		return Success(r.Value, st.Cur.Here())
	})
}

// Not succeeds, consuming nothing, exactly when p fails.
func Not[T any](p Parser[T]) Parser[struct{}] {
	return Func[struct{}](func(st *State) Result[struct{}] {
		start := st.Cur.Position()
		r := p.Parse(st)
		st.Cur.Restore(start)
		switch {
		case r.Fatal():
			return failAs[struct{}](r)
		case r.Failed():
			return Success(struct{}{}, st.Cur.Here())
		}
		return Failure[struct{}](r.Span, diag.NewError(diag.SynUnexpected, r.Span, "unexpected "+found(st)))
	})
}

// Optional matches p or nothing. A failed attempt is rewound and its
// diagnostics dropped.
func Optional[T any](p Parser[T]) Parser[Option[T]] {
	return Func[Option[T]](func(st *State) Result[Option[T]] {
		start := st.Cur.Position()
		r := p.Parse(st)
		switch {
		case r.Fatal():
			return failAs[Option[T]](r)
		case r.Failed():
			st.Cur.Restore(start)
			return Success(Option[T]{}, st.Cur.Here())
		}
		return Success(Option[T]{Value: r.Value, Present: true}, r.Span, r.Diags...)
	})
}

// Option is the value of Optional.
type Option[T any] struct {
	Value   T
	Present bool
}

// Or returns the value when present, def otherwise.
func (o Option[T]) Or(def T) T {
	if o.Present {
		return o.Value
	}
	return def
}

// Empty always succeeds without consuming.
func Empty[T any]() Parser[T] {
	return Func[T](func(st *State) Result[T] {
		var zero T
		return Success(zero, st.Cur.Here())
	})
}

// Pure always succeeds with v without consuming.
func Pure[T any](v T) Parser[T] {
	return Func[T](func(st *State) Result[T] {
		return Success(v, st.Cur.Here())
	})
}

// Nothing never matches.
func Nothing[T any]() Parser[T] {
	return Func[T](func(st *State) Result[T] {
		here := st.Cur.Here()
		return Failure[T](here, diag.NewError(diag.SynUnexpected, here, "unexpected "+found(st)))
	})
}
