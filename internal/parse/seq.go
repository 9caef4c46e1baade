package parse

import "flexparse/internal/source"

// Pair is the value of Seq2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the value of Seq3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Spanned pairs a value with the span it was parsed from.
type Spanned[T any] struct {
	Value T
	Span  source.Span
}

// Seq2 runs a then b. A failure of b leaves the cursor where b stopped.
func Seq2[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return Func[Pair[A, B]](func(st *State) Result[Pair[A, B]] {
		start := st.Cur.Position()
		ra := a.Parse(st)
		if !ra.Ok() {
			return failAs[Pair[A, B]](ra)
		}
		rb := b.Parse(st)
		if !rb.Ok() {
			rb.Diags = mergeDiags(ra.Diags, rb.Diags)
			return failAs[Pair[A, B]](rb)
		}
		return Success(Pair[A, B]{ra.Value, rb.Value}, st.Cur.SpanSince(start), mergeDiags(ra.Diags, rb.Diags)...)
	})
}

// Seq3 runs a, b and c in order.
func Seq3[A, B, C any](a Parser[A], b Parser[B], c Parser[C]) Parser[Triple[A, B, C]] {
	return Map(Seq2(Seq2(a, b), c), func(v Pair[Pair[A, B], C]) Triple[A, B, C] {
		return Triple[A, B, C]{v.First.First, v.First.Second, v.Second}
	})
}

// Then runs a then b and keeps b's value.
func Then[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Map(Seq2(a, b), func(v Pair[A, B]) B { return v.Second })
}

// Skip runs a then b and keeps a's value.
func Skip[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Map(Seq2(a, b), func(v Pair[A, B]) A { return v.First })
}

// Between runs open, p, closing and keeps p's value.
func Between[O, T, C any](open Parser[O], p Parser[T], closing Parser[C]) Parser[T] {
	return Then(open, Skip(p, closing))
}

// Seq runs every parser in order and collects their values.
func Seq[T any](ps ...Parser[T]) Parser[[]T] {
	return Func[[]T](func(st *State) Result[[]T] {
		start := st.Cur.Position()
		out := make([]T, 0, len(ps))
		var ds []diagList
		for _, p := range ps {
			r := p.Parse(st)
			if !r.Ok() {
				r.Diags = flatten(ds, r.Diags)
				return failAs[[]T](r)
			}
			out = append(out, r.Value)
			if len(r.Diags) > 0 {
				ds = append(ds, r.Diags)
			}
		}
		return Success(out, st.Cur.SpanSince(start), flatten(ds, nil)...)
	})
}

// WithSpan keeps the span of p's match next to its value.
func WithSpan[T any](p Parser[T]) Parser[Spanned[T]] {
	return Func[Spanned[T]](func(st *State) Result[Spanned[T]] {
		r := p.Parse(st)
		if !r.Ok() {
			return failAs[Spanned[T]](r)
		}
		return Success(Spanned[T]{r.Value, r.Span}, r.Span, r.Diags...)
	})
}
