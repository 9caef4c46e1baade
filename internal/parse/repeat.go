package parse

import "flexparse/internal/cursor"

// Many matches p zero or more times.
func Many[T any](p Parser[T]) Parser[[]T] {
	return Repeat(p, 0, -1)
}

// Many1 matches p at least once; with no match it fails with the first
// attempt's diagnostics.
func Many1[T any](p Parser[T]) Parser[[]T] {
	return Repeat(p, 1, -1)
}

// Repeat matches p between min and max times (max < 0 means no upper
// bound). The attempt that stops the loop is rewound. An iteration that
// succeeds without consuming anything aborts with ErrZeroWidthRepetition;
// min > max >= 0 aborts with ErrRepeatBounds before p runs.
func Repeat[T any](p Parser[T], min, max int) Parser[[]T] {
	return Func[[]T](func(st *State) Result[[]T] {
		if max >= 0 && min > max {
			return Abort[[]T](&GrammarError{Span: st.Cur.Here(), Err: ErrRepeatBounds})
		}
		start := st.Cur.Position()
		var out []T
		var ds []diagList
		for max < 0 || len(out) < max {
			at := st.Cur.Position()
			r := p.Parse(st)
			if r.Fatal() {
				return failAs[[]T](r)
			}
			if r.Failed() {
				st.Cur.Restore(at)
				if len(out) < min {
					r.Diags = flatten(ds, r.Diags)
					return failAs[[]T](r)
				}
				break
			}
			if st.Cur.Position() == at {
				return Abort[[]T](&GrammarError{Span: st.Cur.Here(), Err: ErrZeroWidthRepetition})
			}
			out = append(out, r.Value)
			if len(r.Diags) > 0 {
				ds = append(ds, r.Diags)
			}
		}
		if out == nil {
			out = []T{}
		}
		return Success(out, st.Cur.SpanSince(start), flatten(ds, nil)...)
	})
}

// SepBy matches zero or more p separated by sep. A trailing separator is
// not consumed.
func SepBy[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Func[[]T](func(st *State) Result[[]T] {
		start := st.Cur.Position()
		first := p.Parse(st)
		if first.Fatal() {
			return failAs[[]T](first)
		}
		if first.Failed() {
			st.Cur.Restore(start)
			return Success([]T{}, st.Cur.Here())
		}
		return sepRest(st, start, first, p, sep)
	})
}

// SepBy1 matches one or more p separated by sep.
func SepBy1[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return Func[[]T](func(st *State) Result[[]T] {
		start := st.Cur.Position()
		first := p.Parse(st)
		if !first.Ok() {
			return failAs[[]T](first)
		}
		return sepRest(st, start, first, p, sep)
	})
}

func sepRest[T, S any](st *State, start cursor.Pos, first Result[T], p Parser[T], sep Parser[S]) Result[[]T] {
	out := []T{first.Value}
	ds := []diagList{first.Diags}
	for {
		at := st.Cur.Position()
		rs := sep.Parse(st)
		if rs.Fatal() {
			return failAs[[]T](rs)
		}
		if rs.Failed() {
			st.Cur.Restore(at)
			break
		}
		r := p.Parse(st)
		if r.Fatal() {
			return failAs[[]T](r)
		}
		if r.Failed() {
			st.Cur.Restore(at)
			break
		}
		if st.Cur.Position() == at {
			return Abort[[]T](&GrammarError{Span: st.Cur.Here(), Err: ErrZeroWidthRepetition})
		}
		out = append(out, r.Value)
		ds = append(ds, rs.Diags, r.Diags)
	}
	return Success(out, st.Cur.SpanSince(start), flatten(ds, nil)...)
}

// ManyTill matches p until end matches, consuming end too. Unlike Many, a
// failing p is not a stop condition: the loop fails with p's diagnostics,
// so the error points into the offending item rather than at the leftover
// input.
func ManyTill[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return Func[[]T](func(st *State) Result[[]T] {
		start := st.Cur.Position()
		out := []T{}
		var ds []diagList
		for {
			at := st.Cur.Position()
			re := end.Parse(st)
			if re.Fatal() {
				return failAs[[]T](re)
			}
			if re.Ok() {
				return Success(out, st.Cur.SpanSince(start), flatten(ds, re.Diags)...)
			}
			st.Cur.Restore(at)
			r := p.Parse(st)
			if !r.Ok() {
				return failAs[[]T](r)
			}
			if st.Cur.Position() == at {
				return Abort[[]T](&GrammarError{Span: st.Cur.Here(), Err: ErrZeroWidthRepetition})
			}
			out = append(out, r.Value)
			if len(r.Diags) > 0 {
				ds = append(ds, r.Diags)
			}
		}
	})
}
