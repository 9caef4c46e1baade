package parse

import (
	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// Alt tries each parser from the same position and commits to the first
// success. When all fail, the failure that stopped furthest wins; failures
// stopping at the same place have their diagnostics merged in declaration
// order. Fatal results are returned immediately.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return Func[T](func(st *State) Result[T] {
		start := st.Cur.Position()
		var best Result[T]
		have := false
		for _, p := range ps {
			st.Cur.Restore(start)
			r := p.Parse(st)
			if r.Ok() || r.Fatal() {
				return r
			}
			if !have {
				best, have = r, true
				continue
			}
			c, err := source.Compare(r.Span.StartPoint(), best.Span.StartPoint())
			if err != nil {
				return Abort[T](err)
			}
			switch {
			case c > 0:
				best = r
			case c == 0:
				best.Diags = mergeDiags(best.Diags, r.Diags)
			}
		}
		st.Cur.Restore(start)
		if !have {
			here := st.Cur.Here()
			return Failure[T](here, diag.NewError(diag.SynExpected, here, "no alternatives"))
		}
		return best
	})
}

// Or is Alt with two branches.
func Or[T any](a, b Parser[T]) Parser[T] {
	return Alt(a, b)
}
