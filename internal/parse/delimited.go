package parse

import "flexparse/internal/diag"

// Delimited matches open p closing. When p matched but closing is missing, the
// failure is a single unclosed-delimiter diagnostic with a note on the
// opener.
func Delimited[O, T, C any](open Parser[O], p Parser[T], closing Parser[C]) Parser[T] {
	return Func[T](func(st *State) Result[T] {
		start := st.Cur.Position()
		ro := open.Parse(st)
		if !ro.Ok() {
			return failAs[T](ro)
		}
		rp := p.Parse(st)
		if !rp.Ok() {
			return rp
		}
		rc := closing.Parse(st)
		if rc.Fatal() {
			return failAs[T](rc)
		}
		if rc.Failed() {
			msg := "unclosed delimiter"
			if len(rc.Diags) > 0 {
				msg = rc.Diags[0].Message
			}
			d := diag.NewError(diag.SynUnclosedDelimiter, rc.Span, msg).
				WithNote(ro.Span, "unclosed delimiter opened here")
			return Failure[T](rc.Span, d)
		}
		ds := flatten([]diagList{ro.Diags, rp.Diags}, rc.Diags)
		return Success(rp.Value, st.Cur.SpanSince(start), ds...)
	})
}
