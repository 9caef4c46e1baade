package calc

import (
	"slices"
	"sync"

	"flexparse/internal/parse"
	"flexparse/internal/token"
)

// Reserved words; they never match as names.
var Reserved = token.NewKeywords("let")

// Parser returns the program grammar. It is built once and shared.
var Parser = sync.OnceValue(buildProgram)

func buildProgram() parse.Parser[*Program] {
	expr := parse.Recursive("expr", func(self parse.Parser[Expr]) parse.Parser[Expr] {
		number := parse.Alt(
			parse.Map(parse.WithSpan(parse.IntLit()), func(s parse.Spanned[int64]) Expr {
				return &Number{Value: Int(s.Value), Sp: s.Span}
			}),
			parse.Map(parse.WithSpan(parse.FloatLit()), func(s parse.Spanned[float64]) Expr {
				return &Number{Value: Float(s.Value), Sp: s.Span}
			}),
		)
		name := parse.Map(parse.WithSpan(parse.IdentTok(Reserved)), func(s parse.Spanned[string]) Expr {
			return &Name{Ident: s.Value, Sp: s.Span}
		})
		group := parse.Map(parse.WithSpan(parse.Delimited(parse.Punct("("), self, parse.Punct(")"))),
			func(s parse.Spanned[Expr]) Expr { return &Paren{X: s.Value, Sp: s.Span} })

		unary := parse.Recursive("unary", func(u parse.Parser[Expr]) parse.Parser[Expr] {
			neg := parse.Map(parse.WithSpan(parse.Seq2(parse.Punct("-"), u)),
				func(s parse.Spanned[parse.Pair[string, Expr]]) Expr {
					return &Unary{Op: "-", X: s.Value.Second, Sp: s.Span}
				})
			return parse.Label("expression", parse.Alt(neg, number, name, group))
		})
		term := binary(unary, "*", "/", "%")
		return binary(term, "+", "-")
	})

	// ';' or the end of input; the latter is not consumed
	terminator := parse.Label("`;`", parse.Alt(
		parse.Map(parse.Punct(";"), func(string) struct{} { return struct{}{} }),
		parse.Peek(parse.EOF()),
	))

	let := parse.Map(parse.WithSpan(parse.Seq3(
		parse.Then(parse.Keyword("let"), parse.WithSpan(parse.IdentTok(Reserved))),
		parse.Then(parse.Punct("="), expr),
		terminator,
	)), func(s parse.Spanned[parse.Triple[parse.Spanned[string], Expr, struct{}]]) *Stmt {
		return &Stmt{Name: s.Value.First.Value, NameSpan: s.Value.First.Span, X: s.Value.Second, Sp: s.Span}
	})
	bare := parse.Map(parse.WithSpan(parse.Skip(expr, terminator)), func(s parse.Spanned[Expr]) *Stmt {
		return &Stmt{X: s.Value, Sp: s.Span}
	})
	stmt := parse.Named("stmt", parse.Label("statement", parse.Alt(let, bare)))

	return parse.Map(parse.WithSpan(parse.ManyTill(stmt, parse.EOF())),
		func(s parse.Spanned[[]*Stmt]) *Program {
			return &Program{Stmts: s.Value, Sp: s.Span}
		})
}

// binary folds operand (op operand)* to the left. Once an operator matched,
// a missing right operand is an error rather than the end of the chain.
func binary(operand parse.Parser[Expr], ops ...string) parse.Parser[Expr] {
	op := parse.WithSpan(parse.Puncts(ops...))
	return parse.Func[Expr](func(st *parse.State) parse.Result[Expr] {
		start := st.Cur.Position()
		rx := operand.Parse(st)
		if !rx.Ok() {
			return rx
		}
		x, diags := rx.Value, slices.Clone(rx.Diags)
		for {
			at := st.Cur.Position()
			ro := op.Parse(st)
			if ro.Fatal() {
				return parse.Abort[Expr](ro.Err)
			}
			if ro.Failed() {
				st.Cur.Restore(at)
				break
			}
			ry := operand.Parse(st)
			if !ry.Ok() {
				return ry
			}
			x = &Binary{Op: ro.Value.Value, OpSpan: ro.Value.Span, X: x, Y: ry.Value}
			diags = append(diags, ry.Diags...)
		}
		return parse.Success(x, st.Cur.SpanSince(start), diags...)
	})
}
