package calc

import (
	"errors"
	"fmt"

	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// Outcome is the value of one statement. Let statements report the bound
// value. OK is false when evaluation failed.
type Outcome struct {
	Stmt  *Stmt
	Value Value
	OK    bool
}

// Eval runs the program in order. A statement that fails does not stop the
// ones after it; names bound by a failed let are poisoned, so their uses
// stay silent instead of piling up "undefined name" errors.
func Eval(prog *Program) ([]Outcome, []diag.Diagnostic) {
	ev := &evaluator{env: make(map[string]*binding)}
	out := make([]Outcome, 0, len(prog.Stmts))
	for _, st := range prog.Stmts {
		v, ok := ev.expr(st.X)
		if st.IsLet() {
			ev.env[st.Name] = &binding{value: v, ok: ok, stmt: st}
		}
		out = append(out, Outcome{Stmt: st, Value: v, OK: ok})
	}
	return out, ev.diags
}

type binding struct {
	value Value
	ok    bool
	stmt  *Stmt
}

type evaluator struct {
	env   map[string]*binding
	diags []diag.Diagnostic
}

func (ev *evaluator) expr(e Expr) (Value, bool) {
	switch e := e.(type) {
	case *Number:
		return e.Value, true
	case *Name:
		b, found := ev.env[e.Ident]
		if !found {
			ev.diags = append(ev.diags, diag.NewError(diag.SemUndefinedName, e.Sp,
				fmt.Sprintf("undefined name `%s`", e.Ident)))
			return Value{}, false
		}
		return b.value, b.ok
	case *Paren:
		return ev.expr(e.X)
	case *Unary:
		x, ok := ev.expr(e.X)
		if !ok {
			return Value{}, false
		}
		v, err := negate(x)
		if err != nil {
			ev.fail(err, e.Sp, e)
			return Value{}, false
		}
		return v, true
	case *Binary:
		x, okx := ev.expr(e.X)
		y, oky := ev.expr(e.Y)
		if !okx || !oky {
			return Value{}, false
		}
		v, err := apply(e.Op, x, y)
		if err != nil {
			ev.fail(err, e.Span(), e)
			return Value{}, false
		}
		return v, true
	}
	panic(fmt.Sprintf("calc: unexpected expression %T", e))
}

func (ev *evaluator) fail(err error, sp source.Span, e Expr) {
	switch {
	case errors.Is(err, errDivZero):
		b := e.(*Binary)
		d := diag.NewError(diag.SemDivisionByZero, sp, "division by zero").
			WithNote(b.Y.Span(), "divisor evaluates to zero")
		ev.diags = append(ev.diags, d)
	case errors.Is(err, errOverflow):
		ev.diags = append(ev.diags, diag.NewError(diag.SemOutOfRange, sp, "integer overflow"))
	default:
		ev.diags = append(ev.diags, diag.NewError(diag.SemValidation, sp, err.Error()))
	}
}
