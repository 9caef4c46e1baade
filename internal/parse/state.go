package parse

import (
	"flexparse/internal/cursor"
	"flexparse/internal/diag"
	"flexparse/internal/source"
	"flexparse/internal/trace"
)

// State is the per-run mutable side of a parse: the cursor plus bookkeeping
// for rule nesting. A State must not be shared between goroutines.
type State struct {
	Cur *cursor.Cursor
	// MaxDepth bounds nesting of Named/Recursive rules; 0 means unbounded.
	MaxDepth int
	Tracer   trace.Tracer

	depth     int
	traceSpan uint64
}

// NewState wraps cur with tracing disabled.
func NewState(cur *cursor.Cursor) *State {
	return &State{Cur: cur, Tracer: trace.Nop}
}

// WithTrace sets the tracer and the parent span rule spans nest under.
func (st *State) WithTrace(t trace.Tracer, parent uint64) *State {
	st.Tracer = t
	st.traceSpan = parent
	return st
}

// Depth returns the current rule nesting depth.
func (st *State) Depth() int { return st.depth }

// Parser is a grammar node. Implementations must not keep per-call state.
type Parser[T any] interface {
	Parse(st *State) Result[T]
}

// Func adapts a function to Parser.
type Func[T any] func(st *State) Result[T]

func (f Func[T]) Parse(st *State) Result[T] { return f(st) }

// Run applies p at the current cursor position.
// The error is a *SyntaxError on failure, or the fatal error as is.
func Run[T any](p Parser[T], st *State) (T, source.Span, error) {
	r := p.Parse(st)
	switch {
	case r.Fatal():
		var zero T
		return zero, source.Span{}, r.Err
	case r.Failed():
		var zero T
		ds := append([]diag.Diagnostic(nil), r.Diags...)
		diag.SortDiagnostics(ds)
		return zero, r.Span, &SyntaxError{Diags: ds}
	}
	return r.Value, r.Span, nil
}

// RunAll is Run that also requires the whole input to be consumed.
func RunAll[T any](p Parser[T], st *State) (T, source.Span, error) {
	return Run(Skip(p, EOF()), st)
}
