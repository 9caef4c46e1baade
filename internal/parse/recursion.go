package parse

import (
	"sync"

	"flexparse/internal/trace"
)

// Named wraps p as a rule: it counts towards State.MaxDepth and, at debug
// trace level, emits one ScopeRule span per attempt.
func Named[T any](name string, p Parser[T]) Parser[T] {
	return Func[T](func(st *State) Result[T] {
		if st.MaxDepth > 0 && st.depth >= st.MaxDepth {
			return Abort[T](&GrammarError{Rule: name, Span: st.Cur.Here(), Err: ErrRecursionLimitExceeded})
		}
		st.depth++
		defer func() { st.depth-- }()

		if st.Tracer == nil || !st.Tracer.Level().ShouldEmit(trace.ScopeRule) {
			return p.Parse(st)
		}
		sp := trace.Begin(st.Tracer, trace.ScopeRule, "rule:"+name, st.traceSpan)
		parent := st.traceSpan
		st.traceSpan = sp.ID()
		r := p.Parse(st)
		st.traceSpan = parent

		sp.WithExtra("span", r.Span.String()).End(outcome(r))
		return r
	})
}

func outcome[T any](r Result[T]) string {
	switch {
	case r.Fatal():
		return "fatal"
	case r.Failed():
		return "fail"
	}
	return "ok"
}

// Recursive builds a self-referential rule. build receives a reference to
// the rule being defined; every pass through it is a Named nesting level.
func Recursive[T any](name string, build func(self Parser[T]) Parser[T]) Parser[T] {
	var rule Parser[T]
	self := Func[T](func(st *State) Result[T] {
		return rule.Parse(st)
	})
	rule = Named(name, build(self))
	return rule
}

// Lazy defers construction of p until first use, for mutually recursive
// rules declared as package-level values.
func Lazy[T any](f func() Parser[T]) Parser[T] {
	get := sync.OnceValue(f)
	return Func[T](func(st *State) Result[T] {
		return get().Parse(st)
	})
}
