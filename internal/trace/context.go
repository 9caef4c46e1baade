package trace

import "context"

type (
	tracerKey struct{}
	parentKey struct{}
)

// FromContext returns the tracer attached by WithTracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// WithSpan makes sp the parent of spans begun from the returned context,
// e.g. the per-unit spans a parallel check starts under its run span.
func WithSpan(ctx context.Context, sp *Span) context.Context {
	if sp == nil || sp.ID() == 0 {
		return ctx
	}
	return context.WithValue(ctx, parentKey{}, sp.ID())
}

// ParentID returns the span id stored by WithSpan, 0 at the root.
func ParentID(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}

// BeginFrom opens a span with the tracer and parent carried by ctx.
func BeginFrom(ctx context.Context, scope Scope, name string) *Span {
	return Begin(FromContext(ctx), scope, name, ParentID(ctx))
}
