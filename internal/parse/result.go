package parse

import (
	"slices"

	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// Result is the outcome of one attempt.
//
// On success Span is the consumed span and Diags holds any non-fatal
// diagnostics the match committed (warnings). On failure Span is where the
// match stopped and Diags is non-empty. A fatal Result carries Err and
// nothing else matters.
type Result[T any] struct {
	Value T
	Span  source.Span
	Diags []diag.Diagnostic
	Err   error
	ok    bool
}

func (r Result[T]) Ok() bool     { return r.ok && r.Err == nil }
func (r Result[T]) Failed() bool { return !r.ok && r.Err == nil }
func (r Result[T]) Fatal() bool  { return r.Err != nil }

// Success builds a successful Result.
func Success[T any](v T, sp source.Span, diags ...diag.Diagnostic) Result[T] {
	return Result[T]{Value: v, Span: sp, Diags: diags, ok: true}
}

// Failure builds a failed Result stopping at sp.
func Failure[T any](sp source.Span, diags ...diag.Diagnostic) Result[T] {
	return Result[T]{Span: sp, Diags: diags}
}

// Abort builds a fatal Result.
func Abort[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// failAs re-types a failed or fatal result.
func failAs[U, T any](r Result[T]) Result[U] {
	return Result[U]{Span: r.Span, Diags: r.Diags, Err: r.Err}
}

// mergeDiags concatenates in order without sharing backing arrays.
func mergeDiags(a, b []diag.Diagnostic) []diag.Diagnostic {
	if len(b) == 0 {
		return a
	}
	if len(a) == 0 {
		return b
	}
	return slices.Concat(a, b)
}

type diagList = []diag.Diagnostic

func flatten(parts []diagList, tail diagList) []diag.Diagnostic {
	n := len(tail)
	for _, p := range parts {
		n += len(p)
	}
	if n == 0 {
		return nil
	}
	out := make([]diag.Diagnostic, 0, n)
	for _, p := range parts {
		out = append(out, p...)
	}
	return append(out, tail...)
}
