// Package parse implements the combinator layer: grammar nodes are immutable
// Parser values that attempt a match against a cursor.State and return a
// Result.
//
// A node either succeeds with a value and the span it consumed, fails with
// diagnostics (recoverable: Alt retries, Optional swallows), or aborts with a
// fatal error (*GrammarError, *source.SpanError) that bypasses every retry.
//
// Composition only captures references, so building a grammar is O(1) per
// combinator and the same grammar value may be run concurrently against
// independent States.
//
// Alternatives pick the failure that got furthest into the input. When two
// failures stop at the same place their diagnostics are concatenated in
// declaration order, whatever their severity.
package parse
