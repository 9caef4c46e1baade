// Package diag defines the diagnostic model shared by the lexer, the
// combinator layer, and grammar front-ends.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     lexing, parsing, and value validation.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform rendering or IO. Human-facing and machine
// formats live in internal/diagfmt; the only formatter here is the short
// one-line form used by the CLI and by tests.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity: Note, Warning or Error (severity.go).
//   - Code: compact numeric identifier (codes.go) with stable string form.
//   - Message: human oriented text; keep it short and actionable.
//   - Primary span: the canonical source.Span pointing to the issue.
//   - Notes: optional secondary labeled spans.
//
// Diagnostics are append-only once created. WithNote copies the note slice so
// a diagnostic shared by two parse branches is never mutated through the other.
//
// # Accumulation
//
// A Bag keeps insertion order. Merge concatenates in attempt order and never
// deduplicates; callers that want unique entries call Dedup explicitly. Sort is
// stable and orders by primary span only, so diagnostics at the same position
// keep the order in which they were produced.
package diag
