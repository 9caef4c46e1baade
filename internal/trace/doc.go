// Package trace records what the driver and the combinator layer are doing:
// CLI commands, per-unit passes and, at debug level, every attempt of a
// named grammar rule. It is the tool for slow or runaway grammars.
//
//	flexparse check --trace=run.json --trace-level=debug --trace-mode=stream testdata/
//
// Tracers:
//
//   - Nop discards everything and is what FromContext returns by default.
//   - StreamTracer writes each event as text, NDJSON or a chrome://tracing file.
//   - RingTracer keeps the last events and writes them on Close or on panic.
//   - MultiTracer combines a stream and a ring.
//
// Levels: LevelPhase emits ScopeDriver and ScopePass (lex, parse),
// LevelDetail adds ScopeUnit, LevelDebug adds ScopeRule.
//
// Spans nest through the context or directly:
//
//	run := trace.BeginFrom(ctx, trace.ScopeDriver, "check")
//	ctx = trace.WithSpan(ctx, run)
//	lex := trace.BeginFrom(ctx, trace.ScopeUnit, "unit").Child(trace.ScopePass, "lex")
//
// A span filtered out by the level is transparent: its children attach to
// its parent.
package trace
