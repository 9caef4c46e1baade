// Package input adapts raw text units and pre-tokenized streams to one
// atom-producing contract consumed by the cursor.
package input

import (
	"flexparse/internal/source"
	"flexparse/internal/token"
)

// Atom is the smallest item a Source yields: a grapheme cluster in text mode
// or one token in stream mode, always with its span.
type Atom struct {
	Text  string
	Span  source.Span
	Token token.Token // stream mode only
}

// Mark is a checkpoint of a Source. Marks are plain values; restoring one
// never touches shared state.
type Mark struct {
	idx  uint32
	line uint32
	col  uint32
}

// Source produces atoms lazily. After end of input Peek keeps returning
// false.
type Source interface {
	Unit() source.UnitID
	Peek() (Atom, bool)
	Advance()
	Checkpoint() Mark
	Restore(Mark)
	// End is the empty span just past the last atom.
	End() source.Span
}
