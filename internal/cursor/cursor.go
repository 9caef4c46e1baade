// Package cursor provides the backtrackable reader the combinators consume.
//
// A Cursor pulls atoms from an input.Source into an append-only arena and
// never asks the source for the same atom twice. A Pos is an index into that
// arena, so Restore is O(1) and replaying from a Pos yields the exact atoms
// and spans seen the first time.
package cursor

import (
	"flexparse/internal/input"
	"flexparse/internal/source"
)

// Pos is a checkpoint: the number of atoms consumed so far.
type Pos uint32

type Cursor struct {
	src  input.Source
	buf  []input.Atom
	pos  Pos
	done bool
}

func New(src input.Source) *Cursor {
	return &Cursor{
		src: src,
		buf: make([]input.Atom, 0, 64),
	}
}

// fill pulls atoms until buf holds index i or the source is exhausted.
func (c *Cursor) fill(i int) bool {
	for len(c.buf) <= i && !c.done {
		a, ok := c.src.Peek()
		if !ok {
			c.done = true
			break
		}
		c.buf = append(c.buf, a)
		c.src.Advance()
	}
	return i < len(c.buf)
}

// Peek returns the atom n positions ahead of the current one.
func (c *Cursor) Peek(n int) (input.Atom, bool) {
	i := int(c.pos) + n
	if n < 0 || !c.fill(i) {
		return input.Atom{}, false
	}
	return c.buf[i], true
}

// Advance consumes one atom. At end of input it does nothing and reports false.
func (c *Cursor) Advance() (input.Atom, bool) {
	a, ok := c.Peek(0)
	if ok {
		c.pos++
	}
	return a, ok
}

func (c *Cursor) Position() Pos { return c.pos }

// Restore rewinds (or re-advances) to p, which must come from Position.
func (c *Cursor) Restore(p Pos) {
	if int(p) > len(c.buf) {
		panic("cursor: restore to a position that was never reached")
	}
	c.pos = p
}

// AtEnd reports whether every atom has been consumed.
func (c *Cursor) AtEnd() bool {
	_, ok := c.Peek(0)
	return !ok
}

func (c *Cursor) Unit() source.UnitID { return c.src.Unit() }

// Consumed returns the number of atoms consumed since p.
func (c *Cursor) Consumed(p Pos) int { return int(c.pos) - int(p) }

// Here returns the empty span at the current position.
func (c *Cursor) Here() source.Span { return c.spanAt(c.pos) }

// SpanAt returns the empty span at p.
func (c *Cursor) SpanAt(p Pos) source.Span { return c.spanAt(p) }

func (c *Cursor) spanAt(p Pos) source.Span {
	if c.fill(int(p)) {
		return c.buf[p].Span.StartPoint()
	}
	return c.src.End()
}

// SpanSince covers every atom consumed since p. With nothing consumed it is
// the empty span at p.
func (c *Cursor) SpanSince(p Pos) source.Span {
	if c.pos <= p {
		return c.spanAt(c.pos)
	}
	first, last := c.buf[p].Span, c.buf[c.pos-1].Span
	return first.Cover(last)
}

// AtomSpan returns the span of the atom at the current position, or the end
// span when input is exhausted.
func (c *Cursor) AtomSpan() source.Span {
	if a, ok := c.Peek(0); ok {
		return a.Span
	}
	return c.src.End()
}
