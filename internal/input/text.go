package input

import (
	"bytes"
	"fmt"

	"flexparse/internal/source"

	"fortio.org/safecast"
	"github.com/rivo/uniseg"
)

// Text yields grapheme clusters of a text unit and tracks line/column
// incrementally. A cluster containing '\n' ("\n" or "\r\n") ends a line.
type Text struct {
	unit *source.Unit
	off  uint32
	pos  source.LineCol

	cached bool
	next   Atom
}

// NewText creates a source positioned at the start of unit.
func NewText(unit *source.Unit) *Text {
	return &Text{
		unit: unit,
		pos:  source.LineCol{Line: 1, Col: 1},
	}
}

func (t *Text) Unit() source.UnitID { return t.unit.ID }

func (t *Text) Peek() (Atom, bool) {
	if t.cached {
		return t.next, true
	}
	if int(t.off) >= len(t.unit.Content) {
		return Atom{}, false
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(t.unit.Content[t.off:], -1)
	size, err := safecast.Conv[uint32](len(cluster))
	if err != nil {
		panic(fmt.Errorf("grapheme size overflow: %w", err))
	}
	after := source.LineCol{Line: t.pos.Line, Col: t.pos.Col + 1}
	if bytes.IndexByte(cluster, '\n') >= 0 {
		after = source.LineCol{Line: t.pos.Line + 1, Col: 1}
	}
	t.next = Atom{
		Text: string(cluster),
		Span: source.Span{
			Unit:  t.unit.ID,
			Kind:  source.UnitText,
			Start: t.off,
			End:   t.off + size,
			From:  t.pos,
			To:    after,
		},
	}
	t.cached = true
	return t.next, true
}

func (t *Text) Advance() {
	a, ok := t.Peek()
	if !ok {
		return
	}
	t.off = a.Span.End
	t.pos = a.Span.To
	t.cached = false
}

func (t *Text) Checkpoint() Mark {
	return Mark{idx: t.off, line: t.pos.Line, col: t.pos.Col}
}

func (t *Text) Restore(m Mark) {
	t.off = m.idx
	t.pos = source.LineCol{Line: m.line, Col: m.col}
	t.cached = false
}

func (t *Text) End() source.Span {
	n, err := safecast.Conv[uint32](len(t.unit.Content))
	if err != nil {
		panic(fmt.Errorf("len unit content overflow: %w", err))
	}
	lc := t.unit.LineCol(n)
	return source.Span{Unit: t.unit.ID, Kind: source.UnitText, Start: n, End: n, From: lc, To: lc}
}
