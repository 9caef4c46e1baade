package lexer

import (
	"fmt"

	"flexparse/internal/source"

	"fortio.org/safecast"
)

// Cursor - байтовая позиция внутри текста юнита. Руны и классификация
// живут на уровне Lexer, курсор про них не знает.
type Cursor struct {
	src  []byte
	unit source.UnitID
	end  uint32
	Off  uint32
}

func NewCursor(u *source.Unit) Cursor {
	end, err := safecast.Conv[uint32](len(u.Content))
	if err != nil {
		panic(fmt.Errorf("unit %q is too large: %w", u.Name, err))
	}
	return Cursor{src: u.Content, unit: u.ID, end: end}
}

func (c *Cursor) EOF() bool { return c.Off >= c.end }

// PeekAt возвращает байт на n позиций впереди; ok=false за концом.
func (c *Cursor) PeekAt(n uint32) (byte, bool) {
	if c.Off+n >= c.end {
		return 0, false
	}
	return c.src[c.Off+n], true
}

// Peek - текущий байт или 0 на EOF.
func (c *Cursor) Peek() byte {
	b, _ := c.PeekAt(0)
	return b
}

// Peek2 требует, чтобы оба байта существовали.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	b1, ok = c.PeekAt(1)
	if !ok {
		return 0, 0, false
	}
	return c.src[c.Off], b1, true
}

func (c *Cursor) Bump() byte {
	b, ok := c.PeekAt(0)
	if ok {
		c.Off++
	}
	return b
}

func (c *Cursor) Eat(b byte) bool {
	if got, ok := c.PeekAt(0); ok && got == b {
		c.Off++
		return true
	}
	return false
}

// Rest - непрочитанный хвост юнита.
func (c *Cursor) Rest() []byte { return c.src[min(c.Off, c.end):c.end] }

// Advance сдвигает курсор на n байт, не выходя за конец.
func (c *Cursor) Advance(n int) {
	step, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("cursor advance: %w", err))
	}
	c.Off = min(c.Off+step, c.end)
}

// SkipToEnd переводит курсор на EOF.
func (c *Cursor) SkipToEnd() { c.Off = c.end }

type Mark uint32

func (c *Cursor) Mark() Mark { return Mark(c.Off) }

func (c *Cursor) Reset(m Mark) { c.Off = uint32(m) }

// SpanFrom - span от метки до текущей позиции, в координатах текста юнита.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{Unit: c.unit, Kind: source.UnitText, Start: uint32(m), End: c.Off}
}

// Since - байты от метки до курсора.
func (c *Cursor) Since(m Mark) []byte { return c.src[m:c.Off] }
