package source

import (
	"errors"
	"fmt"
)

var (
	// ErrCrossUnitSpan is returned when spans from different units are merged.
	ErrCrossUnitSpan = errors.New("cross-unit span")
	// ErrIncomparableSpan is returned when spans from different units are ordered.
	ErrIncomparableSpan = errors.New("incomparable span")
)

// SpanError reports misuse of two spans that belong to different units.
type SpanError struct {
	Op   string
	A, B Span
	Err  error
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("%s %s with %s: %v", e.Op, e.A, e.B, e.Err)
}

func (e *SpanError) Unwrap() error { return e.Err }

// Span is a half-open range [Start, End) inside one unit.
// For text units Start/End are byte offsets and From/To carry line/column
// hints; for stream units they are token indices and the hints are zero.
type Span struct {
	Unit  UnitID
	Kind  UnitKind
	Start uint32 // включительно
	End   uint32 // не включительно
	From  LineCol
	To    LineCol
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	if s.Kind == UnitStream {
		return fmt.Sprintf("%d:[%d..%d)", s.Unit, s.Start, s.End)
	}
	return fmt.Sprintf("%d:%d-%d", s.Unit, s.Start, s.End)
}

// SameUnit reports whether both spans live in the same unit.
func (s Span) SameUnit(other Span) bool {
	return s.Unit == other.Unit && s.Kind == other.Kind
}

// Cover is the lenient union: spans from another unit are ignored.
func (s Span) Cover(other Span) Span {
	if !s.SameUnit(other) {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
		s.From = other.From
	}
	if other.End > s.End {
		s.End = other.End
		s.To = other.To
	}
	return s
}

// StartPoint returns the empty span sitting at s.Start.
func (s Span) StartPoint() Span {
	s.End = s.Start
	s.To = s.From
	return s
}

// EndPoint returns the empty span sitting at s.End.
func (s Span) EndPoint() Span {
	s.Start = s.End
	s.From = s.To
	return s
}

// Merge returns the minimal span covering a and b.
func Merge(a, b Span) (Span, error) {
	if !a.SameUnit(b) {
		return Span{}, &SpanError{Op: "merge", A: a, B: b, Err: ErrCrossUnitSpan}
	}
	return a.Cover(b), nil
}

// Contains reports whether outer fully covers inner. Spans from different
// units never contain each other.
func Contains(outer, inner Span) bool {
	if !outer.SameUnit(inner) {
		return false
	}
	return outer.Start <= inner.Start && inner.End <= outer.End
}

// Compare orders spans by start, then by end.
func Compare(a, b Span) (int, error) {
	if !a.SameUnit(b) {
		return 0, &SpanError{Op: "compare", A: a, B: b, Err: ErrIncomparableSpan}
	}
	switch {
	case a.Start < b.Start:
		return -1, nil
	case a.Start > b.Start:
		return 1, nil
	case a.End < b.End:
		return -1, nil
	case a.End > b.End:
		return 1, nil
	}
	return 0, nil
}
