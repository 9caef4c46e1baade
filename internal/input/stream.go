package input

import (
	"fmt"

	"flexparse/internal/source"
	"flexparse/internal/token"

	"fortio.org/safecast"
)

// StreamOptions configures NewStream.
type StreamOptions struct {
	// SkipTrivia drops Space and Newline tokens.
	SkipTrivia bool
}

// Stream yields one atom per pre-spanned token. Token spans are kept as
// given; nothing is re-tokenized.
type Stream struct {
	unit source.UnitID
	toks []token.Token
	end  source.Span
	idx  uint32
}

// NewStream wraps toks, which must all belong to unit. A trailing EOF token,
// if present, only supplies the end-of-input span.
func NewStream(unit source.UnitID, toks []token.Token, opts StreamOptions) (*Stream, error) {
	kept := make([]token.Token, 0, len(toks))
	var end source.Span
	haveEnd := false
	for i := range toks {
		tok := toks[i]
		if tok.Span.Unit != unit {
			return nil, &source.SpanError{
				Op:  "stream",
				A:   source.Span{Unit: unit, Kind: tok.Span.Kind},
				B:   tok.Span,
				Err: source.ErrCrossUnitSpan,
			}
		}
		if len(kept) > 0 && kept[0].Span.Kind != tok.Span.Kind {
			return nil, &source.SpanError{Op: "stream", A: kept[0].Span, B: tok.Span, Err: source.ErrCrossUnitSpan}
		}
		if tok.Kind == token.EOF {
			end, haveEnd = tok.Span.StartPoint(), true
			break
		}
		if opts.SkipTrivia && tok.IsTrivia() {
			continue
		}
		kept = append(kept, tok)
	}
	if _, err := safecast.Conv[uint32](len(kept)); err != nil {
		return nil, fmt.Errorf("token stream too long: %w", err)
	}
	if !haveEnd {
		end = source.Span{Unit: unit}
		if n := len(toks); n > 0 {
			end = toks[n-1].Span.EndPoint()
		}
	}
	return &Stream{unit: unit, toks: kept, end: end}, nil
}

func (s *Stream) Unit() source.UnitID { return s.unit }

func (s *Stream) Peek() (Atom, bool) {
	if int(s.idx) >= len(s.toks) {
		return Atom{}, false
	}
	tok := s.toks[s.idx]
	return Atom{Text: tok.Text, Span: tok.Span, Token: tok}, true
}

func (s *Stream) Advance() {
	if int(s.idx) < len(s.toks) {
		s.idx++
	}
}

func (s *Stream) Checkpoint() Mark { return Mark{idx: s.idx} }

func (s *Stream) Restore(m Mark) { s.idx = m.idx }

func (s *Stream) End() source.Span { return s.end }

// Reindex registers a stream unit named name in us and returns copies of toks
// whose spans are token-index ranges in that unit. Trailing EOF becomes the
// empty span after the last token.
func Reindex(us *source.UnitSet, name string, toks []token.Token) (source.UnitID, []token.Token) {
	n := len(toks)
	if n > 0 && toks[n-1].Kind == token.EOF {
		n--
	}
	id := us.AddStream(name, n)
	out := make([]token.Token, len(toks))
	for i, tok := range toks {
		idx, err := safecast.Conv[uint32](i)
		if err != nil {
			panic(fmt.Errorf("token index overflow: %w", err))
		}
		end := idx + 1
		if tok.Kind == token.EOF {
			end = idx
		}
		tok.Span = source.Span{Unit: id, Kind: source.UnitStream, Start: idx, End: end}
		out[i] = tok
	}
	return id, out
}
