package lexer

import (
	"fmt"

	"flexparse/internal/diag"
	"flexparse/internal/source"
	"flexparse/internal/token"
)

// Lexer режет текстовый юнит на токены, сохраняя пробелы и переводы строк:
// выкидывать их или нет, решает поток токенов.
type Lexer struct {
	unit   *source.Unit
	cursor Cursor
	opts   Options
	look   *token.Token
}

func New(unit *source.Unit, opts Options) *Lexer {
	return &Lexer{unit: unit, cursor: NewCursor(unit), opts: opts}
}

// Tokenize lexes the whole unit. The result always ends with an EOF token.
func Tokenize(unit *source.Unit, opts Options) []token.Token {
	lx := New(unit, opts)
	out := make([]token.Token, 0, len(unit.Content)/3+1)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next returns the next token; once the unit is exhausted it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.cursor.EOF() {
		return lx.token(token.EOF, lx.cursor.Mark())
	}
	tok := lx.scan()
	if tok.Span.Len() > maxTokenLength {
		lx.errLex(diag.LexTokenTooLong, tok.Span, fmt.Sprintf("token is longer than %d bytes", maxTokenLength))
		// остаток юнита не лексим
		lx.cursor.SkipToEnd()
		return token.Token{Kind: token.Invalid, Span: tok.Span}
	}
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// scan выбирает сканер по первому байту.
func (lx *Lexer) scan() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case ch == ' ' || ch == '\t':
		return lx.scanSpace()
	case ch == '\n' || ch == '\r':
		return lx.scanNewline()
	case ch == '_':
		// "_x" - имя, одиночный "_" - пунктуация
		if _, next, ok := lx.cursor.Peek2(); ok && isIdentContinueByte(next) {
			return lx.scanIdent()
		}
		return lx.scanPunct()
	case isIdentStartByte(ch), ch >= utf8RuneSelf:
		return lx.scanIdent()
	case isDec(ch), lx.isNumberAfterDot():
		return lx.scanNumber()
	case ch == '"':
		return lx.scanString()
	case ch == '\'':
		return lx.scanChar()
	}
	return lx.scanPunct()
}

// token builds a token of kind covering start..cursor.
func (lx *Lexer) token(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.unit.Content[sp.Start:sp.End])
}
