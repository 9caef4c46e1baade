package lexer

import (
	"errors"
	"strconv"
	"strings"

	"flexparse/internal/diag"
	"flexparse/internal/source"
	"flexparse/internal/token"
)

// Поддержка: 0, 123, 0b..., 0o..., 0x..., 1.0, 1e-3, 1.0e+10, .5, 1_000.
// Неверные формы - репорт в opts.Reporter, токен Invalid.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	// ведущая точка - значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		kind = token.FloatLit
		lx.eatDigits(isDec)
		return lx.scanExponent(start, kind)
	}

	// ведущий 0 и база?
	if lx.cursor.Peek() == '0' {
		lx.cursor.Bump()
		switch lx.cursor.Peek() {
		case 'b', 'B':
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b == '0' || b == '1' })
			return lx.emitNumber(start, kind)
		case 'o', 'O':
			lx.cursor.Bump()
			lx.eatDigits(func(b byte) bool { return b >= '0' && b <= '7' })
			return lx.emitNumber(start, kind)
		case 'x', 'X':
			lx.cursor.Bump()
			lx.eatDigits(isHex)
			return lx.emitNumber(start, kind)
		}
	}

	// десятичная целая часть
	lx.eatDigits(isDec)

	// дробная часть: "1.5" и "1." - float, "1.." и "1.x" - нет
	if lx.cursor.Peek() == '.' {
		_, b1, ok := lx.cursor.Peek2()
		if !ok || (b1 != '.' && !isIdentStartByte(b1)) {
			lx.cursor.Bump() // '.'
			kind = token.FloatLit
			lx.eatDigits(isDec)
		}
	}

	return lx.scanExponent(start, kind)
}

func (lx *Lexer) eatDigits(ok func(byte) bool) {
	for {
		b := lx.cursor.Peek()
		if !ok(b) && b != '_' {
			return
		}
		lx.cursor.Bump()
	}
}

func (lx *Lexer) scanExponent(start Mark, kind token.Kind) token.Token {
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		kind = token.FloatLit
		lx.cursor.Bump() // e/E
		if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
			lx.cursor.Bump()
		}
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexBadNumber, sp, "expected digit after exponent")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.eatDigits(isDec)
	}
	return lx.emitNumber(start, kind)
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	tok := token.Token{Kind: kind, Span: sp, Text: text}
	if kind == token.IntLit {
		v, err := parseInt(text)
		if err != nil {
			return lx.badNumber(sp, text, err)
		}
		tok.Value.Int = v
		return tok
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	if err != nil {
		return lx.badNumber(sp, text, err)
	}
	tok.Value.Float = v
	return tok
}

func (lx *Lexer) badNumber(sp source.Span, text string, err error) token.Token {
	msg := "malformed number literal"
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
		msg = "number literal out of range"
	}
	lx.errLex(diag.LexBadNumber, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

func parseInt(text string) (int64, error) {
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'b', 'B', 'o', 'O', 'x', 'X':
			return strconv.ParseInt(text, 0, 64)
		}
	}
	return strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 10, 64)
}
