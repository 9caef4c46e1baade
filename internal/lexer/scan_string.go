package lexer

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"flexparse/internal/diag"
	"flexparse/internal/token"
)

// scanString сканирует "..." с escape \n \t \r \0 \\ \" \' \u{...}.
// Перевод строки внутри литерала считается незакрытой строкой.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	var val strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: lx.text(sp), Value: token.Value{Str: val.String()}}
		}
		if b == '\n' {
			break
		}
		if b == '\\' {
			r, ok := lx.scanEscape()
			if ok {
				val.WriteRune(r)
			}
			continue
		}
		r, _ := lx.peekRune()
		lx.bumpRune()
		val.WriteRune(r)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedString, sp, "unterminated string literal").
		WithNote(sp.EndPoint(), "closing quote expected here").
		Emit()
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanChar сканирует 'x'. Пустой литерал и литерал длиннее одной руны - ошибки.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''
	var runes []rune
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\'' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			switch len(runes) {
			case 0:
				lx.errLex(diag.LexEmptyChar, sp, "empty character literal")
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			case 1:
				return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp), Value: token.Value{Char: runes[0]}}
			default:
				lx.errLex(diag.LexCharTooLong, sp,
					fmt.Sprintf("character literal holds %d characters, expected 1", len(runes)))
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
		}
		if b == '\n' {
			break
		}
		if b == '\\' {
			if r, ok := lx.scanEscape(); ok {
				runes = append(runes, r)
			}
			continue
		}
		r, _ := lx.peekRune()
		lx.bumpRune()
		runes = append(runes, r)
	}
	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnterminatedChar, sp, "unterminated character literal").
		WithNote(sp.EndPoint(), "closing quote expected here").
		Emit()
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanEscape consumes one escape sequence starting at '\'.
func (lx *Lexer) scanEscape() (rune, bool) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	if lx.cursor.EOF() {
		return 0, false
	}
	b := lx.cursor.Peek()
	switch b {
	case 'n':
		lx.cursor.Bump()
		return '\n', true
	case 't':
		lx.cursor.Bump()
		return '\t', true
	case 'r':
		lx.cursor.Bump()
		return '\r', true
	case '0':
		lx.cursor.Bump()
		return 0, true
	case '\\', '"', '\'':
		lx.cursor.Bump()
		return rune(b), true
	case 'u':
		lx.cursor.Bump()
		if !lx.cursor.Eat('{') {
			break
		}
		digits := lx.cursor.Mark()
		for isHex(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		hex := string(lx.cursor.Since(digits))
		if !lx.cursor.Eat('}') || hex == "" {
			break
		}
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || !utf8.ValidRune(rune(v)) {
			break
		}
		return rune(v), true
	case '\n':
		// перевод строки обрабатывает вызывающий как незакрытый литерал
		return 0, false
	default:
		lx.bumpRune()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadEscape, sp, fmt.Sprintf("unknown escape sequence %q", lx.text(sp)))
	return 0, false
}
