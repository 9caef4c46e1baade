package lexer

import (
	"unicode"
	"unicode/utf8"
)

const utf8RuneSelf = utf8.RuneSelf

// peekRune декодирует руну под курсором; size=0 на EOF.
func (lx *Lexer) peekRune() (rune, int) {
	return lx.peekRuneAt(0)
}

// peekRuneAt декодирует руну через skip байт от курсора.
func (lx *Lexer) peekRuneAt(skip int) (rune, int) {
	rest := lx.cursor.Rest()
	if skip >= len(rest) {
		return utf8.RuneError, 0
	}
	if b := rest[skip]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(rest[skip:])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	lx.cursor.Advance(sz)
}

// ".5" читается как число, "x.y" - нет: решает вызывающий по контексту.
func (lx *Lexer) isNumberAfterDot() bool {
	b0, b1, ok := lx.cursor.Peek2()
	return ok && b0 == '.' && isDec(b1)
}

func isIdentStartByte(b byte) bool {
	return b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z'
}

func isIdentContinueByte(b byte) bool { return isIdentStartByte(b) || isDec(b) }

func isIdentStartRune(r rune) bool { return r == '_' || unicode.IsLetter(r) }

// combining marks допускаются внутри идентификатора, но не в начале
func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func isDec(b byte) bool { return '0' <= b && b <= '9' }

func isHex(b byte) bool {
	switch {
	case isDec(b):
		return true
	case 'a' <= b && b <= 'f', 'A' <= b && b <= 'F':
		return true
	}
	return false
}
