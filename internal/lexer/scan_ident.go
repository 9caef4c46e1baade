package lexer

import (
	"flexparse/internal/token"

	"golang.org/x/text/unicode/norm"
)

// eatIdentRune съедает одну руну идентификатора, если она подходит.
// first выбирает правило начала имени.
func (lx *Lexer) eatIdentRune(first bool) bool {
	r, sz := lx.peekRune()
	if sz == 0 {
		return false
	}
	var ok bool
	switch {
	case r < utf8RuneSelf && first:
		ok = isIdentStartByte(byte(r))
	case r < utf8RuneSelf:
		ok = isIdentContinueByte(byte(r))
	case first:
		ok = isIdentStartRune(r)
	default:
		ok = isIdentContinueRune(r)
	}
	if ok {
		lx.cursor.Advance(sz)
	}
	return ok
}

// scanIdent сканирует идентификатор; не-буква в начале уходит в scanPunct
// (так '£' становится пунктуацией). Text - исходный срез, Value.Str -
// NFC-форма, по которой сравнивают имена.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	if !lx.eatIdentRune(true) {
		return lx.scanPunct()
	}
	for lx.eatIdentRune(false) {
	}
	tok := lx.token(token.Ident, start)
	tok.Value.Str = norm.NFC.String(tok.Text)
	return tok
}
