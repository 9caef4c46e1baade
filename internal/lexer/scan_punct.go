package lexer

import (
	"fmt"

	"flexparse/internal/diag"
	"flexparse/internal/token"
)

// scanPunct выдаёт ровно один символ пунктуации. Составные операторы
// ("<=", "::=") собирает парсер по признаку Joint.
func (lx *Lexer) scanPunct() token.Token {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)

	if !token.IsPunctChar(r) {
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", r))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}

	spacing := token.Alone
	if lx.nextIsPunct() {
		spacing = token.Joint
	}
	return token.Token{Kind: token.Punct, Span: sp, Text: lx.text(sp), Spacing: spacing}
}

// nextIsPunct reports whether the token starting at the cursor will be a Punct.
func (lx *Lexer) nextIsPunct() bool {
	r, sz := lx.peekRune()
	if sz == 0 || !token.IsPunctChar(r) {
		return false
	}
	if r == '_' {
		next, nsz := lx.peekRuneAt(sz)
		return nsz == 0 || !isIdentContinueRune(next)
	}
	if r == '.' {
		next, nsz := lx.peekRuneAt(sz)
		return nsz == 0 || next < '0' || next > '9'
	}
	return true
}
