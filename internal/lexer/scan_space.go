package lexer

import "flexparse/internal/token"

// scanSpace склеивает подряд идущие ' ' и '\t' в один Space.
func (lx *Lexer) scanSpace() token.Token {
	start := lx.cursor.Mark()
	for lx.cursor.Eat(' ') || lx.cursor.Eat('\t') {
	}
	return lx.token(token.Space, start)
}

// scanNewline: "\n" и "\r\n" дают Newline, одинокий '\r' - просто Space.
func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.Eat('\r') && !lx.cursor.Eat('\n') {
		return lx.token(token.Space, start)
	}
	lx.cursor.Eat('\n')
	return lx.token(token.Newline, start)
}
