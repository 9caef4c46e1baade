package token

import (
	"fmt"

	"flexparse/internal/source"
)

// Value is the decoded payload of a literal token.
type Value struct {
	Int   int64
	Float float64
	Str   string
	Char  rune
}

// Token represents a single pre-spanned token.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Spacing Spacing // Punct only
	Value   Value   // literals only
}

// IsLiteral reports whether the token is a numeric, string or char literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CharLit:
		return true
	default:
		return false
	}
}

// IsTrivia reports whether the token only carries layout.
func (t Token) IsTrivia() bool { return t.Kind == Space || t.Kind == Newline }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// IsPunct reports whether the token is the punctuation character ch.
func (t Token) IsPunct(ch rune) bool {
	return t.Kind == Punct && t.Text == string(ch)
}

// IsKeyword reports whether the token is the identifier word.
func (t Token) IsKeyword(word string) bool {
	return t.Kind == Ident && t.Text == word
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Punct:
		return fmt.Sprintf("`%s`", t.Text)
	case Space:
		return "whitespace"
	case Newline:
		return "newline"
	case Ident:
		return fmt.Sprintf("identifier `%s`", t.Text)
	}
	return fmt.Sprintf("%s `%s`", t.Kind, t.Text)
}
