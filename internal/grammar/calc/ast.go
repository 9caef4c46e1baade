package calc

import "flexparse/internal/source"

// Expr is an expression node.
type Expr interface {
	Span() source.Span
}

// Number is a literal.
type Number struct {
	Value Value
	Sp    source.Span
}

// Name refers to a let binding.
type Name struct {
	Ident string
	Sp    source.Span
}

// Unary is a negation.
type Unary struct {
	Op string
	X  Expr
	Sp source.Span
}

// Paren keeps the parentheses in the span.
type Paren struct {
	X  Expr
	Sp source.Span
}

// Binary is X Op Y.
type Binary struct {
	Op     string
	OpSpan source.Span
	X, Y   Expr
}

func (n *Number) Span() source.Span { return n.Sp }
func (n *Name) Span() source.Span   { return n.Sp }
func (u *Unary) Span() source.Span  { return u.Sp }
func (p *Paren) Span() source.Span  { return p.Sp }
func (b *Binary) Span() source.Span { return b.X.Span().Cover(b.Y.Span()) }

// Stmt is either `let Name = X` (Name set) or a bare expression.
type Stmt struct {
	Name     string
	NameSpan source.Span
	X        Expr
	Sp       source.Span
}

// IsLet reports whether the statement binds a name.
func (s *Stmt) IsLet() bool { return s.Name != "" }

// Program is a parsed calc unit.
type Program struct {
	Stmts []*Stmt
	Sp    source.Span
}
