package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// Punct represents a single punctuation character.
	Punct

	// IntLit represents the integer literal token.
	IntLit
	// FloatLit represents the float literal token.
	FloatLit
	// StringLit represents the string literal token.
	StringLit
	// CharLit represents the character literal token.
	CharLit

	// Space is a run of spaces and tabs.
	Space
	// Newline is a single line break.
	Newline
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "Invalid"
	case EOF:
		return "EOF"
	case Ident:
		return "Ident"
	case Punct:
		return "Punct"
	case IntLit:
		return "IntLit"
	case FloatLit:
		return "FloatLit"
	case StringLit:
		return "StringLit"
	case CharLit:
		return "CharLit"
	case Space:
		return "Space"
	case Newline:
		return "Newline"
	}
	return "Unknown"
}

// Spacing tells whether a punctuation character is immediately followed by
// another punctuation character.
type Spacing uint8

const (
	Alone Spacing = iota
	Joint
)

func (s Spacing) String() string {
	if s == Joint {
		return "Joint"
	}
	return "Alone"
}

// IsPunctChar reports whether ch lexes as a Punct token.
func IsPunctChar(ch rune) bool {
	switch ch {
	case '!', ':', '=', ';', '<', '>', '+', '-', '*', '/', '%', '.', ',',
		'(', ')', '[', ']', '{', '}', '@', '^', '`', '|', '&', '~', '¬',
		'\\', '?', '#', '£', '$', '_':
		return true
	}
	return false
}
