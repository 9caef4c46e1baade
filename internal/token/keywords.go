package token

// Keywords is the set of reserved words of one grammar.
// Ключевые слова регистрозависимые.
type Keywords map[string]struct{}

// NewKeywords builds a keyword set.
func NewKeywords(words ...string) Keywords {
	k := make(Keywords, len(words))
	for _, w := range words {
		k[w] = struct{}{}
	}
	return k
}

// Lookup reports whether ident is reserved. A nil set reserves nothing.
func (k Keywords) Lookup(ident string) bool {
	_, ok := k[ident]
	return ok
}
