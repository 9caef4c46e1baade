package driver

import (
	"flexparse/internal/diag"
	"flexparse/internal/lexer"
	"flexparse/internal/source"
	"flexparse/internal/token"
)

type TokenizeResult struct {
	Units  *source.UnitSet
	Unit   *source.Unit
	Tokens []token.Token
	Bag    *diag.Bag
}

// Tokenize loads path and lexes it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	us := source.NewUnitSet()
	id, err := us.Load(path)
	if err != nil {
		return nil, err
	}
	return tokenizeUnit(us, id, maxDiagnostics), nil
}

// TokenizeText lexes an in-memory unit, e.g. an expression given on the
// command line.
func TokenizeText(name, text string, maxDiagnostics int) *TokenizeResult {
	us := source.NewUnitSet()
	return tokenizeUnit(us, us.AddText(name, text), maxDiagnostics)
}

func tokenizeUnit(us *source.UnitSet, id source.UnitID, maxDiagnostics int) *TokenizeResult {
	unit := us.Get(id)
	bag := diag.NewBag(maxDiagnostics)
	return &TokenizeResult{
		Units:  us,
		Unit:   unit,
		Tokens: lex(unit, bag),
		Bag:    bag,
	}
}

func lex(unit *source.Unit, bag *diag.Bag) []token.Token {
	return lexer.Tokenize(unit, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
}
