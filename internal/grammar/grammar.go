// Package grammar lists the grammars the driver can run.
package grammar

import (
	"path/filepath"
	"slices"
	"strings"

	"flexparse/internal/diag"
	"flexparse/internal/grammar/calc"
	"flexparse/internal/grammar/kv"
	"flexparse/internal/parse"
)

// Grammar checks one input unit.
type Grammar interface {
	Name() string
	// Extensions lists file suffixes the grammar claims, dot included.
	Extensions() []string
	// Tokenized grammars read the lexer's token stream; others read text.
	Tokenized() bool
	// Check parses the unit under st. lines are printable results,
	// diags the surviving diagnostics; err is set for fatal errors only.
	Check(st *parse.State) (lines []string, diags []diag.Diagnostic, err error)
}

var all = []Grammar{calc.Grammar{}, kv.Grammar{}}

// Names returns the registered grammar names.
func Names() []string {
	out := make([]string, 0, len(all))
	for _, g := range all {
		out = append(out, g.Name())
	}
	return out
}

// Lookup finds a grammar by name.
func Lookup(name string) (Grammar, bool) {
	for _, g := range all {
		if g.Name() == name {
			return g, true
		}
	}
	return nil, false
}

// ForPath picks the grammar claiming the file extension of path.
func ForPath(path string) (Grammar, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return nil, false
	}
	for _, g := range all {
		if slices.Contains(g.Extensions(), ext) {
			return g, true
		}
	}
	return nil, false
}

// Extensions returns every extension claimed by a registered grammar.
func Extensions() []string {
	var out []string
	for _, g := range all {
		out = append(out, g.Extensions()...)
	}
	return out
}
