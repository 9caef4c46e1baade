package kv

import (
	"errors"
	"fmt"
	"strings"

	"flexparse/internal/diag"
	"flexparse/internal/parse"
)

// Port bounds for keys named "port" or ending in ".port".
const (
	MinPort = 1
	MaxPort = 65535
)

// Grammar exposes kv to the driver.
type Grammar struct{}

func (Grammar) Name() string         { return "kv" }
func (Grammar) Extensions() []string { return []string{".kv", ".conf"} }
func (Grammar) Tokenized() bool      { return false }

// Check parses a unit and validates its entries. Every entry that parsed is
// echoed back as "key = value".
func (Grammar) Check(st *parse.State) ([]string, []diag.Diagnostic, error) {
	doc, _, err := parse.Run(Parser(), st)
	if err != nil {
		var se *parse.SyntaxError
		if errors.As(err, &se) {
			return nil, se.Diags, nil
		}
		return nil, nil, err
	}
	lines := make([]string, 0, len(doc.Entries))
	for _, e := range doc.Entries {
		lines = append(lines, e.Key+" = "+e.Value.String())
	}
	return lines, Validate(doc), nil
}

// Validate reports duplicate keys and bad port numbers.
func Validate(doc *Document) []diag.Diagnostic {
	var diags []diag.Diagnostic
	seen := make(map[string]Entry, len(doc.Entries))
	for _, e := range doc.Entries {
		if first, dup := seen[e.Key]; dup {
			d := diag.New(diag.SevWarning, diag.SemDuplicateKey, e.KeySpan,
				fmt.Sprintf("duplicate key `%s`; this value wins", e.Key)).
				WithNote(first.KeySpan, "first defined here")
			diags = append(diags, d)
		} else {
			seen[e.Key] = e
		}

		if !isPortKey(e.Key) {
			continue
		}
		if e.Value.Kind != IntValue {
			diags = append(diags, diag.NewError(diag.SemValidation, e.ValueSpan,
				fmt.Sprintf("`%s` must be an integer, found %s", e.Key, e.Value.Kind)))
			continue
		}
		if e.Value.Int < MinPort || e.Value.Int > MaxPort {
			diags = append(diags, diag.NewError(diag.SemOutOfRange, e.ValueSpan,
				fmt.Sprintf("port %d out of range %d..%d", e.Value.Int, MinPort, MaxPort)))
		}
	}
	return diags
}

func isPortKey(key string) bool {
	return key == "port" || strings.HasSuffix(key, ".port")
}
