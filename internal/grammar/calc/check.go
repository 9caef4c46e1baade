package calc

import (
	"errors"

	"flexparse/internal/diag"
	"flexparse/internal/parse"
)

// Grammar exposes calc to the driver.
type Grammar struct{}

func (Grammar) Name() string         { return "calc" }
func (Grammar) Extensions() []string { return []string{".calc"} }
func (Grammar) Tokenized() bool      { return true }

// Check parses and evaluates one unit. Each evaluated statement yields a
// line: "name = value" for lets, the value otherwise. The error is set only
// for fatal grammar or span errors.
func (Grammar) Check(st *parse.State) ([]string, []diag.Diagnostic, error) {
	prog, _, err := parse.Run(Parser(), st)
	if err != nil {
		var se *parse.SyntaxError
		if errors.As(err, &se) {
			return nil, se.Diags, nil
		}
		return nil, nil, err
	}
	outs, diags := Eval(prog)
	lines := make([]string, 0, len(outs))
	for _, o := range outs {
		if !o.OK {
			continue
		}
		if o.Stmt.IsLet() {
			lines = append(lines, o.Stmt.Name+" = "+o.Value.String())
			continue
		}
		lines = append(lines, o.Value.String())
	}
	return lines, diags, nil
}
