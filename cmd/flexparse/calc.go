package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"flexparse/internal/cursor"
	"flexparse/internal/diag"
	"flexparse/internal/diagfmt"
	"flexparse/internal/driver"
	"flexparse/internal/grammar/calc"
	"flexparse/internal/input"
	"flexparse/internal/lexer"
	"flexparse/internal/parse"
	"flexparse/internal/source"
	"flexparse/internal/trace"
)

var calcCmd = &cobra.Command{
	Use:   "calc [flags] [expression...]",
	Short: "Evaluate calc statements",
	Long: `Calc parses and evaluates statements of the calc grammar, e.g.
"let x = 2 * 3; x + 1". Each statement prints its value.`,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringP("file", "f", "", "read statements from a file instead of arguments")
	calcCmd.Flags().Bool("token-spans", false, "report spans as token ranges with a token listing")
	calcCmd.Flags().String("format", "pretty", "diagnostic format (pretty|plain|json|sarif|short)")
}

func runCalc(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	file, err := cmd.Flags().GetString("file")
	if err != nil {
		return fmt.Errorf("failed to get file flag: %w", err)
	}
	tokenSpans, err := cmd.Flags().GetBool("token-spans")
	if err != nil {
		return fmt.Errorf("failed to get token-spans flag: %w", err)
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if file == "" && len(args) == 0 {
		return errors.New("nothing to evaluate: pass an expression or --file")
	}
	cfg := configFrom(cmd)

	us := source.NewUnitSet()
	var id source.UnitID
	if file != "" {
		if id, err = us.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	} else {
		id = us.AddText("<expr>", strings.Join(args, " "))
	}
	unit := us.Get(id)

	opts := driver.Options{
		MaxDiagnostics: cfg.Render.MaxDiagnostics,
		MaxDepth:       cfg.Parse.MaxDepth,
		SkipTrivia:     cfg.Parse.SkipTrivia,
	}
	span := trace.BeginFrom(cmd.Context(), trace.ScopeDriver, "calc")

	var (
		lines  []string
		bag    *diag.Bag
		tokens diagfmt.TokenListings
	)
	if tokenSpans {
		lines, bag, tokens = calcOverTokens(us, unit, opts)
	} else {
		res := driver.CheckUnit(trace.WithSpan(cmd.Context(), span), unit, calc.Grammar{}, opts)
		lines, bag = res.Lines, res.Bag
	}
	span.End("")

	for _, line := range lines {
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	if bag.Len() > 0 {
		target := renderTarget{out: os.Stderr, format: format, render: cfg.Render, tokens: tokens, args: os.Args[1:]}
		if err := renderDiagnostics(target, bag, us); err != nil {
			return err
		}
	}
	if bag.HasErrors() {
		return failReported(cmd)
	}
	return nil
}

// calcOverTokens parses unit as a token stream whose spans are token
// indexes, so diagnostics point into a token listing instead of the text.
func calcOverTokens(us *source.UnitSet, unit *source.Unit, opts driver.Options) ([]string, *diag.Bag, diagfmt.TokenListings) {
	bag := diag.NewBag(opts.MaxDiagnostics)
	toks := lexer.Tokenize(unit, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	id, listing := input.Reindex(us, unit.Name+"#tokens", toks)
	tokens := diagfmt.TokenListings{id: listing}

	stream, err := input.NewStream(id, listing, input.StreamOptions{SkipTrivia: opts.SkipTrivia})
	if err != nil {
		bag.Add(parse.FatalDiagnostic(err))
		return nil, bag, tokens
	}
	st := parse.NewState(cursor.New(stream))
	st.MaxDepth = opts.MaxDepth

	lines, diags, err := calc.Grammar{}.Check(st)
	for _, d := range diags {
		if !bag.Add(d) {
			break
		}
	}
	if err != nil {
		bag.Add(parse.FatalDiagnostic(err))
	}
	bag.Sort()
	return lines, bag, tokens
}
