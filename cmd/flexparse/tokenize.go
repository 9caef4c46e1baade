package main

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"flexparse/internal/diagfmt"
	"flexparse/internal/driver"
	"flexparse/internal/source"
	"flexparse/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Lex a file into a token stream",
	Long: `Tokenize lexes a file into the token stream token-level grammars consume.
Lexer diagnostics go to stderr; the listing goes to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokenize,
}

// tokenWriters maps --format values to listing writers.
var tokenWriters = map[string]func(io.Writer, []token.Token, *source.UnitSet) error{
	"pretty": diagfmt.FormatTokensPretty,
	"json": func(w io.Writer, toks []token.Token, _ *source.UnitSet) error {
		return diagfmt.FormatTokensJSON(w, toks)
	},
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("trivia", true, "list Space and Newline tokens")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	format, _ := cmd.Flags().GetString("format")
	write, ok := tokenWriters[format]
	if !ok {
		return fmt.Errorf("unknown format %q (expected pretty|json)", format)
	}
	trivia, _ := cmd.Flags().GetBool("trivia")
	cfg := configFrom(cmd)

	result, err := driver.Tokenize(args[0], cfg.Render.MaxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}
	if result.Bag.Len() > 0 {
		target := renderTarget{out: os.Stderr, format: "pretty", render: cfg.Render}
		if err := renderDiagnostics(target, result.Bag, result.Units); err != nil {
			return err
		}
	}

	toks := result.Tokens
	if !trivia {
		toks = slices.DeleteFunc(slices.Clone(toks), token.Token.IsTrivia)
	}
	if err := write(cmd.OutOrStdout(), toks, result.Units); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return failReported(cmd)
	}
	return nil
}
