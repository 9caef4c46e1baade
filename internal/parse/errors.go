package parse

import (
	"errors"
	"fmt"
	"strings"

	"flexparse/internal/diag"
	"flexparse/internal/source"
)

var (
	// ErrZeroWidthRepetition is returned when a repeated node succeeds without
	// consuming anything.
	ErrZeroWidthRepetition = errors.New("zero-width repetition")
	// ErrRecursionLimitExceeded is returned when rule nesting exceeds State.MaxDepth.
	ErrRecursionLimitExceeded = errors.New("recursion limit exceeded")
	// ErrRepeatBounds is returned by Repeat when min exceeds a bounded max.
	ErrRepeatBounds = errors.New("repeat minimum exceeds maximum")
)

// GrammarError reports a malformed grammar detected while running it.
type GrammarError struct {
	Rule string
	Span source.Span
	Err  error
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return fmt.Sprintf("grammar error at %s: %v", e.Span, e.Err)
	}
	return fmt.Sprintf("grammar error in %s at %s: %v", e.Rule, e.Span, e.Err)
}

func (e *GrammarError) Unwrap() error { return e.Err }

// SyntaxError is returned by Run when the input does not match. Diags are
// sorted by primary span.
type SyntaxError struct {
	Diags []diag.Diagnostic
}

func (e *SyntaxError) Error() string {
	if len(e.Diags) == 0 {
		return "syntax error"
	}
	var sb strings.Builder
	sb.WriteString(e.Diags[0].Message)
	if n := len(e.Diags) - 1; n > 0 {
		fmt.Fprintf(&sb, " (and %d more)", n)
	}
	return sb.String()
}

// ValidationError lets Validate and TryMap callbacks pick the diagnostic code.
type ValidationError struct {
	Code diag.Code
	Msg  string
}

func (e *ValidationError) Error() string { return e.Msg }

// Invalid builds a ValidationError.
func Invalid(code diag.Code, format string, args ...any) error {
	return &ValidationError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// FatalDiagnostic converts a fatal error into a diagnostic so it can be
// rendered next to ordinary ones.
func FatalDiagnostic(err error) diag.Diagnostic {
	var ge *GrammarError
	var se *source.SpanError
	switch {
	case errors.As(err, &ge):
		code := diag.GrmInfo
		switch {
		case errors.Is(ge.Err, ErrZeroWidthRepetition):
			code = diag.GrmZeroWidth
		case errors.Is(ge.Err, ErrRecursionLimitExceeded):
			code = diag.GrmRecursionLimit
		}
		return diag.NewError(code, ge.Span, ge.Error())
	case errors.As(err, &se):
		return diag.NewError(diag.GrmCrossUnitSpan, se.A, se.Error())
	}
	return diag.NewError(diag.GrmInfo, source.Span{}, err.Error())
}
