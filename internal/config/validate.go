package config

import (
	"fmt"
	"slices"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the field (e.g., "render.format").
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every FieldError found in a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return "configuration validation failed: " + e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:", len(e.Errors))
	for _, err := range e.Errors {
		sb.WriteString("\n  - ")
		sb.WriteString(err.Error())
	}
	return sb.String()
}

var (
	formats   = []string{"pretty", "plain", "json", "sarif", "short"}
	colors    = []string{"auto", "on", "off"}
	pathModes = []string{"auto", "absolute", "relative", "basename"}
	levels    = []string{"off", "error", "phase", "detail", "debug"}
	modes     = []string{"stream", "ring", "both"}
)

// Validate checks every section and reports all problems at once.
func Validate(cfg *Config) error {
	var errs []FieldError
	oneOf := func(field, val string, allowed []string) {
		if !slices.Contains(allowed, val) {
			errs = append(errs, FieldError{field, fmt.Sprintf("invalid value %q (expected: %s)", val, strings.Join(allowed, "|"))})
		}
	}
	nonNegative := func(field string, v int) {
		if v < 0 {
			errs = append(errs, FieldError{field, fmt.Sprintf("must be >= 0, got %d", v)})
		}
	}

	oneOf("render.format", cfg.Render.Format, formats)
	oneOf("render.color", cfg.Render.Color, colors)
	oneOf("render.path_mode", cfg.Render.PathMode, pathModes)
	nonNegative("render.context", cfg.Render.Context)
	if cfg.Render.Context > 127 {
		errs = append(errs, FieldError{"render.context", "must be <= 127"})
	}
	nonNegative("render.max_diagnostics", cfg.Render.MaxDiagnostics)
	nonNegative("render.width", cfg.Render.Width)
	if cfg.Render.Width > 255 {
		errs = append(errs, FieldError{"render.width", "must be <= 255"})
	}

	nonNegative("parse.max_depth", cfg.Parse.MaxDepth)
	nonNegative("parse.jobs", cfg.Parse.Jobs)

	oneOf("trace.level", cfg.Trace.Level, levels)
	oneOf("trace.mode", cfg.Trace.Mode, modes)
	nonNegative("trace.ring_size", cfg.Trace.RingSize)

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
