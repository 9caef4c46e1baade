package main

import (
	"fmt"
	"io"
	"os"

	"flexparse/internal/config"
	"flexparse/internal/diag"
	"flexparse/internal/diagfmt"
	"flexparse/internal/source"
	"flexparse/internal/version"
)

// renderTarget is where and how diagnostics go.
type renderTarget struct {
	out    *os.File
	format string
	render config.RenderConfig
	tokens diagfmt.TokenListings
	args   []string
}

// renderDiagnostics writes bag in the configured format, keeping at most
// MaxDiagnostics entries.
func renderDiagnostics(t renderTarget, bag *diag.Bag, us *source.UnitSet) error {
	pathMode, err := diagfmt.ParsePathMode(t.render.PathMode)
	if err != nil {
		return err
	}
	rep := diagfmt.BuildBag(bag, us, diagfmt.BuildOpts{PathMode: pathMode, Max: t.render.MaxDiagnostics})

	var w io.Writer = t.out
	switch t.format {
	case "pretty", "":
		opts := diagfmt.PrettyOpts{
			Color:     useColor(t.render.Color, t.out),
			Context:   int8(t.render.Context), //nolint:gosec // validated in config
			PathMode:  pathMode,
			Width:     uint8(t.render.Width), //nolint:gosec // validated in config
			ShowNotes: t.render.ShowNotes,
			Tokens:    t.tokens,
		}
		return diagfmt.NewPrettyRenderer(us, opts).Render(w, rep)
	case "plain":
		return diagfmt.Emit(w, rep, diagfmt.Plain{})
	case "json":
		return diagfmt.JSONRenderer{Opts: diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     t.render.ShowNotes,
		}}.Render(w, rep)
	case "sarif":
		return diagfmt.SarifRenderer{Meta: diagfmt.SarifRunMeta{
			ToolName:       "flexparse",
			ToolVersion:    version.Version,
			InvocationArgs: t.args,
		}}.Render(w, rep)
	case "short":
		items := bag.Items()
		if limit := t.render.MaxDiagnostics; limit > 0 && len(items) > limit {
			items = items[:limit]
		}
		if out := diag.FormatShortDiagnostics(items, us, t.render.ShowNotes); out != "" {
			fmt.Fprintln(w, out)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", t.format)
	}
}
