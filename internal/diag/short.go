package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"flexparse/internal/source"
)

type shortDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Unit     source.UnitID
	Start    uint32
	Location string
	Message  string
}

// FormatShortDiagnostics renders diagnostics into a stable, single-line-per-entry
// representation intended for CLI short output and test expectations.
// Entries keep source order; notes follow their diagnostic when includeNotes is set.
func FormatShortDiagnostics(diags []Diagnostic, us *source.UnitSet, includeNotes bool) string {
	if us == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]shortDiagnostic, 0, len(diags))
	for i := range diags {
		rendered = appendDiagnostic(rendered, &diags[i], us, includeNotes)
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Unit != dj.Unit {
			return di.Unit < dj.Unit
		}
		return di.Start < dj.Start
	})

	var b strings.Builder
	for i, d := range rendered {
		fmt.Fprintf(&b, "%s %s %s %s", d.Severity, d.Code, d.Location, d.Message)
		if i < len(rendered)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func appendDiagnostic(out []shortDiagnostic, d *Diagnostic, us *source.UnitSet, includeNotes bool) []shortDiagnostic {
	out = append(out, resolveEntry(us, d.Primary, SeverityLabel(d.Severity), d.Code.ID(), d.Message))
	if includeNotes {
		for _, note := range d.Notes {
			out = append(out, resolveEntry(us, note.Span, "note", d.Code.ID(), note.Msg))
		}
	}
	return out
}

func resolveEntry(us *source.UnitSet, span source.Span, sev, code, msg string) shortDiagnostic {
	entry := shortDiagnostic{
		Severity: sev,
		Code:     code,
		Unit:     span.Unit,
		Start:    span.Start,
		Message:  sanitizeMessage(msg),
	}
	u := us.Get(span.Unit)
	if u == nil {
		entry.Location = span.String()
		return entry
	}
	entry.Path = normalizePath(u.FormatPath("relative", us.BaseDir()))
	if span.Kind == source.UnitStream {
		entry.Location = fmt.Sprintf("%s:[%d..%d)", entry.Path, span.Start, span.End)
		return entry
	}
	start, _ := us.Resolve(span)
	entry.Line, entry.Column = start.Line, start.Col
	entry.Location = fmt.Sprintf("%s:%d:%d", entry.Path, start.Line, start.Col)
	return entry
}

func normalizePath(path string) string {
	p := filepath.ToSlash(path)
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return p
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
