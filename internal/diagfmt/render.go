package diagfmt

import (
	"fmt"
	"io"

	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// Renderer turns a Report into human-facing output.
type Renderer interface {
	Render(w io.Writer, rep Report) error
}

// Emit renders rep with r, or with Plain when r is nil.
func Emit(w io.Writer, rep Report, r Renderer) error {
	if r == nil {
		r = Plain{}
	}
	return r.Render(w, rep)
}

// Plain is the unstyled renderer. It carries the same information as the
// pretty one: severity, code, message, every location and label.
type Plain struct{}

func (Plain) Render(w io.Writer, rep Report) error {
	for i := range rep.Entries {
		e := &rep.Entries[i]
		if _, err := fmt.Fprintf(w, "%s: %s\n", headline(e), e.Message); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "  --> %s\n", e.Primary.Rendered); err != nil {
			return err
		}
		for _, l := range e.Secondary {
			if _, err := fmt.Fprintf(w, "  note: %s: %s\n", l.Rendered, l.Message); err != nil {
				return err
			}
		}
	}
	_, err := io.WriteString(w, summary(rep))
	return err
}

// headline is "error[SYN2001]".
func headline(e *Entry) string {
	return fmt.Sprintf("%s[%s]", diag.SeverityLabel(e.Severity), e.Code.ID())
}

func summary(rep Report) string {
	if len(rep.Entries) == 0 {
		return ""
	}
	s := fmt.Sprintf("%d error(s), %d warning(s)", rep.Errors, rep.Warnings)
	if rep.Omitted > 0 {
		s += fmt.Sprintf(", %d more not shown", rep.Omitted)
	}
	return s + "\n"
}

func textLocation(path string, from, to source.LineCol) string {
	return fmt.Sprintf("%s:%d:%d-%d:%d", path, from.Line, from.Col, to.Line, to.Col)
}

func streamLocation(path string, sp source.Span) string {
	return fmt.Sprintf("%s:[%d..%d)", path, sp.Start, sp.End)
}

// shortLocation is "path:line:col" for text and the full range for streams.
func shortLocation(l Location) string {
	if l.IsStream() || l.Path == "" {
		return l.Rendered
	}
	return fmt.Sprintf("%s:%d:%d", l.Path, l.Start.Line, l.Start.Col)
}
