package diag

import "flexparse/internal/source"

// Note is a secondary labeled span, e.g. the opener of an unclosed group.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one reported problem. Once added to a Bag it is not
// mutated; WithNote copies.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with one more note. The notes slice is
// copied so a shared diagnostic never changes under another holder.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	notes := make([]Note, len(d.Notes), len(d.Notes)+1)
	copy(notes, d.Notes)
	d.Notes = append(notes, Note{Span: sp, Msg: msg})
	return d
}
