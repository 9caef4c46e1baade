package diagfmt

import (
	"encoding/json"
	"io"

	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// JSONLocation - место в юните. Для потоковых юнитов start_byte/end_byte
// хранят индексы токенов, а строк и колонок нет.
type JSONLocation struct {
	File      string `json:"file"`
	UnitKind  string `json:"unit_kind"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type JSONNote struct {
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
}

type JSONDiagnostic struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title,omitempty"`
	Message  string       `json:"message"`
	Location JSONLocation `json:"location"`
	Notes    []JSONNote   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document the json format writes. Count is the
// number of entries shown; Errors and Warnings cover the whole bag.
type DiagnosticsOutput struct {
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Count       int              `json:"count"`
	Omitted     int              `json:"omitted,omitempty"`
	Errors      int              `json:"errors"`
	Warnings    int              `json:"warnings"`
}

func (l Location) toJSON(positions bool) JSONLocation {
	out := JSONLocation{
		File:      l.Path,
		UnitKind:  l.Span.Kind.String(),
		StartByte: l.Span.Start,
		EndByte:   l.Span.End,
	}
	if positions && !l.IsStream() {
		out.StartLine, out.StartCol = l.Start.Line, l.Start.Col
		out.EndLine, out.EndCol = l.End.Line, l.End.Col
	}
	return out
}

func (e *Entry) toJSON(opts JSONOpts) JSONDiagnostic {
	out := JSONDiagnostic{
		Severity: e.Severity.String(),
		Code:     e.Code.ID(),
		Title:    e.Code.Title(),
		Message:  e.Message,
		Location: e.Primary.toJSON(opts.IncludePositions),
	}
	if !opts.IncludeNotes {
		return out
	}
	for _, l := range e.Secondary {
		out.Notes = append(out.Notes, JSONNote{Message: l.Message, Location: l.Location.toJSON(opts.IncludePositions)})
	}
	return out
}

// BuildDiagnosticsOutput assembles the json document without encoding it.
func BuildDiagnosticsOutput(bag *diag.Bag, us *source.UnitSet, opts JSONOpts) DiagnosticsOutput {
	return reportJSON(BuildBag(bag, us, BuildOpts{PathMode: opts.PathMode, Max: opts.Max}), opts)
}

func reportJSON(rep Report, opts JSONOpts) DiagnosticsOutput {
	out := DiagnosticsOutput{
		Diagnostics: make([]JSONDiagnostic, len(rep.Entries)),
		Count:       len(rep.Entries),
		Omitted:     rep.Omitted,
		Errors:      rep.Errors,
		Warnings:    rep.Warnings,
	}
	for i := range rep.Entries {
		out.Diagnostics[i] = rep.Entries[i].toJSON(opts)
	}
	return out
}

// JSON writes bag as an indented json document.
func JSON(w io.Writer, bag *diag.Bag, us *source.UnitSet, opts JSONOpts) error {
	return encodeJSON(w, BuildDiagnosticsOutput(bag, us, opts))
}

// JSONRenderer adapts JSON output to the Renderer interface.
type JSONRenderer struct {
	Opts JSONOpts
}

func (r JSONRenderer) Render(w io.Writer, rep Report) error {
	return encodeJSON(w, reportJSON(rep, r.Opts))
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
