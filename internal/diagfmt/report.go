package diagfmt

import (
	"flexparse/internal/diag"
	"flexparse/internal/source"
)

// Location is a span resolved against its unit.
type Location struct {
	Span source.Span
	Path string
	// Start and End are zero for stream units.
	Start source.LineCol
	End   source.LineCol
	// Rendered is "path:line:col-line:col" or "path:[start..end)".
	Rendered string
}

// IsStream reports whether the location is a token-index range.
func (l Location) IsStream() bool { return l.Span.Kind == source.UnitStream }

// Label is a secondary annotated location.
type Label struct {
	Location
	Message string
}

// Entry is one diagnostic of a report.
type Entry struct {
	Severity  diag.Severity
	Code      diag.Code
	Message   string
	Primary   Location
	Secondary []Label
}

// Report is the renderer-independent form of a set of diagnostics.
type Report struct {
	Entries  []Entry
	Errors   int
	Warnings int
	// Omitted counts diagnostics dropped by BuildOpts.Max.
	Omitted int
}

// BuildOpts configures Build.
type BuildOpts struct {
	PathMode PathMode
	Max      int // 0 - без ограничения
}

// Build resolves diagnostics into a Report ordered by primary span. Only
// recorded spans are consulted; nothing is re-parsed.
func Build(diags []diag.Diagnostic, us *source.UnitSet, opts BuildOpts) Report {
	items := append([]diag.Diagnostic(nil), diags...)
	diag.SortDiagnostics(items)

	var rep Report
	for _, d := range items {
		switch d.Severity {
		case diag.SevError:
			rep.Errors++
		case diag.SevWarning:
			rep.Warnings++
		}
	}
	if opts.Max > 0 && len(items) > opts.Max {
		rep.Omitted = len(items) - opts.Max
		items = items[:opts.Max]
	}

	rep.Entries = make([]Entry, 0, len(items))
	for _, d := range items {
		e := Entry{
			Severity: d.Severity,
			Code:     d.Code,
			Message:  d.Message,
			Primary:  resolve(us, d.Primary, opts.PathMode),
		}
		for _, n := range d.Notes {
			e.Secondary = append(e.Secondary, Label{Location: resolve(us, n.Span, opts.PathMode), Message: n.Msg})
		}
		rep.Entries = append(rep.Entries, e)
	}
	return rep
}

// BuildBag is Build over the items of a bag.
func BuildBag(bag *diag.Bag, us *source.UnitSet, opts BuildOpts) Report {
	if bag == nil {
		return Report{}
	}
	return Build(bag.Items(), us, opts)
}

func resolve(us *source.UnitSet, sp source.Span, mode PathMode) Location {
	loc := Location{Span: sp}
	var u *source.Unit
	if us != nil {
		u = us.Get(sp.Unit)
	}
	if u == nil {
		loc.Rendered = sp.String()
		return loc
	}
	loc.Path = formatPath(u, us, mode)
	if sp.Kind == source.UnitStream {
		loc.Rendered = streamLocation(loc.Path, sp)
		return loc
	}
	loc.Start, loc.End = us.Resolve(sp)
	loc.Rendered = textLocation(loc.Path, loc.Start, loc.End)
	return loc
}

func formatPath(u *source.Unit, us *source.UnitSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return u.FormatPath("absolute", "")
	case PathModeRelative:
		return u.FormatPath("relative", us.BaseDir())
	case PathModeBasename:
		return u.FormatPath("basename", "")
	}
	return u.FormatPath("auto", "")
}
