package diag

import "flexparse/internal/source"

// Reporter получает диагностики от лексера и драйвера.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter пишет в Bag, соблюдая его лимит.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}

// Builder collects notes for one diagnostic and hands it to a Reporter on
// Emit. A nil Reporter makes it a no-op, so lexers without one pay nothing.
type Builder struct {
	r       Reporter
	d       Diagnostic
	emitted bool
}

// Report starts a diagnostic for r.
func Report(r Reporter, sev Severity, code Code, primary source.Span, msg string) *Builder {
	return &Builder{r: r, d: New(sev, code, primary, msg)}
}

func (b *Builder) WithNote(sp source.Span, msg string) *Builder {
	b.d = b.d.WithNote(sp, msg)
	return b
}

// Emit reports the diagnostic; later calls do nothing.
func (b *Builder) Emit() {
	if b.emitted || b.r == nil {
		return
	}
	b.emitted = true
	b.r.Report(b.d.Code, b.d.Severity, b.d.Primary, b.d.Message, b.d.Notes)
}

// Diagnostic returns what Emit would report.
func (b *Builder) Diagnostic() Diagnostic { return b.d }
