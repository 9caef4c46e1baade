package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"flexparse/internal/diag"
	"flexparse/internal/source"
	"flexparse/internal/token"
)

const tabWidth = 4

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() в порядке основных спанов.
// Для каждого diag печатает "<SEV>[<CODE>]: <Message>", строку
// "--> <path>:<line>:<col>", затем контекст строки с подчёркиванием ^^^^ по Span, затем Notes с аналогичным форматом.
// Цвет включается опцией.
func Pretty(w io.Writer, bag *diag.Bag, us *source.UnitSet, opts PrettyOpts) {
	rep := BuildBag(bag, us, BuildOpts{PathMode: opts.PathMode})
	_ = NewPrettyRenderer(us, opts).Render(w, rep) //nolint:errcheck
}

// PrettyRenderer renders colored reports with source excerpts. Stream
// units get a token listing excerpt when opts.Tokens has their tokens.
type PrettyRenderer struct {
	units *source.UnitSet
	opts  PrettyOpts

	errorC, warnC, noteC, gutterC, boldC *color.Color
}

func NewPrettyRenderer(us *source.UnitSet, opts PrettyOpts) *PrettyRenderer {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return &PrettyRenderer{
		units:   us,
		opts:    opts,
		errorC:  mk(color.FgRed, color.Bold),
		warnC:   mk(color.FgYellow, color.Bold),
		noteC:   mk(color.FgCyan, color.Bold),
		gutterC: mk(color.FgBlue, color.Bold),
		boldC:   mk(color.Bold),
	}
}

func (p *PrettyRenderer) sevColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.errorC
	case diag.SevWarning:
		return p.warnC
	}
	return p.noteC
}

func (p *PrettyRenderer) Render(w io.Writer, rep Report) error {
	var sb strings.Builder
	for i := range rep.Entries {
		e := &rep.Entries[i]
		sc := p.sevColor(e.Severity)
		fmt.Fprintf(&sb, "%s: %s\n", sc.Sprintf("%s[%s]", e.Severity, e.Code.ID()), p.boldC.Sprint(e.Message))
		fmt.Fprintf(&sb, "  %s %s\n", p.gutterC.Sprint("-->"), shortLocation(e.Primary))
		p.excerpt(&sb, e.Primary, '^', sc)

		for _, l := range e.Secondary {
			if !p.opts.ShowNotes {
				break
			}
			fmt.Fprintf(&sb, "  %s %s: %s\n", p.noteC.Sprint("note:"), shortLocation(l.Location), l.Message)
			p.excerpt(&sb, l.Location, '-', p.noteC)
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(summary(rep))
	_, err := io.WriteString(w, sb.String())
	return err
}

func (p *PrettyRenderer) excerpt(sb *strings.Builder, loc Location, mark rune, mc *color.Color) {
	if p.units == nil {
		return
	}
	u := p.units.Get(loc.Span.Unit)
	if u == nil {
		return
	}
	if loc.IsStream() {
		p.tokenExcerpt(sb, loc, mark, mc)
		return
	}
	if loc.Start.Line == 0 {
		return
	}

	ctx := uint32(max(p.opts.Context, 0))
	first := loc.Start.Line - min(ctx, loc.Start.Line-1)
	last := min(loc.End.Line+ctx, u.LineCount())
	gw := len(fmt.Sprint(last))
	blank := p.gutterC.Sprint(strings.Repeat(" ", gw+1) + "|")

	sb.WriteString(blank + "\n")
	for ln := first; ln <= last; ln++ {
		line := strings.TrimSuffix(u.GetLine(ln), "\r")
		clusters := graphemes(line)
		fmt.Fprintf(sb, "%s %s\n", p.gutterC.Sprintf("%*d |", gw, ln), p.clip(expandTabs(clusters)))

		if ln < loc.Start.Line || ln > loc.End.Line {
			continue
		}
		from, to := 1, len(clusters)+1
		if ln == loc.Start.Line {
			from = int(loc.Start.Col)
		}
		if ln == loc.End.Line {
			to = int(loc.End.Col)
		}
		pad := displayWidth(clusters[:min(from-1, len(clusters))])
		n := max(displayWidth(clusters[min(from-1, len(clusters)):min(max(to-1, from-1), len(clusters))]), 1)
		fmt.Fprintf(sb, "%s %s%s\n", blank, strings.Repeat(" ", pad), mc.Sprint(strings.Repeat(string(mark), n)))
	}
}

// tokenExcerpt lists the tokens around a stream span, one per row.
func (p *PrettyRenderer) tokenExcerpt(sb *strings.Builder, loc Location, mark rune, mc *color.Color) {
	toks := p.opts.Tokens[loc.Span.Unit]
	if len(toks) == 0 {
		return
	}
	ctx := uint32(max(p.opts.Context, 0))
	n := uint32(len(toks))
	start := min(loc.Span.Start, n-1)
	first := start - min(ctx, start)
	last := min(max(loc.Span.End, loc.Span.Start+1)+ctx, n)
	gw := len(fmt.Sprint(last))
	blank := p.gutterC.Sprint(strings.Repeat(" ", gw+1) + "|")

	sb.WriteString(blank + "\n")
	for i := first; i < last; i++ {
		row := tokenRow(toks[i])
		fmt.Fprintf(sb, "%s %s\n", p.gutterC.Sprintf("%*d |", gw, i), p.clip(row))
		marked := i >= loc.Span.Start && i < loc.Span.End
		if loc.Span.Empty() {
			marked = i == start
		}
		if marked {
			fmt.Fprintf(sb, "%s %s\n", blank, mc.Sprint(strings.Repeat(string(mark), max(runewidth.StringWidth(row), 1))))
		}
	}
}

func tokenRow(t token.Token) string {
	if t.Kind == token.EOF {
		return "EOF"
	}
	return fmt.Sprintf("%-8s %q", t.Kind, t.Text)
}

func (p *PrettyRenderer) clip(s string) string {
	if p.opts.Width == 0 || runewidth.StringWidth(s) <= int(p.opts.Width) {
		return s
	}
	return runewidth.Truncate(s, int(p.opts.Width), "…")
}

func graphemes(s string) []string {
	var out []string
	state := -1
	for s != "" {
		var c string
		c, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, c)
	}
	return out
}

func clusterWidth(c string) int {
	if c == "\t" {
		return tabWidth
	}
	return runewidth.StringWidth(c)
}

func displayWidth(cs []string) int {
	n := 0
	for _, c := range cs {
		n += clusterWidth(c)
	}
	return n
}

func expandTabs(cs []string) string {
	var sb strings.Builder
	for _, c := range cs {
		if c == "\t" {
			sb.WriteString(strings.Repeat(" ", tabWidth))
			continue
		}
		sb.WriteString(c)
	}
	return sb.String()
}
