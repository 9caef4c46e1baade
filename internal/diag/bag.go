package diag

import (
	"cmp"
	"slices"

	"flexparse/internal/source"
)

// Bag is an insertion-ordered, append-only collection of diagnostics.
// A positive limit caps Add; Merge and AddAll raise it instead of dropping.
type Bag struct {
	items []Diagnostic
	limit int
}

func NewBag(limit int) *Bag {
	limit = max(limit, 0)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: limit}
}

// Add appends d unless the limit is reached; false means d was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Cap is the current limit, 0 when unbounded.
func (b *Bag) Cap() int { return b.limit }

func (b *Bag) Len() int { return len(b.items) }

// Items returns the backing slice; callers must not modify it.
func (b *Bag) Items() []Diagnostic { return b.items }

// Count returns how many diagnostics are at least as severe as sev.
func (b *Bag) Count(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) HasErrors() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevError })
}

func (b *Bag) HasWarnings() bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= SevWarning })
}

// AddAll appends ds in order, ignoring the limit.
func (b *Bag) AddAll(ds []Diagnostic) {
	b.items = append(b.items, ds...)
	if b.limit > 0 {
		b.limit = max(b.limit, len(b.items))
	}
}

// Merge appends other's diagnostics in attempt order without deduplication.
func (b *Bag) Merge(other *Bag) {
	if other != nil {
		b.AddAll(other.items)
	}
}

// Sort orders by primary span; ties keep insertion order.
func (b *Bag) Sort() { SortDiagnostics(b.items) }

// SortDiagnostics stable-sorts ds into source order of their primary spans.
func SortDiagnostics(ds []Diagnostic) {
	slices.SortStableFunc(ds, func(x, y Diagnostic) int {
		a, c := x.Primary, y.Primary
		return cmp.Or(cmp.Compare(a.Unit, c.Unit), cmp.Compare(a.Start, c.Start), cmp.Compare(a.End, c.End))
	})
}

type dedupKey struct {
	code Code
	span source.Span
	msg  string
}

// Dedup drops repeats of the same code, primary span and message, keeping
// the first. Nothing calls it implicitly.
func (b *Bag) Dedup() {
	seen := make(map[dedupKey]struct{}, len(b.items))
	b.Filter(func(d Diagnostic) bool {
		k := dedupKey{d.Code, d.Primary, d.Message}
		if _, dup := seen[k]; dup {
			return false
		}
		seen[k] = struct{}{}
		return true
	})
}

// Filter keeps only diagnostics for which keep returns true.
func (b *Bag) Filter(keep func(Diagnostic) bool) {
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool { return !keep(d) })
}
