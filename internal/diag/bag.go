package diag

import (
	"cmp"
	"slices"
)

// Bag collects the diagnostics of one document. It is not safe for
// concurrent use; the driver gives every document its own bag.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag создаёт Bag с лимитом; limit <= 0 означает без лимита.
func NewBag(limit int) *Bag {
	return &Bag{items: make([]Diagnostic, 0, min(max(limit, 4), 32)), limit: limit}
}

// Add appends d unless the limit is reached. Refused entries are counted.
func (b *Bag) Add(d Diagnostic) bool {
	if b.limit > 0 && len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// Force appends d past the limit.
func (b *Bag) Force(d Diagnostic) {
	b.items = append(b.items, d)
}

// Dropped is the number of diagnostics Add refused.
func (b *Bag) Dropped() int { return b.dropped }

func (b *Bag) HasErrors() bool   { return b.has(SevError) }
func (b *Bag) HasWarnings() bool { return b.has(SevWarning) }

func (b *Bag) has(sev Severity) bool {
	return slices.ContainsFunc(b.items, func(d Diagnostic) bool { return d.Severity >= sev })
}

func (b *Bag) Len() int { return len(b.items) }

// Items возвращает внутренний срез; не модифицируйте его.
func (b *Bag) Items() []Diagnostic { return b.items }

// Merge appends every entry of other regardless of the limit.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.items = append(b.items, other.items...)
	b.dropped += other.dropped
}

// Sort orders by position; at one position errors come first, then by code.
func (b *Bag) Sort() {
	slices.SortStableFunc(b.items, func(x, y Diagnostic) int {
		return cmp.Or(
			cmp.Compare(x.Primary.File, y.Primary.File),
			cmp.Compare(x.Primary.Start, y.Primary.Start),
			cmp.Compare(x.Primary.End, y.Primary.End),
			cmp.Compare(y.Severity, x.Severity),
			cmp.Compare(x.Code, y.Code),
		)
	})
}

// Dedup drops repeated reports, keeping the first occurrence.
func (b *Bag) Dedup() {
	seen := make(map[identity]struct{}, len(b.items))
	b.items = slices.DeleteFunc(b.items, func(d Diagnostic) bool {
		id := d.identity()
		if _, dup := seen[id]; dup {
			return true
		}
		seen[id] = struct{}{}
		return false
	})
}
