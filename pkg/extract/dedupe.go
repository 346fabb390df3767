package extract

import "strings"

// Deduper suppresses repeated person records within a single run.
// The key is (website, full_name) with the name lower-cased and trimmed.
// Nothing is persisted: a new run starts with an empty set.
type Deduper struct {
	seen map[string]struct{}
}

// NewDeduper creates an empty run-scoped deduplicator.
func NewDeduper() *Deduper {
	return &Deduper{seen: make(map[string]struct{})}
}

// Accept registers the record's key on first sight and returns true.
// Subsequent records with the same key return false.
func (d *Deduper) Accept(p Person) bool {
	key := p.Website + "\x00" + strings.ToLower(strings.TrimSpace(p.FullName))
	if _, ok := d.seen[key]; ok {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Len returns the number of distinct keys seen so far.
func (d *Deduper) Len() int {
	return len(d.seen)
}
