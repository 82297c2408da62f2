package catalog

import "creative_catalog/internal/domain"

// Index is the canonical in-memory catalog for one run, keyed by
// ad_id. Single-owner; never shared across goroutines.
type Index struct {
	entries map[string]domain.CatalogEntry
	order   []string
}

func NewIndex() *Index {
	return &Index{entries: make(map[string]domain.CatalogEntry)}
}

// Put records an entry. A duplicate ad_id collapses into the existing
// slot with the new values winning. Returns true for first sightings.
func (i *Index) Put(entry domain.CatalogEntry) bool {
	_, seen := i.entries[entry.AdID]
	if !seen {
		i.order = append(i.order, entry.AdID)
	}
	i.entries[entry.AdID] = entry
	return !seen
}

func (i *Index) Has(adID string) bool {
	_, ok := i.entries[adID]
	return ok
}

func (i *Index) Len() int {
	return len(i.entries)
}

// Entries returns the catalog in first-seen order.
func (i *Index) Entries() []domain.CatalogEntry {
	out := make([]domain.CatalogEntry, 0, len(i.order))
	for _, id := range i.order {
		out = append(out, i.entries[id])
	}
	return out
}
