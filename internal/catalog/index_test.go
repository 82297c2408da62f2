package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"creative_catalog/internal/domain"
)

func TestIndex_PutAndOrder(t *testing.T) {
	idx := NewIndex()

	assert.True(t, idx.Put(domain.CatalogEntry{AdID: "a", AdName: "first"}))
	assert.True(t, idx.Put(domain.CatalogEntry{AdID: "b", AdName: "second"}))
	assert.True(t, idx.Put(domain.CatalogEntry{AdID: "c", AdName: "third"}))

	assert.Equal(t, 3, idx.Len())
	assert.True(t, idx.Has("b"))
	assert.False(t, idx.Has("z"))

	entries := idx.Entries()
	assert.Equal(t, []string{"a", "b", "c"}, []string{entries[0].AdID, entries[1].AdID, entries[2].AdID})
}

func TestIndex_DuplicateCollapsesLastWins(t *testing.T) {
	idx := NewIndex()

	assert.True(t, idx.Put(domain.CatalogEntry{AdID: "a", AdName: "old"}))
	assert.False(t, idx.Put(domain.CatalogEntry{AdID: "a", AdName: "new"}))

	assert.Equal(t, 1, idx.Len())
	entries := idx.Entries()
	assert.Equal(t, "new", entries[0].AdName)
}

func TestIndex_DuplicateKeepsFirstSeenOrder(t *testing.T) {
	idx := NewIndex()

	idx.Put(domain.CatalogEntry{AdID: "a"})
	idx.Put(domain.CatalogEntry{AdID: "b"})
	idx.Put(domain.CatalogEntry{AdID: "a", AdName: "again"})

	entries := idx.Entries()
	assert.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].AdID)
	assert.Equal(t, "b", entries[1].AdID)
}
