// Package cache memoizes item metadata lookups in front of the catalog.
package cache

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"gifttaste/gift"
	"gifttaste/itemdata"
)

const defaultSize = 1024

type entry struct {
	item itemdata.Item
	ok   bool
}

// Items is an LRU cache over an item lookup. Misses are cached too, so
// repeated queries for category tokens stay cheap.
type Items struct {
	inner  gift.ItemLookup
	lru    *lru.Cache[string, entry]
	hits   atomic.Uint64
	misses atomic.Uint64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits   uint64 `json:"hits"`
	Misses uint64 `json:"misses"`
	Len    int    `json:"len"`
}

func NewItems(inner gift.ItemLookup, size int) (*Items, error) {
	if inner == nil {
		return nil, fmt.Errorf("nil item lookup")
	}
	if size <= 0 {
		size = defaultSize
	}
	c, err := lru.New[string, entry](size)
	if err != nil {
		return nil, fmt.Errorf("create item cache: %w", err)
	}
	return &Items{inner: inner, lru: c}, nil
}

func (c *Items) Lookup(itemID string) (itemdata.Item, bool) {
	if e, ok := c.lru.Get(itemID); ok {
		c.hits.Add(1)
		return e.item, e.ok
	}
	c.misses.Add(1)
	item, ok := c.inner.Lookup(itemID)
	c.lru.Add(itemID, entry{item: item, ok: ok})
	return item, ok
}

func (c *Items) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Len:    c.lru.Len(),
	}
}

var _ gift.ItemLookup = (*Items)(nil)
