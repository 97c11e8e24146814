package cache

import (
	"testing"

	"gifttaste/itemdata"
)

type countingLookup struct {
	catalog *itemdata.Catalog
	calls   int
}

func (l *countingLookup) Lookup(id string) (itemdata.Item, bool) {
	l.calls++
	return l.catalog.Lookup(id)
}

func newCounting() *countingLookup {
	return &countingLookup{
		catalog: itemdata.NewCatalog(
			[]itemdata.CategoryRecord{{ID: "-2", Name: "Mineral"}},
			[]itemdata.ItemRecord{
				{ID: "72", Category: "-2", Price: 750},
				{ID: "80", Category: "-2", Price: 25},
				{ID: "86", Category: "-2", Price: 75},
			},
		),
	}
}

func TestItemsCachesHitsAndMisses(t *testing.T) {
	inner := newCounting()
	c, err := NewItems(inner, 8)
	if err != nil {
		t.Fatalf("NewItems: %v", err)
	}

	for i := 0; i < 3; i++ {
		item, ok := c.Lookup("72")
		if !ok || item.Price != 750 || item.Category.Name != "Mineral" {
			t.Fatalf("unexpected lookup result: %+v %v", item, ok)
		}
		if _, ok := c.Lookup("-2"); ok {
			t.Fatalf("category token must not resolve as an item")
		}
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 inner lookups, got %d", inner.calls)
	}
	st := c.Stats()
	if st.Hits != 4 || st.Misses != 2 || st.Len != 2 {
		t.Fatalf("unexpected stats: %+v", st)
	}
}

func TestItemsEvicts(t *testing.T) {
	inner := newCounting()
	c, err := NewItems(inner, 2)
	if err != nil {
		t.Fatalf("NewItems: %v", err)
	}
	c.Lookup("72")
	c.Lookup("80")
	c.Lookup("86")
	c.Lookup("72")
	if inner.calls != 4 {
		t.Fatalf("expected eviction to force a reload, got %d calls", inner.calls)
	}
	if c.Stats().Len != 2 {
		t.Fatalf("cache should hold 2 entries, got %d", c.Stats().Len)
	}
}

func TestNewItemsNilInner(t *testing.T) {
	if _, err := NewItems(nil, 4); err == nil {
		t.Fatalf("expected error for nil lookup")
	}
}
