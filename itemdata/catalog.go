// Package itemdata resolves item identifiers to the metadata used when
// rating gifts: category, price, edibility and the "tastes bad" flag.
package itemdata

import (
	"sort"
	"strings"
)

// Catalog is an immutable item and category table. It is safe for
// concurrent use once constructed.
type Catalog struct {
	items      map[string]ItemRecord
	categories map[string]Category
}

// NewCatalog builds a catalog from raw records. Records with an empty ID are
// skipped and later duplicates replace earlier ones.
func NewCatalog(categories []CategoryRecord, items []ItemRecord) *Catalog {
	c := &Catalog{
		items:      make(map[string]ItemRecord, len(items)),
		categories: make(map[string]Category, len(categories)),
	}
	for _, rec := range categories {
		id := strings.TrimSpace(rec.ID)
		if id == "" {
			continue
		}
		c.categories[id] = Category{ID: id, Name: strings.TrimSpace(rec.Name)}
	}
	for _, rec := range items {
		rec.ID = strings.TrimSpace(rec.ID)
		if rec.ID == "" {
			continue
		}
		rec.Category = strings.TrimSpace(rec.Category)
		if rec.Price < 0 {
			rec.Price = 0
		}
		c.items[rec.ID] = rec
	}
	return c
}

// Resolve returns the metadata for itemID. Unknown items yield the zero Item.
func (c *Catalog) Resolve(itemID string) Item {
	item, _ := c.Lookup(itemID)
	return item
}

// Lookup is Resolve plus whether the item exists in the catalog.
func (c *Catalog) Lookup(itemID string) (Item, bool) {
	if c == nil {
		return Item{}, false
	}
	rec, ok := c.items[itemID]
	if !ok {
		return Item{}, false
	}
	return c.makeItem(rec), true
}

// Category returns the category with the given ID.
func (c *Catalog) Category(id string) (Category, bool) {
	if c == nil {
		return InvalidCategory, false
	}
	cat, ok := c.categories[id]
	if !ok {
		return InvalidCategory, false
	}
	return cat, true
}

// Items returns every item sorted by ID.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	out := make([]Item, 0, len(c.items))
	for _, rec := range c.items {
		out = append(out, c.makeItem(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

func (c *Catalog) makeItem(rec ItemRecord) Item {
	cat, _ := c.Category(rec.Category)
	return Item{
		ID:        rec.ID,
		Name:      rec.Name,
		Category:  cat,
		Price:     rec.Price,
		Edible:    rec.Edible,
		TastesBad: rec.TastesBad,
	}
}
