package itemdata

import "testing"

func testCatalog() *Catalog {
	return NewCatalog(
		[]CategoryRecord{
			{ID: "-2", Name: "Mineral"},
			{ID: "-79", Name: "Fruit"},
			{ID: "", Name: "ignored"},
		},
		[]ItemRecord{
			{ID: "72", Name: "Diamond", Category: "-2", Price: 750},
			{ID: "613", Name: "Apple", Category: "-79", Price: 100, Edible: true},
			{ID: "96", Name: "Dwarf Scroll I", Category: "-999", Price: 1},
			{ID: "168", Name: "Trash", Price: -5},
			{ID: " ", Name: "blank"},
		},
	)
}

func TestResolveKnownItem(t *testing.T) {
	c := testCatalog()
	item := c.Resolve("613")
	if !item.Valid() {
		t.Fatalf("expected apple to resolve")
	}
	if item.Category.ID != "-79" || item.Category.Name != "Fruit" {
		t.Fatalf("unexpected category: %+v", item.Category)
	}
	if item.Price != 100 || !item.Edible || item.TastesBad {
		t.Fatalf("unexpected metadata: %+v", item)
	}
}

func TestResolveUnknownItemIsDefault(t *testing.T) {
	c := testCatalog()
	item := c.Resolve("does-not-exist")
	if item.Valid() {
		t.Fatalf("unknown item should not be valid: %+v", item)
	}
	if item.Category.Valid() {
		t.Fatalf("unknown item should carry the invalid category")
	}
	if _, ok := c.Lookup("does-not-exist"); ok {
		t.Fatalf("Lookup should report missing item")
	}
}

func TestResolveMissingCategoryIsInvalid(t *testing.T) {
	c := testCatalog()
	for _, id := range []string{"96", "168"} {
		item, ok := c.Lookup(id)
		if !ok {
			t.Fatalf("item %s should exist", id)
		}
		if item.Category.Valid() {
			t.Fatalf("item %s should have invalid category, got %v", id, item.Category)
		}
	}
}

func TestNegativePriceClamped(t *testing.T) {
	c := testCatalog()
	if got := c.Resolve("168").Price; got != 0 {
		t.Fatalf("expected clamped price 0, got %d", got)
	}
}

func TestItemsSortedAndBlankSkipped(t *testing.T) {
	c := testCatalog()
	if c.Len() != 4 {
		t.Fatalf("expected 4 items, got %d", c.Len())
	}
	items := c.Items()
	for i := 1; i < len(items); i++ {
		if items[i-1].ID >= items[i].ID {
			t.Fatalf("items not sorted: %s before %s", items[i-1].ID, items[i].ID)
		}
	}
}

func TestNilCatalog(t *testing.T) {
	var c *Catalog
	if c.Resolve("72").Valid() {
		t.Fatalf("nil catalog should resolve nothing")
	}
	if c.Len() != 0 || c.Items() != nil {
		t.Fatalf("nil catalog should be empty")
	}
}
