package itemdata

// Item is the metadata the taste engine needs about a single giftable object.
type Item struct {
	ID        string   `json:"id"`
	Name      string   `json:"name,omitempty"`
	Category  Category `json:"category"`
	Price     int      `json:"price"`
	Edible    bool     `json:"edible"`
	TastesBad bool     `json:"tastesBad"`
}

// Valid reports whether the item came from the catalog. Resolve returns the
// zero Item for unknown IDs.
func (i Item) Valid() bool { return i.ID != "" }

// ItemRecord is the raw catalog row for an item. Category refers to a
// CategoryRecord ID and may be empty.
type ItemRecord struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name,omitempty" yaml:"name,omitempty"`
	Category  string `json:"category,omitempty" yaml:"category,omitempty"`
	Price     int    `json:"price" yaml:"price"`
	Edible    bool   `json:"edible,omitempty" yaml:"edible,omitempty"`
	TastesBad bool   `json:"tastesBad,omitempty" yaml:"tastesBad,omitempty"`
}

// CategoryRecord is the raw catalog row for a category.
type CategoryRecord struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}
