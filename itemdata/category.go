package itemdata

// Category groups items. Category IDs may appear in place of item IDs in
// gift taste lists.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// InvalidCategory marks an item without a resolvable category.
var InvalidCategory = Category{}

// Valid reports whether the category resolved to a catalog entry.
func (c Category) Valid() bool { return c.ID != "" }

func (c Category) String() string {
	if !c.Valid() {
		return "invalid"
	}
	if c.Name == "" {
		return c.ID
	}
	return c.Name + "(" + c.ID + ")"
}
