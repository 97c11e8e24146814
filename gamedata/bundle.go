// Package gamedata loads the item catalog and gift taste records the engine
// reads. Loading happens once, before any query.
package gamedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"gifttaste/gift"
	"gifttaste/itemdata"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrEmptyKey        = errors.New("empty gift taste key")
)

// Bundle is a complete set of game data.
type Bundle struct {
	Categories []itemdata.CategoryRecord `json:"categories" yaml:"categories"`
	Items      []itemdata.ItemRecord     `json:"items" yaml:"items"`
	Tastes     map[string]string         `json:"tastes" yaml:"tastes"`
}

// LoadFile reads a bundle, choosing YAML or JSON by extension.
func LoadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game data file: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(data)
	default:
		return LoadJSON(data)
	}
}

// LoadJSON decodes a bundle from JSON.
func LoadJSON(data []byte) (*Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse game data JSON: %w", err)
	}
	return &b, nil
}

// LoadYAML decodes a bundle from YAML.
func LoadYAML(data []byte) (*Bundle, error) {
	var b Bundle
	if err := yaml.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse game data YAML: %w", err)
	}
	return &b, nil
}

// Catalog builds the item catalog.
func (b *Bundle) Catalog() *itemdata.Catalog {
	return itemdata.NewCatalog(b.Categories, b.Items)
}

// Preferences returns a copy of the gift taste records.
func (b *Bundle) Preferences() gift.PreferenceTable {
	out := make(gift.PreferenceTable, len(b.Tastes))
	for k, v := range b.Tastes {
		out[k] = v
	}
	return out
}

// Validate reports every structural problem found. A bundle that fails
// validation is still usable: bad references resolve to invalid categories.
func (b *Bundle) Validate() error {
	known := make(map[string]bool, len(b.Categories))
	for _, c := range b.Categories {
		known[strings.TrimSpace(c.ID)] = true
	}

	var errs []error
	for _, item := range b.Items {
		cat := strings.TrimSpace(item.Category)
		if cat != "" && !known[cat] {
			errs = append(errs, fmt.Errorf("item %s: %w %q", item.ID, ErrUnknownCategory, cat))
		}
	}
	for key := range b.Tastes {
		if strings.TrimSpace(key) == "" {
			errs = append(errs, ErrEmptyKey)
		}
	}
	return errors.Join(errs...)
}
