// Package gift resolves how a character reacts to a gift from layered
// universal, heuristic and personal taste data.
package gift

import (
	"gifttaste/itemdata"
)

// ItemLookup resolves item metadata and reports whether the ID is a known
// item rather than, for example, a category token.
type ItemLookup interface {
	Lookup(itemID string) (itemdata.Item, bool)
}

// Engine answers taste queries against read-only catalogs. It holds no
// mutable state and is safe for concurrent use.
type Engine struct {
	prefs Preferences
	items ItemLookup
}

// NewEngine returns an engine over the given catalogs. The catalogs must be
// fully populated before the first query.
func NewEngine(prefs Preferences, items ItemLookup) *Engine {
	return &Engine{prefs: prefs, items: items}
}

// ResolveTaste returns how characterID reacts to receiving itemID, or Unknown
// when either has no data.
func (e *Engine) ResolveTaste(characterID, itemID string) Taste {
	raw, ok := e.prefs.GiftTastes(characterID)
	if !ok {
		return Unknown
	}
	item, ok := e.items.Lookup(itemID)
	if !ok {
		return Unknown
	}

	taste := e.universalCategoryTaste(item)

	universal, hasUniversalID := e.universalItemTaste(item)
	hasUniversalNeutralID := hasUniversalID && universal == Neutral
	if hasUniversalID {
		taste = universal
	}

	if taste == Neutral && !hasUniversalNeutralID {
		taste = heuristicTaste(characterID, item)
	}

	if personal, ok := personalTaste(splitRecord(raw), item, hasUniversalID); ok {
		return personal
	}
	return taste
}

// ItemsForTier returns the tokens listed for taste under key. For universal
// tier keys the whole list is returned and taste is ignored.
func (e *Engine) ItemsForTier(key string, taste Taste) []string {
	raw, ok := e.prefs.GiftTastes(key)
	if !ok {
		return nil
	}
	return tokensForTier(key, raw, taste)
}

// universalCategoryTaste is Pass I. Items without a category stay Neutral.
func (e *Engine) universalCategoryTaste(item itemdata.Item) Taste {
	if !item.Category.Valid() {
		return Neutral
	}
	if t, ok := e.universalTaste(item.Category.ID); ok {
		return t
	}
	return Neutral
}

// universalItemTaste is Pass II.
func (e *Engine) universalItemTaste(item itemdata.Item) (Taste, bool) {
	return e.universalTaste(item.ID)
}

func (e *Engine) universalTaste(token string) (Taste, bool) {
	for _, tier := range UniversalTiers {
		if contains(e.ItemsForTier(tier.Key, tier.Taste), token) {
			return tier.Taste, true
		}
	}
	return Unknown, false
}

// heuristicTaste is Pass III, applied only to an implicit Neutral.
func heuristicTaste(characterID string, item itemdata.Item) Taste {
	switch {
	case item.Edible && item.TastesBad:
		return Hate
	case item.Price < 20:
		return Dislike
	case item.Category.Name == "Arch":
		if characterID == "Penny" {
			return Like
		}
		return Dislike
	}
	return Neutral
}

// personalTaste is Pass IV. A category-only claim loses to an explicit
// universal item taste.
func personalTaste(fields []string, item itemdata.Item, hasUniversalID bool) (Taste, bool) {
	for _, tier := range PersonalTiers {
		tokens := fieldTokens(fields, tier.Field)
		if len(tokens) == 0 {
			continue
		}
		categoryListed := item.Category.Valid() && contains(tokens, item.Category.ID)
		claimed := contains(tokens, item.ID) || categoryListed
		if claimed && (!categoryListed || !hasUniversalID) {
			return tier.Taste, true
		}
	}
	return Unknown, false
}
