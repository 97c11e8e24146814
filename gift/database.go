package gift

import (
	"sort"
	"sync"

	"gifttaste/itemdata"
)

// Database lists gifts per character and taste.
type Database interface {
	AddGift(character, itemID string, taste Taste) bool
	AddGifts(character string, taste Taste, itemIDs []string) bool
	GiftsForTaste(character string, taste Taste) []string
	OnChange(fn func())
}

// ItemLister enumerates every item in a catalog.
type ItemLister interface {
	Items() []itemdata.Item
}

// ProgressDatabase records gifts as they are learned, for example after a
// character reacts to one.
type ProgressDatabase struct {
	mu        sync.RWMutex
	gifts     map[string]map[Taste][]string
	listeners []func()
}

// NewProgressDatabase creates an empty database.
func NewProgressDatabase() *ProgressDatabase {
	return &ProgressDatabase{
		gifts: make(map[string]map[Taste][]string),
	}
}

func (d *ProgressDatabase) AddGift(character, itemID string, taste Taste) bool {
	return d.AddGifts(character, taste, []string{itemID})
}

// AddGifts stores the items not yet known for (character, taste) and reports
// whether anything new was added.
func (d *ProgressDatabase) AddGifts(character string, taste Taste, itemIDs []string) bool {
	if character == "" || !taste.Known() {
		return false
	}

	d.mu.Lock()
	byTaste, ok := d.gifts[character]
	if !ok {
		byTaste = make(map[Taste][]string)
		d.gifts[character] = byTaste
	}
	added := false
	for _, id := range itemIDs {
		if id == "" || contains(byTaste[taste], id) {
			continue
		}
		byTaste[taste] = append(byTaste[taste], id)
		added = true
	}
	listeners := append([]func(){}, d.listeners...)
	d.mu.Unlock()

	if added {
		for _, fn := range listeners {
			fn()
		}
	}
	return added
}

func (d *ProgressDatabase) GiftsForTaste(character string, taste Taste) []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]string(nil), d.gifts[character][taste]...)
}

func (d *ProgressDatabase) OnChange(fn func()) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// EngineDatabase answers from the game data itself. It is read-only.
type EngineDatabase struct {
	engine *Engine
	items  ItemLister
}

// NewEngineDatabase returns a database that rates every listed item with
// engine.
func NewEngineDatabase(engine *Engine, items ItemLister) *EngineDatabase {
	return &EngineDatabase{engine: engine, items: items}
}

func (d *EngineDatabase) AddGift(string, string, Taste) bool { return false }

func (d *EngineDatabase) AddGifts(string, Taste, []string) bool { return false }

// GiftsForTaste returns every item ID that character rates as taste, sorted.
func (d *EngineDatabase) GiftsForTaste(character string, taste Taste) []string {
	if !taste.Known() {
		return nil
	}
	var out []string
	for _, item := range d.items.Items() {
		if d.engine.ResolveTaste(character, item.ID) == taste {
			out = append(out, item.ID)
		}
	}
	sort.Strings(out)
	return out
}

// OnChange is a no-op; the game data never changes under a running engine.
func (d *EngineDatabase) OnChange(func()) {}

var (
	_ Database = (*ProgressDatabase)(nil)
	_ Database = (*EngineDatabase)(nil)
)
