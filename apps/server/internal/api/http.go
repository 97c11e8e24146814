package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"gifttaste/apps/server/internal/cache"
	"gifttaste/gift"
)

// UniversalKey in a tier path selects the canonical universal tier for the
// requested taste.
const UniversalKey = "universal"

// Gift list sources for GET /api/gifts/{npc}.
const (
	SourceGameData = "gamedata"
	SourceLearned  = "learned"
)

type HTTPHandler struct {
	engine     *gift.Engine
	gifts      gift.Database
	learned    gift.Database
	characters func() []string
	cache      *cache.Items
}

type errorResponse struct {
	Error string `json:"error"`
}

type tasteResponse struct {
	NPC   string     `json:"npc"`
	Item  string     `json:"item"`
	Taste gift.Taste `json:"taste"`
}

type listResponse struct {
	Key   string     `json:"key"`
	Taste gift.Taste `json:"taste"`
	Items []string   `json:"items"`
}

type learnRequest struct {
	Taste gift.Taste `json:"taste"`
	Items []string   `json:"items"`
}

type learnResponse struct {
	NPC   string     `json:"npc"`
	Taste gift.Taste `json:"taste"`
	Added bool       `json:"added"`
}

// NewHTTPHandler serves queries against engine. gifts lists what the game
// data says; learned records gifts reported by clients. itemCache may be nil.
func NewHTTPHandler(
	engine *gift.Engine,
	gifts gift.Database,
	learned gift.Database,
	characters func() []string,
	itemCache *cache.Items,
) *HTTPHandler {
	return &HTTPHandler{
		engine:     engine,
		gifts:      gifts,
		learned:    learned,
		characters: characters,
		cache:      itemCache,
	}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/taste", h.handleTaste)
	mux.HandleFunc("/api/tiers/", h.handleTier)
	mux.HandleFunc("/api/gifts/", h.handleGifts)
	mux.HandleFunc("/api/npcs", h.handleNPCs)
	mux.HandleFunc("/api/cache", h.handleCache)
}

func (h *HTTPHandler) handleTaste(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	q := r.URL.Query()
	npc := strings.TrimSpace(q.Get("npc"))
	item := strings.TrimSpace(q.Get("item"))
	if npc == "" || item == "" {
		writeError(w, http.StatusBadRequest, "npc and item are required")
		return
	}
	writeJSON(w, http.StatusOK, tasteResponse{
		NPC:   npc,
		Item:  item,
		Taste: h.engine.ResolveTaste(npc, item),
	})
}

func (h *HTTPHandler) handleTier(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	key, ok := pathKey(w, r, "/api/tiers/")
	if !ok {
		return
	}
	taste, ok := queryTaste(w, r)
	if !ok {
		return
	}
	if key == UniversalKey {
		key, _ = gift.UniversalTierName(taste)
	}
	writeJSON(w, http.StatusOK, listResponse{
		Key:   key,
		Taste: taste,
		Items: nonNil(h.engine.ItemsForTier(key, taste)),
	})
}

func (h *HTTPHandler) handleGifts(w http.ResponseWriter, r *http.Request) {
	npc, ok := pathKey(w, r, "/api/gifts/")
	if !ok {
		return
	}
	switch r.Method {
	case http.MethodGet:
		h.handleListGifts(w, r, npc)
	case http.MethodPost:
		h.handleLearnGifts(w, r, npc)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *HTTPHandler) handleListGifts(w http.ResponseWriter, r *http.Request, npc string) {
	taste, ok := queryTaste(w, r)
	if !ok {
		return
	}
	var db gift.Database
	switch strings.TrimSpace(r.URL.Query().Get("source")) {
	case "", SourceGameData:
		db = h.gifts
	case SourceLearned:
		db = h.learned
	default:
		writeError(w, http.StatusBadRequest, "invalid source")
		return
	}
	writeJSON(w, http.StatusOK, listResponse{
		Key:   npc,
		Taste: taste,
		Items: nonNil(db.GiftsForTaste(npc, taste)),
	})
}

func (h *HTTPHandler) handleLearnGifts(w http.ResponseWriter, r *http.Request, npc string) {
	req := learnRequest{Taste: gift.Unknown}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !req.Taste.Known() || len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "taste and items are required")
		return
	}
	writeJSON(w, http.StatusOK, learnResponse{
		NPC:   npc,
		Taste: req.Taste,
		Added: h.learned.AddGifts(npc, req.Taste, req.Items),
	})
}

func (h *HTTPHandler) handleNPCs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"npcs": nonNil(h.characters()),
	})
}

func (h *HTTPHandler) handleCache(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if h.cache == nil {
		writeError(w, http.StatusNotFound, "item cache disabled")
		return
	}
	writeJSON(w, http.StatusOK, h.cache.Stats())
}

func pathKey(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, prefix))
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusNotFound, "not found")
		return "", false
	}
	return key, true
}

func queryTaste(w http.ResponseWriter, r *http.Request) (gift.Taste, bool) {
	taste, err := gift.ParseTaste(r.URL.Query().Get("taste"))
	if err != nil || !taste.Known() {
		writeError(w, http.StatusBadRequest, "invalid taste")
		return gift.Unknown, false
	}
	return taste, true
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
