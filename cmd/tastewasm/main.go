//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"

	"gifttaste/gamedata"
	"gifttaste/gift"
)

type loadRequest struct {
	Bundle gamedata.Bundle `json:"bundle"`
}

type queryRequest struct {
	NPC   string `json:"npc"`
	Item  string `json:"item"`
	Key   string `json:"key"`
	Taste string `json:"taste"`
}

type queryError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type response struct {
	OK    bool        `json:"ok"`
	Taste *gift.Taste `json:"taste,omitempty"`
	Items []string    `json:"items,omitempty"`
	Error *queryError `json:"error,omitempty"`
}

var engine *gift.Engine

func main() {
	js.Global().Set("__giftTasteLoad", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(failure("invalid_request", "missing game data payload"))
		}
		return mustJSON(handleLoad(args[0].String()))
	}))
	js.Global().Set("__giftTasteResolve", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(failure("invalid_request", "missing request payload"))
		}
		return mustJSON(handleResolve(args[0].String()))
	}))
	js.Global().Set("__giftTasteTier", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 1 {
			return mustJSON(failure("invalid_request", "missing request payload"))
		}
		return mustJSON(handleTier(args[0].String()))
	}))

	select {}
}

// handleLoad replaces the engine. The host must not query while loading.
func handleLoad(raw string) response {
	var req loadRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return failure("invalid_json", err.Error())
	}
	engine = gift.NewEngine(req.Bundle.Preferences(), req.Bundle.Catalog())
	return response{OK: true}
}

func handleResolve(raw string) response {
	req, errResp := decodeQuery(raw)
	if errResp != nil {
		return *errResp
	}
	taste := engine.ResolveTaste(req.NPC, req.Item)
	return response{OK: true, Taste: &taste}
}

func handleTier(raw string) response {
	req, errResp := decodeQuery(raw)
	if errResp != nil {
		return *errResp
	}
	taste, err := gift.ParseTaste(req.Taste)
	if err != nil {
		return failure("invalid_taste", err.Error())
	}
	return response{OK: true, Items: engine.ItemsForTier(req.Key, taste)}
}

func decodeQuery(raw string) (queryRequest, *response) {
	var req queryRequest
	if engine == nil {
		resp := failure("not_loaded", "game data has not been loaded")
		return req, &resp
	}
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		resp := failure("invalid_json", err.Error())
		return req, &resp
	}
	return req, nil
}

func failure(reason, msg string) response {
	return response{OK: false, Error: &queryError{Reason: reason, Message: msg}}
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		b2, _ := json.Marshal(failure("marshal_failed", err.Error()))
		return string(b2)
	}
	return string(b)
}
