package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"gifttaste/apps/server/internal/api"
	"gifttaste/apps/server/internal/cache"
	"gifttaste/apps/server/internal/catalog"
	"gifttaste/apps/server/internal/config"
	"gifttaste/apps/server/internal/gateway"
	"gifttaste/gift"
)

type server struct {
	mux    *http.ServeMux
	source catalog.Source
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Server] Failed to load config: %v", err)
	}
	if err := run(cfg); err != nil {
		log.Fatalf("[Server] %v", err)
	}
}

func run(cfg config.Config) error {
	srv, err := newServer(cfg)
	if err != nil {
		return err
	}
	defer srv.Close()

	log.Printf("[Server] Starting server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.mux); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	return nil
}

// newServer opens the catalog source and wires the handlers. The source is
// closed again on any error.
func newServer(cfg config.Config) (*server, error) {
	source, err := catalog.NewSourceFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog source: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	bundle, err := source.Load(ctx)
	cancel()
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	if err := bundle.Validate(); err != nil {
		log.Printf("[Server] Catalog warnings: %v", err)
	}

	items := bundle.Catalog()
	prefs := bundle.Preferences()
	itemCache, err := cache.NewItems(items, cfg.ItemCacheSize)
	if err != nil {
		_ = source.Close()
		return nil, fmt.Errorf("failed to init item cache: %w", err)
	}
	engine := gift.NewEngine(prefs, itemCache)

	learned := gift.NewProgressDatabase()
	gw := gateway.New(engine, learned)
	learned.OnChange(gw.NotifyChange)
	apiHTTP := api.NewHTTPHandler(engine, gift.NewEngineDatabase(engine, items), learned, prefs.Characters, itemCache)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", gw.HandleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	apiHTTP.RegisterRoutes(mux)

	log.Printf("[Server] Catalog mode: %s", source.Mode())
	log.Printf("[Server] %d items, %d characters", items.Len(), len(prefs.Characters()))
	return &server{mux: mux, source: source}, nil
}

func (s *server) Close() error {
	return s.source.Close()
}
