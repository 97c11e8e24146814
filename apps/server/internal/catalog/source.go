// Package catalog loads game data for the server from a file, a local
// sqlite database or postgres.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"gifttaste/apps/server/internal/config"
	"gifttaste/gamedata"
	"gifttaste/itemdata"
)

var ErrSchemaMissing = errors.New("catalog schema not initialized")

// Source produces a game data bundle. Load is called once at startup.
type Source interface {
	Load(ctx context.Context) (*gamedata.Bundle, error)
	Mode() string
	Close() error
}

// NewSourceFromConfig opens the source selected by cfg.CatalogMode.
func NewSourceFromConfig(cfg config.Config) (Source, error) {
	switch cfg.CatalogMode {
	case config.CatalogModeFile:
		return NewFileSource(cfg.CatalogFile), nil
	case config.CatalogModeSQLite:
		path, err := cfg.SQLitePath()
		if err != nil {
			return nil, err
		}
		src, err := NewSQLiteSource(path)
		if err != nil {
			return nil, err
		}
		if _, err := src.SeedIfEmpty(context.Background(), cfg.SeedFile); err != nil {
			_ = src.Close()
			return nil, err
		}
		return src, nil
	case config.CatalogModePostgres:
		return NewPostgresSource(cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("invalid catalog mode %q", cfg.CatalogMode)
	}
}

type fileSource struct {
	path string
}

// NewFileSource reads a JSON or YAML bundle from path.
func NewFileSource(path string) Source {
	return &fileSource{path: path}
}

func (s *fileSource) Load(context.Context) (*gamedata.Bundle, error) {
	b, err := gamedata.LoadFile(s.path)
	if err != nil {
		return nil, err
	}
	log.Printf("[Catalog] Loaded %d items, %d taste records from %s", len(b.Items), len(b.Tastes), s.path)
	return b, nil
}

func (s *fileSource) Mode() string { return config.CatalogModeFile }

func (s *fileSource) Close() error { return nil }

// loadBundle reads all three tables. The queries are portable between sqlite
// and postgres.
func loadBundle(ctx context.Context, db *sql.DB) (*gamedata.Bundle, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	b := &gamedata.Bundle{Tastes: make(map[string]string)}

	rows, err := db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	for rows.Next() {
		var rec itemdata.CategoryRecord
		if err := rows.Scan(&rec.ID, &rec.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan category: %w", err)
		}
		b.Categories = append(b.Categories, rec)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}

	rows, err = db.QueryContext(ctx, `
SELECT id, name, category_id, price, edible, tastes_bad
FROM items
ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	for rows.Next() {
		var rec itemdata.ItemRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Category, &rec.Price, &rec.Edible, &rec.TastesBad); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan item: %w", err)
		}
		b.Items = append(b.Items, rec)
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}

	rows, err = db.QueryContext(ctx, `SELECT taste_key, record FROM gift_tastes`)
	if err != nil {
		return nil, fmt.Errorf("query gift tastes: %w", err)
	}
	for rows.Next() {
		var key, record string
		if err := rows.Scan(&key, &record); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan gift taste: %w", err)
		}
		b.Tastes[key] = record
	}
	if err := closeRows(rows); err != nil {
		return nil, fmt.Errorf("read gift tastes: %w", err)
	}
	return b, nil
}

func closeRows(rows *sql.Rows) error {
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	return rows.Close()
}
