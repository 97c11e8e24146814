package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gifttaste/apps/server/internal/config"
	"gifttaste/gamedata"

	_ "modernc.org/sqlite"
)

// SQLiteSource keeps the catalog in a local sqlite file.
type SQLiteSource struct {
	db *sql.DB
}

func NewSQLiteSource(dbPath string) (*SQLiteSource, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, `PRAGMA busy_timeout = 5000;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteCatalogSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteSource{db: db}, nil
}

func (s *SQLiteSource) Load(ctx context.Context) (*gamedata.Bundle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := loadBundle(ctx, s.db)
	if err != nil {
		return nil, err
	}
	log.Printf("[Catalog] Loaded %d items, %d taste records from sqlite", len(b.Items), len(b.Tastes))
	return b, nil
}

// Import replaces the stored catalog with b in one transaction.
func (s *SQLiteSource) Import(ctx context.Context, b *gamedata.Bundle) error {
	if b == nil {
		return fmt.Errorf("nil bundle")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"categories", "items", "gift_tastes"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	for _, c := range b.Categories {
		_, err := tx.ExecContext(ctx, `
INSERT INTO categories (id, name) VALUES (?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name
`, c.ID, c.Name)
		if err != nil {
			return fmt.Errorf("insert category %s: %w", c.ID, err)
		}
	}
	for _, it := range b.Items {
		_, err := tx.ExecContext(ctx, `
INSERT INTO items (id, name, category_id, price, edible, tastes_bad)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    name = excluded.name,
    category_id = excluded.category_id,
    price = excluded.price,
    edible = excluded.edible,
    tastes_bad = excluded.tastes_bad
`, it.ID, it.Name, it.Category, it.Price, it.Edible, it.TastesBad)
		if err != nil {
			return fmt.Errorf("insert item %s: %w", it.ID, err)
		}
	}
	for key, record := range b.Tastes {
		_, err := tx.ExecContext(ctx, `INSERT INTO gift_tastes (taste_key, record) VALUES (?, ?)`, key, record)
		if err != nil {
			return fmt.Errorf("insert gift taste %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// SeedIfEmpty imports the bundle at path when the catalog holds no items and
// no taste records. It reports whether an import happened. An empty path is a
// no-op.
func (s *SQLiteSource) SeedIfEmpty(ctx context.Context, path string) (bool, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return false, nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	countCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	var n int
	err := s.db.QueryRowContext(countCtx, `
SELECT (SELECT COUNT(*) FROM items) + (SELECT COUNT(*) FROM gift_tastes)
`).Scan(&n)
	cancel()
	if err != nil {
		return false, fmt.Errorf("count catalog rows: %w", err)
	}
	if n > 0 {
		return false, nil
	}

	b, err := gamedata.LoadFile(path)
	if err != nil {
		return false, fmt.Errorf("load seed file: %w", err)
	}
	if err := s.Import(ctx, b); err != nil {
		return false, fmt.Errorf("import seed file: %w", err)
	}
	log.Printf("[Catalog] Seeded sqlite with %d items, %d taste records from %s", len(b.Items), len(b.Tastes), path)
	return true, nil
}

func (s *SQLiteSource) Mode() string { return config.CatalogModeSQLite }

func (s *SQLiteSource) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

var sqliteCatalogSchema = []string{`
CREATE TABLE IF NOT EXISTS categories (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT ''
)`, `
CREATE TABLE IF NOT EXISTS items (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL DEFAULT '',
    category_id TEXT NOT NULL DEFAULT '',
    price INTEGER NOT NULL DEFAULT 0,
    edible BOOLEAN NOT NULL DEFAULT 0,
    tastes_bad BOOLEAN NOT NULL DEFAULT 0
)`, `
CREATE TABLE IF NOT EXISTS gift_tastes (
    taste_key TEXT PRIMARY KEY,
    record TEXT NOT NULL DEFAULT ''
)`}

func ensureSQLiteCatalogSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range sqliteCatalogSchema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
