package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	"gifttaste/apps/server/internal/config"
	"gifttaste/gamedata"

	"github.com/lib/pq"
)

// PostgresSource reads a catalog that is maintained elsewhere. The schema
// must already exist.
type PostgresSource struct {
	db *sql.DB
}

func NewPostgresSource(dsn string) (*PostgresSource, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("empty postgres dsn")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	var missing []string
	rows, err := db.QueryContext(ctx, `
SELECT t.name
FROM unnest($1::text[]) AS t(name)
WHERE NOT EXISTS (
    SELECT 1
    FROM information_schema.tables
    WHERE table_schema = 'public'
      AND table_name = t.name
)`, pq.Array([]string{"categories", "items", "gift_tastes"}))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			_ = db.Close()
			return nil, err
		}
		missing = append(missing, name)
	}
	if err := closeRows(rows); err != nil {
		_ = db.Close()
		return nil, err
	}
	if len(missing) > 0 {
		_ = db.Close()
		return nil, fmt.Errorf("%w: missing tables %s", ErrSchemaMissing, strings.Join(missing, ", "))
	}

	return &PostgresSource{db: db}, nil
}

func (s *PostgresSource) Load(ctx context.Context) (*gamedata.Bundle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	b, err := loadBundle(ctx, s.db)
	if err != nil {
		return nil, err
	}
	log.Printf("[Catalog] Loaded %d items, %d taste records from postgres", len(b.Items), len(b.Tastes))
	return b, nil
}

func (s *PostgresSource) Mode() string { return config.CatalogModePostgres }

func (s *PostgresSource) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
