// Package sqlite is a Storage backend holding the serialized cart in a
// local SQLite file, for deployments without a Redis server.
//
// WAL mode is enabled on Open so a reader woken by a change signal never
// blocks the writer that triggered it.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	// Register the pure-Go SQLite driver. modernc.org/sqlite avoids CGO,
	// which keeps cross-compilation and Alpine images painless.
	_ "modernc.org/sqlite"

	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
)

// schema is the DDL executed once on Open. One row per cart; the payload is
// the same JSON blob the other backends store.
const schema = `
CREATE TABLE IF NOT EXISTS cart_state (
    -- Scopes the row so multiple carts can share a file.
    cart_id     TEXT PRIMARY KEY,

    -- Serialized line-item collection, replaced wholesale on every write.
    payload     TEXT NOT NULL,

    -- RFC3339 wall-clock time of the last write (SQLite stores TEXT).
    updated_at  TEXT NOT NULL
);`

// Storage persists one cart's blob in a cart_state row.
type Storage struct {
	db     *sql.DB
	cartID string
}

// Open opens (creating if needed) the database file and prepares the
// schema.
func Open(path, cartID string) (*Storage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: enable WAL: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create schema: %w", err)
	}
	return &Storage{db: db, cartID: cartID}, nil
}

func (s *Storage) Save(ctx context.Context, items []domain.LineItem) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("sqlite: marshal cart: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cart_state (cart_id, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cart_id) DO UPDATE SET
			payload    = excluded.payload,
			updated_at = excluded.updated_at`,
		s.cartID, string(blob), time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("sqlite: write cart: %w", err)
	}
	return nil
}

func (s *Storage) Load(ctx context.Context) ([]domain.LineItem, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM cart_state WHERE cart_id = ?`, s.cartID,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: read cart: %w", err)
	}

	var items []domain.LineItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("sqlite: corrupt cart payload for %s: %w", s.cartID, err)
	}
	return items, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
