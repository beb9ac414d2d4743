package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const blobSchema = `
	CREATE TABLE IF NOT EXISTS blob_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

// PostgresStore keeps blobs in a single key/value table. Values are stored
// as TEXT so malformed documents round-trip unchanged.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open pool
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the blob table if missing
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, blobSchema); err != nil {
		return fmt.Errorf("failed to create blob_store table: %w", err)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM blob_store WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blob from postgres: %w", err)
	}
	return []byte(value), nil
}

func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO blob_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, key, string(data))
	if err != nil {
		return fmt.Errorf("failed to put blob to postgres: %w", err)
	}
	return nil
}
