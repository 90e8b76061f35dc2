package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Placeholder styles accepted by SQLStore.
const (
	Dollar   = "$" // postgres: $1, $2
	Question = "?" // sqlite
)

// SQLStore keeps cells as rows of the kv_store table created by the
// database migrations.
type SQLStore struct {
	db       *sql.DB
	getQuery string
	putQuery string
}

func NewSQLStore(db *sql.DB, placeholder string) *SQLStore {
	return &SQLStore{
		db: db,
		getQuery: rebind(placeholder, `
			SELECT value FROM kv_store WHERE key = $1
		`),
		putQuery: rebind(placeholder, `
			INSERT INTO kv_store (key, value, updated_at)
			VALUES ($1, $2, CURRENT_TIMESTAMP)
			ON CONFLICT (key) DO UPDATE
			SET value = excluded.value, updated_at = excluded.updated_at
		`),
	}
}

// rebind rewrites $n placeholders for drivers that only take '?'.
func rebind(placeholder, query string) string {
	if placeholder != Question {
		return query
	}

	return strings.NewReplacer("$1", "?", "$2", "?").Replace(query)
}

func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value string

	err := s.db.QueryRowContext(ctx, s.getQuery, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", key, err)
	}

	return []byte(value), nil
}

func (s *SQLStore) Put(ctx context.Context, key string, value []byte) error {
	if _, err := s.db.ExecContext(ctx, s.putQuery, key, string(value)); err != nil {
		return fmt.Errorf("upserting %s: %w", key, err)
	}

	return nil
}
