package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Foster13/money-month-tracker/internal/kv"
	"github.com/Foster13/money-month-tracker/internal/transaction"
)

// DefaultKey is the cell the main snapshot is persisted under.
const DefaultKey = "finance-storage"

// Store persists the main snapshot as a single JSON document in one kv cell.
type Store struct {
	cells kv.Store
	key   string
}

func New(cells kv.Store, key string) *Store {
	if key == "" {
		key = DefaultKey
	}

	return &Store{cells: cells, key: key}
}

func (s *Store) Load(ctx context.Context) (transaction.Snapshot, error) {
	data, err := s.cells.Get(ctx, s.key)
	if errors.Is(err, kv.ErrNotFound) {
		return transaction.Snapshot{}, transaction.ErrNoSnapshot
	}

	if err != nil {
		return transaction.Snapshot{}, fmt.Errorf("loading %s: %w", s.key, err)
	}

	snap, err := transaction.DecodeSnapshot(data)
	if err != nil {
		return transaction.Snapshot{}, fmt.Errorf("decoding %s: %w", s.key, err)
	}

	return snap, nil
}

func (s *Store) Save(ctx context.Context, snap transaction.Snapshot) error {
	data, err := transaction.EncodeSnapshot(snap, time.Time{})
	if err != nil {
		return err
	}

	if err := s.cells.Put(ctx, s.key, data); err != nil {
		return fmt.Errorf("saving %s: %w", s.key, err)
	}

	return nil
}
