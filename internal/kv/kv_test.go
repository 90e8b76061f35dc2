package kv_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Foster13/money-month-tracker/internal/database"
	"github.com/Foster13/money-month-tracker/internal/kv"
)

func stores(t *testing.T) map[string]kv.Store {
	t.Helper()

	fileStore, err := kv.NewFileStore(filepath.Join(t.TempDir(), "cells"))
	require.NoError(t, err)

	dsn := filepath.Join(t.TempDir(), "kv.db")
	db, err := database.Open(database.SQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(database.SQLite, dsn))

	return map[string]kv.Store{
		"Memory": kv.NewMemoryStore(),
		"File":   fileStore,
		"SQLite": kv.NewSQLStore(db, kv.Question),
	}
}

func TestStore_Contract(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, err := store.Get(ctx, "finance-storage")
			assert.ErrorIs(t, err, kv.ErrNotFound)

			require.NoError(t, store.Put(ctx, "finance-storage", []byte(`{"v":1}`)))
			require.NoError(t, store.Put(ctx, "monthlyBudget", []byte(`5000000`)))

			got, err := store.Get(ctx, "finance-storage")
			require.NoError(t, err)
			assert.Equal(t, `{"v":1}`, string(got))

			require.NoError(t, store.Put(ctx, "finance-storage", []byte(`{"v":2}`)))

			got, err = store.Get(ctx, "finance-storage")
			require.NoError(t, err)
			assert.Equal(t, `{"v":2}`, string(got))

			got, err = store.Get(ctx, "monthlyBudget")
			require.NoError(t, err)
			assert.Equal(t, `5000000`, string(got))
		})
	}
}

func TestMemoryStore_DoesNotAlias(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()

	value := []byte("abc")
	require.NoError(t, store.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileStore_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := kv.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(context.Background(), "finance-storage", []byte("{}")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "finance-storage.json", entries[0].Name())
}
