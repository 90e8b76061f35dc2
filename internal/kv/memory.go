package kv

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore keeps cells in process memory. Useful for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.RWMutex
	cells map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cells: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.cells[key]
	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(v), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cells[key] = slices.Clone(value)

	return nil
}
