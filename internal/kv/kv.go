// Package kv stores opaque values under string keys. It backs every
// persisted cell of the tracker: the main snapshot and the monthly budget.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing was ever stored under a key.
var ErrNotFound = errors.New("key not found")

// Store is a namespaced key/value cell store. Put replaces the whole value.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
