// Package metadata provides the key-value blob repository backing both the
// credential collection and the persisted session. The core depends only on
// the Repository interface; SQLite is the default backing store, Postgres is
// available for server-side deployments, and an in-memory implementation
// serves tests.
package metadata

import (
	"context"
)

// Repository is a small persistent key-value store for opaque blobs.
//
// Get returns common.ErrNotFound when the key is absent. Update performs an
// atomic read-modify-write: implementations guarantee that no other Update
// on the same repository interleaves between reading the current value and
// writing the new one.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error

	// Update reads the current value for key (nil if absent), applies fn,
	// and stores the result. Returning an error from fn aborts the write.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
}
