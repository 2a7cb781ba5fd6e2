package metadata

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/pinauth/internal/common"
)

// InMemoryRepository is a map-backed Repository used in tests and as a
// throwaway store. Values are copied on the way in and out.
type InMemoryRepository struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[string][]byte)}
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (r *InMemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	return clone(v), nil
}

func (r *InMemoryRepository) Set(ctx context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = clone(value)
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *InMemoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = make(map[string][]byte)
	return nil
}

func (r *InMemoryRepository) List(ctx context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make(map[string][]byte, len(r.data))
	for k, v := range r.data {
		result[k] = clone(v)
	}
	return result, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	next, err := fn(clone(r.data[key]))
	if err != nil {
		return err
	}
	r.data[key] = clone(next)
	return nil
}
