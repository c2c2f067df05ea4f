package repository

import (
	"context"
	"sync"

	errorvalues "github.com/limbo/squirrels/internal/error_values"
)

// MemoryStore keeps records for the lifetime of the process only.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]byte),
	}
}

func (ms *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	v, ok := ms.records[key]
	if !ok {
		return nil, errorvalues.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (ms *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.records[key] = append([]byte(nil), value...)
	return nil
}

func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.records, key)
	return nil
}
