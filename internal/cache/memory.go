package cache

import (
	"context"
	"sync"
)

// MemoryStore is the fallback of last resort: a process-local map. Contents
// do not survive a restart, which degrades offline durability but keeps the
// rest of the system functional.
type MemoryStore struct {
	mu        sync.RWMutex
	values    map[string][]byte
	namespace string
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore(namespace string) *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte), namespace: namespace}
}

func (s *MemoryStore) fullKey(key string) string {
	return s.namespace + ":" + key
}

// Get returns the stored value, or found=false when the key is absent.
func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[s.fullKey(key)]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true, nil
}

// Set stores the value under the namespaced key.
func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[s.fullKey(key)] = copied
	return nil
}

// Delete removes the key; deleting an absent key is not an error.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, s.fullKey(key))
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}
