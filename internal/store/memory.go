package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type memoryEntry struct {
	writtenAt time.Time
	data      []byte
}

// MemoryStore is an in-process KeyedStore with the same staleness semantics
// as the Redis store. Used by tests and for running without Redis.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// SetClock overrides the store's clock (tests)
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Read retrieves the stored value for (namespace, key)
func (s *MemoryStore) Read(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[s.buildKey(namespace, key)]
	if !ok {
		return nil, false, nil
	}
	return entry.data, true, nil
}

// Write stores value under (namespace, key) with the current write time
func (s *MemoryStore) Write(ctx context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.buildKey(namespace, key)] = memoryEntry{
		writtenAt: s.now(),
		data:      value,
	}
	return nil
}

// IsStale reports whether the entry for (namespace, key) needs a refresh
func (s *MemoryStore) IsStale(ctx context.Context, namespace, key string, ttl *time.Duration) bool {
	if ttl == nil {
		return true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[s.buildKey(namespace, key)]
	if !ok {
		return true
	}
	return s.now().Sub(entry.writtenAt) > *ttl
}

func (s *MemoryStore) buildKey(namespace, key string) string {
	return fmt.Sprintf("%s:%s", namespace, key)
}
