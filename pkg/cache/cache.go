package cache

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Store is the cache contract shared by the in-memory and Redis backends.
type Store interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// item represents a cached item with expiration
type item struct {
	value      []byte
	expiration int64
}

func (i item) expired() bool {
	if i.expiration == 0 {
		return false
	}
	return time.Now().UnixNano() > i.expiration
}

// MemoryStore is a thread-safe in-memory cache with expiration.
type MemoryStore struct {
	items           map[string]item
	mu              sync.RWMutex
	cleanupInterval time.Duration
	maxItems        int
}

// NewMemoryStore creates a new in-memory cache. A cleanup goroutine runs
// when cleanupInterval > 0.
func NewMemoryStore(maxItems int, cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		items:           make(map[string]item),
		cleanupInterval: cleanupInterval,
		maxItems:        maxItems,
	}

	if cleanupInterval > 0 {
		go store.startCleanupTimer()
	}

	return store
}

// Set adds an item to the cache with the given expiration
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxItems > 0 && len(s.items) >= s.maxItems {
		if _, exists := s.items[key]; !exists {
			s.evictOldest()
		}
	}

	s.items[key] = item{value: value, expiration: exp}
	return nil
}

// Get retrieves an item from the cache
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, found := s.items[key]
	if !found || it.expired() {
		return nil, ErrMiss
	}
	return it.value, nil
}

// Delete removes an item from the cache
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.items, key)
	return nil
}

// Count returns the number of items in the cache (including expired items)
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.items)
}

func (s *MemoryStore) startCleanupTimer() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.deleteExpired()
	}
}

func (s *MemoryStore) deleteExpired() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UnixNano()
	for k, v := range s.items {
		if v.expiration > 0 && now > v.expiration {
			delete(s.items, k)
		}
	}
}

// evictOldest removes the item closest to expiring. Callers must hold the lock.
func (s *MemoryStore) evictOldest() {
	var oldestKey string
	var oldestTime int64
	first := true

	for k, v := range s.items {
		if first || v.expiration < oldestTime {
			oldestKey = k
			oldestTime = v.expiration
			first = false
		}
	}

	if oldestKey != "" {
		delete(s.items, oldestKey)
	}
}
