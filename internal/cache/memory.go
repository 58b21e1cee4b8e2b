package cache

import (
	"context"
	"sync"
	"time"
)

// In-memory implementations with the same contracts as the Redis ones.
// Used by tests and single-process development runs.

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired() bool {
	return time.Now().After(e.expiresAt)
}

type MemoryTokenStore struct {
	mu      sync.Mutex
	entries map[int64]memoryEntry
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{entries: make(map[int64]memoryEntry)}
}

func (s *MemoryTokenStore) Store(_ context.Context, userID int64, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = memoryEntry{value: token, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context, userID int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[userID]
	if !ok || entry.expired() {
		delete(s.entries, userID)
		return "", ErrNotFound
	}
	return entry.value, nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}

type MemoryDenylist struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryDenylist() *MemoryDenylist {
	return &MemoryDenylist{entries: make(map[string]time.Time)}
}

func (d *MemoryDenylist) Revoke(_ context.Context, tokenID string, until time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if min := time.Now().Add(time.Second); until.Before(min) {
		until = min
	}
	d.entries[tokenID] = until
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	until, ok := d.entries[tokenID]
	if !ok {
		return false, nil
	}
	if time.Now().After(until) {
		delete(d.entries, tokenID)
		return false, nil
	}
	return true, nil
}
