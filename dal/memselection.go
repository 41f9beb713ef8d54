package dal

import (
	"context"
	"sync"
	"time"
)

// MemorySelectionStore is the in-process fallback used when redis is
// disabled. Same one-shot semantics, no cross-instance visibility.
type MemorySelectionStore struct {
	mu      sync.Mutex
	entries map[string]memSelection
}

type memSelection struct {
	reportNumber string
	expiresAt    time.Time
}

func NewMemorySelectionStore() *MemorySelectionStore {
	return &MemorySelectionStore{entries: make(map[string]memSelection)}
}

func (s *MemorySelectionStore) Put(_ context.Context, token, reportNumber string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memSelection{
		reportNumber: reportNumber,
		expiresAt:    time.Now().Add(ttl),
	}
	return nil
}

func (s *MemorySelectionStore) Take(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.entries[token]
	if !ok {
		return "", ErrSelectionNotFound
	}
	delete(s.entries, token)
	if time.Now().After(entry.expiresAt) {
		return "", ErrSelectionNotFound
	}
	return entry.reportNumber, nil
}

func (s *MemorySelectionStore) Close() error {
	return nil
}
