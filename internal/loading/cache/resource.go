package cache

import (
	"sync"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

// ResourceStore holds the authoritative LoadRecord per resource key.
// Absence is a valid, non-exceptional result. Records are only ever
// replaced, never mutated in place.
type ResourceStore struct {
	mu      sync.RWMutex
	records map[string]domain.LoadRecord
}

// NewResourceStore creates an empty store.
func NewResourceStore() *ResourceStore {
	return &ResourceStore{records: make(map[string]domain.LoadRecord)}
}

// Get returns the record for a key, if any.
func (s *ResourceStore) Get(key string) (domain.LoadRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[key]
	return rec, ok
}

// Put stores a loaded outcome for a key, replacing any prior record.
func (s *ResourceStore) Put(key string, state domain.LoadState, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = domain.LoadRecord{
		Key:         key,
		State:       state,
		Value:       value,
		LastUpdated: time.Now(),
	}
}

// MarkFailed records a terminal failure for the current load cycle.
func (s *ResourceStore) MarkFailed(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[key] = domain.LoadRecord{
		Key:         key,
		State:       domain.StateFailed,
		LastUpdated: time.Now(),
	}
}

// Len returns the number of records held.
func (s *ResourceStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Clear drops every record. Used by operator action only, typically test
// teardown.
func (s *ResourceStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]domain.LoadRecord)
}
