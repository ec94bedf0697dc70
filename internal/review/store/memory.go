package store

import (
	"context"
	"sync"

	"fairlens/internal/review/models"
)

// InMemory holds the session's review records in insertion order. It is the
// single owner of review state: created at startup, mutated only via Append
// and ReplaceAll, discarded when the process exits. There is no durable
// backing store.
type InMemory struct {
	mu      sync.RWMutex
	records []models.ReviewRecord
}

// NewInMemory creates an empty in-memory review store.
func NewInMemory() *InMemory {
	return &InMemory{records: []models.ReviewRecord{}}
}

// List returns a copy of the current collection in insertion order.
func (s *InMemory) List(ctx context.Context) ([]models.ReviewRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ReviewRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// Append adds one record to the end of the collection.
func (s *InMemory) Append(ctx context.Context, record models.ReviewRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// ReplaceAll swaps the entire collection for the given records. The caller
// must pass a fully parsed replacement so a failed import never leaves the
// store half-written.
func (s *InMemory) ReplaceAll(ctx context.Context, records []models.ReviewRecord) error {
	replacement := make([]models.ReviewRecord, len(records))
	copy(replacement, records)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = replacement
	return nil
}

// Count returns the number of records currently held.
func (s *InMemory) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
