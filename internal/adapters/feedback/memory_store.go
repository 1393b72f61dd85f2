// Package feedback provides the append-only stores for human classification
// corrections.
package feedback

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/core"
)

// MemoryStore is an in-memory implementation of the FeedbackRepository
// interface. Records live only as long as the process; it exists for tests
// and single-shot CLI runs.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*core.FeedbackRecord
	nextID  int64
	logger  *zap.Logger
}

// NewMemoryStore creates an empty in-memory feedback store.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	return &MemoryStore{nextID: 1, logger: logger}
}

// Append stores a new feedback record and assigns its ID.
func (s *MemoryStore) Append(ctx context.Context, rec *core.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *rec
	stored.ID = s.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	s.nextID++
	s.records = append(s.records, &stored)
	rec.ID = stored.ID
	return nil
}

// Unconsumed returns copies of all records not yet folded into a retraining
// run, oldest first.
func (s *MemoryStore) Unconsumed(ctx context.Context) ([]*core.FeedbackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*core.FeedbackRecord
	for _, rec := range s.records {
		if !rec.Consumed {
			cp := *rec
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MarkConsumed flags records as folded into a retraining run.
func (s *MemoryStore) MarkConsumed(ctx context.Context, ids []int64) error {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.records {
		if _, ok := set[rec.ID]; ok {
			rec.Consumed = true
		}
	}
	return nil
}

// CountUnconsumed reports the retraining backlog size.
func (s *MemoryStore) CountUnconsumed(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.records {
		if !rec.Consumed {
			count++
		}
	}
	return count, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
