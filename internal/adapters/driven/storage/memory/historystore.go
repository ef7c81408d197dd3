package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
)

// Ensure HistoryStore implements the interface.
var _ driven.HistoryStore = (*HistoryStore)(nil)

// HistoryStore is an in-memory implementation of driven.HistoryStore
// for testing.
type HistoryStore struct {
	mu   sync.RWMutex
	runs []domain.PublishRun
}

// NewHistoryStore creates a new in-memory history store.
func NewHistoryStore() *HistoryStore {
	return &HistoryStore{}
}

// SaveRun records a completed publish run.
func (s *HistoryStore) SaveRun(_ context.Context, run *domain.PublishRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, *run)
	return nil
}

// ListRuns returns recorded runs, newest first, up to limit.
func (s *HistoryStore) ListRuns(_ context.Context, limit int) ([]domain.PublishRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PublishRun, len(s.runs))
	copy(out, s.runs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
