package services

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryBrowser = (*HistoryService)(nil)

// HistoryService reads the publish audit log.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// List returns recorded publish runs, newest first. Without a backing
// store there is simply nothing recorded.
func (s *HistoryService) List(ctx context.Context, limit int) ([]domain.PublishRun, error) {
	if s.store == nil {
		return nil, nil
	}
	return s.store.ListRuns(ctx, limit)
}
