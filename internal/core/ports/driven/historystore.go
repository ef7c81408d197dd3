package driven

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// HistoryStore persists publish run records for auditing.
type HistoryStore interface {
	// SaveRun records a completed publish run.
	SaveRun(ctx context.Context, run *domain.PublishRun) error

	// ListRuns returns recorded runs, newest first, up to limit.
	// A non-positive limit returns all runs.
	ListRuns(ctx context.Context, limit int) ([]domain.PublishRun, error)
}
