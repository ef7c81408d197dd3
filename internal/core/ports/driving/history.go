package driving

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// HistoryBrowser reads the publish audit log.
type HistoryBrowser interface {
	// List returns recorded publish runs, newest first, up to limit.
	List(ctx context.Context, limit int) ([]domain.PublishRun, error)
}
