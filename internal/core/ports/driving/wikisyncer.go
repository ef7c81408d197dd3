package driving

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// WikiSyncer synchronises project documentation into the wiki checkout.
type WikiSyncer interface {
	// Plan computes the actions a sync would perform without mutating
	// anything. Dry-run mode prints this plan and stops.
	Plan(ctx context.Context) (*domain.SyncPlan, error)

	// Apply executes a previously computed plan: copies files, commits
	// and pushes. An empty plan is a no-op success.
	Apply(ctx context.Context, plan *domain.SyncPlan) error
}
