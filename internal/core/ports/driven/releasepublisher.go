package driven

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// ReleasePublisher creates a release on the project's git hosting and
// attaches the build artifacts to it.
type ReleasePublisher interface {
	// Publish creates the release. Creating a release whose tag already
	// exists is an error.
	Publish(ctx context.Context, release domain.Release, artifacts []domain.Artifact) error
}
