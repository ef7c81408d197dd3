package driven

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// IndexClient talks to a package index (test or production).
type IndexClient interface {
	// Check validates artifact metadata against index rules without
	// uploading anything.
	Check(ctx context.Context, artifacts []domain.Artifact) error

	// Upload pushes the artifacts to the index selected by target.
	// Transient failures are retried; rejections are not.
	Upload(ctx context.Context, target domain.PublishTarget, artifacts []domain.Artifact) error
}
