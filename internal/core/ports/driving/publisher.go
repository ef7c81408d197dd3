package driving

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// Publisher runs the publish pipeline.
type Publisher interface {
	// Publish executes the plan's steps in order, fail-fast.
	// The returned run records every executed step, including the one
	// that failed. The error is non-nil when any step failed.
	Publish(ctx context.Context, plan domain.PublishPlan) (*domain.PublishRun, error)

	// Status returns the progress of the in-flight run, or nil when no
	// run is active.
	Status() *PublishStatus
}

// PublishStatus is the progress of an in-flight publish run.
type PublishStatus struct {
	// RunID identifies the run.
	RunID string

	// Step is the step currently executing.
	Step domain.StepName

	// StepsDone is the number of completed steps.
	StepsDone int

	// StepsTotal is the number of planned steps.
	StepsTotal int
}
