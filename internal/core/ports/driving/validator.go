package driving

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// Validator checks that the project is properly configured for
// publishing.
type Validator interface {
	// Validate runs all validation categories against the project
	// directory and returns the categorised report. The error is
	// reserved for failures of the validator itself; a failing check is
	// reported, not returned.
	Validate(ctx context.Context, projectDir string) (*domain.Report, error)
}
