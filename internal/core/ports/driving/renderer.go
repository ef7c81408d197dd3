package driving

import (
	"context"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// WorkflowRenderer renders the CI workflow definition.
type WorkflowRenderer interface {
	// Render produces the workflow YAML for the spec.
	// Output is deterministic: the same spec always renders the same
	// bytes.
	Render(ctx context.Context, spec domain.WorkflowSpec) ([]byte, error)
}

// TemplateLinter validates structured issue template definitions.
type TemplateLinter interface {
	// Lint parses each issue form file in dir and reports schema
	// violations per file.
	Lint(ctx context.Context, dir string) (*domain.Report, error)
}
