package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driving"
)

// Ensure TemplateLintService implements the interface.
var _ driving.TemplateLinter = (*TemplateLintService)(nil)

// TemplateLintService validates structured issue template definitions
// (the ISSUE_TEMPLATE form files).
type TemplateLintService struct{}

// NewTemplateLintService creates a new template linter.
func NewTemplateLintService() *TemplateLintService {
	return &TemplateLintService{}
}

// Lint parses each issue form file in dir and reports schema violations
// per file. The config.yml chooser file is not a form and is skipped.
func (s *TemplateLintService) Lint(ctx context.Context, dir string) (*domain.Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read template directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		if name == "config.yml" || name == "config.yaml" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no issue form files in %s", domain.ErrNotFound, dir)
	}

	report := &domain.Report{}
	for _, name := range names {
		s.lintFile(report, dir, name)
	}

	return report, nil
}

func (s *TemplateLintService) lintFile(report *domain.Report, dir, name string) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		report.Add(name, "readable", false, err.Error())
		return
	}

	var form domain.IssueForm
	if err := yaml.Unmarshal(data, &form); err != nil {
		report.Add(name, "parseable", false, err.Error())
		return
	}
	report.Add(name, "parseable", true, "")

	problems := form.Problems()
	if len(problems) == 0 {
		report.Add(name, "schema", true, "")
		return
	}
	report.Add(name, "schema", false, strings.Join(problems, "; "))
}
