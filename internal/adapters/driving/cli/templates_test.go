package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// mockLinter implements driving.TemplateLinter for testing.
type mockLinter struct {
	dir    string
	report *domain.Report
	err    error
}

func (m *mockLinter) Lint(_ context.Context, dir string) (*domain.Report, error) {
	m.dir = dir
	return m.report, m.err
}

func setupTemplatesTest(mock *mockLinter) func() {
	old := templateLinter
	templateLinter = mock
	return func() { templateLinter = old }
}

func TestTemplatesLintCmd_DefaultDirectory(t *testing.T) {
	report := &domain.Report{}
	report.Add("bug_report.yml", "parseable", true, "")
	mock := &mockLinter{report: report}
	cleanup := setupTemplatesTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"templates", "lint"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, ".github/ISSUE_TEMPLATE", mock.dir)
}

func TestTemplatesLintCmd_ExplicitDirectory(t *testing.T) {
	report := &domain.Report{}
	report.Add("bug_report.yml", "schema", false, "element 1: unknown type \"slider\"")
	mock := &mockLinter{report: report}
	cleanup := setupTemplatesTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"templates", "lint", "templates/"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Equal(t, "templates/", mock.dir)
	assert.Contains(t, buf.String(), "slider")
}

func TestTemplatesLintCmd_ServiceNotConfigured(t *testing.T) {
	old := templateLinter
	templateLinter = nil
	defer func() { templateLinter = old }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"templates", "lint"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
