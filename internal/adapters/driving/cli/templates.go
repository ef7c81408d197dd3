package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage issue templates",
}

var templatesLintCmd = &cobra.Command{
	Use:   "lint [dir]",
	Short: "Validate structured issue template forms",
	Long: `Parses every issue form in the template directory and checks it
against the form schema: required metadata, element types, identifiers
and labels. The template chooser configuration file is ignored.

Defaults to .github/ISSUE_TEMPLATE when no directory is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTemplatesLint,
}

func init() {
	templatesCmd.AddCommand(templatesLintCmd)
	rootCmd.AddCommand(templatesCmd)
}

func runTemplatesLint(cmd *cobra.Command, args []string) error {
	if templateLinter == nil {
		return errors.New("template lint service not configured")
	}

	dir := ".github/ISSUE_TEMPLATE"
	if len(args) > 0 {
		dir = args[0]
	}

	report, err := templateLinter.Lint(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("lint templates in %s: %w", dir, err)
	}

	printReport(cmd, report)

	if !report.AllPassed() {
		return fmt.Errorf("%d of %d checks failed", report.FailedCount(), report.Total())
	}
	return nil
}
