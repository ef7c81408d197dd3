package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

var validateProjectDir string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check release readiness",
	Long: `Validates the project against the release checklist: descriptor
metadata, package structure, required files, version consistency,
dependencies, entry points and manifest coverage.

Exits non-zero when any check fails.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateProjectDir, "project", "", "project directory (defaults to configured project.dir)")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if validator == nil {
		return errors.New("validation service not configured")
	}

	dir := validateProjectDir
	if dir == "" && configStore != nil {
		dir = configStore.GetString("project.dir")
	}
	if dir == "" {
		dir = "."
	}

	report, err := validator.Validate(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("validation failed to run: %w", err)
	}

	printReport(cmd, report)

	if !report.AllPassed() {
		return fmt.Errorf("%d of %d checks failed", report.FailedCount(), report.Total())
	}
	cmd.Printf("\n%s Ready for release.\n", passMark())
	return nil
}

func printReport(cmd *cobra.Command, report *domain.Report) {
	for _, category := range report.Categories {
		cmd.Println(headingStyle.Render(category.Name))
		for _, check := range category.Checks {
			mark := passMark()
			if !check.Passed {
				mark = failMark()
			}
			cmd.Printf("  %s %s\n", mark, check.Name)
			if !check.Passed && check.Detail != "" {
				cmd.Printf("      %s\n", warnStyle.Render(check.Detail))
			}
		}
	}
	cmd.Printf("\n%d/%d checks passed (%.0f%%)\n",
		report.PassedCount(), report.Total(), report.SuccessRate())
}
