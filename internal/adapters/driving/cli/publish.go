package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// durationPrecision rounds step timings for display.
const durationPrecision = 10 * time.Millisecond

var (
	publishTest       bool
	publishProd       bool
	publishSkipTests  bool
	publishSkipChecks bool
	publishVerifyOnly bool
	publishYes        bool
	publishNoRelease  bool
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Run the publish pipeline",
	Long: `Runs the release pipeline: tests, quality checks, clean, build,
artifact check, index check, upload and post-publish verification.

The pipeline is fail-fast: the first failing step aborts the run.
Exactly one target must be selected with --test or --prod, unless
--verify-only is given.`,
	RunE: runPublish,
}

func init() {
	publishCmd.Flags().BoolVar(&publishTest, "test", false, "publish to the test index")
	publishCmd.Flags().BoolVar(&publishProd, "prod", false, "publish to the production index")
	publishCmd.Flags().BoolVar(&publishSkipTests, "skip-tests", false, "skip the test suite")
	publishCmd.Flags().BoolVar(&publishSkipChecks, "skip-checks", false, "skip formatting and lint checks")
	publishCmd.Flags().BoolVar(&publishVerifyOnly, "verify-only", false, "only verify the published package installs")
	publishCmd.Flags().BoolVarP(&publishYes, "yes", "y", false, "skip the production confirmation prompt")
	publishCmd.Flags().BoolVar(&publishNoRelease, "no-release", false, "skip creating the git hosting release")
	publishCmd.MarkFlagsMutuallyExclusive("test", "prod")
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, _ []string) error {
	if publisher == nil {
		return errors.New("publish service not configured")
	}

	plan := domain.PublishPlan{
		SkipTests:   publishSkipTests,
		SkipChecks:  publishSkipChecks,
		VerifyOnly:  publishVerifyOnly,
		AutoConfirm: publishYes,
		SkipRelease: publishNoRelease,
	}
	switch {
	case publishProd:
		plan.Target = domain.TargetProd
	case publishTest:
		plan.Target = domain.TargetTest
	case !publishVerifyOnly:
		return fmt.Errorf("%w: pass --test or --prod", domain.ErrNoTarget)
	}

	run, err := publisher.Publish(context.Background(), plan)
	if run != nil {
		printRun(cmd, run)
	}
	if err != nil {
		return fmt.Errorf("publish failed: %w", err)
	}

	if run != nil && run.Version != "" {
		cmd.Printf("\n%s version %s published to the %s index.\n",
			passMark(), run.Version, run.Target)
	}
	return nil
}

func printRun(cmd *cobra.Command, run *domain.PublishRun) {
	cmd.Println(headingStyle.Render("Publish pipeline"))
	for _, step := range run.Steps {
		mark := passMark()
		if !step.OK() {
			mark = failMark()
		}
		line := fmt.Sprintf("%s %-15s %s", mark, step.Step, dimStyle.Render(step.Duration.Round(durationPrecision).String()))
		cmd.Println(line)
		if step.Detail != "" {
			cmd.Printf("  %s\n", dimStyle.Render(step.Detail))
		}
		if !step.OK() {
			cmd.Printf("  %s\n", failStyle.Render(step.Err.Error()))
		}
	}
}
