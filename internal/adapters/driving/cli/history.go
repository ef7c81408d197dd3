package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past publish runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyBrowser == nil {
		return errors.New("history service not configured")
	}

	runs, err := historyBrowser.List(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}
	if len(runs) == 0 {
		cmd.Println("No publish runs recorded.")
		return nil
	}

	for _, run := range runs {
		mark := passMark()
		outcome := "succeeded"
		if !run.Succeeded {
			mark = failMark()
			outcome = fmt.Sprintf("failed at %s", run.FailedStep())
		}
		cmd.Printf("%s %s  %s -> %s  %s  %s\n",
			mark,
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Version, run.Target,
			outcome,
			dimStyle.Render(run.ID))
	}
	return nil
}
