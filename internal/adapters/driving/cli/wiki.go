package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tubeharvest/releasekit/internal/logger"
)

var wikiDryRun bool

var wikiCmd = &cobra.Command{
	Use:   "wiki",
	Short: "Manage the project wiki",
}

var wikiSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise documentation into the wiki",
	Long: `Copies README.md (as Home.md) and the documentation directory into
the wiki checkout, renaming .txt and .rst files to .md, then commits
and pushes. Files already up to date are skipped.

With --dry-run the planned actions are printed and nothing is
modified.`,
	RunE: runWikiSync,
}

var wikiWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Sync the wiki whenever documentation changes",
	Long: `Watches the documentation directory and re-runs the wiki sync on
every change. Stops on interrupt.`,
	RunE: runWikiWatch,
}

func init() {
	wikiSyncCmd.Flags().BoolVar(&wikiDryRun, "dry-run", false, "print the plan without changing anything")
	wikiCmd.AddCommand(wikiSyncCmd)
	wikiCmd.AddCommand(wikiWatchCmd)
	rootCmd.AddCommand(wikiCmd)
}

func runWikiSync(cmd *cobra.Command, _ []string) error {
	if wikiSyncer == nil {
		return errors.New("wiki sync service not configured")
	}
	return syncOnce(context.Background(), cmd, wikiDryRun)
}

func syncOnce(ctx context.Context, cmd *cobra.Command, dryRun bool) error {
	plan, err := wikiSyncer.Plan(ctx)
	if err != nil {
		return fmt.Errorf("plan wiki sync: %w", err)
	}

	for _, action := range plan.Actions {
		cmd.Println(action.String())
	}

	if dryRun {
		cmd.Printf("\nDry run: %d file(s) would be copied.\n", len(plan.Copies()))
		return nil
	}
	if plan.Empty() {
		cmd.Println("Wiki already up to date.")
		return nil
	}

	if err := wikiSyncer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("apply wiki sync: %w", err)
	}
	cmd.Printf("\n%s Synced %d file(s): %q\n", passMark(), len(plan.Copies()), plan.CommitMessage())
	return nil
}

// watchDocsDir resolves the documentation directory the same way the
// sync service does, so the watcher and the sync it triggers always
// agree on the directory.
func watchDocsDir() string {
	if configStore != nil {
		if dir := configStore.GetString("project.docs_dir"); dir != "" {
			return dir
		}
		if projectDir := configStore.GetString("project.dir"); projectDir != "" {
			return filepath.Join(projectDir, "docs")
		}
	}
	return "docs"
}

func runWikiWatch(cmd *cobra.Command, _ []string) error {
	if wikiSyncer == nil {
		return errors.New("wiki sync service not configured")
	}
	if docWatcher == nil {
		return errors.New("doc watcher not configured")
	}

	docsDir := watchDocsDir()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events, err := docWatcher.Watch(ctx, docsDir)
	if err != nil {
		return fmt.Errorf("watch %s: %w", docsDir, err)
	}
	defer docWatcher.Close()

	cmd.Printf("Watching %s for changes. Press Ctrl-C to stop.\n", docsDir)
	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped.")
			return nil
		case path, ok := <-events:
			if !ok {
				return nil
			}
			cmd.Printf("change detected: %s\n", path)
			if err := syncOnce(ctx, cmd, false); err != nil {
				// Keep watching; a transient push failure should not
				// end the session.
				logger.Warn("sync failed: %v", err)
			}
		}
	}
}
