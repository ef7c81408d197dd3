// Package cli implements the releasekit command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/core/ports/driving"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services wired in by Configure. Commands guard against nil so the CLI
// degrades gracefully when a dependency is unavailable.
var (
	publisher       driving.Publisher
	validator       driving.Validator
	wikiSyncer      driving.WikiSyncer
	workflowService driving.WorkflowRenderer
	templateLinter  driving.TemplateLinter
	historyBrowser  driving.HistoryBrowser
	configStore     driven.ConfigStore
	docWatcher      driven.DocWatcher
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "releasekit",
	Short: "Release automation for TubeHarvest",
	Long: `releasekit automates the TubeHarvest release process: publishing to
the package index, validating release readiness, synchronising the
project wiki, and rendering CI configuration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Dependencies carries everything the CLI needs from the composition
// root.
type Dependencies struct {
	Publisher  driving.Publisher
	Validator  driving.Validator
	WikiSyncer driving.WikiSyncer
	Workflows  driving.WorkflowRenderer
	Templates  driving.TemplateLinter
	History    driving.HistoryBrowser
	Config     driven.ConfigStore
	DocWatcher driven.DocWatcher
	Version    string
}

// Configure injects the services the commands run against.
func Configure(deps Dependencies) {
	publisher = deps.Publisher
	validator = deps.Validator
	wikiSyncer = deps.WikiSyncer
	workflowService = deps.Workflows
	templateLinter = deps.Templates
	historyBrowser = deps.History
	configStore = deps.Config
	docWatcher = deps.DocWatcher
	if deps.Version != "" {
		version = deps.Version
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
