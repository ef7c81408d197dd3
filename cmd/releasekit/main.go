// Command releasekit is the TubeHarvest release automation tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tubeharvest/releasekit/internal/adapters/driven/config/file"
	"github.com/tubeharvest/releasekit/internal/adapters/driven/descriptor"
	"github.com/tubeharvest/releasekit/internal/adapters/driven/docwatch"
	"github.com/tubeharvest/releasekit/internal/adapters/driven/execrunner"
	"github.com/tubeharvest/releasekit/internal/adapters/driven/github"
	"github.com/tubeharvest/releasekit/internal/adapters/driven/index"
	"github.com/tubeharvest/releasekit/internal/adapters/driven/storage/sqlite"
	"github.com/tubeharvest/releasekit/internal/adapters/driven/wiki"
	"github.com/tubeharvest/releasekit/internal/adapters/driving/cli"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/core/services"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	runner := execrunner.New()
	descriptors := descriptor.NewStore()
	indexClient := newIndexClient(config)

	// The audit log is optional; a publish must not fail because the
	// local database is unavailable.
	var history driven.HistoryStore
	store, err := sqlite.NewStore("")
	if err != nil {
		logger.Warn("publish history unavailable: %v", err)
	} else {
		defer store.Close()
		history = store.HistoryStore()
	}

	var releases driven.ReleasePublisher
	owner := config.GetString("github.owner")
	repo := config.GetString("github.repo")
	if owner != "" && repo != "" {
		releases = github.NewReleasePublisher(owner, repo)
	}

	wikiRepo := wiki.NewGitRepo(runner, wikiURL(config), wikiDir(config))

	var watcher driven.DocWatcher
	if w, err := docwatch.New(); err != nil {
		logger.Warn("doc watching unavailable: %v", err)
	} else {
		watcher = w
	}

	publishService := services.NewPublishService(
		runner, indexClient, descriptors, config, history, releases, cli.Confirm)

	cli.Configure(cli.Dependencies{
		Publisher:  publishService,
		Validator:  services.NewValidationService(descriptors, config),
		WikiSyncer: services.NewWikiSyncService(wikiRepo, descriptors, config),
		Workflows:  services.NewWorkflowService(),
		Templates:  services.NewTemplateLintService(),
		History:    services.NewHistoryService(history),
		Config:     config,
		DocWatcher: watcher,
		Version:    version,
	})

	return cli.Execute()
}

func newIndexClient(config driven.ConfigStore) *index.Client {
	prod := config.GetString("index.prod_upload_url")
	test := config.GetString("index.test_upload_url")
	if prod == "" {
		prod = index.DefaultProdUploadURL
	}
	if test == "" {
		test = index.DefaultTestUploadURL
	}
	return index.NewClient(index.WithUploadURLs(prod, test))
}

func wikiURL(config driven.ConfigStore) string {
	if url := config.GetString("wiki.url"); url != "" {
		return url
	}
	return "https://github.com/tubeharvest/tubeharvest.wiki.git"
}

func wikiDir(config driven.ConfigStore) string {
	if dir := config.GetString("wiki.dir"); dir != "" {
		return dir
	}
	return filepath.Join(os.TempDir(), "tubeharvest-wiki")
}
