package services

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/core/ports/driving"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure WikiSyncService implements the interface.
var _ driving.WikiSyncer = (*WikiSyncService)(nil)

// docExtensions are the documentation source extensions that become
// wiki pages.
var docExtensions = map[string]bool{
	".md":  true,
	".txt": true,
	".rst": true,
}

// WikiSyncService mirrors the docs directory into the wiki checkout.
// Planning never mutates anything; only Apply touches the checkout and
// the network, so dry-run mode is Plan followed by printing.
type WikiSyncService struct {
	repo        driven.WikiRepo
	descriptors driven.DescriptorStore
	config      driven.ConfigStore
}

// NewWikiSyncService creates a new wiki sync service.
func NewWikiSyncService(repo driven.WikiRepo, descriptors driven.DescriptorStore, config driven.ConfigStore) *WikiSyncService {
	return &WikiSyncService{repo: repo, descriptors: descriptors, config: config}
}

// Plan computes the actions a sync would perform.
// Files already present in the checkout with identical content are
// planned as skips. When no checkout exists yet, every page is a copy;
// Apply clones before writing.
func (s *WikiSyncService) Plan(ctx context.Context) (*domain.SyncPlan, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	docsDir := s.docsDir()
	if _, err := os.Stat(docsDir); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDocsMissing, docsDir)
	}

	plan := &domain.SyncPlan{Version: s.descriptorVersion()}

	// The wiki Home page comes from the project README when present.
	readme := filepath.Join(s.projectDir(), "README.md")
	if _, err := os.Stat(readme); err == nil {
		plan.Actions = append(plan.Actions, s.planFile(readme, "Home.md"))
	}

	entries, err := os.ReadDir(docsDir)
	if err != nil {
		return nil, fmt.Errorf("read docs directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !docExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	for _, name := range names {
		source := filepath.Join(docsDir, name)
		plan.Actions = append(plan.Actions, s.planFile(source, domain.WikiPageName(name)))
	}

	return plan, nil
}

// planFile decides between copy and skip for one page.
func (s *WikiSyncService) planFile(source, dest string) domain.SyncAction {
	if !s.repo.Exists() {
		return domain.SyncAction{Kind: domain.SyncCopy, Source: source, Dest: dest}
	}

	existing, err := os.ReadFile(filepath.Join(s.repo.Dir(), dest))
	if err != nil {
		return domain.SyncAction{Kind: domain.SyncCopy, Source: source, Dest: dest}
	}

	current, err := os.ReadFile(source)
	if err == nil && bytes.Equal(existing, current) {
		return domain.SyncAction{Kind: domain.SyncSkip, Dest: dest, Reason: "unchanged"}
	}

	return domain.SyncAction{Kind: domain.SyncCopy, Source: source, Dest: dest}
}

// Apply executes the plan: ensures the checkout, copies the planned
// pages, commits and pushes. An empty plan is a no-op success.
func (s *WikiSyncService) Apply(ctx context.Context, plan *domain.SyncPlan) error {
	if plan == nil || plan.Empty() {
		logger.Info("Wiki already up to date, nothing to sync")
		return nil
	}

	if err := s.ensureCheckout(ctx); err != nil {
		return err
	}

	for _, action := range plan.Copies() {
		if err := copyFile(action.Source, filepath.Join(s.repo.Dir(), action.Dest)); err != nil {
			return fmt.Errorf("copy %s: %w", action.Dest, err)
		}
		logger.Debug("copied %s -> %s", action.Source, action.Dest)
	}

	changed, err := s.repo.HasChanges(ctx)
	if err != nil {
		return fmt.Errorf("check wiki changes: %w", err)
	}
	if !changed {
		logger.Info("Wiki checkout unchanged after copy, skipping commit")
		return nil
	}

	if err := s.repo.CommitAndPush(ctx, plan.CommitMessage()); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrWikiPush, err)
	}

	return nil
}

// ensureCheckout clones the wiki when absent and updates it otherwise.
// A failed clone is a hard failure. A failed pull is tolerated: the
// sync continues against the stale checkout.
func (s *WikiSyncService) ensureCheckout(ctx context.Context) error {
	if !s.repo.Exists() {
		if err := s.repo.Clone(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrWikiClone, err)
		}
		return nil
	}

	if err := s.repo.Pull(ctx); err != nil {
		logger.Warn("could not update wiki checkout, syncing against stale copy: %v", err)
	}
	return nil
}

func (s *WikiSyncService) descriptorVersion() string {
	path := filepath.Join(s.projectDir(), s.descriptorPath())
	version, err := s.descriptors.RawVersion(path)
	if err != nil {
		logger.Debug("descriptor version unavailable: %v", err)
		return ""
	}
	return version
}

func (s *WikiSyncService) projectDir() string {
	if dir := s.config.GetString("project.dir"); dir != "" {
		return dir
	}
	return "."
}

func (s *WikiSyncService) docsDir() string {
	if dir := s.config.GetString("project.docs_dir"); dir != "" {
		return dir
	}
	return filepath.Join(s.projectDir(), "docs")
}

func (s *WikiSyncService) descriptorPath() string {
	if p := s.config.GetString("project.descriptor"); p != "" {
		return p
	}
	return "pyproject.toml"
}

// copyFile writes src's content to dst with the wiki's default mode.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0644)
}
