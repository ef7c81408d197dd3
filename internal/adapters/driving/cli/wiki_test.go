package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubeharvest/releasekit/internal/adapters/driven/storage/memory"
	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// mockWikiSyncer implements driving.WikiSyncer for testing.
type mockWikiSyncer struct {
	plan    *domain.SyncPlan
	planErr error
	applied *domain.SyncPlan
}

func (m *mockWikiSyncer) Plan(_ context.Context) (*domain.SyncPlan, error) {
	return m.plan, m.planErr
}

func (m *mockWikiSyncer) Apply(_ context.Context, plan *domain.SyncPlan) error {
	m.applied = plan
	return nil
}

func samplePlan() *domain.SyncPlan {
	return &domain.SyncPlan{
		Version: "2.1.0",
		Actions: []domain.SyncAction{
			{Kind: domain.SyncCopy, Source: "README.md", Dest: "Home.md"},
			{Kind: domain.SyncCopy, Source: "docs/usage.txt", Dest: "usage.md"},
			{Kind: domain.SyncSkip, Dest: "faq.md", Reason: "unchanged"},
		},
	}
}

func setupWikiTest(mock *mockWikiSyncer) func() {
	old := wikiSyncer
	wikiSyncer = mock
	return func() {
		wikiSyncer = old
		wikiDryRun = false
	}
}

func TestWikiSyncCmd_AppliesPlan(t *testing.T) {
	mock := &mockWikiSyncer{plan: samplePlan()}
	cleanup := setupWikiTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"wiki", "sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.NotNil(t, mock.applied)
	assert.Contains(t, buf.String(), "README.md -> Home.md")
	assert.Contains(t, buf.String(), "Synced 2 file(s)")
	assert.Contains(t, buf.String(), "Sync documentation (v2.1.0)")
}

func TestWikiSyncCmd_DryRunDoesNotApply(t *testing.T) {
	mock := &mockWikiSyncer{plan: samplePlan()}
	cleanup := setupWikiTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"wiki", "sync", "--dry-run"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Nil(t, mock.applied)
	assert.Contains(t, buf.String(), "Dry run: 2 file(s) would be copied")
}

func TestWikiSyncCmd_EmptyPlanIsNoop(t *testing.T) {
	mock := &mockWikiSyncer{plan: &domain.SyncPlan{Version: "2.1.0"}}
	cleanup := setupWikiTest(mock)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"wiki", "sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Nil(t, mock.applied)
	assert.Contains(t, buf.String(), "up to date")
}

// mockDocWatcher implements driven.DocWatcher for testing. The closed
// channel makes the watch loop return immediately.
type mockDocWatcher struct {
	dir string
}

func (m *mockDocWatcher) Watch(_ context.Context, dir string) (<-chan string, error) {
	m.dir = dir
	ch := make(chan string)
	close(ch)
	return ch, nil
}

func (m *mockDocWatcher) Close() error { return nil }

// The watcher must resolve the docs directory exactly like the sync
// service: project.docs_dir first, then docs under project.dir.
func TestWikiWatchCmd_WatchesConfiguredProjectDocs(t *testing.T) {
	cleanup := setupWikiTest(&mockWikiSyncer{plan: &domain.SyncPlan{}})
	defer cleanup()

	config := memory.NewConfigStore()
	require.NoError(t, config.Set("project.dir", "/work/tubeharvest"))
	watcher := &mockDocWatcher{}

	oldConfig, oldWatcher := configStore, docWatcher
	configStore, docWatcher = config, watcher
	defer func() { configStore, docWatcher = oldConfig, oldWatcher }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"wiki", "watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, filepath.Join("/work/tubeharvest", "docs"), watcher.dir)
}

func TestWikiWatchCmd_DocsDirOverrideWins(t *testing.T) {
	cleanup := setupWikiTest(&mockWikiSyncer{plan: &domain.SyncPlan{}})
	defer cleanup()

	config := memory.NewConfigStore()
	require.NoError(t, config.Set("project.dir", "/work/tubeharvest"))
	require.NoError(t, config.Set("project.docs_dir", "/srv/handbook"))
	watcher := &mockDocWatcher{}

	oldConfig, oldWatcher := configStore, docWatcher
	configStore, docWatcher = config, watcher
	defer func() { configStore, docWatcher = oldConfig, oldWatcher }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"wiki", "watch"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Equal(t, "/srv/handbook", watcher.dir)
}

func TestWikiSyncCmd_ServiceNotConfigured(t *testing.T) {
	old := wikiSyncer
	wikiSyncer = nil
	defer func() { wikiSyncer = old }()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"wiki", "sync"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
}
