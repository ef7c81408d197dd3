package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubeharvest/releasekit/internal/adapters/driven/storage/memory"
	"github.com/tubeharvest/releasekit/internal/core/domain"
)

// wikiFixture builds a project with docs and a wiki checkout in temp
// directories.
type wikiFixture struct {
	service *WikiSyncService
	repo    *fakeWikiRepo
	project string
	docs    string
}

func newWikiFixture(t *testing.T) *wikiFixture {
	t.Helper()

	project := t.TempDir()
	docs := filepath.Join(project, "docs")
	require.NoError(t, os.MkdirAll(docs, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(project, "README.md"), []byte("# TubeHarvest\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "Installation.txt"), []byte("install steps"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "API.rst"), []byte("api reference"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(docs, "Usage.md"), []byte("usage"), 0644))
	// Non-documentation files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(docs, "diagram.png"), []byte{0x89}, 0644))

	config := memory.NewConfigStore()
	_ = config.Set("project.dir", project)
	_ = config.Set("project.docs_dir", docs)

	repo := &fakeWikiRepo{dir: t.TempDir(), exists: true}
	service := NewWikiSyncService(repo, &fakeDescriptors{version: "2.1.0"}, config)

	return &wikiFixture{service: service, repo: repo, project: project, docs: docs}
}

func (f *wikiFixture) plan(t *testing.T) *domain.SyncPlan {
	t.Helper()
	plan, err := f.service.Plan(context.Background())
	require.NoError(t, err)
	return plan
}

func TestWikiSync_Plan_RenamesExtensions(t *testing.T) {
	f := newWikiFixture(t)

	plan := f.plan(t)

	dests := map[string]bool{}
	for _, a := range plan.Actions {
		dests[a.Dest] = true
	}
	assert.True(t, dests["Installation.md"], "txt doc should become .md page")
	assert.True(t, dests["API.md"], "rst doc should become .md page")
	assert.True(t, dests["Usage.md"])
	assert.False(t, dests["diagram.png"], "binary files are not wiki pages")
}

func TestWikiSync_Plan_HomeFromReadme(t *testing.T) {
	f := newWikiFixture(t)

	plan := f.plan(t)

	require.NotEmpty(t, plan.Actions)
	assert.Equal(t, "Home.md", plan.Actions[0].Dest)
	assert.Equal(t, filepath.Join(f.project, "README.md"), plan.Actions[0].Source)
}

func TestWikiSync_Plan_SkipsUnchanged(t *testing.T) {
	f := newWikiFixture(t)

	// Pre-populate the checkout with identical content
	require.NoError(t, os.WriteFile(filepath.Join(f.repo.dir, "Usage.md"), []byte("usage"), 0644))

	plan := f.plan(t)

	var usage *domain.SyncAction
	for i := range plan.Actions {
		if plan.Actions[i].Dest == "Usage.md" {
			usage = &plan.Actions[i]
		}
	}
	require.NotNil(t, usage)
	assert.Equal(t, domain.SyncSkip, usage.Kind)
	assert.Equal(t, "unchanged", usage.Reason)
}

// TestWikiSync_Plan_IsPure verifies dry-run semantics: planning mutates
// neither the checkout nor the network-facing repo.
func TestWikiSync_Plan_IsPure(t *testing.T) {
	f := newWikiFixture(t)

	_ = f.plan(t)

	entries, err := os.ReadDir(f.repo.dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "plan must not write to the checkout")
	assert.False(t, f.repo.cloned)
	assert.False(t, f.repo.pulled)
	assert.Empty(t, f.repo.commits)
}

func TestWikiSync_Plan_VersionFromDescriptor(t *testing.T) {
	f := newWikiFixture(t)

	plan := f.plan(t)

	assert.Equal(t, "2.1.0", plan.Version)
	assert.Equal(t, "Sync documentation (v2.1.0)", plan.CommitMessage())
}

func TestWikiSync_Plan_MissingDocsDir(t *testing.T) {
	f := newWikiFixture(t)
	require.NoError(t, os.RemoveAll(f.docs))

	_, err := f.service.Plan(context.Background())

	assert.ErrorIs(t, err, domain.ErrDocsMissing)
}

func TestWikiSync_Apply_CopiesAndPushes(t *testing.T) {
	f := newWikiFixture(t)
	plan := f.plan(t)

	require.NoError(t, f.service.Apply(context.Background(), plan))

	data, err := os.ReadFile(filepath.Join(f.repo.dir, "Installation.md"))
	require.NoError(t, err)
	assert.Equal(t, "install steps", string(data))

	require.Len(t, f.repo.commits, 1)
	assert.Equal(t, "Sync documentation (v2.1.0)", f.repo.commits[0])
	assert.True(t, f.repo.pulled)
}

func TestWikiSync_Apply_EmptyPlanIsNoop(t *testing.T) {
	f := newWikiFixture(t)

	plan := &domain.SyncPlan{Actions: []domain.SyncAction{
		{Kind: domain.SyncSkip, Dest: "Home.md", Reason: "unchanged"},
	}}

	require.NoError(t, f.service.Apply(context.Background(), plan))
	assert.Empty(t, f.repo.commits)
	assert.False(t, f.repo.pulled)
}

// TestWikiSync_Apply_PullFailureIsSoft: a checkout that cannot be
// updated is a warning, not an abort.
func TestWikiSync_Apply_PullFailureIsSoft(t *testing.T) {
	f := newWikiFixture(t)
	f.repo.pullErr = errors.New("remote unreachable")

	plan := f.plan(t)
	err := f.service.Apply(context.Background(), plan)

	require.NoError(t, err)
	assert.Len(t, f.repo.commits, 1)
}

func TestWikiSync_Apply_CloneFailureIsHard(t *testing.T) {
	f := newWikiFixture(t)
	f.repo.exists = false
	f.repo.cloneErr = errors.New("repository not found")

	plan := f.plan(t)
	err := f.service.Apply(context.Background(), plan)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWikiClone)
	assert.Empty(t, f.repo.commits)
}

func TestWikiSync_Apply_PushFailureIsHard(t *testing.T) {
	f := newWikiFixture(t)
	f.repo.pushErr = errors.New("permission denied")

	plan := f.plan(t)
	err := f.service.Apply(context.Background(), plan)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWikiPush)
}

func TestWikiSync_Apply_ClonesMissingCheckout(t *testing.T) {
	f := newWikiFixture(t)
	f.repo.exists = false

	plan := f.plan(t)
	require.NoError(t, f.service.Apply(context.Background(), plan))

	assert.True(t, f.repo.cloned)
	assert.Len(t, f.repo.commits, 1)
}
