package services

import (
	"context"
	"strings"
	"sync"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
)

// fakeRunner is a driven.Runner that records invocations and fails
// commands matching a substring. onRun can create files (for example
// simulating the build step populating dist/).
type fakeRunner struct {
	mu     sync.Mutex
	cmds   []driven.Command
	failOn string
	onRun  func(cmd driven.Command)
}

func (r *fakeRunner) Run(_ context.Context, cmd driven.Command) (driven.RunResult, error) {
	r.mu.Lock()
	r.cmds = append(r.cmds, cmd)
	r.mu.Unlock()

	if r.onRun != nil {
		r.onRun(cmd)
	}

	line := cmd.Name + " " + strings.Join(cmd.Args, " ")
	if r.failOn != "" && strings.Contains(line, r.failOn) {
		return driven.RunResult{ExitCode: 1, Stderr: "simulated failure"}, errExit
	}
	return driven.RunResult{}, nil
}

func (r *fakeRunner) ran(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cmd := range r.cmds {
		line := cmd.Name + " " + strings.Join(cmd.Args, " ")
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// fakeIndex is a driven.IndexClient that records calls.
type fakeIndex struct {
	checkErr  error
	uploadErr error

	checked  [][]domain.Artifact
	uploads  []domain.PublishTarget
	uploaded [][]domain.Artifact
}

func (f *fakeIndex) Check(_ context.Context, artifacts []domain.Artifact) error {
	f.checked = append(f.checked, artifacts)
	return f.checkErr
}

func (f *fakeIndex) Upload(_ context.Context, target domain.PublishTarget, artifacts []domain.Artifact) error {
	f.uploads = append(f.uploads, target)
	f.uploaded = append(f.uploaded, artifacts)
	return f.uploadErr
}

// fakeDescriptors is a driven.DescriptorStore serving a fixed
// descriptor and version.
type fakeDescriptors struct {
	desc    *domain.Descriptor
	version string
	loadErr error
	rawErr  error
}

func (f *fakeDescriptors) Load(string) (*domain.Descriptor, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.desc, nil
}

func (f *fakeDescriptors) RawVersion(string) (string, error) {
	if f.rawErr != nil {
		return "", f.rawErr
	}
	return f.version, nil
}

// fakeReleases is a driven.ReleasePublisher that records releases.
type fakeReleases struct {
	err      error
	releases []domain.Release
}

func (f *fakeReleases) Publish(_ context.Context, release domain.Release, _ []domain.Artifact) error {
	if f.err != nil {
		return f.err
	}
	f.releases = append(f.releases, release)
	return nil
}

// fakeWikiRepo is a driven.WikiRepo over a temp directory.
type fakeWikiRepo struct {
	dir    string
	exists bool

	cloneErr error
	pullErr  error
	pushErr  error

	cloned  bool
	pulled  bool
	commits []string
}

func (f *fakeWikiRepo) Dir() string  { return f.dir }
func (f *fakeWikiRepo) Exists() bool { return f.exists }

func (f *fakeWikiRepo) Clone(context.Context) error {
	if f.cloneErr != nil {
		return f.cloneErr
	}
	f.cloned = true
	f.exists = true
	return nil
}

func (f *fakeWikiRepo) Pull(context.Context) error {
	if f.pullErr != nil {
		return f.pullErr
	}
	f.pulled = true
	return nil
}

func (f *fakeWikiRepo) HasChanges(context.Context) (bool, error) {
	return true, nil
}

func (f *fakeWikiRepo) CommitAndPush(_ context.Context, message string) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.commits = append(f.commits, message)
	return nil
}

var errExit = &exitError{}

type exitError struct{}

func (e *exitError) Error() string { return "exit status 1" }
