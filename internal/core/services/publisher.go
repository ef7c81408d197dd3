package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/core/ports/driving"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure PublishService implements the interface.
var _ driving.Publisher = (*PublishService)(nil)

// ConfirmFunc asks the user a yes/no question before a production
// upload. It returns true only on an explicit "yes".
type ConfirmFunc func(prompt string) (bool, error)

// PublishService runs the publish pipeline: tests, quality checks,
// clean, build, artifact check, index check, upload, release, verify.
// The pipeline is fail-fast; the first failing step aborts the run.
type PublishService struct {
	runner      driven.Runner
	index       driven.IndexClient
	descriptors driven.DescriptorStore
	config      driven.ConfigStore
	history     driven.HistoryStore
	releases    driven.ReleasePublisher
	confirm     ConfirmFunc

	// Status tracking
	mu     sync.RWMutex
	status *driving.PublishStatus
}

// NewPublishService creates a new publish pipeline service.
// history and releases are optional - if nil, runs are not recorded and
// the release step is skipped with a warning.
func NewPublishService(
	runner driven.Runner,
	index driven.IndexClient,
	descriptors driven.DescriptorStore,
	config driven.ConfigStore,
	history driven.HistoryStore,
	releases driven.ReleasePublisher,
	confirm ConfirmFunc,
) *PublishService {
	return &PublishService{
		runner:      runner,
		index:       index,
		descriptors: descriptors,
		config:      config,
		history:     history,
		releases:    releases,
		confirm:     confirm,
	}
}

// Publish executes the plan's steps in order.
func (s *PublishService) Publish(ctx context.Context, plan domain.PublishPlan) (*domain.PublishRun, error) {
	if plan.Target == "" && !plan.VerifyOnly {
		return nil, domain.ErrNoTarget
	}

	version := s.descriptorVersion()
	run := &domain.PublishRun{
		ID:        uuid.NewString(),
		Version:   version,
		Target:    plan.Target,
		StartedAt: time.Now(),
	}

	steps := plan.Steps()
	s.setStatus(&driving.PublishStatus{RunID: run.ID, StepsTotal: len(steps)})
	defer s.clearStatus()

	logger.Info("Starting publish run %s (version %s, target %s)", run.ID, version, plan.Target)

	var artifacts []domain.Artifact
	var failure error

	for i, step := range steps {
		s.updateStatus(step, i)
		logger.Section(string(step))

		start := time.Now()
		detail, err := s.runStep(ctx, step, plan, &artifacts)
		result := domain.StepResult{
			Step:     step,
			Err:      err,
			Duration: time.Since(start),
			Detail:   detail,
		}
		run.Steps = append(run.Steps, result)

		if err != nil {
			failure = fmt.Errorf("%w: %s: %w", domain.ErrStepFailed, step, err)
			break
		}
	}

	run.FinishedAt = time.Now()
	run.Succeeded = failure == nil

	s.record(ctx, run)

	return run, failure
}

// Status returns the progress of the in-flight run.
func (s *PublishService) Status() *driving.PublishStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.status == nil {
		return nil
	}
	copied := *s.status
	return &copied
}

// runStep dispatches one pipeline step.
func (s *PublishService) runStep(ctx context.Context, step domain.StepName, plan domain.PublishPlan, artifacts *[]domain.Artifact) (string, error) {
	switch step {
	case domain.StepTests:
		return s.runTests(ctx)
	case domain.StepChecks:
		return s.runChecks(ctx)
	case domain.StepClean:
		return s.clean()
	case domain.StepBuild:
		return s.build(ctx)
	case domain.StepArtifactCheck:
		set, err := s.checkArtifacts()
		if err != nil {
			return "", err
		}
		*artifacts = set.Uploadable()
		return fmt.Sprintf("%d artifacts", len(*artifacts)), nil
	case domain.StepIndexCheck:
		return "", s.index.Check(ctx, *artifacts)
	case domain.StepUpload:
		return "", s.upload(ctx, plan, *artifacts)
	case domain.StepRelease:
		return s.release(ctx, *artifacts)
	case domain.StepVerify:
		return "", s.verify(ctx, plan.Target)
	default:
		return "", fmt.Errorf("%w: unknown step %q", domain.ErrInvalidInput, step)
	}
}

func (s *PublishService) runTests(ctx context.Context) (string, error) {
	res, err := s.runner.Run(ctx, driven.Command{
		Name: s.interpreter(),
		Args: []string{"-m", "pytest", "tests/", "-v"},
		Dir:  s.projectDir(),
	})
	if err != nil {
		return res.Stdout, fmt.Errorf("tests failed: %w", err)
	}
	return "", nil
}

// runChecks runs the format check and the strict lint pass. The strict
// selectors match the build-breaking CI classes; style-only violations
// are not checked here.
func (s *PublishService) runChecks(ctx context.Context) (string, error) {
	pkg := s.packageName()

	if _, err := s.runner.Run(ctx, driven.Command{
		Name: s.interpreter(),
		Args: []string{"-m", "black", "--check", pkg + "/"},
		Dir:  s.projectDir(),
	}); err != nil {
		return "", fmt.Errorf("formatting check failed (run: black %s/): %w", pkg, err)
	}

	selectors := strings.Join(domain.DefaultLintPolicy().StrictSelectors, ",")
	if _, err := s.runner.Run(ctx, driven.Command{
		Name: s.interpreter(),
		Args: []string{"-m", "flake8", pkg + "/", "--select=" + selectors},
		Dir:  s.projectDir(),
	}); err != nil {
		return "", fmt.Errorf("lint check failed: %w", err)
	}

	return "", nil
}

// clean removes previous build output. Missing directories are fine.
func (s *PublishService) clean() (string, error) {
	dir := s.projectDir()
	removed := 0

	for _, name := range []string{"build", "dist"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			if err := os.RemoveAll(path); err != nil {
				return "", fmt.Errorf("remove %s: %w", name, err)
			}
			removed++
		}
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.egg-info"))
	for _, m := range matches {
		if err := os.RemoveAll(m); err != nil {
			return "", fmt.Errorf("remove %s: %w", filepath.Base(m), err)
		}
		removed++
	}

	return fmt.Sprintf("removed %d entries", removed), nil
}

func (s *PublishService) build(ctx context.Context) (string, error) {
	res, err := s.runner.Run(ctx, driven.Command{
		Name: s.interpreter(),
		Args: []string{"-m", "build"},
		Dir:  s.projectDir(),
	})
	if err != nil {
		return res.Stderr, fmt.Errorf("build failed: %w", err)
	}
	return "", nil
}

// checkArtifacts scans the dist directory and verifies that the build
// produced both a wheel and a source distribution.
func (s *PublishService) checkArtifacts() (domain.ArtifactSet, error) {
	dist := filepath.Join(s.projectDir(), s.distDir())

	entries, err := os.ReadDir(dist)
	if err != nil {
		return domain.ArtifactSet{}, fmt.Errorf("%w: no dist directory", domain.ErrArtifactsMissing)
	}

	var set domain.ArtifactSet
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dist, entry.Name())
		info, err := entry.Info()
		var size int64
		if err == nil {
			size = info.Size()
		}
		set.Artifacts = append(set.Artifacts, domain.Artifact{
			Path: path,
			Kind: domain.ClassifyArtifact(path),
			Size: size,
		})
	}

	if !set.Complete() {
		return set, fmt.Errorf("%w: need both wheel and sdist in %s", domain.ErrArtifactsMissing, dist)
	}

	return set, nil
}

func (s *PublishService) upload(ctx context.Context, plan domain.PublishPlan, artifacts []domain.Artifact) error {
	if plan.Target == domain.TargetProd && !plan.AutoConfirm {
		if s.confirm == nil {
			return domain.ErrConfirmationDeclined
		}
		ok, err := s.confirm("Are you sure you want to publish to the production index? (yes/no): ")
		if err != nil {
			return fmt.Errorf("%w: %w", domain.ErrConfirmationDeclined, err)
		}
		if !ok {
			return domain.ErrConfirmationDeclined
		}
	}

	return s.index.Upload(ctx, plan.Target, artifacts)
}

func (s *PublishService) release(ctx context.Context, artifacts []domain.Artifact) (string, error) {
	if s.releases == nil {
		logger.Warn("release publisher not configured, skipping release step")
		return "skipped", nil
	}

	version := s.descriptorVersion()
	if version == "" {
		return "", fmt.Errorf("%w: cannot tag release without a version", domain.ErrDescriptorInvalid)
	}

	rel := domain.ReleaseForVersion(version)
	if err := s.releases.Publish(ctx, rel, artifacts); err != nil {
		return "", fmt.Errorf("publish release %s: %w", rel.Tag, err)
	}
	return rel.Tag, nil
}

// verify installs the published package into a scratch environment and
// smoke-tests the import and the CLI entry point. The scratch
// environment is removed afterwards, best effort.
func (s *PublishService) verify(ctx context.Context, target domain.PublishTarget) error {
	scratch, err := os.MkdirTemp("", "releasekit-verify-")
	if err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(scratch); err != nil {
			logger.Warn("could not remove scratch environment %s: %v", scratch, err)
		}
	}()

	env := filepath.Join(scratch, "env")
	if _, err := s.runner.Run(ctx, driven.Command{
		Name: s.interpreter(),
		Args: []string{"-m", "venv", env},
	}); err != nil {
		return fmt.Errorf("create scratch env: %w", err)
	}

	pkg := s.packageName()
	installArgs := []string{"install", pkg}
	if target == domain.TargetTest {
		installArgs = []string{
			"install",
			"--index-url", s.config.GetString("index.test_simple_url"),
			"--extra-index-url", s.config.GetString("index.prod_simple_url"),
			pkg,
		}
	}

	bin := filepath.Join(env, "bin")
	if _, err := s.runner.Run(ctx, driven.Command{Name: filepath.Join(bin, "pip"), Args: installArgs}); err != nil {
		return fmt.Errorf("install %s: %w", pkg, err)
	}

	importStmt := fmt.Sprintf("import %s", strings.ReplaceAll(pkg, "-", "_"))
	if _, err := s.runner.Run(ctx, driven.Command{
		Name: filepath.Join(bin, "python"),
		Args: []string{"-c", importStmt},
	}); err != nil {
		return fmt.Errorf("import check: %w", err)
	}

	if _, err := s.runner.Run(ctx, driven.Command{
		Name: filepath.Join(bin, domain.EntryPointCLI),
		Args: []string{"--help"},
	}); err != nil {
		return fmt.Errorf("entry point check: %w", err)
	}

	return nil
}

// record saves the run to the history store, best effort.
func (s *PublishService) record(ctx context.Context, run *domain.PublishRun) {
	if s.history == nil {
		return
	}
	if err := s.history.SaveRun(ctx, run); err != nil {
		logger.Warn("could not record publish run %s: %v", run.ID, err)
	}
}

func (s *PublishService) descriptorVersion() string {
	path := filepath.Join(s.projectDir(), s.descriptorPath())
	version, err := s.descriptors.RawVersion(path)
	if err != nil {
		logger.Debug("descriptor version unavailable: %v", err)
		return ""
	}
	return version
}

func (s *PublishService) setStatus(status *driving.PublishStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

func (s *PublishService) updateStatus(step domain.StepName, done int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != nil {
		s.status.Step = step
		s.status.StepsDone = done
	}
}

func (s *PublishService) clearStatus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = nil
}

// Config accessors with defaults.

func (s *PublishService) projectDir() string {
	if dir := s.config.GetString("project.dir"); dir != "" {
		return dir
	}
	return "."
}

func (s *PublishService) packageName() string {
	if pkg := s.config.GetString("project.package"); pkg != "" {
		return pkg
	}
	return "tubeharvest"
}

func (s *PublishService) descriptorPath() string {
	if p := s.config.GetString("project.descriptor"); p != "" {
		return p
	}
	return "pyproject.toml"
}

func (s *PublishService) distDir() string {
	if d := s.config.GetString("project.dist_dir"); d != "" {
		return d
	}
	return "dist"
}

func (s *PublishService) interpreter() string {
	if p := s.config.GetString("project.interpreter"); p != "" {
		return p
	}
	return "python"
}
