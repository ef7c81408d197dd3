// Package github publishes project releases through the GitHub API.
package github

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure ReleasePublisher implements the interface.
var _ driven.ReleasePublisher = (*ReleasePublisher)(nil)

const (
	// DefaultTimeout is the HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// EnvToken names the environment variable holding the API token.
	EnvToken = "RELEASEKIT_GITHUB_TOKEN"
)

// ReleasePublisher creates GitHub releases and attaches build artifacts.
type ReleasePublisher struct {
	gh    *gh.Client
	owner string
	repo  string
}

// NewReleasePublisher creates a publisher for owner/repo. The API token
// is read lazily from the environment on first use.
func NewReleasePublisher(owner, repo string) *ReleasePublisher {
	return &ReleasePublisher{owner: owner, repo: repo}
}

// newReleasePublisherWithClient is used by tests to inject a client.
func newReleasePublisherWithClient(client *gh.Client, owner, repo string) *ReleasePublisher {
	return &ReleasePublisher{gh: client, owner: owner, repo: repo}
}

// ensureClient initializes the go-github client if not already done.
// This is called lazily so the token is only required when publishing.
func (p *ReleasePublisher) ensureClient(ctx context.Context) error {
	if p.gh != nil {
		return nil
	}

	token := os.Getenv(EnvToken)
	if token == "" {
		token = os.Getenv("GITHUB_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("%w: set %s", domain.ErrTokenMissing, EnvToken)
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = DefaultTimeout
	p.gh = gh.NewClient(tc)

	return nil
}

// Publish creates the release and uploads the artifacts as assets.
func (p *ReleasePublisher) Publish(ctx context.Context, release domain.Release, artifacts []domain.Artifact) error {
	if err := p.ensureClient(ctx); err != nil {
		return err
	}

	existing, resp, err := p.gh.Repositories.GetReleaseByTag(ctx, p.owner, p.repo, release.Tag)
	if err == nil && existing != nil {
		return fmt.Errorf("%w: release %s already exists", domain.ErrInvalidInput, release.Tag)
	}
	if resp == nil || resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("look up release %s: %w", release.Tag, err)
	}

	created, _, err := p.gh.Repositories.CreateRelease(ctx, p.owner, p.repo, &gh.RepositoryRelease{
		TagName:    gh.Ptr(release.Tag),
		Name:       gh.Ptr(release.Name),
		Body:       gh.Ptr(release.Body),
		Prerelease: gh.Ptr(release.Prerelease),
	})
	if err != nil {
		return fmt.Errorf("create release %s: %w", release.Tag, err)
	}
	logger.Info("created release %s", release.Tag)

	for _, artifact := range artifacts {
		if err := p.uploadAsset(ctx, created.GetID(), artifact); err != nil {
			return err
		}
	}
	return nil
}

func (p *ReleasePublisher) uploadAsset(ctx context.Context, releaseID int64, artifact domain.Artifact) error {
	file, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrArtifactsMissing, artifact.Path)
	}
	defer file.Close()

	_, _, err = p.gh.Repositories.UploadReleaseAsset(ctx, p.owner, p.repo, releaseID, &gh.UploadOptions{
		Name: artifact.Name(),
	}, file)
	if err != nil {
		return fmt.Errorf("upload asset %s: %w", artifact.Name(), err)
	}
	logger.Debug("attached %s", artifact.Name())
	return nil
}
