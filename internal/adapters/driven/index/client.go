// Package index implements the IndexClient port against a PyPI-style
// package index over HTTP.
package index

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"github.com/tubeharvest/releasekit/internal/core/domain"
	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.IndexClient = (*Client)(nil)

const (
	// DefaultProdUploadURL is the production index upload endpoint.
	DefaultProdUploadURL = "https://upload.pypi.org/legacy/"

	// DefaultTestUploadURL is the test index upload endpoint.
	DefaultTestUploadURL = "https://test.pypi.org/legacy/"

	// tokenUser is the username the index expects for token auth.
	tokenUser = "__token__"

	// uploadRate throttles uploads so a full artifact set never trips
	// the index's abuse limits.
	uploadRate = 0.5

	maxAttempts    = 3
	initialBackoff = 2 * time.Second
)

// EnvProdToken and EnvTestToken name the environment variables holding
// the index API tokens.
const (
	EnvProdToken = "RELEASEKIT_PROD_TOKEN"
	EnvTestToken = "RELEASEKIT_TEST_TOKEN"
)

// Client uploads build artifacts to a package index.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	prodURL    string
	testURL    string
	backoff    time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithUploadURLs overrides the upload endpoints.
func WithUploadURLs(prod, test string) Option {
	return func(cl *Client) {
		cl.prodURL = prod
		cl.testURL = test
	}
}

// NewClient creates an index client with default endpoints.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		limiter:    rate.NewLimiter(rate.Limit(uploadRate), 1),
		prodURL:    DefaultProdUploadURL,
		testURL:    DefaultTestUploadURL,
		backoff:    initialBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check validates artifact files against index rules without uploading:
// every artifact must exist, be non-empty and be a recognised
// distribution format.
func (c *Client) Check(_ context.Context, artifacts []domain.Artifact) error {
	if len(artifacts) == 0 {
		return fmt.Errorf("%w: no artifacts to check", domain.ErrArtifactsMissing)
	}
	for _, a := range artifacts {
		if a.Kind == domain.ArtifactUnknown {
			return fmt.Errorf("%w: %s is not a recognised distribution", domain.ErrInvalidInput, a.Name())
		}
		info, err := os.Stat(a.Path)
		if err != nil {
			return fmt.Errorf("%w: %s", domain.ErrArtifactsMissing, a.Path)
		}
		if info.Size() == 0 {
			return fmt.Errorf("%w: %s is empty", domain.ErrInvalidInput, a.Name())
		}
	}
	return nil
}

// Upload pushes the artifacts to the index selected by target. Server
// errors, network failures and throttling (429) are retried with
// exponential backoff; rejections (other 4xx) fail immediately.
func (c *Client) Upload(ctx context.Context, target domain.PublishTarget, artifacts []domain.Artifact) error {
	token, err := c.token(target)
	if err != nil {
		return err
	}
	url := c.uploadURL(target)

	for _, artifact := range artifacts {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		logger.Info("uploading %s to %s index", artifact.Name(), target)
		if err := c.uploadWithRetry(ctx, url, token, artifact); err != nil {
			return fmt.Errorf("upload %s: %w", artifact.Name(), err)
		}
	}
	return nil
}

func (c *Client) uploadURL(target domain.PublishTarget) string {
	if target == domain.TargetProd {
		return c.prodURL
	}
	return c.testURL
}

func (c *Client) token(target domain.PublishTarget) (string, error) {
	env := EnvTestToken
	if target == domain.TargetProd {
		env = EnvProdToken
	}
	if token := os.Getenv(env); token != "" {
		return token, nil
	}
	// Fall back to the conventional twine variable.
	if token := os.Getenv("TWINE_PASSWORD"); token != "" {
		return token, nil
	}
	return "", fmt.Errorf("%w: set %s", domain.ErrTokenMissing, env)
}

func (c *Client) uploadWithRetry(ctx context.Context, url, token string, artifact domain.Artifact) error {
	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := c.uploadOne(ctx, url, token, artifact)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable(err) {
			return err
		}
		if attempt == maxAttempts {
			break
		}

		logger.Warn("upload attempt %d failed, retrying in %s: %v", attempt, backoff, err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}

func retryable(err error) bool {
	return !errors.Is(err, domain.ErrUploadRejected) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func (c *Client) uploadOne(ctx context.Context, url, token string, artifact domain.Artifact) error {
	body, contentType, err := multipartBody(artifact)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(tokenUser, token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: index throttled the upload", domain.ErrRateLimited)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("%w: %s: %s", domain.ErrUploadRejected, resp.Status, bytes.TrimSpace(detail))
	default:
		return fmt.Errorf("index returned %s", resp.Status)
	}
}

// multipartBody builds the legacy upload form: the action fields plus
// the artifact content.
func multipartBody(artifact domain.Artifact) (*bytes.Buffer, string, error) {
	data, err := os.ReadFile(artifact.Path)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %s", domain.ErrArtifactsMissing, artifact.Path)
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		":action":          "file_upload",
		"protocol_version": "1",
		"filetype":         fileType(artifact.Kind),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	part, err := w.CreateFormFile("content", filepath.Base(artifact.Path))
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func fileType(kind domain.ArtifactKind) string {
	if kind == domain.ArtifactWheel {
		return "bdist_wheel"
	}
	return "sdist"
}
