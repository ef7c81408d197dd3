// Package wiki implements the WikiRepo port on top of the git CLI.
package wiki

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure GitRepo implements the interface.
var _ driven.WikiRepo = (*GitRepo)(nil)

// GitRepo is a wiki checkout managed through git commands.
type GitRepo struct {
	runner driven.Runner
	url    string
	dir    string
}

// NewGitRepo creates a wiki repository handle. url is the remote wiki
// clone URL and dir the local checkout path.
func NewGitRepo(runner driven.Runner, url, dir string) *GitRepo {
	return &GitRepo{runner: runner, url: url, dir: dir}
}

// Dir returns the checkout directory.
func (g *GitRepo) Dir() string {
	return g.dir
}

// Exists reports whether a checkout is already present.
func (g *GitRepo) Exists() bool {
	info, err := os.Stat(g.dir)
	return err == nil && info.IsDir()
}

// Clone creates the checkout.
func (g *GitRepo) Clone(ctx context.Context) error {
	logger.Info("cloning wiki from %s", g.url)
	result, err := g.runner.Run(ctx, driven.Command{
		Name: "git",
		Args: []string{"clone", g.url, g.dir},
	})
	if err != nil {
		return fmt.Errorf("clone wiki: %w: %s", err, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// Pull updates an existing checkout.
func (g *GitRepo) Pull(ctx context.Context) error {
	result, err := g.runner.Run(ctx, driven.Command{
		Name: "git",
		Args: []string{"pull"},
		Dir:  g.dir,
	})
	if err != nil {
		return fmt.Errorf("pull wiki: %w: %s", err, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// HasChanges reports whether the checkout has uncommitted changes.
func (g *GitRepo) HasChanges(ctx context.Context) (bool, error) {
	result, err := g.runner.Run(ctx, driven.Command{
		Name: "git",
		Args: []string{"status", "--porcelain"},
		Dir:  g.dir,
	})
	if err != nil {
		return false, fmt.Errorf("wiki status: %w", err)
	}
	return strings.TrimSpace(result.Stdout) != "", nil
}

// CommitAndPush stages everything, commits and pushes.
func (g *GitRepo) CommitAndPush(ctx context.Context, message string) error {
	steps := [][]string{
		{"add", "."},
		{"commit", "-m", message},
		{"push"},
	}
	for _, args := range steps {
		result, err := g.runner.Run(ctx, driven.Command{
			Name: "git",
			Args: args,
			Dir:  g.dir,
		})
		if err != nil {
			return fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(result.Stderr))
		}
	}
	return nil
}
