// Package execrunner implements the Runner port with os/exec.
package execrunner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure Runner implements the interface.
var _ driven.Runner = (*Runner)(nil)

// Runner executes commands as child processes. Context cancellation
// kills the process.
type Runner struct{}

// New creates a new process runner.
func New() *Runner {
	return &Runner{}
}

// Run executes the command and waits for it to finish.
func (r *Runner) Run(ctx context.Context, cmd driven.Command) (driven.RunResult, error) {
	logger.Debug("running: %s %s", cmd.Name, strings.Join(cmd.Args, " "))

	c := exec.CommandContext(ctx, cmd.Name, cmd.Args...)
	c.Dir = cmd.Dir
	if len(cmd.Env) > 0 {
		c.Env = append(os.Environ(), cmd.Env...)
	}

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := driven.RunResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return result, nil
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
		return result, fmt.Errorf("%s exited with code %d", cmd.Name, result.ExitCode)
	default:
		// Start failures (missing binary, bad dir) have no exit code.
		result.ExitCode = -1
		return result, fmt.Errorf("run %s: %w", cmd.Name, err)
	}
}
