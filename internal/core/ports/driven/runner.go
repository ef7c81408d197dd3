package driven

import "context"

// Command describes one external process invocation.
type Command struct {
	// Name is the executable name or path.
	Name string

	// Args are the command arguments.
	Args []string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Env are extra environment entries in KEY=VALUE form, appended to
	// the inherited environment.
	Env []string
}

// RunResult is the outcome of a completed command.
type RunResult struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// ExitCode is the process exit code. Zero on success.
	ExitCode int
}

// Runner executes external commands (test runners, build tools, git).
// Implementations must honour context cancellation by killing the
// process.
type Runner interface {
	// Run executes the command and waits for it to finish.
	// A non-zero exit code is returned as an error; the RunResult is
	// populated in both cases so callers can inspect output.
	Run(ctx context.Context, cmd Command) (RunResult, error)
}
