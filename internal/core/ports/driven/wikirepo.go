package driven

import "context"

// WikiRepo operates on the local checkout of the project wiki, which is
// a separate git repository alongside the main one.
type WikiRepo interface {
	// Dir returns the checkout directory.
	Dir() string

	// Exists reports whether a checkout is already present.
	Exists() bool

	// Clone creates the checkout. Hard failure if the clone fails.
	Clone(ctx context.Context) error

	// Pull updates an existing checkout.
	Pull(ctx context.Context) error

	// HasChanges reports whether the checkout has uncommitted changes.
	HasChanges(ctx context.Context) (bool, error)

	// CommitAndPush stages everything, commits with the given message
	// and pushes.
	CommitAndPush(ctx context.Context, message string) error
}
