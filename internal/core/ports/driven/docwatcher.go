package driven

import "context"

// DocWatcher reports changes under a documentation directory.
type DocWatcher interface {
	// Watch emits the path of each changed file until ctx is cancelled.
	// The returned channel is closed when watching stops.
	Watch(ctx context.Context, dir string) (<-chan string, error)

	// Close releases watcher resources.
	Close() error
}
