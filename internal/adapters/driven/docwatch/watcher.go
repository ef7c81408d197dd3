// Package docwatch implements the DocWatcher port with fsnotify.
package docwatch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tubeharvest/releasekit/internal/core/ports/driven"
	"github.com/tubeharvest/releasekit/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DocWatcher = (*Watcher)(nil)

// debounceWindow suppresses the duplicate events editors emit for a
// single save.
const debounceWindow = 500 * time.Millisecond

// Watcher reports documentation file changes.
type Watcher struct {
	fs *fsnotify.Watcher
}

// New creates a doc watcher.
func New() (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{fs: fs}, nil
}

// Watch emits the path of each changed documentation file under dir
// until ctx is cancelled.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan string, error) {
	if err := w.fs.Add(dir); err != nil {
		return nil, err
	}

	out := make(chan string)
	go w.loop(ctx, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, out chan<- string) {
	defer close(out)
	lastSeen := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !isDocFile(event.Name) {
				continue
			}
			now := time.Now()
			if last, seen := lastSeen[event.Name]; seen && now.Sub(last) < debounceWindow {
				continue
			}
			lastSeen[event.Name] = now

			select {
			case out <- event.Name:
			case <-ctx.Done():
				return
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// Close releases watcher resources.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

// isDocFile reports whether path is a file the wiki sync would pick up.
func isDocFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".txt", ".rst":
		return true
	default:
		return false
	}
}
