package docwatch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsDocChanges(t *testing.T) {
	dir := t.TempDir()
	watcher, err := New()
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := watcher.Watch(ctx, dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "usage.md")
	require.NoError(t, os.WriteFile(path, []byte("# Usage"), 0644))

	select {
	case got := <-events:
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no event received")
	}
}

func TestWatcher_IgnoresNonDocFiles(t *testing.T) {
	dir := t.TempDir()
	watcher, err := New()
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := watcher.Watch(ctx, dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scratch.pyc"), []byte("x"), 0644))

	select {
	case got := <-events:
		t.Fatalf("unexpected event for %s", got)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_ClosesChannelOnCancel(t *testing.T) {
	watcher, err := New()
	require.NoError(t, err)
	defer watcher.Close()

	ctx, cancel := context.WithCancel(context.Background())
	events, err := watcher.Watch(ctx, t.TempDir())
	require.NoError(t, err)

	cancel()

	select {
	case _, open := <-events:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	watcher, err := New()
	require.NoError(t, err)
	defer watcher.Close()

	_, err = watcher.Watch(context.Background(), filepath.Join(t.TempDir(), "absent"))

	assert.Error(t, err)
}

func TestIsDocFile(t *testing.T) {
	assert.True(t, isDocFile("README.md"))
	assert.True(t, isDocFile("docs/usage.txt"))
	assert.True(t, isDocFile("docs/API.RST"))
	assert.False(t, isDocFile("app.py"))
	assert.False(t, isDocFile("dist/pkg.whl"))
}
