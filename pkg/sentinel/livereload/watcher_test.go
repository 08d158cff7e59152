package livereload_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hollow-host/sentinel/pkg/sentinel/livereload"
	"github.com/stretchr/testify/require"
)

func TestWatcherFiresOnRegisteredFileWrite(t *testing.T) {
	dir := t.TempDir()
	ignorePath := filepath.Join(dir, "ignore.txt")
	require.NoError(t, os.WriteFile(ignorePath, []byte("*.tmp\n"), 0o644))

	w, err := livereload.New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(ignorePath))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan string, 1)
	go w.Run(ctx, func(path string) {
		select {
		case reloaded <- path:
		default:
		}
	})

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(ignorePath, []byte("*.tmp\n*.log\n"), 0o644))

	select {
	case path := <-reloaded:
		require.Equal(t, ignorePath, path)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reload notification")
	}
}

func TestWatcherIgnoresUnregisteredFiles(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "config.yaml")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("noise"), 0o644))

	w, err := livereload.New()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Watch(watched))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan string, 4)
	go w.Run(ctx, func(path string) { reloaded <- path })

	time.Sleep(50 * time.Millisecond)
	require.NoError(t, os.WriteFile(other, []byte("more noise"), 0o644))
	time.Sleep(200 * time.Millisecond)

	select {
	case path := <-reloaded:
		t.Fatalf("unexpected reload for unregistered file: %s", path)
	default:
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	w, err := livereload.New()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
