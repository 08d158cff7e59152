// Package livereload watches a small, fixed set of files — the ignore
// file and the app config file — for changes, so the interactive
// prompt console can pick up edits made outside the program without
// restarting. It is deliberately narrow: the core snapshot builder
// never imports this package, since spec.md's Non-goals rule out
// kernel file-notification APIs anywhere in the scan path.
package livereload

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/hollow-host/sentinel/pkg/sentinel/logging"
)

// Watcher watches a fixed list of files for writes, using fsnotify on
// their containing directories. Watching the directory rather than the
// file itself is necessary because most editors save by writing a temp
// file and renaming it over the original, which a file-level watch
// would miss.
type Watcher struct {
	fsw     *fsnotify.Watcher
	mu      sync.Mutex
	closed  bool
	targets map[string]bool // absolute file paths being watched
	dirs    map[string]bool // containing directories already added
}

// New creates a Watcher with no files registered yet.
func New() (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsw:     fsw,
		targets: make(map[string]bool),
		dirs:    make(map[string]bool),
	}, nil
}

// Watch registers one or more files to watch, adding a directory-level
// fsnotify watch for each one's parent if not already present.
func (w *Watcher) Watch(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		w.targets[abs] = true

		dir := filepath.Dir(abs)
		if w.dirs[dir] {
			continue
		}
		if err := w.fsw.Add(dir); err != nil {
			logging.Get("livereload").Warn("failed to watch directory", "dir", dir, "error", err)
			continue
		}
		w.dirs[dir] = true
	}
	return nil
}

// Run blocks until ctx is cancelled, invoking onReload with the
// absolute path of any watched file that was written, created, or
// renamed into place. Events for files not in the registered set are
// ignored.
func (w *Watcher) Run(ctx context.Context, onReload func(path string)) {
	logger := logging.Get("livereload")
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.isTarget(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if onReload != nil {
				onReload(event.Name)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) isTarget(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.targets[abs]
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.fsw.Close()
}
