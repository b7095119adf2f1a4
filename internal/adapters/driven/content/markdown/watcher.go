package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/perfecxion/sitesearch/internal/core/ports/driven"
	"github.com/perfecxion/sitesearch/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.ContentWatcher = (*Watcher)(nil)

// DefaultDebounce is how long the watcher waits for a burst of events to settle.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reports changes to content files below a directory.
type Watcher struct {
	root     string
	debounce time.Duration
}

// NewWatcher creates a watcher for dir.
func NewWatcher(dir string) *Watcher {
	return &Watcher{root: dir, debounce: DefaultDebounce}
}

// SetDebounce overrides DefaultDebounce.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Watch starts watching the directory tree. The returned channel receives one
// value per settled burst of changes and is closed when ctx ends.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := addTree(fsw, w.root); err != nil {
		fsw.Close()
		return nil, err
	}

	changes := make(chan struct{}, 1)
	go w.loop(ctx, fsw, changes)
	return changes, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, changes chan<- struct{}) {
	defer close(changes)
	defer fsw.Close()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if !w.handleEvent(fsw, event) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			select {
			case changes <- struct{}{}:
			default:
				// A signal is already queued.
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			logger.Warn("Content watcher: %v", err)
		}
	}
}

// handleEvent reports whether event is a relevant content change.
// New directories are added to the watch list.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) bool {
	if isHidden(filepath.Base(event.Name)) {
		return false
	}
	if event.Op == fsnotify.Chmod {
		return false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addTree(fsw, event.Name); err != nil {
				logger.Warn("Content watcher: %v", err)
			}
			// Files created together with the directory are not evented.
			return true
		}
	}

	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		// Removed directories carry no extension.
		return isContentFile(event.Name) || filepath.Ext(event.Name) == ""
	}

	return isContentFile(event.Name)
}

// addTree watches dir and every non-hidden directory below it.
func addTree(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}
