// Package watch reports edits to a fixed set of files, such as shader sources.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/Faultbox/gsexplode/internal/logger"
)

// Watcher watches the directories of a set of files and reports changes to
// those files only. Editors that save by rename are covered because the
// directory, not the file, is watched.
type Watcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
}

// New starts watching paths. Empty paths are skipped.
func New(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		watcher: fw,
		files:   map[string]bool{},
		changes: make(chan string, 8),
		done:    make(chan struct{}),
	}

	dirs := map[string]bool{}
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Drain returns the absolute path of every file changed since the last call,
// without blocking and deduplicated. Bursts are coalesced when the caller
// falls behind.
func (w *Watcher) Drain() []string {
	var out []string
	seen := map[string]bool{}
	for {
		select {
		case p := <-w.changes:
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		default:
			return out
		}
	}
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			select {
			case w.changes <- name:
			default:
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("file watcher error", zap.Error(err))
		}
	}
}

// Close stops watching. Pending changes are discarded.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
