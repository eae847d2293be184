// Package watch drives incremental reindexing from filesystem change
// events: an fsnotify watch over the project tree, debounced and filtered
// down to files the indexer recognizes, each reindexed through the
// Indexer's existing hash-diff short-circuit.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rlm-dev/rlm/internal/indexer"
	"github.com/rlm-dev/rlm/internal/langmap"
)

// blockedDirs mirrors the scanner's hard-exclude list so the watcher never
// descends into directories the indexer would never touch anyway.
var blockedDirs = map[string]bool{
	"node_modules": true, "target": true, ".git": true, "vendor": true,
	"dist": true, "build": true, "__pycache__": true, ".venv": true, "venv": true,
}

// Watcher watches a project root and reindexes touched files after a quiet
// period, using the Indexer it is constructed with.
type Watcher struct {
	Root         string
	Indexer      *indexer.Indexer
	DebounceTime time.Duration // default 500ms
	StoreDirName string        // e.g. ".rlm" — also excluded from watch

	fsw         *fsnotify.Watcher
	accumulated map[string]bool
	mu          sync.Mutex
	timer       *time.Timer
	onReindex   func(path string, err error) // test/CLI hook, optional
}

// New builds a Watcher rooted at root, driving ix.
func New(root string, ix *indexer.Indexer) *Watcher {
	return &Watcher{
		Root:         root,
		Indexer:      ix,
		DebounceTime: 500 * time.Millisecond,
		accumulated:  make(map[string]bool),
	}
}

// OnReindex installs a callback invoked after each individual file
// reindex triggered by a watch event, used by the CLI to log activity.
func (w *Watcher) OnReindex(fn func(path string, err error)) {
	w.onReindex = fn
}

// Run watches until ctx is cancelled, reindexing files as changes settle.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fsw = fsw
	defer fsw.Close()

	if err := w.addTree(w.Root); err != nil {
		return err
	}

	debounceCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						log.Printf("rlm watch: failed to watch new directory %s: %v", ev.Name, err)
					}
				}
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.isRelevant(ev.Name) {
				continue
			}

			w.mu.Lock()
			w.accumulated[ev.Name] = true
			w.mu.Unlock()
			w.resetTimer(debounceCh)

		case <-debounceCh:
			w.flush(ctx)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("rlm watch: error: %v", err)
		}
	}
}

func (w *Watcher) flush(ctx context.Context) {
	w.mu.Lock()
	paths := make([]string, 0, len(w.accumulated))
	for p := range w.accumulated {
		paths = append(paths, p)
	}
	w.accumulated = make(map[string]bool)
	w.mu.Unlock()

	for _, p := range paths {
		err := w.Indexer.ReindexOne(ctx, p)
		if w.onReindex != nil {
			w.onReindex(p, err)
		} else if err != nil {
			log.Printf("rlm watch: failed to reindex %s: %v", p, err)
		}
	}
}

func (w *Watcher) resetTimer(ch chan struct{}) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.DebounceTime, func() {
		select {
		case ch <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
}

// isRelevant reports whether path is a non-dot file with a recognized
// extension; the indexer still runs its own support check on flush, but
// filtering here avoids waking up on .o files, swapfiles, etc.
func (w *Watcher) isRelevant(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return langmap.IsSupportedExtension(strings.TrimPrefix(filepath.Ext(name), "."))
}

// addTree adds root and every non-blocked subdirectory to the fsnotify
// watch set, recursively. Symlinks are never followed (loop prevention,
// matching the Scanner).
func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if path != root {
			if strings.HasPrefix(name, ".") || blockedDirs[name] || (w.StoreDirName != "" && name == w.StoreDirName) {
				return filepath.SkipDir
			}
		}
		if d.Type()&os.ModeSymlink != 0 {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}
