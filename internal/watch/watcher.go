// Package watch reruns the generator when the command module or its
// documentation file changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"mamlgen/internal/logger"
)

const defaultDebounce = 500 * time.Millisecond

// DefaultPatterns select the files under Root that trigger a rerun
var DefaultPatterns = []string{"**/*.go"}

var defaultIgnores = []string{
	"**/.git/**",
	"**/.svn/**",
	"**/testdata/**",
	"**/*_test.go",
}

// Config holds the parameters for a Watcher
type Config struct {
	// Root is the module directory, watched recursively
	Root string

	// Files are extra files watched individually, e.g. the doc file.
	// They may live outside Root.
	Files []string

	// Patterns are doublestar patterns relative to Root. Empty means
	// DefaultPatterns.
	Patterns []string

	// Debounce is the quiet period after the last event before OnChange
	// runs. Zero means defaultDebounce.
	Debounce time.Duration

	// OnChange receives the changed paths, sorted. Runs are serial: events
	// arriving during a run are collected for the next one.
	OnChange func(ctx context.Context, changed []string) error
}

// Watcher monitors a module and fires a debounced callback
type Watcher struct {
	cfg      Config
	fsw      *fsnotify.Watcher
	root     string
	files    map[string]bool
	patterns []string
	debounce time.Duration
}

// New creates a Watcher and registers the module tree and extra files
func New(cfg Config) (*Watcher, error) {
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("watch: resolve root: %w", err)
	}

	patterns := cfg.Patterns
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("watch: invalid pattern %q", p)
		}
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		root:     root,
		files:    make(map[string]bool),
		patterns: patterns,
		debounce: debounce,
	}

	if err := w.addTree(); err != nil {
		fsw.Close()
		return nil, err
	}
	if err := w.addFiles(cfg.Files); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// Run blocks until ctx is cancelled. It returns nil on cancellation and an
// error when the underlying watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return errors.New("watch: event channel closed")
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddDir(evt.Name)
			}
			if !w.relevant(evt.Name) {
				continue
			}
			logger.Debug("Change detected", "path", evt.Name, "op", evt.Op.String())
			pending[evt.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return errors.New("watch: error channel closed")
			}
			logger.Warn("File watcher error", "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			if w.cfg.OnChange == nil {
				continue
			}
			if err := w.cfg.OnChange(ctx, changed); err != nil {
				logger.Error("Regeneration failed", "err", err)
			}
		}
	}
}

// addTree registers root and every non-ignored directory below it
func (w *Watcher) addTree() error {
	return filepath.WalkDir(w.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == w.root {
				return fmt.Errorf("watch: %w", err)
			}
			logger.Warn("Skipping inaccessible path", "path", path, "err", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != w.root && w.ignored(path+string(filepath.Separator)) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, err)
		}
		return nil
	})
}

// addFiles watches the parent directory of each file; events are filtered
// to the files themselves
func (w *Watcher) addFiles(files []string) error {
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("watch: resolve %q: %w", f, err)
		}
		w.files[abs] = true
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch: add %q: %w", f, err)
		}
	}
	return nil
}

func (w *Watcher) maybeAddDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || !w.under(path) || w.ignored(path+string(filepath.Separator)) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		logger.Warn("Failed to watch new directory", "path", path, "err", err)
	}
}

// relevant reports whether a change to path should trigger a rerun
func (w *Watcher) relevant(path string) bool {
	if w.files[path] {
		return true
	}
	if !w.under(path) || w.ignored(path) {
		return false
	}
	rel, _ := filepath.Rel(w.root, path)
	for _, p := range w.patterns {
		if ok, err := doublestar.Match(p, filepath.ToSlash(rel)); err == nil && ok {
			return true
		}
	}
	return false
}

func (w *Watcher) under(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	return err == nil && rel != ".." && !startsWithParent(rel)
}

func startsWithParent(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}

func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if len(path) > 0 && path[len(path)-1] == filepath.Separator {
		rel += "/"
	}
	for _, p := range defaultIgnores {
		if ok, err := doublestar.Match(p, rel); err == nil && ok {
			return true
		}
	}
	return false
}
