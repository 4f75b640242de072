// Package watch rebuilds the context document when watched files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits after the last event
// before a rebuild fires. Editor save sequences and git checkouts produce
// event bursts that must coalesce into a single build.
const DefaultDebounce = 400 * time.Millisecond

// Config controls which paths are watched and how events are coalesced.
type Config struct {
	Dir      string   // directory all relative paths resolve against
	Paths    []string // files or directory roots to watch
	Debounce time.Duration
	Skip     func(path string) bool // optional; true suppresses the event
}

// Watcher wraps fsnotify with recursive directory registration and
// debounced change delivery.
type Watcher struct {
	fsw    *fsnotify.Watcher
	cfg    Config
	logger *zap.Logger
}

// New registers every configured path. Directories are watched recursively;
// .git trees are never registered. Paths that cannot be watched are logged
// and skipped so one bad input does not kill the session.
func New(cfg Config, logger *zap.Logger) (*Watcher, error) {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	w := &Watcher{fsw: fsw, cfg: cfg, logger: logger}

	for _, p := range cfg.Paths {
		abs := p
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(cfg.Dir, abs)
		}
		// WalkDir below lstats the root, so a symlinked directory must be
		// resolved before registration.
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		info, err := os.Stat(abs)
		if err != nil {
			logger.Warn("Cannot watch path", zap.String("path", abs), zap.Error(err))
			continue
		}
		if !info.IsDir() {
			if err := fsw.Add(abs); err != nil {
				logger.Warn("Failed to watch file", zap.String("path", abs), zap.Error(err))
			}
			continue
		}
		w.addRecursive(abs)
	}

	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// addRecursive registers root and every directory below it, pruning .git.
func (w *Watcher) addRecursive(root string) {
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Skipping unreadable path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			w.logger.Warn("Failed to watch directory", zap.String("path", path), zap.Error(err))
		}
		return nil
	})
	if err != nil {
		w.logger.Warn("Directory registration incomplete", zap.String("path", root), zap.Error(err))
	}
}

// Run delivers debounced change notifications to onChange until ctx is
// cancelled or the watcher is closed. Directories created while watching
// are registered as they appear.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.ignoreEvent(ev) {
				continue
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					w.addRecursive(ev.Name)
				}
			}
			w.logger.Debug("Change detected",
				zap.String("path", ev.Name),
				zap.String("op", ev.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.cfg.Debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.cfg.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watch error", zap.Error(err))

		case <-fire:
			timer = nil
			fire = nil
			onChange()
		}
	}
}

// ignoreEvent filters chmod-only noise, git internals, and caller-skipped
// paths. The output file is the usual Skip target: writing it would
// otherwise retrigger the build forever.
func (w *Watcher) ignoreEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	for _, seg := range strings.Split(filepath.ToSlash(ev.Name), "/") {
		if seg == ".git" {
			return true
		}
	}
	if w.cfg.Skip != nil && w.cfg.Skip(ev.Name) {
		return true
	}
	return false
}
