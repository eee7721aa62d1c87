// Package watch rebuilds outputs when the registry file changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/slidedeck/internal/logfields"
)

// DefaultDebounce coalesces the bursts of events editors emit on save.
const DefaultDebounce = 300 * time.Millisecond

// ChangeFunc is called after the registry changed.
type ChangeFunc func(ctx context.Context) error

// RegistryWatcher monitors one file and calls a ChangeFunc, debounced, each
// time it is written, created or replaced. Calls never overlap.
type RegistryWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange ChangeFunc
	debounce time.Duration
	logger   *slog.Logger
}

// NewRegistryWatcher creates a watcher for path.
func NewRegistryWatcher(path string, onChange ChangeFunc) (*RegistryWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve registry path: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	return &RegistryWatcher{
		path:     absPath,
		watcher:  watcher,
		onChange: onChange,
		debounce: DefaultDebounce,
		logger:   slog.Default(),
	}, nil
}

// WithDebounce sets the quiet period before onChange runs.
func (w *RegistryWatcher) WithDebounce(d time.Duration) *RegistryWatcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithLogger sets the logger.
func (w *RegistryWatcher) WithLogger(l *slog.Logger) *RegistryWatcher {
	if l != nil {
		w.logger = l
	}
	return w
}

// Run watches until ctx is canceled. The directory is watched rather than
// the file so that atomic replace-by-rename saves are seen.
func (w *RegistryWatcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	w.logger.Info("Watching registry", logfields.Path(w.path))

	name := filepath.Base(w.path)
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				if event.Op&fsnotify.Remove != 0 {
					w.logger.Warn("Registry removed", logfields.File(event.Name))
				}
				continue
			}
			w.logger.Debug("Registry change detected", logfields.File(event.Name), slog.String("op", event.Op.String()))
			timer.Reset(w.debounce)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Registry watcher error", logfields.Error(err))
		case <-timer.C:
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("Rebuild after registry change failed", logfields.Error(err))
			}
		}
	}
}
