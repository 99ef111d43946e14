package seed

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher re-runs seeding when the seed file changes. Editors typically
// write via rename-and-replace, so the parent directory is watched and
// events are filtered to the file and debounced.
type Watcher struct {
	path     string
	seeder   *Seeder
	debounce time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher for the seed file at path.
func NewWatcher(path string, seeder *Seeder, logger *zap.Logger) *Watcher {
	return &Watcher{
		path:     path,
		seeder:   seeder,
		debounce: defaultDebounce,
		logger:   logger,
	}
}

// Start watches until ctx is cancelled. It returns immediately; events are
// handled on a background goroutine.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		_ = fw.Close()
		return err
	}
	go w.run(ctx, fw)
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	defer fw.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(w.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule(ctx)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			if err != nil && w.logger != nil {
				w.logger.Debug("seed watcher error", zap.Error(err))
			}
		}
	}
}

// schedule debounces bursts of events into one re-seed.
func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.seeder.Run(ctx, w.path); err != nil && w.logger != nil {
			w.logger.Warn("re-seed failed", zap.String("path", w.path), zap.Error(err))
		}
	})
}
