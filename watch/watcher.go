// Package watch signals changes to the level file being played
package watch

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lixenwraith/connect/core"
)

// DefaultDebounce coalesces the burst of events an editor save produces
const DefaultDebounce = 200 * time.Millisecond

// LevelWatcher reports writes to one file
// The parent directory is watched so editors that save by rename are seen
type LevelWatcher struct {
	path     string
	debounce time.Duration
	log      *slog.Logger

	changes  chan struct{}
	done     chan struct{}
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	stopOnce sync.Once
}

// New creates a watcher for path; Start begins watching
func New(path string, debounce time.Duration, logger *slog.Logger) *LevelWatcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LevelWatcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		log:      logger.With("service", "watch", "path", path),
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Name implements service.Service
func (w *LevelWatcher) Name() string {
	return "watch"
}

// Changes delivers one signal per settled burst of changes; signals coalesce
func (w *LevelWatcher) Changes() <-chan struct{} {
	return w.changes
}

// Start implements service.Service
func (w *LevelWatcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watcher != nil {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}
	w.watcher = fw

	core.Go(func() { w.processEvents(fw) })
	w.log.Info("watching level file")
	return nil
}

// Stop implements service.Service
func (w *LevelWatcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		if w.watcher != nil {
			err = w.watcher.Close()
		}
		w.mu.Unlock()
	})
	return err
}

func (w *LevelWatcher) processEvents(fw *fsnotify.Watcher) {
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			w.log.Debug("level file changed")
			select {
			case w.changes <- struct{}{}:
			default:
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}
