package records

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/connect/controller"
)

// Recorder submits solves of one level and owns the database lifetime
type Recorder struct {
	cfg   Config
	level string
	log   *slog.Logger

	mu    sync.Mutex
	store *Store
}

// NewRecorder creates a recorder for level; Start opens the database
func NewRecorder(cfg Config, level string) *Recorder {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		cfg:   cfg,
		level: level,
		log:   logger.With("service", "records", "level", level),
	}
}

// Name implements service.Service
func (r *Recorder) Name() string {
	return "records"
}

// Start implements service.Service
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store != nil {
		return nil
	}
	s, err := Open(r.cfg)
	if err != nil {
		return err
	}
	r.store = s

	if rec, ok, err := s.Best(r.level); err == nil && ok {
		r.log.Info("best solve", "turns", rec.Turns, "solved_at", rec.SolvedAt)
	}
	return nil
}

// Stop implements service.Service
func (r *Recorder) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store == nil {
		return nil
	}
	err := r.store.Close()
	r.store = nil
	return err
}

// Best returns the current record of the level
func (r *Recorder) Best() (Record, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store == nil {
		return Record{}, false, nil
	}
	return r.store.Best(r.level)
}

// Observe implements controller.Observer
func (r *Recorder) Observe(ev controller.Event) {
	if ev.Type != controller.EventSolved {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.store == nil {
		return
	}
	improved, err := r.store.Submit(r.level, ev.Turn, time.Now())
	switch {
	case err != nil:
		r.log.Error("record submit failed", "error", err)
	case improved:
		r.log.Info("new best solve", "turns", ev.Turn)
	default:
		r.log.Info("solved", "turns", ev.Turn)
	}
}
