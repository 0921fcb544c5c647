package input

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/core"
	"github.com/lixenwraith/connect/mailbox"
)

// ErrSourceClosed is returned when the terminal stops delivering events
var ErrSourceClosed = errors.New("input source closed")

// Control is a controller -> input message
type Control uint8

const (
	ControlNone Control = iota
	ControlShutdown
)

// WorkerConfig holds the arguments every input worker generation is built from
type WorkerConfig struct {
	Source   Source
	Interval time.Duration // Loop period
	Wait     time.Duration // Longest wait for a terminal event per iteration
	Logger   *slog.Logger
}

// Worker polls the terminal and hands classified events to the controller
type Worker struct {
	cfg   WorkerConfig
	ctrl  *mailbox.Sync[Control]
	out   *mailbox.Sync[Event]
	pacer *core.Pacer
	log   *slog.Logger
}

// NewWorker creates an input worker reading ctrl and reporting on out
func NewWorker(cfg WorkerConfig, ctrl *mailbox.Sync[Control], out *mailbox.Sync[Event]) *Worker {
	if cfg.Interval == 0 {
		cfg.Interval = constants.InputPollInterval
	}
	if cfg.Wait == 0 {
		cfg.Wait = constants.InputEventWait
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		cfg:   cfg,
		ctrl:  ctrl,
		out:   out,
		pacer: core.NewPacer(cfg.Interval),
		log:   logger.With("worker", "input"),
	}
}

// Name implements service.Worker
func (w *Worker) Name() string {
	return "input"
}

// Run forwards events until shutdown or until the source closes
func (w *Worker) Run() error {
	defer w.ctrl.Hangup()
	defer w.out.Hangup()

	for {
		w.pacer.Wait()

		c, ok, err := w.ctrl.TryRecv()
		if err != nil {
			return err
		}
		if ok && w.control(c) {
			return nil
		}

		raw, ok, err := w.next()
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		ev, ok := Classify(raw)
		if !ok {
			continue
		}

		// A shutdown must not wait behind a controller that stopped reading events
		c, gotCtrl, err := mailbox.SendOrReceive(w.out, ev, w.ctrl)
		if err != nil {
			return err
		}
		if gotCtrl {
			w.log.Debug("event dropped for control message", "type", ev.Type)
			if w.control(c) {
				return nil
			}
		}
	}
}

// control applies a control message and reports whether the worker should stop
func (w *Worker) control(c Control) bool {
	if c == ControlShutdown {
		w.log.Debug("shutdown")
		return true
	}
	w.log.Warn("unknown control message", "control", c)
	return false
}

func (w *Worker) next() (tcell.Event, bool, error) {
	timer := time.NewTimer(w.cfg.Wait)
	defer timer.Stop()
	select {
	case ev, open := <-w.cfg.Source.Events():
		if !open {
			return nil, false, ErrSourceClosed
		}
		return ev, ev != nil, nil
	case <-timer.C:
		return nil, false, nil
	}
}
