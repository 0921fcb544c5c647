package controller

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/core"
	"github.com/lixenwraith/connect/input"
	"github.com/lixenwraith/connect/output"
	"github.com/lixenwraith/connect/service"
	"github.com/lixenwraith/connect/state"
)

// ErrCrashLoop is returned when workers keep failing right after being started
var ErrCrashLoop = errors.New("workers failed repeatedly shortly after start")

// Config holds the supervisor's arguments
type Config struct {
	Build     Builder
	Keys      *input.KeyTable
	Reload    <-chan struct{} // Level file changed
	Observers []Observer

	Forwarding time.Duration // Scheduling tick
	Grace      time.Duration // Failure window that counts as a quick shutdown
	Threshold  int           // Consecutive quick shutdowns that end the process

	Logger *slog.Logger
}

// generation is one running set of workers
type generation struct {
	id      string
	links   *Links
	handles []*core.Handle // Input, state, output
	log     *slog.Logger
	turn    turnLine
	started time.Time
}

// Supervisor runs worker generations and forwards messages between them
type Supervisor struct {
	cfg   Config
	keys  *input.KeyTable
	pacer *core.Pacer
	log   *slog.Logger

	gen     *generation
	quick   int
	lastErr error
}

// New creates a supervisor
func New(cfg Config) *Supervisor {
	if cfg.Forwarding == 0 {
		cfg.Forwarding = constants.ForwardingInterval
	}
	if cfg.Grace == 0 {
		cfg.Grace = constants.QuickShutdownGrace
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = constants.QuickShutdownThreshold
	}
	keys := cfg.Keys
	if keys == nil {
		keys = input.DefaultKeyTable()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Supervisor{
		cfg:   cfg,
		keys:  keys,
		pacer: core.NewPacer(cfg.Forwarding),
		log:   logger.With("component", "controller"),
	}
}

// Run starts the workers and supervises them until quit or a crash loop
func (s *Supervisor) Run() error {
	if err := s.start(); err != nil {
		return err
	}

	st := StateRun
	for {
		switch st {
		case StateRun:
			s.pacer.Wait()
			st = s.step()

		case StateQuit:
			s.log.Info("quit", "generation", s.gen.id)
			s.shutdown()
			return nil

		case StateRestart:
			s.log.Info("restart", "generation", s.gen.id)
			s.shutdown()
			s.notify(Event{Type: EventRestart, Reason: "restart"})
			if err := s.start(); err != nil {
				return err
			}
			st = StateRun

		case StateError:
			errs := s.shutdown()
			s.log.Error("worker failure", "generation", s.gen.id, "error", errors.Join(s.lastErr, errs))

			if time.Since(s.gen.started) < s.cfg.Grace {
				s.quick++
			} else {
				s.quick = 0
			}
			if s.quick > 0 {
				s.notify(Event{Type: EventQuickShutdown, Count: s.quick})
			}
			if s.quick >= s.cfg.Threshold {
				return fmt.Errorf("%w: %d quick shutdowns, last: %w", ErrCrashLoop, s.quick, errors.Join(s.lastErr, errs))
			}

			s.notify(Event{Type: EventRestart, Reason: "error"})
			if err := s.start(); err != nil {
				return err
			}
			st = StateRun
		}
	}
}

// QuickShutdowns returns the current consecutive quick shutdown count
func (s *Supervisor) QuickShutdowns() int {
	return s.quick
}

// start builds and launches a new worker generation
func (s *Supervisor) start() error {
	id := uuid.NewString()
	log := s.log.With("generation", id)
	links := NewLinks()

	workers, err := s.cfg.Build(links, log)
	if err == nil {
		err = workers.validate()
	}
	if err != nil {
		links.Hangup()
		return fmt.Errorf("build workers: %w", err)
	}

	gen := &generation{
		id:      id,
		links:   links,
		log:     log,
		started: time.Now(),
	}
	for _, w := range []service.Worker{workers.Input, workers.State, workers.Output} {
		gen.handles = append(gen.handles, core.Spawn(w.Name(), w.Run))
	}
	s.gen = gen
	s.lastErr = nil
	log.Info("workers started")
	return nil
}

// step forwards at most one message from each inbound mailbox
func (s *Supervisor) step() ExecutionState {
	g := s.gen

	// Input -> state
	ev, ok, err := g.links.InputOut.TryRecv()
	if err != nil {
		return s.fail(err)
	}
	if ok {
		if st := s.forwardEvent(ev); st != StateRun {
			return st
		}
	}

	// State -> output and observers
	n, ok, err := g.links.StateOut.TryRecv()
	if err != nil {
		return s.fail(err)
	}
	if ok {
		if n.Type == state.NoticeSaved || n.Type == state.NoticeLoaded {
			g.log.Info("snapshot", "type", n.Type, "path", n.Path)
		}
		cmds, events := g.turn.translateNotice(n)
		for _, c := range cmds {
			if err := g.links.OutputCtrl.Send(c); err != nil {
				return s.fail(err)
			}
		}
		for _, e := range events {
			s.notify(e)
		}
	}

	// Output -> state
	r, ok, err := g.links.OutputOut.TryRecv()
	if err != nil {
		return s.fail(err)
	}
	if ok {
		if cmd, ok := translateReport(r); ok {
			if err := g.links.StateCtrl.Send(cmd); err != nil {
				return s.fail(err)
			}
		}
	}

	select {
	case <-s.cfg.Reload:
		g.log.Info("level changed")
		return StateRestart
	default:
	}

	for _, h := range g.handles {
		if h.IsFinished() {
			return s.fail(fmt.Errorf("worker %s exited: %w", h.Name(), h.Join()))
		}
	}
	return StateRun
}

func (s *Supervisor) forwardEvent(ev input.Event) ExecutionState {
	in, ok := s.keys.Resolve(ev)
	if !ok {
		return StateRun
	}
	if in.Type == input.IntentToggleMute {
		s.notify(Event{Type: EventMuteToggle})
		return StateRun
	}

	cmd, next, ok := translateIntent(in)
	if !ok {
		return next
	}
	if err := s.gen.links.StateCtrl.Send(cmd); err != nil {
		return s.fail(err)
	}
	return next
}

func (s *Supervisor) fail(err error) ExecutionState {
	s.lastErr = err
	return StateError
}

// shutdown stops the generation in input, state, output order
// A worker that cannot take the shutdown command is joined only if it finishes
// on its own within ShutdownJoinWait; otherwise the send error is recorded
func (s *Supervisor) shutdown() error {
	g := s.gen
	stops := []func() error{
		func() error { return g.links.InputCtrl.Send(input.ControlShutdown) },
		func() error { return g.links.StateCtrl.Send(state.Command{Type: state.CommandShutdown}) },
		func() error { return g.links.OutputCtrl.Send(output.Command{Type: output.CommandShutdown}) },
	}

	var errs []error
	for i, h := range g.handles {
		if err := stops[i](); err != nil {
			// A hung-up mailbox means the worker is already on its way out
			select {
			case <-h.Done():
			case <-time.After(constants.ShutdownJoinWait):
				errs = append(errs, fmt.Errorf("shutdown %s: %w", h.Name(), err))
				continue
			}
		}
		if err := h.Join(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.Name(), err))
		}
	}
	g.links.Hangup()
	return errors.Join(errs...)
}

func (s *Supervisor) notify(ev Event) {
	for _, o := range s.cfg.Observers {
		o.Observe(ev)
	}
}
