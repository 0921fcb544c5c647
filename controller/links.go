package controller

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/lixenwraith/connect/input"
	"github.com/lixenwraith/connect/mailbox"
	"github.com/lixenwraith/connect/output"
	"github.com/lixenwraith/connect/service"
	"github.com/lixenwraith/connect/state"
)

// Links are the six mailboxes joining the controller and one worker generation
type Links struct {
	InputCtrl  *mailbox.Sync[input.Control]
	InputOut   *mailbox.Sync[input.Event]
	StateCtrl  *mailbox.Sync[state.Command]
	StateOut   *mailbox.Queue[state.Notice]
	OutputCtrl *mailbox.Queue[output.Command]
	OutputOut  *mailbox.Queue[output.Report]
}

// NewLinks creates a fresh set of mailboxes
func NewLinks() *Links {
	return &Links{
		InputCtrl:  mailbox.NewSync[input.Control]("ctrl->input"),
		InputOut:   mailbox.NewSync[input.Event]("input->ctrl"),
		StateCtrl:  mailbox.NewSync[state.Command]("ctrl->state"),
		StateOut:   mailbox.NewQueue[state.Notice]("state->ctrl"),
		OutputCtrl: mailbox.NewQueue[output.Command]("ctrl->output"),
		OutputOut:  mailbox.NewQueue[output.Report]("output->ctrl"),
	}
}

// Hangup disconnects every mailbox
func (l *Links) Hangup() {
	l.InputCtrl.Hangup()
	l.InputOut.Hangup()
	l.StateCtrl.Hangup()
	l.StateOut.Hangup()
	l.OutputCtrl.Hangup()
	l.OutputOut.Hangup()
}

// Workers is one generation of the three workers
type Workers struct {
	Input  service.Worker
	State  service.Worker
	Output service.Worker
}

// Builder constructs a worker generation over fresh links
// Called on the first start and on every restart with identical arguments
type Builder func(links *Links, logger *slog.Logger) (Workers, error)

// BuildConfig holds the arguments of the production workers
type BuildConfig struct {
	LevelPath    string
	UndoCapacity int
	Source       input.Source
	Screen       output.Screen
}

// DefaultBuilder builds the terminal-backed workers
// The level file is read on every build so a restart picks up edits; a read
// failure falls back to the last text read
func DefaultBuilder(cfg BuildConfig) Builder {
	var lastText string
	var haveText bool

	return func(links *Links, logger *slog.Logger) (Workers, error) {
		data, err := os.ReadFile(cfg.LevelPath)
		switch {
		case err == nil:
			lastText, haveText = string(data), true
		case haveText:
			logger.Warn("level reread failed, using previous text", "path", cfg.LevelPath, "error", err)
		default:
			return Workers{}, &state.IOError{Op: "read level", Path: cfg.LevelPath, Err: err}
		}

		return Workers{
			Input: input.NewWorker(input.WorkerConfig{
				Source: cfg.Source,
				Logger: logger,
			}, links.InputCtrl, links.InputOut),
			State: state.NewWorker(state.WorkerConfig{
				LevelPath:    cfg.LevelPath,
				LevelText:    lastText,
				UndoCapacity: cfg.UndoCapacity,
				Logger:       logger,
			}, links.StateCtrl, links.StateOut),
			Output: output.NewWorker(output.WorkerConfig{
				Screen: cfg.Screen,
				Logger: logger,
			}, links.OutputCtrl, links.OutputOut),
		}, nil
	}
}

func (w Workers) validate() error {
	if w.Input == nil || w.State == nil || w.Output == nil {
		return fmt.Errorf("incomplete worker set")
	}
	return nil
}
