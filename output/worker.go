package output

import (
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/core"
	"github.com/lixenwraith/connect/geometry"
	"github.com/lixenwraith/connect/mailbox"
)

// Screen is the part of tcell.Screen the output worker draws on
type Screen interface {
	Clear()
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	ShowCursor(x, y int)
	Show()
	Sync()
	Size() (width, height int)
}

// WorkerConfig holds the arguments every output worker generation is built from
type WorkerConfig struct {
	Screen   Screen
	Interval time.Duration // Loop period
	Wait     time.Duration // Longest wait for a command per iteration
	Logger   *slog.Logger
}

// Worker applies render instructions to the terminal
type Worker struct {
	cfg      WorkerConfig
	ctrl     *mailbox.Queue[Command]
	out      *mailbox.Queue[Report]
	pacer    *core.Pacer
	log      *slog.Logger
	reported geometry.Size
}

// NewWorker creates an output worker reading ctrl and reporting on out
func NewWorker(cfg WorkerConfig, ctrl *mailbox.Queue[Command], out *mailbox.Queue[Report]) *Worker {
	if cfg.Interval == 0 {
		cfg.Interval = constants.OutputLoopInterval
	}
	if cfg.Wait == 0 {
		cfg.Wait = constants.OutputCommandWait
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
		log:   logger.With("worker", "output"),
	}
}

// Name implements service.Worker
func (w *Worker) Name() string {
	return "output"
}

// Run reports the terminal size and draws until shutdown
// Every iteration drains the pending commands and presents them in one frame
func (w *Worker) Run() error {
	defer w.ctrl.Hangup()
	defer w.out.Hangup()

	for {
		w.pacer.Wait()

		if err := w.reportSize(); err != nil {
			return err
		}

		cmd, ok, err := w.ctrl.RecvTimeout(w.cfg.Wait)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		dirty := false
		for ok {
			if cmd.Type == CommandShutdown {
				if dirty {
					w.cfg.Screen.Show()
				}
				w.log.Debug("shutdown")
				return nil
			}
			w.apply(cmd)
			dirty = true

			cmd, ok, err = w.ctrl.TryRecv()
			if err != nil {
				w.cfg.Screen.Show()
				return err
			}
		}
		w.cfg.Screen.Show()
	}
}

// reportSize tells the controller when the terminal dimensions change
func (w *Worker) reportSize() error {
	width, height := w.cfg.Screen.Size()
	size := geometry.Size{Width: width, Height: height}
	if size == w.reported {
		return nil
	}
	w.reported = size
	w.log.Debug("terminal size", "width", width, "height", height)
	return w.out.Send(Report{Type: ReportTerminalSize, Size: size})
}

func (w *Worker) apply(cmd Command) {
	s := w.cfg.Screen
	switch cmd.Type {
	case CommandClear:
		s.Clear()

	case CommandPaint:
		for _, c := range cmd.Chars {
			s.SetContent(c.Pos.X, c.Pos.Y, c.Literal, nil, c.Color.Style())
		}

	case CommandSetCursor:
		s.ShowCursor(cmd.Pos.X, cmd.Pos.Y)

	case CommandResize:
		s.Sync()

	default:
		w.log.Warn("unknown command", "type", cmd.Type)
	}
}
