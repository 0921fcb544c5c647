package state

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/core"
	"github.com/lixenwraith/connect/geometry"
	"github.com/lixenwraith/connect/mailbox"
)

// WorkerConfig holds the arguments every state worker generation is built from
type WorkerConfig struct {
	LevelPath    string
	LevelText    string
	UndoCapacity int
	Interval     time.Duration
	Logger       *slog.Logger
}

// Worker owns an Engine and evolves it on controller commands
type Worker struct {
	cfg    WorkerConfig
	engine *Engine
	ctrl   *mailbox.Sync[Command]
	out    *mailbox.Queue[Notice]
	pacer  *core.Pacer
	log    *slog.Logger
}

// NewWorker creates a state worker reading ctrl and reporting on out
func NewWorker(cfg WorkerConfig, ctrl *mailbox.Sync[Command], out *mailbox.Queue[Notice]) *Worker {
	if cfg.Interval == 0 {
		cfg.Interval = constants.StateLoopInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{
		cfg:    cfg,
		engine: NewEngine(cfg.UndoCapacity),
		ctrl:   ctrl,
		out:    out,
		pacer:  core.NewPacer(cfg.Interval),
		log:    logger.With("worker", "state"),
	}
}

// Name implements service.Worker
func (w *Worker) Name() string {
	return "state"
}

// Engine exposes the owned engine; only safe before Run or after it returns
func (w *Worker) Engine() *Engine {
	return w.engine
}

// Run loads the level, paints it and processes commands until shutdown
func (w *Worker) Run() error {
	defer w.ctrl.Hangup()
	defer w.out.Hangup()

	if err := w.engine.LoadLevel(w.cfg.LevelText); err != nil {
		return fmt.Errorf("load level %s: %w", w.cfg.LevelPath, err)
	}
	w.log.Info("level loaded", "path", w.cfg.LevelPath, "objects", len(w.engine.Objects()))

	if err := w.send(Notice{Type: NoticeCursor, Pos: w.engine.Cursor()}); err != nil {
		return err
	}
	if err := w.repaint(); err != nil {
		return err
	}

	for {
		w.pacer.Wait()

		cmd, err := w.ctrl.Recv()
		if err != nil {
			return err
		}
		if cmd.Type == CommandShutdown {
			w.log.Debug("shutdown")
			return nil
		}
		if err := w.handle(cmd); err != nil {
			return err
		}
	}
}

func (w *Worker) handle(cmd Command) error {
	switch cmd.Type {
	case CommandMoveCursor:
		return w.moveCursor(cmd.Direction)

	case CommandSetCursor:
		change := w.engine.SetCursor(cmd.Pos)
		if err := w.repaintSelection(change); err != nil {
			return err
		}
		return w.send(Notice{Type: NoticeCursor, Pos: w.engine.Cursor()})

	case CommandSelect:
		return w.repaintSelection(w.engine.ToggleSelection())

	case CommandResize:
		size, changed := w.engine.Resize(cmd.Size.Width, cmd.Size.Height)
		if !changed {
			return nil
		}
		if err := w.send(Notice{Type: NoticeResize, Size: size}); err != nil {
			return err
		}
		return w.repaint()

	case CommandUndo, CommandRedo:
		swap, name := w.engine.Undo, "undo"
		if cmd.Type == CommandRedo {
			swap, name = w.engine.Redo, "redo"
		}
		ok, err := swap()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if !ok {
			return nil
		}
		return w.repaint()

	case CommandSave:
		path := SavePath(w.cfg.LevelPath)
		if err := w.engine.Save(path, LevelName(w.cfg.LevelPath)); err != nil {
			w.log.Error("save failed", "path", path, "error", err)
			return nil
		}
		w.log.Info("saved", "path", path)
		return w.send(Notice{Type: NoticeSaved, Path: path})

	case CommandLoad:
		path := SavePath(w.cfg.LevelPath)
		if err := w.engine.Load(path); err != nil {
			w.log.Error("load failed", "path", path, "error", err)
			return nil
		}
		w.log.Info("loaded", "path", path)
		if err := w.send(Notice{Type: NoticeLoaded, Path: path}); err != nil {
			return err
		}
		return w.repaint()
	}

	w.log.Warn("unknown command", "type", cmd.Type)
	return nil
}

func (w *Worker) moveCursor(d geometry.Direction) error {
	res, err := w.engine.MoveCursor(d)
	if err != nil {
		return fmt.Errorf("move %v: %w", d, err)
	}

	if mv := res.Shape; mv != nil {
		if mv.Blocked {
			return w.send(Notice{Type: NoticeBlocked, Pos: res.To})
		}
		if err := w.send(Notice{Type: NoticeMoveShape, Move: w.moveNotice(mv)}); err != nil {
			return err
		}
	}
	if res.Moved {
		if err := w.send(Notice{Type: NoticeCursor, Pos: res.To}); err != nil {
			return err
		}
	}
	if res.Shape != nil {
		return w.sendTurn()
	}
	return nil
}

func (w *Worker) moveNotice(mv *MoveResult) *MoveNotice {
	n := &MoveNotice{
		Objects: w.paintObjects(mv.After),
		Merged:  len(mv.Merged),
		Doors:   mv.Doors,
	}
	for _, o := range mv.Before {
		n.Vacated = append(n.Vacated, o.Pos)
	}
	for _, o := range mv.Removed {
		n.Vacated = append(n.Vacated, o.Pos)
	}
	shapes := make(map[ShapeID]struct{})
	for _, o := range mv.After {
		shapes[o.Shape] = struct{}{}
	}
	n.Split = mv.Doors > 0 && len(shapes) > 1
	return n
}

// repaint clears the terminal and paints the whole collection, cursor and turn counter
func (w *Worker) repaint() error {
	if err := w.send(Notice{Type: NoticeClear}); err != nil {
		return err
	}
	if err := w.send(Notice{Type: NoticePrint, Objects: w.paintObjects(w.engine.Objects())}); err != nil {
		return err
	}
	if err := w.send(Notice{Type: NoticeCursor, Pos: w.engine.Cursor()}); err != nil {
		return err
	}
	return w.sendTurn()
}

// repaintSelection re-emphasizes the shapes a selection change touched
func (w *Worker) repaintSelection(change SelectionChange) error {
	if !change.Changed() {
		return nil
	}
	var objs []Object
	if change.Previous != 0 {
		objs = append(objs, w.engine.Members(change.Previous)...)
	}
	if change.Current != 0 {
		objs = append(objs, w.engine.Members(change.Current)...)
	}
	if len(objs) == 0 {
		return nil
	}
	return w.send(Notice{Type: NoticePrint, Objects: w.paintObjects(objs)})
}

func (w *Worker) sendTurn() error {
	turn, complete := w.engine.TurnState()
	return w.send(Notice{Type: NoticeTurn, Turn: TurnNotice{
		Row:      w.engine.store.Bounds().Height + constants.TurnCounterGap,
		Turn:     turn,
		Complete: complete,
	}})
}

func (w *Worker) paintObjects(objs []Object) []PaintObject {
	selected, _ := w.engine.Selected()
	out := make([]PaintObject, len(objs))
	for i, o := range objs {
		h := HighlightDim
		if selected != 0 && o.Shape == selected {
			h = HighlightSelected
		}
		out[i] = PaintObject{Object: o, Highlight: h}
	}
	return out
}

func (w *Worker) send(n Notice) error {
	return w.out.Send(n)
}

// LevelName returns the level file name without directory or extension
func LevelName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
