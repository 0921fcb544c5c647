package controller

import (
	"strconv"

	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/geometry"
	"github.com/lixenwraith/connect/glyph"
	"github.com/lixenwraith/connect/input"
	"github.com/lixenwraith/connect/output"
	"github.com/lixenwraith/connect/state"
)

// turnLine remembers where the turn counter was painted so it can be blanked
type turnLine struct {
	row      int
	width    int
	painted  bool
	complete bool
}

// translateIntent maps a player intent to a state command or a state transition
// ok is false when the intent produces no command
func translateIntent(in input.Intent) (cmd state.Command, next ExecutionState, ok bool) {
	next = StateRun
	switch in.Type {
	case input.IntentQuit:
		return cmd, StateQuit, false
	case input.IntentRestart:
		return cmd, StateRestart, false
	case input.IntentMove:
		return state.Command{Type: state.CommandMoveCursor, Direction: in.Direction}, next, true
	case input.IntentSelect:
		return state.Command{Type: state.CommandSelect}, next, true
	case input.IntentCursor:
		return state.Command{Type: state.CommandSetCursor, Pos: in.Pos}, next, true
	case input.IntentResize:
		return state.Command{Type: state.CommandResize, Size: in.Size}, next, true
	case input.IntentUndo:
		return state.Command{Type: state.CommandUndo}, next, true
	case input.IntentRedo:
		return state.Command{Type: state.CommandRedo}, next, true
	case input.IntentSave:
		return state.Command{Type: state.CommandSave}, next, true
	case input.IntentLoad:
		return state.Command{Type: state.CommandLoad}, next, true
	}
	return cmd, next, false
}

// translateNotice maps a state notice to render instructions and observer events
func (t *turnLine) translateNotice(n state.Notice) ([]output.Command, []Event) {
	switch n.Type {
	case state.NoticeClear:
		t.painted = false
		return []output.Command{{Type: output.CommandClear}}, nil

	case state.NoticePrint:
		return []output.Command{output.Paint(objectChars(n.Objects)...)}, nil

	case state.NoticeCursor:
		return []output.Command{{Type: output.CommandSetCursor, Pos: n.Pos}}, nil

	case state.NoticeMoveShape:
		if n.Move == nil {
			return nil, nil
		}
		chars := make([]output.Char, 0, len(n.Move.Vacated)+len(n.Move.Objects))
		for _, p := range n.Move.Vacated {
			chars = append(chars, output.Char{Literal: glyph.Empty, Pos: p})
		}
		chars = append(chars, objectChars(n.Move.Objects)...)

		var events []Event
		if n.Move.Merged > 0 {
			events = append(events, Event{Type: EventMerge, Count: n.Move.Merged})
		}
		if n.Move.Doors > 0 {
			events = append(events, Event{Type: EventDoor, Count: n.Move.Doors})
		}
		return []output.Command{output.Paint(chars...)}, events

	case state.NoticeBlocked:
		return nil, []Event{{Type: EventBlocked}}

	case state.NoticeResize:
		return []output.Command{{Type: output.CommandResize, Size: n.Size}}, nil

	case state.NoticeTurn:
		return t.paint(n.Turn)
	}
	return nil, nil
}

// paint draws the turn counter, blanking the previous line when the row moved
func (t *turnLine) paint(tn state.TurnNotice) ([]output.Command, []Event) {
	var chars []output.Char
	if t.painted && t.row != tn.Row {
		for x := range t.width {
			chars = append(chars, output.Char{
				Literal: glyph.Empty,
				Pos:     geometry.Point{X: constants.TurnCounterColumn + x, Y: t.row},
			})
		}
	}

	text := constants.TurnCounterPrefix + strconv.Itoa(tn.Turn)
	pos := geometry.Point{X: constants.TurnCounterColumn, Y: tn.Row}
	chars = append(chars, output.Text(text, pos, output.ColorText)...)
	pos.X += len([]rune(text))
	mark := constants.TurnIncompleteMark
	if tn.Complete {
		mark = constants.TurnCompleteMark
	}
	chars = append(chars, output.Text(mark, pos, output.ColorComplete)...)

	events := []Event{{Type: EventTurn, Turn: tn.Turn, Complete: tn.Complete}}
	if tn.Complete && !t.complete && tn.Turn > 0 {
		events = append(events, Event{Type: EventSolved, Turn: tn.Turn})
	}

	t.row = tn.Row
	t.width = len([]rune(text)) + len([]rune(mark))
	t.painted = true
	t.complete = tn.Complete
	return []output.Command{output.Paint(chars...)}, events
}

// objectChars resolves each object to its glyph and highlight color
func objectChars(objs []state.PaintObject) []output.Char {
	chars := make([]output.Char, len(objs))
	for i, o := range objs {
		chars[i] = output.Char{
			Literal: glyph.Rune(o.Connectors, o.Kind),
			Pos:     o.Pos,
			Color:   objectColor(o),
		}
	}
	return chars
}

func objectColor(o state.PaintObject) output.Color {
	switch {
	case o.Kind == geometry.KindVolatile:
		return output.ColorVolatile
	case o.Connectors == 0:
		return output.ColorWall
	case o.Highlight == state.HighlightSelected:
		return output.ColorSelected
	}
	return output.ColorDim
}

// translateReport maps an output report to a state command
func translateReport(r output.Report) (state.Command, bool) {
	if r.Type == output.ReportTerminalSize {
		return state.Command{Type: state.CommandResize, Size: r.Size}, true
	}
	return state.Command{}, false
}
