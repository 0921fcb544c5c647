package input

import "github.com/lixenwraith/connect/geometry"

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	// System
	IntentQuit       // q
	IntentRestart    // n
	IntentToggleMute // m
	IntentResize     // Terminal resize event

	// Board
	IntentMove   // Numpad digits and arrows, carries a direction
	IntentSelect // 5, Space, Enter
	IntentCursor // Mouse click or drag, carries a cell

	// History and persistence
	IntentUndo // u
	IntentRedo // r
	IntentSave // s
	IntentLoad // l
)

var intentNames = [...]string{
	IntentNone:       "none",
	IntentQuit:       "quit",
	IntentRestart:    "restart",
	IntentToggleMute: "toggle_mute",
	IntentResize:     "resize",
	IntentMove:       "move",
	IntentSelect:     "select",
	IntentCursor:     "cursor",
	IntentUndo:       "undo",
	IntentRedo:       "redo",
	IntentSave:       "save",
	IntentLoad:       "load",
}

func (t IntentType) String() string {
	if int(t) < len(intentNames) {
		return intentNames[t]
	}
	return "unknown"
}

// Intent is a resolved player action
type Intent struct {
	Type      IntentType
	Direction geometry.Direction // IntentMove
	Pos       geometry.Point     // IntentCursor
	Size      geometry.Size      // IntentResize
}
