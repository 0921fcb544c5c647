package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/connect/geometry"
)

// KeyTable maps unmodified key presses to intents
type KeyTable struct {
	// Named keys (arrows, Enter)
	Keys map[tcell.Key]Intent

	// Printable runes, including space
	Runes map[rune]Intent
}

func move(d geometry.Direction) Intent {
	return Intent{Type: IntentMove, Direction: d}
}

// DefaultKeyTable returns the default bindings: numpad digits and arrows steer
// the cursor, 5/Space/Enter toggle the selection
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]Intent{
			tcell.KeyUp:    move(geometry.Up),
			tcell.KeyRight: move(geometry.Right),
			tcell.KeyDown:  move(geometry.Down),
			tcell.KeyLeft:  move(geometry.Left),
			tcell.KeyEnter: {Type: IntentSelect},
		},
		Runes: map[rune]Intent{
			'q': {Type: IntentQuit},
			'n': {Type: IntentRestart},
			'm': {Type: IntentToggleMute},

			'8': move(geometry.Up),
			'9': move(geometry.UpRight),
			'6': move(geometry.Right),
			'3': move(geometry.DownRight),
			'2': move(geometry.Down),
			'1': move(geometry.DownLeft),
			'4': move(geometry.Left),
			'7': move(geometry.UpLeft),

			'5': {Type: IntentSelect},
			' ': {Type: IntentSelect},

			'u': {Type: IntentUndo},
			'r': {Type: IntentRedo},
			's': {Type: IntentSave},
			'l': {Type: IntentLoad},
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	c := &KeyTable{
		Keys:  make(map[tcell.Key]Intent, len(kt.Keys)),
		Runes: make(map[rune]Intent, len(kt.Runes)),
	}
	maps.Copy(c.Keys, kt.Keys)
	maps.Copy(c.Runes, kt.Runes)
	return c
}

// Resolve turns a classified event into an intent
// Key presses with any modifier are ignored
func (kt *KeyTable) Resolve(ev Event) (Intent, bool) {
	switch ev.Type {
	case EventResize:
		return Intent{Type: IntentResize, Size: ev.Size}, true

	case EventMouse:
		return Intent{Type: IntentCursor, Pos: ev.Pos}, true

	case EventKey:
		if ev.Mods != tcell.ModNone {
			return Intent{}, false
		}
		var in Intent
		var ok bool
		if ev.Key == tcell.KeyRune {
			in, ok = kt.Runes[ev.Rune]
		} else {
			in, ok = kt.Keys[ev.Key]
		}
		if !ok || in.Type == IntentNone {
			return Intent{}, false
		}
		return in, true
	}
	return Intent{}, false
}
