package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/connect/geometry"
)

// EventType distinguishes input event categories
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventMouse // Primary button pressed or dragged over a cell
	EventResize
)

// Event is a classified terminal event
type Event struct {
	Type EventType
	Key  tcell.Key
	Rune rune
	Mods tcell.ModMask
	Pos  geometry.Point // EventMouse
	Size geometry.Size  // EventResize
}

// Classify converts a tcell event; ok is false for events the game ignores
func Classify(ev tcell.Event) (Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return Event{
			Type: EventKey,
			Key:  ev.Key(),
			Rune: ev.Rune(),
			Mods: ev.Modifiers(),
		}, true

	case *tcell.EventMouse:
		// Press and drag both report the held button; release reports none
		if ev.Buttons()&tcell.Button1 == 0 {
			return Event{}, false
		}
		x, y := ev.Position()
		return Event{Type: EventMouse, Pos: geometry.Point{X: x, Y: y}}, true

	case *tcell.EventResize:
		w, h := ev.Size()
		return Event{Type: EventResize, Size: geometry.Size{Width: w, Height: h}}, true
	}
	return Event{}, false
}
