package controller

// EventType discriminates gameplay and supervision events
type EventType uint8

const (
	EventNone EventType = iota

	EventMerge         // Count shapes absorbed by a move
	EventDoor          // Count door members opened
	EventBlocked       // A selected shape could not follow the cursor
	EventTurn          // Turn changed; Complete tells whether the board is solved
	EventSolved        // The board became solved after Turn turns
	EventMuteToggle    // Player toggled sound
	EventRestart       // Workers recreated; Reason names the cause
	EventQuickShutdown // Count consecutive failures within the grace period
)

// Event is delivered to every observer from the controller goroutine
type Event struct {
	Type     EventType
	Count    int
	Turn     int
	Complete bool
	Reason   string
}

// Observer receives controller events; Observe must not block
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(Event)

// Observe implements Observer
func (f ObserverFunc) Observe(ev Event) {
	f(ev)
}
