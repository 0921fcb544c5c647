package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/connect/core"
)

// Source delivers raw terminal events; the channel closes when the terminal is gone
type Source interface {
	Events() <-chan tcell.Event
}

// Poller is the part of tcell.Screen the event pump reads
type Poller interface {
	PollEvent() tcell.Event
}

// ScreenSource pumps a screen's events into a buffered channel
// One pump outlives every input worker generation, so a restart never loses the terminal
type ScreenSource struct {
	ch chan tcell.Event
}

// NewScreenSource starts the pump; it stops once PollEvent returns nil after Fini
func NewScreenSource(p Poller, buffer int) *ScreenSource {
	s := &ScreenSource{ch: make(chan tcell.Event, buffer)}
	core.Go(func() {
		defer close(s.ch)
		for {
			ev := p.PollEvent()
			if ev == nil {
				return
			}
			s.ch <- ev
		}
	})
	return s
}

// Events implements Source
func (s *ScreenSource) Events() <-chan tcell.Event {
	return s.ch
}

// ChanSource adapts a plain channel
type ChanSource chan tcell.Event

// Events implements Source
func (c ChanSource) Events() <-chan tcell.Event {
	return c
}
