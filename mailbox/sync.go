// Package mailbox provides the channels joining the controller and its workers
//
// Sync is a zero-capacity hand-off: a send blocks until the single consumer
// takes the value. Queue is unbounded: sends never block. Either end may hang
// up; afterwards sends fail with a ChannelError and receives fail once nothing
// is left to drain.
package mailbox

import (
	"sync"
	"time"
)

// Sync is a zero-capacity hand-off mailbox
type Sync[T any] struct {
	name string
	ch   chan T
	done chan struct{}
	once sync.Once
}

// NewSync creates a hand-off mailbox named for error reports
func NewSync[T any](name string) *Sync[T] {
	return &Sync[T]{
		name: name,
		ch:   make(chan T),
		done: make(chan struct{}),
	}
}

// Name returns the mailbox name
func (s *Sync[T]) Name() string {
	return s.name
}

// Send blocks until the value is taken or the mailbox hangs up
func (s *Sync[T]) Send(v T) error {
	select {
	case <-s.done:
		return sendErr(s.name)
	default:
	}
	select {
	case s.ch <- v:
		return nil
	case <-s.done:
		return sendErr(s.name)
	}
}

// TryRecv takes a value if a sender is waiting
// ok is false with a nil error when nothing is pending
func (s *Sync[T]) TryRecv() (v T, ok bool, err error) {
	select {
	case v = <-s.ch:
		return v, true, nil
	case <-s.done:
		return v, false, recvErr(s.name)
	default:
		return v, false, nil
	}
}

// RecvTimeout waits up to d for a value
func (s *Sync[T]) RecvTimeout(d time.Duration) (v T, ok bool, err error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case v = <-s.ch:
		return v, true, nil
	case <-s.done:
		return v, false, recvErr(s.name)
	case <-timer.C:
		return v, false, nil
	}
}

// Recv blocks until a value arrives or the mailbox hangs up
func (s *Sync[T]) Recv() (v T, err error) {
	select {
	case v = <-s.ch:
		return v, nil
	case <-s.done:
		return v, recvErr(s.name)
	}
}

// Hangup disconnects both ends; idempotent
func (s *Sync[T]) Hangup() {
	s.once.Do(func() { close(s.done) })
}

// Closed reports whether either end has hung up
func (s *Sync[T]) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// SendOrReceive offers v on out while also accepting a message from alt
// Used by producers that must stay responsive to their own control mailbox
// gotAlt reports that a message from alt was taken and v was not sent
func SendOrReceive[T, U any](out *Sync[T], v T, alt *Sync[U]) (msg U, gotAlt bool, err error) {
	select {
	case out.ch <- v:
		return msg, false, nil
	case msg = <-alt.ch:
		return msg, true, nil
	case <-out.done:
		return msg, false, sendErr(out.name)
	case <-alt.done:
		return msg, false, recvErr(alt.name)
	}
}
