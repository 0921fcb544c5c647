package core

import (
	"fmt"
	"runtime/debug"
)

// PanicError is the terminal error of a worker that panicked
type PanicError struct {
	Worker string
	Value  any
	Stack  []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("worker %s panicked: %v", e.Worker, e.Value)
}

// Handle tracks one worker goroutine started by Spawn
type Handle struct {
	name string
	done chan struct{}
	err  error
}

// Spawn runs fn in a new goroutine and captures its result
// A panic is recovered into *PanicError so supervision can restart the worker
func Spawn(name string, fn func() error) *Handle {
	h := &Handle{
		name: name,
		done: make(chan struct{}),
	}
	go func() {
		defer close(h.done)
		defer func() {
			if r := recover(); r != nil {
				h.err = &PanicError{Worker: name, Value: r, Stack: debug.Stack()}
			}
		}()
		h.err = fn()
	}()
	return h
}

// Name returns the worker name given to Spawn
func (h *Handle) Name() string {
	return h.name
}

// IsFinished reports whether the goroutine has returned, without blocking
func (h *Handle) IsFinished() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

// Done is closed when the goroutine returns
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Join blocks until the goroutine returns and yields its result
func (h *Handle) Join() error {
	<-h.done
	return h.err
}
