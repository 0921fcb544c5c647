package mailbox

import (
	"sync"
	"time"
)

// Queue is an unbounded FIFO mailbox; Send never blocks
// Values sent before a hangup stay receivable until drained
type Queue[T any] struct {
	name   string
	mu     sync.Mutex
	items  []T
	closed bool
	notify chan struct{} // Capacity 1, signalled on send and hangup
}

// NewQueue creates an unbounded mailbox named for error reports
func NewQueue[T any](name string) *Queue[T] {
	return &Queue[T]{
		name:   name,
		notify: make(chan struct{}, 1),
	}
}

// Name returns the mailbox name
func (q *Queue[T]) Name() string {
	return q.name
}

// Send appends v; fails after hangup
func (q *Queue[T]) Send(v T) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return sendErr(q.name)
	}
	q.items = append(q.items, v)
	q.mu.Unlock()
	q.signal()
	return nil
}

// TryRecv pops the oldest value without blocking
// Returns an error only when hung up and drained
func (q *Queue[T]) TryRecv() (v T, ok bool, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) > 0 {
		v = q.items[0]
		var zero T
		q.items[0] = zero
		q.items = q.items[1:]
		return v, true, nil
	}
	if q.closed {
		return v, false, recvErr(q.name)
	}
	return v, false, nil
}

// RecvTimeout waits up to d for a value
func (q *Queue[T]) RecvTimeout(d time.Duration) (v T, ok bool, err error) {
	v, ok, err = q.TryRecv()
	if ok || err != nil {
		return v, ok, err
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-q.notify:
	case <-timer.C:
	}
	v, ok, err = q.TryRecv()
	if ok {
		q.rearm()
	}
	return v, ok, err
}

// Len returns the number of buffered values
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Hangup disconnects the queue; idempotent
func (q *Queue[T]) Hangup() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.signal()
}

// Closed reports whether the queue has been hung up
func (q *Queue[T]) Closed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

func (q *Queue[T]) signal() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// rearm re-signals when values remain after a wake-up consumed the token
func (q *Queue[T]) rearm() {
	q.mu.Lock()
	pending := len(q.items) > 0 || q.closed
	q.mu.Unlock()
	if pending {
		q.signal()
	}
}
