package mailbox

import (
	"errors"
	"fmt"
)

// ErrDisconnected is returned once the other end of a mailbox has hung up
var ErrDisconnected = errors.New("mailbox disconnected")

// ChannelError reports a send or receive against a hung-up mailbox
type ChannelError struct {
	Mailbox string
	Op      string // "send" or "recv"
}

func (e *ChannelError) Error() string {
	return fmt.Sprintf("%s on %s: %v", e.Op, e.Mailbox, ErrDisconnected)
}

// Unwrap lets errors.Is match ErrDisconnected
func (e *ChannelError) Unwrap() error {
	return ErrDisconnected
}

func sendErr(name string) error {
	return &ChannelError{Mailbox: name, Op: "send"}
}

func recvErr(name string) error {
	return &ChannelError{Mailbox: name, Op: "recv"}
}
