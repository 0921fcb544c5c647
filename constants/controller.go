package constants

import "time"

// Controller Supervision
const (
	// ForwardingInterval is the controller's scheduling tick
	ForwardingInterval = 1 * time.Millisecond

	// QuickShutdownGrace is the window after a (re)start within which a failure counts as quick
	QuickShutdownGrace = 5 * time.Second

	// QuickShutdownThreshold is the number of consecutive quick failures that stops the process
	QuickShutdownThreshold = 5

	// ShutdownJoinWait is how long a worker that refused its shutdown command may take to finish
	ShutdownJoinWait = 100 * time.Millisecond
)
