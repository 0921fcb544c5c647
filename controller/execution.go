package controller

// ExecutionState is the supervisor's state machine
type ExecutionState uint8

const (
	StateRun     ExecutionState = iota // Forward messages between workers
	StateRestart                       // Player asked for a fresh start or the level changed
	StateError                         // A worker failed or a mailbox disconnected
	StateQuit                          // Orderly exit
)

var stateNames = [...]string{
	StateRun:     "run",
	StateRestart: "restart",
	StateError:   "error",
	StateQuit:    "quit",
}

func (s ExecutionState) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}
