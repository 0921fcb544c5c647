package constants

import "time"

// Worker Loop Timing
const (
	// InputPollInterval is the input worker's fixed loop period
	InputPollInterval = 1 * time.Millisecond

	// InputEventWait bounds how long the input worker waits for a device event per iteration
	InputEventWait = 10 * time.Millisecond

	// StateLoopInterval is the state worker's fixed loop period
	StateLoopInterval = 1 * time.Millisecond

	// OutputLoopInterval is the output worker's fixed loop period
	OutputLoopInterval = 1 * time.Millisecond

	// OutputCommandWait bounds how long the output worker idles waiting for a command
	OutputCommandWait = 10 * time.Millisecond
)
