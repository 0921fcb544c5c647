package constants

import "time"

// Audio Engine Timing
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 50 * time.Millisecond

	// MinSoundGap is the minimum gap between consecutive cues of the same kind
	MinSoundGap = 50 * time.Millisecond
)

// Merge Cue Timing
const (
	MergeSoundDuration = 120 * time.Millisecond
	MergeSoundAttack   = 5 * time.Millisecond
	MergeSoundRelease  = 60 * time.Millisecond
)

// Door Cue Timing
const (
	DoorSoundDuration = 300 * time.Millisecond
	DoorSoundAttack   = 150 * time.Millisecond
	DoorSoundRelease  = 150 * time.Millisecond
)

// Blocked Cue Timing
const (
	BlockedSoundDuration = 80 * time.Millisecond
	BlockedSoundAttack   = 5 * time.Millisecond
	BlockedSoundRelease  = 20 * time.Millisecond
)

// Solved Cue Timing
const (
	SolvedSoundDuration           = 600 * time.Millisecond
	SolvedSoundAttack             = 5 * time.Millisecond
	SolvedSoundFundamentalRelease = 550 * time.Millisecond
	SolvedSoundOvertoneRelease    = 200 * time.Millisecond
)
