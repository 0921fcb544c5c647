package audio

import (
	"time"

	"github.com/lixenwraith/connect/constants"
)

// Cue identifies a sound effect
type Cue int

const (
	CueMerge   Cue = iota // Shapes fused
	CueDoor               // Door members opened
	CueBlocked            // Move refused
	CueSolved             // Board completed
	cueCount
)

var cueNames = [...]string{
	CueMerge:   "merge",
	CueDoor:    "door",
	CueBlocked: "blocked",
	CueSolved:  "solved",
}

func (c Cue) String() string {
	if c >= 0 && c < cueCount {
		return cueNames[c]
	}
	return "unknown"
}

// ParseCue resolves a cue name as used in configuration
func ParseCue(name string) (Cue, bool) {
	for c := range cueCount {
		if cueNames[c] == name {
			return c, true
		}
	}
	return 0, false
}

// Config holds audio settings
type Config struct {
	Muted        bool
	MasterVolume float64
	CueVolumes   map[Cue]float64
	SampleRate   int
	Buffer       time.Duration
	MinGap       time.Duration // Repeats of one cue closer than this are dropped
}

// DefaultConfig returns the default audio settings
func DefaultConfig() *Config {
	return &Config{
		MasterVolume: 0.5,
		CueVolumes: map[Cue]float64{
			CueMerge:   0.6,
			CueDoor:    0.5,
			CueBlocked: 0.4,
			CueSolved:  0.8,
		},
		SampleRate: constants.AudioSampleRate,
		Buffer:     constants.AudioBufferDuration,
		MinGap:     constants.MinSoundGap,
	}
}

