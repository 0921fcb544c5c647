package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/connect/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     freq,
		phase:    0,
		duration: samples,
		position: 0,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an ADSR envelope (simplified to just attack/release)
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		position:       0,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// Helper to create a volume effect safely
// math.Log2(0) is -Inf, so we handle 0 volume by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Cue generators

// CreateMergeSound generates a rising two-tone blip for fused shapes
func CreateMergeSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	half := constants.MergeSoundDuration / 2

	// E5 then A5
	n1 := NewOscillator(659.25, half, WaveSine, rate)
	n1Shaped := NewEnvelope(n1, half, constants.MergeSoundAttack, constants.MergeSoundRelease/2, rate)
	n2 := NewOscillator(880.0, half, WaveSine, rate)
	n2Shaped := NewEnvelope(n2, half, constants.MergeSoundAttack, constants.MergeSoundRelease, rate)

	return newVolume(beep.Seq(n1Shaped, n2Shaped), cfg.volume(CueMerge))
}

// CreateDoorSound generates a soft noise swell for opened doors
func CreateDoorSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	noise := NewOscillator(0, constants.DoorSoundDuration, WaveNoise, rate)
	shaped := NewEnvelope(noise, constants.DoorSoundDuration, constants.DoorSoundAttack, constants.DoorSoundRelease, rate)

	return newVolume(shaped, cfg.volume(CueDoor))
}

// CreateBlockedSound generates a short low buzz for refused moves
func CreateBlockedSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	osc := NewOscillator(100.0, constants.BlockedSoundDuration, WaveSaw, rate)
	shaped := NewEnvelope(osc, constants.BlockedSoundDuration, constants.BlockedSoundAttack, constants.BlockedSoundRelease, rate)

	return newVolume(shaped, cfg.volume(CueBlocked))
}

// CreateSolvedSound generates a bell with an octave overtone for a completed board
func CreateSolvedSound(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)

	// Fundamental (A5)
	fund := NewOscillator(880.0, constants.SolvedSoundDuration, WaveSine, rate)
	fundShaped := NewEnvelope(fund, constants.SolvedSoundDuration, constants.SolvedSoundAttack, constants.SolvedSoundFundamentalRelease, rate)

	// Harmonic (Octave up)
	over := NewOscillator(1760.0, constants.SolvedSoundDuration, WaveSine, rate)
	overShaped := NewEnvelope(over, constants.SolvedSoundDuration, constants.SolvedSoundAttack, constants.SolvedSoundOvertoneRelease, rate)

	mixed := beep.Mix(
		newVolume(fundShaped, 0.7),
		newVolume(overShaped, 0.3),
	)
	return newVolume(mixed, cfg.volume(CueSolved))
}

// CueStreamer returns the streamer for a cue, nil for an unknown cue
func CueStreamer(c Cue, cfg *Config) beep.Streamer {
	switch c {
	case CueMerge:
		return CreateMergeSound(cfg)
	case CueDoor:
		return CreateDoorSound(cfg)
	case CueBlocked:
		return CreateBlockedSound(cfg)
	case CueSolved:
		return CreateSolvedSound(cfg)
	default:
		return nil
	}
}

func (cfg *Config) volume(c Cue) float64 {
	return cfg.CueVolumes[c] * cfg.MasterVolume
}
