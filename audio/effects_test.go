package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = beep.SampleRate(44100)

func TestOscillatorWaves(t *testing.T) {
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := NewOscillator(220, 50*time.Millisecond, wave, testRate)
		samples := make([][2]float64, 64)
		n, ok := osc.Stream(samples)
		require.True(t, ok)
		require.Equal(t, 64, n)
		for _, s := range samples[:n] {
			assert.InDelta(t, 0, s[0], 1.0)
			assert.Equal(t, s[0], s[1], "mono signal on both channels")
		}
		assert.NoError(t, osc.Err())
	}
}

func TestOscillatorStopsAtDuration(t *testing.T) {
	d := 10 * time.Millisecond
	osc := NewOscillator(440, d, WaveSine, testRate)

	samples := make([][2]float64, testRate.N(d)*2)
	n, _ := osc.Stream(samples)
	assert.Equal(t, testRate.N(d), n)

	n, ok := osc.Stream(samples)
	assert.False(t, ok)
	assert.Zero(t, n)
}

func TestEnvelopeRampsUp(t *testing.T) {
	d := 100 * time.Millisecond
	attack := 50 * time.Millisecond
	osc := NewOscillator(100, d, WaveSquare, testRate)
	env := NewEnvelope(osc, d, attack, 10*time.Millisecond, testRate)

	samples := make([][2]float64, testRate.N(attack))
	n, ok := env.Stream(samples)
	require.True(t, ok)
	assert.Less(t, math.Abs(samples[0][0]), math.Abs(samples[n-1][0]))
}

func TestCueStreamers(t *testing.T) {
	cfg := DefaultConfig()
	for c := range cueCount {
		t.Run(c.String(), func(t *testing.T) {
			s := CueStreamer(c, cfg)
			require.NotNil(t, s)
			samples := make([][2]float64, 512)
			n, ok := s.Stream(samples)
			assert.True(t, ok)
			assert.Positive(t, n)
		})
	}
	assert.Nil(t, CueStreamer(Cue(99), cfg))
}

func TestCueSilentAtZeroVolume(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MasterVolume = 0

	s := CreateBlockedSound(cfg)
	samples := make([][2]float64, 256)
	n, ok := s.Stream(samples)
	require.True(t, ok)
	for _, smp := range samples[:n] {
		assert.Zero(t, smp[0])
	}
}

func TestParseCue(t *testing.T) {
	c, ok := ParseCue("door")
	assert.True(t, ok)
	assert.Equal(t, CueDoor, c)
	_, ok = ParseCue("fanfare")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Cue(-1).String())
}
