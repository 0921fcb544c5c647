package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawn_ReturnsResult(t *testing.T) {
	want := errors.New("boom")
	release := make(chan struct{})
	h := Spawn("state", func() error {
		<-release
		return want
	})

	assert.Equal(t, "state", h.Name())
	assert.False(t, h.IsFinished())
	close(release)

	assert.ErrorIs(t, h.Join(), want)
	assert.True(t, h.IsFinished())
}

func TestSpawn_RecoversPanic(t *testing.T) {
	h := Spawn("output", func() error {
		panic("bad paint")
	})

	err := h.Join()
	var pe *PanicError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "output", pe.Worker)
	assert.Equal(t, "bad paint", pe.Value)
	assert.NotEmpty(t, pe.Stack)
	assert.Contains(t, err.Error(), "worker output panicked")
}
