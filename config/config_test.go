package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/connect/audio"
	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/geometry"
	"github.com/lixenwraith/connect/input"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "connect.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, constants.CLIUndoCapacity, cfg.UndoCapacity)
	assert.Equal(t, constants.QuickShutdownThreshold, cfg.Controller.Threshold)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
undo_capacity: 40
log_level: debug
watch: true
metrics_addr: "127.0.0.1:9100"
audio:
  mute: true
  master_volume: 0.25
  volumes:
    door: 0.1
controller:
  grace: 2s
keys:
  w: move_up
  space: none
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 40, cfg.UndoCapacity)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "127.0.0.1:9100", cfg.MetricsAddr)
	assert.Equal(t, 2*time.Second, cfg.Controller.Grace)
	assert.Equal(t, constants.ForwardingInterval, cfg.Controller.Forwarding, "unset keys keep defaults")

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)

	ac := cfg.AudioSettings()
	assert.True(t, ac.Muted)
	assert.Equal(t, 0.25, ac.MasterVolume)
	assert.Equal(t, 0.1, ac.CueVolumes[audio.CueDoor])
	assert.Equal(t, audio.DefaultConfig().CueVolumes[audio.CueMerge], ac.CueVolumes[audio.CueMerge])

	kt, err := cfg.KeyTable()
	require.NoError(t, err)
	in, ok := kt.Resolve(input.Event{Type: input.EventKey, Key: tcell.KeyRune, Rune: 'w'})
	require.True(t, ok)
	assert.Equal(t, input.Intent{Type: input.IntentMove, Direction: geometry.Up}, in)
	_, ok = kt.Resolve(input.Event{Type: input.EventKey, Key: tcell.KeyRune, Rune: ' '})
	assert.False(t, ok)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"negative undo", "undo_capacity: -1", "undo_capacity"},
		{"bad level", "log_level: loud", "log_level"},
		{"volume range", "audio:\n  master_volume: 2", "master_volume"},
		{"unknown cue", "audio:\n  volumes:\n    fanfare: 0.5", "unknown cue"},
		{"zero threshold", "controller:\n  threshold: 0", "controller"},
		{"unknown action", "keys:\n  w: fly", "unknown action"},
		{"malformed", "undo_capacity: [", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
