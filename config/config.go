// Package config loads the YAML configuration file
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/connect/audio"
	"github.com/lixenwraith/connect/constants"
	"github.com/lixenwraith/connect/input"
)

// Config is the complete configuration; CLI flags override loaded values
type Config struct {
	UndoCapacity int    `yaml:"undo_capacity"`
	LogDir       string `yaml:"log_dir"`
	LogLevel     string `yaml:"log_level"`
	Watch        bool   `yaml:"watch"`
	RecordsDir   string `yaml:"records_dir"` // Empty disables best-solve records
	MetricsAddr  string `yaml:"metrics_addr"` // Empty disables the endpoint

	Audio      AudioConfig       `yaml:"audio"`
	Controller ControllerConfig  `yaml:"controller"`
	Keys       map[string]string `yaml:"keys"` // Key -> action name overrides
}

// AudioConfig holds sound settings
type AudioConfig struct {
	Mute         bool               `yaml:"mute"`
	MasterVolume float64            `yaml:"master_volume"`
	Volumes      map[string]float64 `yaml:"volumes"` // Cue name -> volume
}

// ControllerConfig holds supervision timing
type ControllerConfig struct {
	Forwarding time.Duration `yaml:"forwarding"`
	Grace      time.Duration `yaml:"grace"`
	Threshold  int           `yaml:"threshold"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		UndoCapacity: constants.CLIUndoCapacity,
		LogDir:       "log",
		LogLevel:     "info",
		Audio: AudioConfig{
			MasterVolume: audio.DefaultConfig().MasterVolume,
		},
		Controller: ControllerConfig{
			Forwarding: constants.ForwardingInterval,
			Grace:      constants.QuickShutdownGrace,
			Threshold:  constants.QuickShutdownThreshold,
		},
	}
}

// Load reads path over the defaults; a missing file yields the defaults
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	var errs []error
	if c.UndoCapacity < 0 {
		errs = append(errs, fmt.Errorf("undo_capacity must not be negative, got %d", c.UndoCapacity))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		errs = append(errs, fmt.Errorf("audio.master_volume must be within [0, 1], got %g", c.Audio.MasterVolume))
	}
	for name, v := range c.Audio.Volumes {
		if _, ok := audio.ParseCue(name); !ok {
			errs = append(errs, fmt.Errorf("audio.volumes: unknown cue %q", name))
		}
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("audio.volumes.%s must be within [0, 1], got %g", name, v))
		}
	}
	if c.Controller.Forwarding <= 0 || c.Controller.Grace <= 0 || c.Controller.Threshold <= 0 {
		errs = append(errs, errors.New("controller timing values must be positive"))
	}
	if _, err := input.ParseBindings(c.Keys); err != nil {
		errs = append(errs, fmt.Errorf("keys: %w", err))
	}
	return errors.Join(errs...)
}

// SlogLevel maps log_level to a slog level
func (c *Config) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

// AudioSettings builds the audio player configuration
func (c *Config) AudioSettings() *audio.Config {
	ac := audio.DefaultConfig()
	ac.Muted = c.Audio.Mute
	ac.MasterVolume = c.Audio.MasterVolume
	for name, v := range c.Audio.Volumes {
		if cue, ok := audio.ParseCue(name); ok {
			ac.CueVolumes[cue] = v
		}
	}
	return ac
}

// KeyTable merges the configured overrides onto the default bindings
func (c *Config) KeyTable() (*input.KeyTable, error) {
	override, err := input.ParseBindings(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.MergeKeyTable(input.DefaultKeyTable(), override), nil
}
