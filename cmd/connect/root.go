package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/connect/audio"
	"github.com/lixenwraith/connect/config"
	"github.com/lixenwraith/connect/controller"
	"github.com/lixenwraith/connect/core"
	"github.com/lixenwraith/connect/input"
	"github.com/lixenwraith/connect/records"
	"github.com/lixenwraith/connect/service"
	"github.com/lixenwraith/connect/state"
	"github.com/lixenwraith/connect/status"
	"github.com/lixenwraith/connect/watch"
)

// eventBuffer is the capacity of the terminal event pump
const eventBuffer = 64

// options are the command line flags
type options struct {
	level       string
	undo        int
	configPath  string
	logDir      string
	logLevel    string
	mute        bool
	watch       bool
	recordsDir  string
	metricsAddr string
}

func newRootCmd() *cobra.Command {
	return newRootCmdWith(&options{})
}

// newRootCmdWith binds the flags to opts
func newRootCmdWith(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect",
		Short: "Slide pipe shapes together until every connector is joined",
		Long: `connect is a terminal puzzle: select a shape with 5, Space or Enter,
steer it with the numpad digits or arrows, and fuse matching connector ends.
Doors open once every connector around them is joined.

Keys: q quit, n restart, u undo, r redo, s save, l load, m mute.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			return run(opts.level, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.level, "level", "l", "", "level file to play (required)")
	f.IntVarP(&opts.undo, "undo", "u", 0, "undo history capacity (default from config, 250)")
	f.StringVar(&opts.configPath, "config", "connect.yaml", "configuration file; missing file means defaults")
	f.StringVar(&opts.logDir, "log-dir", "", "log directory")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&opts.mute, "mute", false, "start with sound muted")
	f.BoolVar(&opts.watch, "watch", false, "restart when the level file changes")
	f.StringVar(&opts.recordsDir, "records", "", "directory of the best-solve database")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	_ = cmd.MarkFlagRequired("level")

	return cmd
}

// loadConfig reads the configuration file and applies the flags the user set
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("undo") {
		cfg.UndoCapacity = opts.undo
	}
	if f.Changed("log-dir") {
		cfg.LogDir = opts.logDir
	}
	if f.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if f.Changed("mute") {
		cfg.Audio.Mute = opts.mute
	}
	if f.Changed("watch") {
		cfg.Watch = opts.watch
	}
	if f.Changed("records") {
		cfg.RecordsDir = opts.recordsDir
	}
	if f.Changed("metrics-addr") {
		cfg.MetricsAddr = opts.metricsAddr
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkLevel rejects a missing or unparsable level before the terminal enters raw mode
func checkLevel(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &state.IOError{Op: "read level", Path: path, Err: err}
	}
	if err := state.NewDefaultEngine().LoadLevel(string(data)); err != nil {
		return fmt.Errorf("level %s: %w", path, err)
	}
	return nil
}

func run(levelPath string, cfg *config.Config) (err error) {
	if err := checkLevel(levelPath); err != nil {
		return err
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return errors.New("stdout is not a terminal")
	}

	keys, err := cfg.KeyTable()
	if err != nil {
		return err
	}
	level, _ := cfg.SlogLevel()
	logs, err := setupLogging(cfg.LogDir, level)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logs.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	log := logs.Logger
	log.Info("starting", "level", levelPath, "undo", cfg.UndoCapacity)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseDragEvents)
	core.RegisterTerminal(screen)
	defer func() {
		core.RegisterTerminal(nil)
		screen.Fini()
	}()

	// Side-effect services observe the controller
	player := audio.NewPlayer(cfg.AudioSettings(), log)
	metrics := status.NewMetrics()
	services := []service.Service{player, status.NewServer(cfg.MetricsAddr, metrics, log)}
	observers := []controller.Observer{player, metrics}

	if cfg.RecordsDir != "" {
		rec := records.NewRecorder(records.Config{Path: cfg.RecordsDir, Logger: log}, state.LevelName(levelPath))
		services = append(services, rec)
		observers = append(observers, rec)
	}

	var reload <-chan struct{}
	if cfg.Watch {
		w := watch.New(levelPath, watch.DefaultDebounce, log)
		services = append(services, w)
		reload = w.Changes()
	}

	if err := service.StartAll(services...); err != nil {
		return err
	}
	defer func() {
		if serr := service.StopAll(services...); serr != nil {
			log.Warn("service shutdown", "error", serr)
		}
	}()

	sup := controller.New(controller.Config{
		Build: controller.DefaultBuilder(controller.BuildConfig{
			LevelPath:    levelPath,
			UndoCapacity: cfg.UndoCapacity,
			Source:       input.NewScreenSource(screen, eventBuffer),
			Screen:       screen,
		}),
		Keys:       keys,
		Reload:     reload,
		Observers:  observers,
		Forwarding: cfg.Controller.Forwarding,
		Grace:      cfg.Controller.Grace,
		Threshold:  cfg.Controller.Threshold,
		Logger:     log,
	})

	if err := sup.Run(); err != nil {
		log.Error("controller stopped", "error", err)
		return err
	}
	log.Info("bye")
	return nil
}

