package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/connect/controller"
)

// Player mixes cues onto the speaker and reacts to controller events
// Without an audio device it degrades to a silent player
type Player struct {
	mu       sync.Mutex
	cfg      *Config
	mixer    *beep.Mixer
	started  bool
	disabled bool
	muted    bool
	lastPlay map[Cue]time.Time
	log      *slog.Logger
}

// NewPlayer creates a player; Start opens the speaker
func NewPlayer(cfg *Config, logger *slog.Logger) *Player {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Player{
		cfg:      cfg,
		mixer:    &beep.Mixer{},
		muted:    cfg.Muted,
		lastPlay: make(map[Cue]time.Time),
		log:      logger.With("service", "audio"),
	}
}

// Name implements service.Service
func (p *Player) Name() string {
	return "audio"
}

// Start implements service.Service
// A missing audio device disables the player instead of failing
func (p *Player) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.disabled {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(p.cfg.Buffer)); err != nil {
		p.disabled = true
		p.log.Warn("audio disabled", "error", err)
		return nil
	}
	speaker.Play(p.mixer)
	p.started = true
	return nil
}

// Stop implements service.Service
func (p *Player) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	p.started = false
	return nil
}

// Play queues a cue; returns false when muted, throttled or unknown
func (p *Player) Play(c Cue) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.muted || p.disabled {
		return false
	}
	now := time.Now()
	if last, ok := p.lastPlay[c]; ok && now.Sub(last) < p.cfg.MinGap {
		return false
	}
	s := CueStreamer(c, p.cfg)
	if s == nil {
		return false
	}
	p.lastPlay[c] = now

	if p.started {
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	} else {
		p.mixer.Add(s)
	}
	return true
}

// ToggleMute flips the mute state and returns the new state
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.muted = !p.muted
	if p.muted && p.started {
		speaker.Lock()
		p.mixer.Clear()
		speaker.Unlock()
	}
	p.log.Info("mute toggled", "muted", p.muted)
	return p.muted
}

// IsMuted reports the mute state
func (p *Player) IsMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Pending returns the number of cues still mixing
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		speaker.Lock()
		defer speaker.Unlock()
	}
	return p.mixer.Len()
}

// Observe implements controller.Observer
func (p *Player) Observe(ev controller.Event) {
	switch ev.Type {
	case controller.EventMerge:
		p.Play(CueMerge)
	case controller.EventDoor:
		p.Play(CueDoor)
	case controller.EventBlocked:
		p.Play(CueBlocked)
	case controller.EventSolved:
		p.Play(CueSolved)
	case controller.EventMuteToggle:
		p.ToggleMute()
	}
}
