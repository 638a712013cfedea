// Package audio plays the party's background music and scoring blips.
// Audio is optional: when the output device cannot be opened the player
// stays muted for the rest of the process and every call is a no-op.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/core"
)

const sampleRate = beep.SampleRate(44100)

// Player owns the speaker. The zero value and a nil *Player are silent.
type Player struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	logger      *log.Logger
	mixer       *beep.Mixer
	music       *beep.Ctrl
	initialized bool
	failed      bool
	muted       bool
}

// NewPlayer creates a player. Nothing touches the device until Init.
func NewPlayer(cfg config.AudioConfig, logger *log.Logger) *Player {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Player{
		cfg:    cfg,
		logger: logger,
		mixer:  &beep.Mixer{},
		muted:  true,
	}
}

// Init opens the output device and starts the music loop, paused when the
// configuration starts muted. A failure leaves the player permanently muted.
func (p *Player) Init() error {
	if p == nil {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || p.failed {
		return nil
	}
	if !p.cfg.Enabled {
		p.logger.Debug("audio disabled by configuration")
		p.failed = true
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.failed = true
		p.logger.Warn("audio unavailable, music stays muted", "err", err)
		return fmt.Errorf("audio: cannot open output device: %w", err)
	}

	p.muted = p.cfg.Muted
	p.music = &beep.Ctrl{
		Streamer: &effects.Volume{
			Streamer: NewTune(sampleRate, p.cfg.Tempo, PartyMelody),
			Base:     2,
			Volume:   p.cfg.Volume,
		},
		Paused: p.muted,
	}
	p.mixer.Add(p.music)
	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Info("audio ready", "muted", p.muted, "tempo", p.cfg.Tempo)
	return nil
}

// Muted reports whether the music is silent.
func (p *Player) Muted() bool {
	if p == nil {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Available reports whether the device is open.
func (p *Player) Available() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Toggle flips the mute state and returns the new one. Without a device it
// always reports muted.
func (p *Player) Toggle() bool {
	if p == nil {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return true
	}
	p.muted = !p.muted
	speaker.Lock()
	p.music.Paused = p.muted
	speaker.Unlock()
	p.logger.Debug("music toggled", "muted", p.muted)
	return p.muted
}

// Blip plays the short sound for a game event. Silent while muted.
func (p *Player) Blip(kind core.EventKind) {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	s, err := EffectFor(kind, sampleRate)
	if err != nil {
		p.logger.Debug("no effect", "event", kind, "err", err)
		return
	}
	if s == nil {
		return
	}
	speaker.Lock()
	p.mixer.Add(&effects.Volume{Streamer: s, Base: 2, Volume: p.cfg.Volume})
	speaker.Unlock()
}

// Close stops all sound and releases the device.
func (p *Player) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
	p.muted = true
}

// EffectFor builds the finite streamer played for an event kind.
// Kinds without a sound return nil.
func EffectFor(kind core.EventKind, rate beep.SampleRate) (beep.Streamer, error) {
	switch kind {
	case core.EventScored:
		return tone(rate, 880, 60*time.Millisecond)
	case core.EventPenalty:
		return tone(rate, 196, 150*time.Millisecond)
	case core.EventOver:
		var parts []beep.Streamer
		for _, f := range []float64{noteC5, noteE5, noteG5} {
			s, err := tone(rate, f, 120*time.Millisecond)
			if err != nil {
				return nil, err
			}
			parts = append(parts, s)
		}
		return beep.Seq(parts...), nil
	}
	return nil, nil
}

func tone(rate beep.SampleRate, freq float64, d time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, fmt.Errorf("audio: tone %.0fHz: %w", freq, err)
	}
	quiet := &effects.Volume{Streamer: sine, Base: 2, Volume: -2}
	return beep.Take(rate.N(d), quiet), nil
}
