// Package bell plays a short tone when the engine rejects input.
package bell

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Bell owns the speaker mixer; all methods are safe on a disabled or
// uninitialized bell
type Bell struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	initialized bool
	rung        int
}

// New creates a bell; the speaker is not opened until Init
func New(cfg Config) *Bell {
	cfg.Volume = clampVolume(cfg.Volume)
	return &Bell{cfg: cfg, mixer: &beep.Mixer{}}
}

// Init opens the audio device when the bell is enabled
func (b *Bell) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized || !b.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Ring queues one tone; no-op until Init succeeded
func (b *Bell) Ring() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.rung++
	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Add(Tone(b.cfg, sampleRate))
	speaker.Unlock()
}

// Rings reports how many times Ring was called
func (b *Bell) Rings() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rung
}

// Enabled reports the configured state
func (b *Bell) Enabled() bool {
	return b.cfg.Enabled
}

// Close silences pending tones
func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	speaker.Lock()
	b.mixer.Clear()
	speaker.Unlock()
	b.initialized = false
}
