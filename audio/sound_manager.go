// Package audio voices the transition: a hum that rises with progress and a chime on completion
package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/portal/event"
)

// SoundManager owns the speaker and mixer
// All methods are safe to call before Initialize or after Cleanup; they do nothing
type SoundManager struct {
	mu          sync.Mutex
	cfg         Config
	sr          beep.SampleRate
	mixer       *beep.Mixer
	charge      *ChargeGenerator
	chargeCtrl  *beep.Ctrl
	initialized bool
	chimes      int
}

// NewSoundManager creates a sound manager
func NewSoundManager(cfg Config) *SoundManager {
	sr := beep.SampleRate(cfg.SampleRate)
	if sr <= 0 {
		sr = beep.SampleRate(DefaultConfig().SampleRate)
	}
	return &SoundManager{
		cfg:    cfg,
		sr:     sr,
		mixer:  &beep.Mixer{},
		charge: NewChargeGenerator(sr, cfg.ChargeBaseFreq, cfg.ChargeTopFreq, cfg.ChargeVolume*cfg.MasterVolume),
	}
}

// Initialize sets up the speaker and starts the silent hum
// A disabled config initializes nothing and returns nil
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(sm.sr, sm.sr.N(sm.cfg.Buffer)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	sm.chargeCtrl = &beep.Ctrl{Streamer: sm.charge}
	sm.mixer.Add(sm.chargeCtrl)
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences and detaches all streams
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	if sm.chargeCtrl != nil {
		sm.chargeCtrl.Paused = true
	}
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// SetCharge drives the hum from normalized progress; lock-free, called every frame
func (sm *SoundManager) SetCharge(level float64) {
	sm.charge.SetLevel(level)
}

// Chime plays the completion bell
func (sm *SoundManager) Chime() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	g := NewChimeGenerator(sm.sr, sm.cfg.ChimeFreq, sm.cfg.ChimeDuration, sm.cfg.ChimeVolume*sm.cfg.MasterVolume)
	speaker.Lock()
	sm.mixer.Add(g)
	speaker.Unlock()
	sm.chimes++
}

// HandleEvent routes engine events: completion chimes, release drops the hum
func (sm *SoundManager) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.Completion:
		sm.Chime()
	case event.EngageEnd:
		sm.SetCharge(0)
	}
}

// EventTypes returns the event types HandleEvent consumes
func (sm *SoundManager) EventTypes() []event.Type {
	return []event.Type{event.Completion, event.EngageEnd}
}

// Initialized reports whether the speaker is running
func (sm *SoundManager) Initialized() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Charge returns the hum generator
func (sm *SoundManager) Charge() *ChargeGenerator {
	return sm.charge
}
