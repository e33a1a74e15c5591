// Package progress converts the engaging flag into a bounded transition value with a one-shot completion latch
package progress

import (
	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/vmath"
)

// Phase is the observable state of the machine
type Phase uint8

const (
	PhaseIdle       Phase = iota // value == 0, not triggered
	PhaseRising                  // engaging, below threshold
	PhaseCompleting              // engaging, at or past threshold, triggered
	PhaseFalling                 // released, value > 0
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRising:
		return "rising"
	case PhaseCompleting:
		return "completing"
	case PhaseFalling:
		return "falling"
	default:
		return "unknown"
	}
}

// Config holds the rise/fall rates and bounds
type Config struct {
	RiseRate  float64 `yaml:"rise_rate"`
	FallRate  float64 `yaml:"fall_rate"`
	Threshold float64 `yaml:"completion_threshold"`
	MaxValue  float64 `yaml:"max_value"`
}

// DefaultConfig returns the tuned rates
func DefaultConfig() Config {
	return Config{
		RiseRate:  parameter.ProgressRiseRate,
		FallRate:  parameter.ProgressFallRate,
		Threshold: parameter.ProgressThreshold,
		MaxValue:  parameter.ProgressMaxValue,
	}
}

// State is the progress value and completion latch
type State struct {
	Value     float64
	Triggered bool
}

// Machine owns a State and advances it once per frame
// Not safe for concurrent use; owned by the frame callback
type Machine struct {
	cfg      Config
	state    State
	engaging bool
}

// NewMachine creates an idle machine
func NewMachine(cfg Config) *Machine {
	return &Machine{cfg: cfg}
}

// Step advances the machine by dt seconds and reports whether the completion event fires on this frame
// Negative or non-finite dt is treated as zero
func (m *Machine) Step(engaging bool, dt float64) (completed bool) {
	if !vmath.IsFinite(dt) || dt < 0 {
		dt = 0
	}
	m.engaging = engaging

	if engaging {
		m.state.Value += dt * m.cfg.RiseRate
	} else {
		m.state.Value -= dt * m.cfg.FallRate
		// Release re-arms the latch for the next engagement
		m.state.Triggered = false
	}

	m.state.Value = vmath.Clamp(m.state.Value, 0, m.cfg.MaxValue)

	if engaging && !m.state.Triggered && m.state.Value >= m.cfg.Threshold {
		m.state.Triggered = true
		return true
	}
	return false
}

// State returns a copy of the current state
func (m *Machine) State() State {
	return m.state
}

// Value returns the current progress value
func (m *Machine) Value() float64 {
	return m.state.Value
}

// Engaging returns the engaging flag seen by the last Step
func (m *Machine) Engaging() bool {
	return m.engaging
}

// Phase classifies the current state
func (m *Machine) Phase() Phase {
	switch {
	case m.engaging && m.state.Triggered:
		return PhaseCompleting
	case m.engaging:
		return PhaseRising
	case m.state.Value > 0:
		return PhaseFalling
	default:
		return PhaseIdle
	}
}

// Normalized returns value/threshold clamped to [0, 1], used for chrome blending and audio pitch
func (m *Machine) Normalized() float64 {
	if m.cfg.Threshold <= 0 {
		return 0
	}
	return vmath.Clamp01(m.state.Value / m.cfg.Threshold)
}

// Reset returns the machine to idle
func (m *Machine) Reset() {
	m.state = State{}
	m.engaging = false
}

// Config returns the active configuration
func (m *Machine) Config() Config {
	return m.cfg
}
