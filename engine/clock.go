package engine

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/portal/parameter"
)

// TimeProvider is a source of monotonic time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider provides the real system time with monotonic clock readings
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}

// ScriptedTime only moves when Advance is called
// simulate runs and tests drive the FrameClock with it so a hold replays frame for frame
type ScriptedTime struct {
	origin time.Time
	offset atomic.Int64
}

// NewScriptedTime starts the script at origin
func NewScriptedTime(origin time.Time) *ScriptedTime {
	return &ScriptedTime{origin: origin}
}

func (s *ScriptedTime) Now() time.Time {
	return s.origin.Add(s.Elapsed())
}

// Advance moves the script by d; negative d rewinds, which FrameClock reads as a zero delta
func (s *ScriptedTime) Advance(d time.Duration) {
	s.offset.Add(int64(d))
}

// Elapsed returns the total scripted time since origin
func (s *ScriptedTime) Elapsed() time.Duration {
	return time.Duration(s.offset.Load())
}

// FrameClock turns provider readings into per-frame deltas
// A paused clock yields zero deltas and does not accumulate the pause on resume
// Deltas are capped at MaxFrameDelta so a stalled host does not jump the effect forward
type FrameClock struct {
	provider TimeProvider
	last     time.Time
	started  bool
	paused   atomic.Bool
	maxDelta time.Duration
}

// NewFrameClock creates a clock over provider
func NewFrameClock(provider TimeProvider) *FrameClock {
	return &FrameClock{provider: provider, maxDelta: parameter.MaxFrameDelta}
}

// Tick returns seconds since the previous tick; the first tick returns 0
func (c *FrameClock) Tick() float64 {
	now := c.provider.Now()
	if !c.started {
		c.started = true
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now

	if c.paused.Load() || elapsed <= 0 {
		return 0
	}
	if elapsed > c.maxDelta {
		elapsed = c.maxDelta
	}
	return elapsed.Seconds()
}

// Pause freezes deltas
func (c *FrameClock) Pause() {
	c.paused.Store(true)
}

// Resume continues from the next tick
func (c *FrameClock) Resume() {
	c.paused.Store(false)
}

// IsPaused returns current pause state
func (c *FrameClock) IsPaused() bool {
	return c.paused.Load()
}
