package mask

import "github.com/lixenwraith/portal/vmath"

// Aperture eases the overlay opening toward 1 while engaging and back to 0 otherwise
// It keeps its own clock and ignores the completion latch
type Aperture struct {
	value float64
	rise  float64
	fall  float64
}

// NewAperture creates a closed aperture
func NewAperture(cfg Overlay) *Aperture {
	return &Aperture{rise: cfg.RiseRate, fall: cfg.FallRate}
}

// Step moves the opening a dt-scaled fraction of the way to its target and returns it
func (a *Aperture) Step(open bool, dt float64) float64 {
	if dt <= 0 || !vmath.IsFinite(dt) {
		return a.value
	}
	target, speed := 0.0, a.fall
	if open {
		target, speed = 1.0, a.rise
	}
	a.value = vmath.Mix(a.value, target, vmath.Clamp01(dt*speed))
	return a.value
}

// Value returns the current opening in [0, 1]
func (a *Aperture) Value() float64 {
	return a.value
}

// Reset closes the aperture
func (a *Aperture) Reset() {
	a.value = 0
}
