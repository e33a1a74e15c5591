// Package input unifies pointer, touch and device-orientation sources into one per-frame sample
package input

import (
	"context"
	"log"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/status"
	"github.com/lixenwraith/portal/vmath"
)

// Class is the device-class selecting the input and physics strategy
type Class uint8

const (
	ClassWide Class = iota
	ClassCompact
)

func (c Class) String() string {
	if c == ClassCompact {
		return "compact"
	}
	return "wide"
}

// Classify returns ClassCompact when width is below the breakpoint
// Zero width (layout not settled) classifies as wide
func Classify(width, breakpoint float64) Class {
	if width > 0 && width < breakpoint {
		return ClassCompact
	}
	return ClassWide
}

// Config holds sensor scaling and clamping
type Config struct {
	GyroSensitivity  float64 `yaml:"gyro_sensitivity"`
	GyroBetaRest     float64 `yaml:"gyro_beta_rest"`
	TouchSensitivity float64 `yaml:"touch_sensitivity"`
	MaxMobileMove    float64 `yaml:"max_mobile_move"`
	Breakpoint       float64 `yaml:"breakpoint"`
}

// DefaultConfig returns the tuned sensor settings
func DefaultConfig() Config {
	return Config{
		GyroSensitivity:  parameter.GyroSensitivity,
		GyroBetaRest:     parameter.GyroBetaRest,
		TouchSensitivity: parameter.TouchSensitivity,
		MaxMobileMove:    parameter.MaxMobileMove,
		Breakpoint:       parameter.CompactBreakpoint,
	}
}

// Sample is the normalized input for one frame
// X, Y are viewport-normalized in [0,1] with Y growing downward
// Signal is the object-space displacement signal for the selected device class
type Sample struct {
	X, Y     float64
	Engaging bool
	Signal   mgl64.Vec2
}

// NDC returns the sample position in normalized device coordinates, Y up
func (s Sample) NDC() mgl64.Vec2 {
	return mgl64.Vec2{s.X*2 - 1, 1 - s.Y*2}
}

// Orientation is the latest raw device-orientation reading in degrees
type Orientation struct {
	Gamma, Beta float64
}

// Normalizer is the latest-value sink for host events
// Event methods may be called from any goroutine; Sample is called once per frame by the owner
// Each field has a single writer, so a burst of events before a frame simply overwrites older values
type Normalizer struct {
	cfg Config

	width, height status.Gauge
	x, y          status.Gauge
	seen          atomic.Bool
	engaging      atomic.Bool

	gamma, beta status.Gauge
	permission  atomic.Int32
}

// NewNormalizer creates a normalizer at the neutral midpoint with orientation unrequested
func NewNormalizer(cfg Config) *Normalizer {
	n := &Normalizer{cfg: cfg}
	n.x.Set(0.5)
	n.y.Set(0.5)
	return n
}

// Press starts an engagement at raw device coordinates
func (n *Normalizer) Press(x, y float64) {
	n.Move(x, y)
	n.engaging.Store(true)
}

// Release ends an engagement; position keeps the last known sample
func (n *Normalizer) Release() {
	n.engaging.Store(false)
}

// Move records a pointer/touch position in raw device coordinates
// Undefined coordinates and degenerate viewports keep the last known sample
func (n *Normalizer) Move(x, y float64) {
	if !vmath.IsFinite(x) || !vmath.IsFinite(y) {
		return
	}
	w, h := n.width.Get(), n.height.Get()
	if vmath.NearZero(w) || vmath.NearZero(h) {
		return
	}
	n.x.Set(vmath.Clamp01(x / w))
	n.y.Set(vmath.Clamp01(y / h))
	n.seen.Store(true)
}

// Resize records the viewport extents in the same units as pointer coordinates
func (n *Normalizer) Resize(width, height float64) {
	if !vmath.IsFinite(width) || !vmath.IsFinite(height) || width < 0 || height < 0 {
		return
	}
	n.width.Set(width)
	n.height.Set(height)
}

// Orient records the latest device-orientation reading
// Readings are stored regardless of permission; Sample ignores them until granted
func (n *Normalizer) Orient(gamma, beta float64) {
	if !vmath.IsFinite(gamma) || !vmath.IsFinite(beta) {
		return
	}
	n.gamma.Set(gamma)
	n.beta.Set(beta)
}

// Viewport returns the last recorded extents
func (n *Normalizer) Viewport() (width, height float64) {
	return n.width.Get(), n.height.Get()
}

// Class classifies the current viewport width against the configured breakpoint
func (n *Normalizer) Class(pixelScale float64) Class {
	return Classify(n.width.Get()*pixelScale, n.cfg.Breakpoint)
}

// Engaging reports the current press state
func (n *Normalizer) Engaging() bool {
	return n.engaging.Load()
}

// Touched reports whether any pointer or touch position has been recorded
func (n *Normalizer) Touched() bool {
	return n.seen.Load()
}

// Orientation returns the latest reading without consuming it
func (n *Normalizer) Orientation() Orientation {
	return Orientation{Gamma: n.gamma.Get(), Beta: n.beta.Get()}
}

// Sample produces the per-frame input for the given device class
func (n *Normalizer) Sample(class Class) Sample {
	s := Sample{
		X:        n.x.Get(),
		Y:        n.y.Get(),
		Engaging: n.engaging.Load(),
	}
	ndc := s.NDC()

	if class == ClassWide {
		s.Signal = ndc
		return s
	}

	var gx, gy float64
	if n.Permission() == PermissionGranted {
		gx = n.gamma.Get() * n.cfg.GyroSensitivity
		gy = (n.beta.Get() - n.cfg.GyroBetaRest) * n.cfg.GyroSensitivity
	}

	limit := n.cfg.MaxMobileMove
	s.Signal = mgl64.Vec2{
		vmath.Clamp(gx+ndc.X()*n.cfg.TouchSensitivity, -limit, limit),
		vmath.Clamp(gy+ndc.Y()*n.cfg.TouchSensitivity, -limit, limit),
	}
	return s
}

// Permission returns the orientation permission state
func (n *Normalizer) Permission() Permission {
	return Permission(n.permission.Load())
}

// GrantOrientation marks orientation as granted, for hosts that need no explicit request
func (n *Normalizer) GrantOrientation() {
	n.permission.Store(int32(PermissionGranted))
}

// RequestPermission issues a fire-and-forget orientation permission request
// The returned channel receives the settled state once and is closed; repeated calls while
// pending or settled return an already-settled channel with the current state
func (n *Normalizer) RequestPermission(ctx context.Context, r Requester) <-chan Permission {
	done := make(chan Permission, 1)

	if !n.permission.CompareAndSwap(int32(PermissionUnrequested), int32(PermissionPending)) {
		done <- n.Permission()
		close(done)
		return done
	}

	go func() {
		defer close(done)

		granted, err := r.RequestOrientation(ctx)
		state := PermissionGranted
		if err != nil || !granted {
			// Denial is terminal: touch-only input for the rest of the session
			state = PermissionDenied
			if err != nil {
				log.Printf("[input] orientation permission failed: %v (touch-only)", err)
			} else {
				log.Printf("[input] orientation permission denied (touch-only)")
			}
		}
		n.permission.Store(int32(state))
		done <- state
	}()

	return done
}
