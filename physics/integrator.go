package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/vmath"
)

// Input is the per-frame physics input
// Signal is NDC on the repulsion strategy and the clamped displacement on follow
type Input struct {
	Signal   mgl64.Vec2
	Engaging bool
	Aspect   float64
}

// State is the integrated object state after a step
type State struct {
	Displacement mgl64.Vec3
	Target       mgl64.Vec3
	Rotation     mgl64.Vec3 // object spin plus wobble, radians
	FloatTilt    mgl64.Vec3
	FloatOffset  float64
	Distort      float64
	DistortSpeed float64
	Light        mgl64.Vec3
	Time         float64
}

// Integrator owns the object state; single-threaded, stepped once per frame
type Integrator struct {
	cfg      Config
	anchor   Transform
	strategy Strategy

	// continuous rate for normalized smoothing
	rate float64
	spin float64

	state State
}

// NewIntegrator creates an integrator at rest with normal distortion
func NewIntegrator(cfg Config, anchor Transform, strategy Strategy) *Integrator {
	in := &Integrator{
		cfg:      cfg,
		anchor:   anchor,
		strategy: strategy,
		rate:     vmath.RateForFactor(cfg.SmoothingFactor, cfg.ReferenceFPS),
	}
	in.Reset()
	return in
}

// Reset returns to rest, keeping the profile
func (in *Integrator) Reset() {
	in.spin = 0
	in.state = State{
		Distort:      in.cfg.DistortNormal,
		DistortSpeed: in.cfg.DistortSpeedNormal,
		Light:        mgl64.Vec3{0, 0, parameter.LightHeight},
	}
}

// SetProfile switches anchor and strategy; displacement carries over and re-converges
func (in *Integrator) SetProfile(anchor Transform, strategy Strategy) {
	in.anchor = anchor
	in.strategy = strategy
}

// Anchor returns the active anchor preset
func (in *Integrator) Anchor() Transform {
	return in.anchor
}

// Strategy returns the active target strategy
func (in *Integrator) Strategy() Strategy {
	return in.strategy
}

// State returns the last integrated state
func (in *Integrator) State() State {
	return in.state
}

// Config returns the tuning in use
func (in *Integrator) Config() Config {
	return in.cfg
}

// Factor returns the displacement interpolation factor for a step of dt
func (in *Integrator) Factor(dt float64) float64 {
	if in.cfg.Smoothing == SmoothingNormalized {
		if math.IsInf(in.rate, 1) {
			return 1
		}
		return vmath.ExpFactor(in.rate, dt)
	}
	return vmath.Clamp01(in.cfg.SmoothingFactor)
}

// Target computes the displacement target for input under the active strategy
func (in *Integrator) Target(input Input) mgl64.Vec3 {
	if in.strategy == StrategyFollow {
		return mgl64.Vec3{input.Signal.X(), input.Signal.Y(), 0}
	}
	w, h := ViewExtents(in.cfg.CameraDistance, in.cfg.CameraFOV, input.Aspect)
	pointer := PointerWorld(input.Signal, w, h)
	return in.cfg.RepulsionTarget(pointer, in.anchor.Position.Vec2())
}

// Step integrates one frame; negative or non-finite dt counts as zero
func (in *Integrator) Step(input Input, dt float64) State {
	if dt < 0 || !vmath.IsFinite(dt) {
		dt = 0
	}
	s := &in.state
	s.Time += dt

	// Displacement
	target := in.Target(input)
	s.Target = target
	if isFinite3(target) {
		s.Displacement = s.Displacement.Add(target.Sub(s.Displacement).Mul(in.Factor(dt)))
	}

	// Light follows the pointer on the repulsion strategy only
	if in.strategy == StrategyRepulsion {
		w, h := ViewExtents(in.cfg.CameraDistance, in.cfg.CameraFOV, input.Aspect)
		p := PointerWorld(input.Signal, w, h)
		s.Light = mgl64.Vec3{p.X(), p.Y(), parameter.LightHeight}
	}

	// Agitation
	distortTarget, speedTarget := in.cfg.DistortNormal, in.cfg.DistortSpeedNormal
	if input.Engaging {
		distortTarget, speedTarget = in.cfg.DistortBoil, in.cfg.DistortSpeedBoil
	}
	k := vmath.Clamp01(dt * in.cfg.AgitationRate)
	s.Distort = vmath.Mix(s.Distort, distortTarget, k)
	s.DistortSpeed = vmath.Mix(s.DistortSpeed, speedTarget, k)

	// Rotation integrates the rate so switching rates never jumps the angle
	rate := in.cfg.RotationRateIdle
	if input.Engaging {
		rate = in.cfg.RotationRateEngaged
	}
	in.spin += dt * rate
	t := s.Time
	s.Rotation = mgl64.Vec3{
		in.spin + math.Sin(t*0.5)*in.cfg.WobbleAmplitude,
		in.spin + math.Cos(t*0.3)*in.cfg.WobbleAmplitude,
		0,
	}

	// Idle float
	phase := t / 4 * in.cfg.FloatSpeed
	ri := in.cfg.FloatRotationIntensity
	s.FloatTilt = mgl64.Vec3{math.Cos(phase) / 8 * ri, math.Sin(phase) / 8 * ri, math.Sin(phase) / 20 * ri}
	s.FloatOffset = math.Sin(phase) / 10 * in.cfg.FloatIntensity

	return *s
}

// Spin returns the integrated baseline rotation angle without wobble
func (in *Integrator) Spin() float64 {
	return in.spin
}

// Model returns the object model matrix: anchor, float, displacement, then rotation in local space
func (in *Integrator) Model() mgl64.Mat4 {
	s := in.state
	local := mgl64.Translate3D(s.Displacement.X(), s.Displacement.Y()+s.FloatOffset, s.Displacement.Z()).
		Mul4(mgl64.HomogRotate3DX(s.FloatTilt.X())).
		Mul4(mgl64.HomogRotate3DY(s.FloatTilt.Y())).
		Mul4(mgl64.HomogRotate3DZ(s.FloatTilt.Z())).
		Mul4(mgl64.HomogRotate3DX(s.Rotation.X())).
		Mul4(mgl64.HomogRotate3DY(s.Rotation.Y()))
	return in.anchor.Matrix().Mul4(local)
}

func isFinite3(v mgl64.Vec3) bool {
	return vmath.IsFinite(v.X()) && vmath.IsFinite(v.Y()) && vmath.IsFinite(v.Z())
}
