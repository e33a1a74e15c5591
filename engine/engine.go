// Package engine owns the transition state and advances it once per frame in a fixed order
package engine

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/portal/event"
	"github.com/lixenwraith/portal/input"
	"github.com/lixenwraith/portal/physics"
	"github.com/lixenwraith/portal/progress"
	"github.com/lixenwraith/portal/status"
	"github.com/lixenwraith/portal/trail"
	"github.com/lixenwraith/portal/vmath"
)

// Config aggregates the tuning of every stepped component
type Config struct {
	Input    input.Config    `yaml:"input"`
	Progress progress.Config `yaml:"progress"`
	Trail    trail.Config    `yaml:"trail"`
	Physics  physics.Config  `yaml:"physics"`
	Device   DeviceOverride  `yaml:"device"`

	// PixelScale converts viewport units to logical pixels for classification
	PixelScale float64 `yaml:"pixel_scale"`
}

// DefaultConfig returns the tuned engine settings
func DefaultConfig() Config {
	return Config{
		Input:      input.DefaultConfig(),
		Progress:   progress.DefaultConfig(),
		Trail:      trail.DefaultConfig(),
		Physics:    physics.DefaultConfig(),
		Device:     DeviceAuto,
		PixelScale: 1,
	}
}

// Completion is the event delivered once per qualifying engagement episode
type Completion = event.CompletionPayload

// Frame is the engine output after one step
type Frame struct {
	Index     uint64
	Time      time.Duration
	Sample    input.Sample
	Progress  progress.State
	Phase     progress.Phase
	Completed bool
	Radius    float64
	Physics   physics.State
	Class     input.Class
	Aspect    float64
}

// Engine owns input, progress, trail and physics state
// Step must be called from a single goroutine; input events may arrive from any goroutine
type Engine struct {
	cfg Config

	input    *input.Normalizer
	progress *progress.Machine
	trail    *trail.Buffer
	physics  *physics.Integrator

	queue  *event.Queue
	router *event.Router

	profile    DeviceProfile
	lastWidth  float64
	permission input.Permission

	episode uuid.UUID
	engaged bool
	frame   atomic.Uint64
	elapsed time.Duration

	metrics     *status.Registry
	mProgress   *status.Gauge
	mNorm       *status.Gauge
	mRadius     *status.Gauge
	mDisp       *status.Gauge
	mDistort    *status.Gauge
	mFrameTime  *status.Gauge
	mPhase      *status.Label
	mClass      *status.Label
	mPermission *status.Label
	mCompleted  *atomic.Int64
	mActive     *atomic.Int64
}

// New creates an engine at rest; a nil registry gets a private one
func New(cfg Config, reg *status.Registry) *Engine {
	if reg == nil {
		reg = status.NewRegistry()
	}
	if cfg.PixelScale <= 0 {
		cfg.PixelScale = 1
	}

	queue := event.NewQueue()
	profile := ProfileFor(cfg.Device.Resolve(input.ClassWide))

	e := &Engine{
		cfg:      cfg,
		input:    input.NewNormalizer(cfg.Input),
		progress: progress.NewMachine(cfg.Progress),
		trail:    trail.NewBuffer(cfg.Trail),
		physics:  physics.NewIntegrator(cfg.Physics, profile.Anchor, profile.Strategy),
		queue:    queue,
		router:   event.NewRouter(queue),
		profile:  profile,

		metrics:     reg,
		mProgress:   reg.Float(status.MetricProgress),
		mNorm:       reg.Float(status.MetricProgressNorm),
		mRadius:     reg.Float(status.MetricTrailRadius),
		mDisp:       reg.Float(status.MetricDisplacement),
		mDistort:    reg.Float(status.MetricDistort),
		mFrameTime:  reg.Float(status.MetricFrameTime),
		mPhase:      reg.Text(status.MetricPhase),
		mClass:      reg.Text(status.MetricDeviceClass),
		mPermission: reg.Text(status.MetricPermission),
		mCompleted:  reg.Int(status.MetricCompletions),
		mActive:     reg.Int(status.MetricTrailActive),
	}

	e.mClass.Store(profile.Class.String())
	e.mPermission.Store(e.permission.String())
	e.mPhase.Store(progress.PhaseIdle.String())

	e.router.Subscribe(event.ReturnHome, func(event.Event) { e.Reset() })
	return e
}

// Input returns the event sink hosts feed directly
func (e *Engine) Input() *input.Normalizer {
	return e.input
}

// Attach subscribes the engine's normalizer to src and returns the disposer
func (e *Engine) Attach(src input.Source) (detach func()) {
	return src.Subscribe(e.input)
}

// RequestPermission starts the orientation permission request; see input.Normalizer.RequestPermission
func (e *Engine) RequestPermission(ctx context.Context, r input.Requester) <-chan input.Permission {
	return e.input.RequestPermission(ctx, r)
}

// Subscribe registers fn for events of type t; must be called from the frame goroutine
func (e *Engine) Subscribe(t event.Type, fn event.HandlerFunc) (dispose func()) {
	return e.router.Subscribe(t, fn)
}

// OnComplete registers fn for completion events
func (e *Engine) OnComplete(fn func(Completion)) (dispose func()) {
	return e.router.Subscribe(event.Completion, func(ev event.Event) {
		if c, ok := ev.Payload.(*event.CompletionPayload); ok {
			fn(*c)
		}
	})
}

// Publish enqueues a host event for the next dispatch; safe from any goroutine
func (e *Engine) Publish(t event.Type, payload any) {
	e.queue.Push(event.Event{Type: t, Payload: payload, Frame: e.frame.Load()})
}

// ReturnHome requests a reset at the end of the next step
func (e *Engine) ReturnHome() {
	e.Publish(event.ReturnHome, nil)
}

// Step advances one frame: normalize input, progress, trail, physics, then dispatch events
// Negative or non-finite dt counts as zero; Step never fails
func (e *Engine) Step(dt float64) Frame {
	start := time.Now()
	if dt < 0 || !vmath.IsFinite(dt) {
		dt = 0
	}
	index := e.frame.Add(1)
	e.elapsed += time.Duration(dt * float64(time.Second))

	e.updateProfile()

	// Input
	sample := e.input.Sample(e.profile.Class)
	e.trackEpisode(sample.Engaging)

	// Progress
	completed := e.progress.Step(sample.Engaging, dt)
	state := e.progress.State()
	if completed {
		e.emit(event.Completion, &event.CompletionPayload{Episode: e.episode, At: e.elapsed, Value: state.Value})
		e.mCompleted.Add(1)
		log.Printf("[engine] completion episode=%s at=%s value=%.3f", e.episode, e.elapsed, state.Value)
	}

	// Trail
	e.trail.Step(sample.X, sample.Y, dt)
	e.trail.UpdateScale(state.Value, sample.Engaging)

	// Physics
	w, h := e.input.Viewport()
	aspect := 1.0
	if w > 0 && h > 0 {
		aspect = w / h
	}
	phys := e.physics.Step(physics.Input{Signal: sample.Signal, Engaging: sample.Engaging, Aspect: aspect}, dt)

	e.observePermission()

	f := Frame{
		Index:     index,
		Time:      e.elapsed,
		Sample:    sample,
		Progress:  state,
		Phase:     e.progress.Phase(),
		Completed: completed,
		Radius:    e.trail.Radius(),
		Physics:   phys,
		Class:     e.profile.Class,
		Aspect:    aspect,
	}

	e.publishMetrics(f, time.Since(start))
	e.router.DispatchAll()
	return f
}

// Reset returns progress, trail and physics to rest and ends any held engagement
// Pointer position, viewport and profile are kept; a new episode needs a fresh press
func (e *Engine) Reset() {
	e.input.Release()
	e.progress.Reset()
	e.trail.Reset()
	e.physics.Reset()
	e.engaged = false
	e.mProgress.Set(0)
	e.mNorm.Set(0)
	e.mPhase.Store(progress.PhaseIdle.String())
}

// Progress returns the current progress state
func (e *Engine) Progress() progress.State {
	return e.progress.State()
}

// Trail returns the trail buffer for read access by renderers
func (e *Engine) Trail() *trail.Buffer {
	return e.trail
}

// Physics returns the integrator for read access by renderers
func (e *Engine) Physics() *physics.Integrator {
	return e.physics
}

// Profile returns the active device profile
func (e *Engine) Profile() DeviceProfile {
	return e.profile
}

// Metrics returns the status registry the engine writes to
func (e *Engine) Metrics() *status.Registry {
	return e.metrics
}

// Config returns the engine configuration
func (e *Engine) Config() Config {
	return e.cfg
}

// Episode returns the current or most recent engagement episode ID
func (e *Engine) Episode() uuid.UUID {
	return e.episode
}

// Elapsed returns accumulated engine time
func (e *Engine) Elapsed() time.Duration {
	return e.elapsed
}

// updateProfile re-classifies only when the viewport width changed
func (e *Engine) updateProfile() {
	w, _ := e.input.Viewport()
	if w == e.lastWidth {
		return
	}
	e.lastWidth = w

	class := e.cfg.Device.Resolve(e.input.Class(e.cfg.PixelScale))
	if class == e.profile.Class {
		return
	}
	e.profile = ProfileFor(class)
	e.physics.SetProfile(e.profile.Anchor, e.profile.Strategy)
	e.mClass.Store(class.String())
	e.emit(event.DeviceClassChanged, &event.DeviceClassPayload{Class: class.String(), Width: w * e.cfg.PixelScale})
	log.Printf("[engine] device class %s (width %.0f)", class, w*e.cfg.PixelScale)
}

func (e *Engine) trackEpisode(engaging bool) {
	switch {
	case engaging && !e.engaged:
		e.episode = uuid.New()
		e.emit(event.EngageStart, &event.EngagePayload{Episode: e.episode, At: e.elapsed, Value: e.progress.Value()})
	case !engaging && e.engaged:
		e.emit(event.EngageEnd, &event.EngagePayload{Episode: e.episode, At: e.elapsed, Value: e.progress.Value()})
	}
	e.engaged = engaging
}

func (e *Engine) observePermission() {
	p := e.input.Permission()
	if p == e.permission {
		return
	}
	e.permission = p
	e.mPermission.Store(p.String())
	if p == input.PermissionGranted || p == input.PermissionDenied {
		e.emit(event.PermissionSettled, &event.PermissionPayload{State: p.String()})
	}
}

func (e *Engine) emit(t event.Type, payload any) {
	e.queue.Push(event.Event{Type: t, Payload: payload, Frame: e.frame.Load()})
}

func (e *Engine) publishMetrics(f Frame, took time.Duration) {
	e.mProgress.Set(f.Progress.Value)
	e.mNorm.Set(e.progress.Normalized())
	e.mPhase.Store(f.Phase.String())
	e.mRadius.Set(f.Radius)
	e.mDisp.Set(f.Physics.Displacement.Len())
	e.mDistort.Set(f.Physics.Distort)
	e.mFrameTime.Set(float64(took.Microseconds()) / 1000)
	e.mActive.Store(int64(e.trail.ActiveCount()))
}
