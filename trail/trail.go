// Package trail keeps a fixed set of decaying reveal points, recycling the stalest slot every frame
package trail

import (
	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/vmath"
)

// Config holds buffer capacity, decay and radius scaling
type Config struct {
	Capacity   int     `yaml:"capacity"`
	AgeRate    float64 `yaml:"age_rate"`
	BaseRadius float64 `yaml:"base_radius"`
	FloodGain  float64 `yaml:"flood_gain"`
}

// DefaultConfig returns the tuned buffer settings
func DefaultConfig() Config {
	return Config{
		Capacity:   parameter.TrailCapacity,
		AgeRate:    parameter.TrailAgeRate,
		BaseRadius: parameter.TrailBaseRadius,
		FloodGain:  parameter.TrailFloodGain,
	}
}

// Point is one historical input sample with independent decay
type Point struct {
	X, Y   float64
	Age    float64
	Active bool
}

// Opacity is max(0, 1 - age)
func (p Point) Opacity() float64 {
	if p.Age >= 1 {
		return 0
	}
	if p.Age <= 0 {
		return 1
	}
	return 1 - p.Age
}

// Buffer is a fixed-capacity point set with replace-max-age insertion
// Not a FIFO: the slot overwritten is always the oldest, ties resolved to the lowest index
type Buffer struct {
	cfg    Config
	points []Point
	last   int
	scale  float64
}

// NewBuffer allocates all points once with an initial age that makes them immediately replaceable
// Capacity below 1 is raised to 1
func NewBuffer(cfg Config) *Buffer {
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	b := &Buffer{
		cfg:    cfg,
		points: make([]Point, cfg.Capacity),
		last:   -1,
		scale:  1,
	}
	for i := range b.points {
		b.points[i].Age = parameter.TrailInitialAge
	}
	return b
}

// Oldest returns the index of the point with maximum age, lowest index on ties
func (b *Buffer) Oldest() int {
	idx := 0
	maxAge := b.points[0].Age
	for i := 1; i < len(b.points); i++ {
		// Strict comparison keeps the earliest index among equals
		if b.points[i].Age > maxAge {
			maxAge = b.points[i].Age
			idx = i
		}
	}
	return idx
}

// Insert overwrites the oldest point with (x, y) at age 0 and returns its index
func (b *Buffer) Insert(x, y float64) int {
	idx := b.Oldest()
	b.points[idx] = Point{X: x, Y: y, Age: 0, Active: true}
	b.last = idx
	return idx
}

// Advance ages every point, active or not, by dt * AgeRate
func (b *Buffer) Advance(dt float64) {
	if !vmath.IsFinite(dt) || dt <= 0 {
		return
	}
	step := dt * b.cfg.AgeRate
	for i := range b.points {
		b.points[i].Age += step
	}
}

// Step performs one frame: insert the current sample, then age all points
func (b *Buffer) Step(x, y, dt float64) int {
	idx := b.Insert(x, y)
	b.Advance(dt)
	return idx
}

// UpdateScale sets the flood scale from progress: grows while engaging, 1.0 otherwise
func (b *Buffer) UpdateScale(progress float64, engaging bool) float64 {
	if engaging {
		b.scale = 1 + progress*b.cfg.FloodGain
	} else {
		b.scale = 1
	}
	return b.scale
}

// Radius returns the current per-point render radius
func (b *Buffer) Radius() float64 {
	return b.cfg.BaseRadius * b.scale
}

// Points returns a copy of all points in slot order
func (b *Buffer) Points() []Point {
	out := make([]Point, len(b.points))
	copy(out, b.points)
	return out
}

// Visible appends points with non-zero opacity to dst and returns it
func (b *Buffer) Visible(dst []Point) []Point {
	for _, p := range b.points {
		if p.Active && p.Opacity() > 0 {
			dst = append(dst, p)
		}
	}
	return dst
}

// At returns the point in slot i
func (b *Buffer) At(i int) Point {
	return b.points[i]
}

// Last returns the slot written by the most recent Insert, or -1
func (b *Buffer) Last() int {
	return b.last
}

// Len returns the fixed capacity
func (b *Buffer) Len() int {
	return len(b.points)
}

// ActiveCount returns the number of points with non-zero opacity
func (b *Buffer) ActiveCount() int {
	n := 0
	for _, p := range b.points {
		if p.Active && p.Opacity() > 0 {
			n++
		}
	}
	return n
}

// Reset returns every slot to its initial, immediately replaceable state
func (b *Buffer) Reset() {
	for i := range b.points {
		b.points[i] = Point{Age: parameter.TrailInitialAge}
	}
	b.last = -1
	b.scale = 1
}
