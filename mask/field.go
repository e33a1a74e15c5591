package mask

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/portal/vmath"
)

// Aspect returns width/height, or 1 for degenerate extents
func Aspect(width, height float64) float64 {
	if width <= 0 || height <= 0 || !vmath.IsFinite(width/height) {
		return 1
	}
	return width / height
}

// Corrected scales the x axis of a normalized position by aspect
func Corrected(p mgl64.Vec2, aspect float64) mgl64.Vec2 {
	return mgl64.Vec2{p.X() * aspect, p.Y()}
}

// Distance is the aspect-corrected distance between two normalized positions
func Distance(st, center mgl64.Vec2, aspect float64) float64 {
	d := Corrected(st, aspect).Sub(Corrected(center, aspect))
	return math.Hypot(d.X(), d.Y())
}

// Soft is the smooth-edged threshold 1 - smoothstep(radius, radius+edge, dist+noise)
func Soft(dist, radius, edge, noise float64) float64 {
	if radius < 0 {
		radius = 0
	}
	if edge < 0 {
		edge = 0
	}
	return 1 - vmath.Smoothstep(radius, radius+edge, dist+noise)
}

// Field is the noise-edged radial mask of one point at normalized position st
func Field(st, center mgl64.Vec2, aspect, radius, edge, noise float64) float64 {
	return Soft(Distance(st, center, aspect), radius, edge, noise)
}

// Combine merges two translucent layers; the result is independent of order
func Combine(a, b float64) float64 {
	return 1 - (1-vmath.Clamp01(a))*(1-vmath.Clamp01(b))
}
