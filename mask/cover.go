package mask

import (
	"image"
	"math"

	"github.com/lixenwraith/portal/vmath"
)

// Rect is a UV sub-rectangle of a texture, U0 <= U1 and V0 <= V1 within [0,1]
type Rect struct {
	U0, V0, U1, V1 float64
}

// Full is the whole texture
var Full = Rect{0, 0, 1, 1}

// CoverFit returns the texture region visible when an image fills a viewport without distortion
// The axis the image overflows is cropped symmetrically; degenerate extents sample the full texture
func CoverFit(viewW, viewH, imgW, imgH float64) Rect {
	if viewW <= 0 || viewH <= 0 || imgW <= 0 || imgH <= 0 {
		return Full
	}
	viewAspect := viewW / viewH
	imgAspect := imgW / imgH
	if !vmath.IsFinite(viewAspect) || !vmath.IsFinite(imgAspect) {
		return Full
	}

	switch {
	case viewAspect > imgAspect:
		// Image scaled to viewport width, vertical overflow cropped
		span := imgAspect / viewAspect
		return Rect{0, (1 - span) / 2, 1, (1 + span) / 2}
	case viewAspect < imgAspect:
		span := viewAspect / imgAspect
		return Rect{(1 - span) / 2, 0, (1 + span) / 2, 1}
	}
	return Full
}

// Map converts viewport UV to texture UV
func (r Rect) Map(u, v float64) (float64, float64) {
	return vmath.Mix(r.U0, r.U1, u), vmath.Mix(r.V0, r.V1, v)
}

// Width is the sampled U span
func (r Rect) Width() float64 { return r.U1 - r.U0 }

// Height is the sampled V span
func (r Rect) Height() float64 { return r.V1 - r.V0 }

// Pixels maps the rect into image bounds b, rounding outward
func (r Rect) Pixels(b image.Rectangle) image.Rectangle {
	w, h := float64(b.Dx()), float64(b.Dy())
	out := image.Rect(
		b.Min.X+int(math.Floor(r.U0*w)),
		b.Min.Y+int(math.Floor(r.V0*h)),
		b.Min.X+int(math.Ceil(r.U1*w)),
		b.Min.Y+int(math.Ceil(r.V1*h)),
	)
	return out.Intersect(b)
}
