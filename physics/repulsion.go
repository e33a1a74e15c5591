package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/portal/vmath"
)

// ViewExtents returns the world width and height visible at the z=0 plane
// fovDeg is the vertical field of view
func ViewExtents(distance, fovDeg, aspect float64) (width, height float64) {
	height = 2 * distance * math.Tan(mgl64.DegToRad(fovDeg)/2)
	if aspect <= 0 || !vmath.IsFinite(aspect) {
		aspect = 1
	}
	return height * aspect, height
}

// PointerWorld maps an NDC pointer to world x/y on the z=0 plane
func PointerWorld(ndc mgl64.Vec2, width, height float64) mgl64.Vec2 {
	return mgl64.Vec2{ndc.X() * width / 2, ndc.Y() * height / 2}
}

// Intensity is the push magnitude at distance d: (k - d/radius)*force inside the radius, 0 otherwise
func (c Config) Intensity(d float64) float64 {
	if c.RepulsionRadius <= 0 || d < 0 || d >= c.RepulsionRadius || !vmath.IsFinite(d) {
		return 0
	}
	return (c.RepulsionK - d/c.RepulsionRadius) * c.RepulsionForce
}

// RepulsionTarget returns the displacement pushing the object at anchor away from pointer
// Zero beyond the radius; zero when the pointer sits exactly on the anchor (no direction)
func (c Config) RepulsionTarget(pointer, anchor mgl64.Vec2) mgl64.Vec3 {
	rel := pointer.Sub(anchor)
	d := rel.Len()

	intensity := c.Intensity(d)
	if intensity == 0 || vmath.NearZero(d) {
		return mgl64.Vec3{}
	}

	away := rel.Mul(-1 / d)
	return mgl64.Vec3{away.X() * intensity, away.Y() * intensity, 0}
}
