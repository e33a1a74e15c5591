package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera on +Z looking at the origin
type Camera struct {
	Distance float64
	FOV      float64 // vertical, degrees
	Near     float64
	Far      float64
}

// NewCamera returns a camera with default clip planes
func NewCamera(distance, fov float64) Camera {
	return Camera{Distance: distance, FOV: fov, Near: 0.1, Far: 1000}
}

// ViewProjection returns projection * view for the given aspect
func (c Camera) ViewProjection(aspect float64) mgl64.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	view := mgl64.LookAtV(mgl64.Vec3{0, 0, c.Distance}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	proj := mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
	return proj.Mul4(view)
}

// Project maps a world point to screen coordinates of a w×h surface, Y down
// ok is false for points behind the camera or outside the clip depth
func Project(p mgl64.Vec3, vp mgl64.Mat4, w, h float64) (x, y float64, ok bool) {
	clip := vp.Mul4x1(p.Vec4(1))
	if clip.W() <= 0 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() < -1 || ndc.Z() > 1 {
		return 0, 0, false
	}
	return (ndc.X() + 1) / 2 * w, (1 - ndc.Y()) / 2 * h, true
}

// Segment is a projected edge in screen coordinates
type Segment struct {
	X0, Y0, X1, Y1 float64
}

// Wireframe projects mesh edges after transforming vertices by model
// verts are the (possibly distorted) object-space vertices matching m.Vertices
func Wireframe(dst []Segment, m *Mesh, verts []mgl64.Vec3, model, vp mgl64.Mat4, w, h float64) []Segment {
	dst = dst[:0]
	mvp := vp.Mul4(model)

	type projected struct {
		x, y float64
		ok   bool
	}
	screen := make([]projected, len(verts))
	for i, v := range verts {
		x, y, ok := Project(v, mvp, w, h)
		screen[i] = projected{x, y, ok}
	}

	for _, e := range m.Edges {
		if e[0] >= len(screen) || e[1] >= len(screen) {
			continue
		}
		a, b := screen[e[0]], screen[e[1]]
		if !a.ok || !b.ok {
			continue
		}
		dst = append(dst, Segment{a.x, a.y, b.x, b.y})
	}
	return dst
}
