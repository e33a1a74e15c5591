package geometry

import (
	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// Distorter displaces mesh vertices along their direction with animated 3D noise
type Distorter struct {
	noise *perlin.Perlin
}

// NewDistorter creates a seeded distorter
func NewDistorter(alpha, beta float64, octaves int32, seed int64) *Distorter {
	if octaves < 1 {
		octaves = 1
	}
	return &Distorter{noise: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Apply writes displaced vertices into dst and returns it
// Each vertex v of the sphere of given radius becomes v*(1 + n*amount²), n sampled at v/2 + phase
// phase advances with time*speed so higher speed boils faster
func (d *Distorter) Apply(dst []mgl64.Vec3, m *Mesh, radius, amount, phase float64) []mgl64.Vec3 {
	dst = dst[:0]
	k := amount * amount
	for _, dir := range m.Vertices {
		p := dir.Mul(radius)
		scale := 1.0
		if d != nil && k != 0 {
			n := d.noise.Noise3D(p.X()/2+phase, p.Y()/2+phase, p.Z()/2+phase)
			scale += n * k
			if scale < 0 {
				scale = 0
			}
		}
		dst = append(dst, p.Mul(scale))
	}
	return dst
}
