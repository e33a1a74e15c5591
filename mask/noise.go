package mask

import (
	"github.com/aquilax/go-perlin"
)

// Noise is a seeded coherent 2D noise source animated over time
// A nil *Noise yields zero everywhere
type Noise struct {
	p *perlin.Perlin
}

// NewNoise creates a Perlin generator; octaves below 1 are raised to 1
func NewNoise(alpha, beta float64, octaves int32, seed int64) *Noise {
	if octaves < 1 {
		octaves = 1
	}
	return &Noise{p: perlin.NewPerlin(alpha, beta, octaves, seed)}
}

// Offset returns the edge perturbation at aspect-corrected st and time t
// Sampled at st*scale + t*speed on both axes
func (n *Noise) Offset(sx, sy, t float64, e Edge) float64 {
	if n == nil || e.NoiseAmplitude == 0 {
		return 0
	}
	shift := t * e.NoiseSpeed
	return n.p.Noise2D(sx*e.NoiseScale+shift, sy*e.NoiseScale+shift) * e.NoiseAmplitude
}
