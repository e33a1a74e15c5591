package vmath

import "math"

// Scalar helpers mirroring the shading-language builtins the mask and physics stages are written in

// Epsilon is the magnitude below which a length or extent is treated as zero
const Epsilon = 1e-9

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Mix linearly interpolates between a and b by t (t unclamped)
func Mix(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Smoothstep is the Hermite step between edge0 and edge1
// Degenerate edges collapse to a hard step at edge0
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge1-edge0 <= Epsilon {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// Fract returns the fractional part of x, always in [0, 1)
func Fract(x float64) float64 {
	return x - math.Floor(x)
}

// ExpFactor converts a continuous decay rate into a per-step interpolation factor
func ExpFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// RateForFactor returns the continuous rate that reproduces a per-frame factor at the given frame rate
func RateForFactor(factor, fps float64) float64 {
	if factor <= 0 || fps <= 0 {
		return 0
	}
	if factor >= 1 {
		return math.Inf(1)
	}
	return -math.Log(1-factor) * fps
}

// IsFinite reports whether x is neither NaN nor infinite
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// NearZero reports whether |x| is below Epsilon
func NearZero(x float64) bool {
	return math.Abs(x) < Epsilon
}
