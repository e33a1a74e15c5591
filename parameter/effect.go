package parameter

// Brush Mask (trail mode, texture reveal)
const (
	BrushNoiseScale     = 10.0
	BrushNoiseSpeed     = -2.0
	BrushNoiseAmplitude = 0.1
	BrushEdgeWidth      = 0.2
)

// Portal Mask (single point, progress-driven radius)
const (
	PortalNoiseScale     = 20.0
	PortalNoiseSpeed     = 3.0
	PortalNoiseAmplitude = 0.03
	PortalEdgeWidth      = 0.05

	// PortalRadiusGain maps progress to radius; 1.0 reaches the far corner near completion
	PortalRadiusGain = 1.0

	// PortalColor is the procedural fill when no texture is bound
	PortalColor = "#e7e6e6"
)

// Overlay Mask (single point, texture reveal, self-timed aperture)
const (
	OverlayNoiseScale     = 10.0
	OverlayNoiseSpeed     = -2.0
	OverlayNoiseAmplitude = 0.1
	OverlayEdgeWidth      = 0.2

	// OverlayRadiusGain maps aperture to radius; 2.5 covers any aspect once fully open
	OverlayRadiusGain = 2.5

	// OverlayRiseRate and OverlayFallRate are lerp speeds toward open and closed, per second
	OverlayRiseRate = 0.3
	OverlayFallRate = 2.0
)

// Noise Generator
const (
	// NoiseAlpha is the Perlin weight of each octave (amplitude falloff)
	NoiseAlpha = 2.0

	// NoiseBeta is the Perlin harmonic scaling between octaves
	NoiseBeta = 2.0

	// NoiseOctaves is the number of Perlin octaves
	NoiseOctaves = 3

	// NoiseSeed keeps the edge pattern stable across runs
	NoiseSeed = 1337
)
