package parameter

// Repulsion
const (
	// RepulsionRadius is the world distance inside which the object flees the pointer
	RepulsionRadius = 10.0

	// RepulsionForce scales the push intensity
	RepulsionForce = 0.8

	// RepulsionK is the push strength multiplier at zero distance
	RepulsionK = 4.0

	// SmoothingFactor is the per-frame exponential interpolation factor
	SmoothingFactor = 0.02
)

// Rotation & Agitation
const (
	RotationRateIdle    = 0.15
	RotationRateEngaged = 0.5
	WobbleAmplitude     = 0.1

	DistortNormal      = 0.6
	DistortBoil        = 2.5
	DistortSpeedNormal = 3.0
	DistortSpeedBoil   = 10.0

	// AgitationRate is the lerp rate per second toward boil/normal distortion
	AgitationRate = 2.0

	FloatSpeed     = 2.0
	FloatIntensity = 0.5
)

// Camera
const (
	CameraDistance = 5.0
	CameraFOV      = 75.0 // vertical, degrees
)

// Anchor Presets
var (
	WideAnchorPosition    = [3]float64{0, 0, -57}
	WideAnchorRotation    = [3]float64{0, 0, 2.5}
	WideAnchorScale       = 30.0
	CompactAnchorPosition = [3]float64{0, 0, 0}
	CompactAnchorRotation = [3]float64{0, 0, 25}
	CompactAnchorScale    = 1.5
)

// FloatRotationIntensity scales the idle float tilt
const FloatRotationIntensity = 0.2

// LightHeight is the z of the pointer-following light
const LightHeight = 2.0
