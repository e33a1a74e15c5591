package parameter

// Input Normalization
const (
	// GyroSensitivity maps orientation degrees to object-space units
	GyroSensitivity = 0.05

	// GyroBetaRest compensates for the typical handheld tilt
	GyroBetaRest = 45.0

	// TouchSensitivity scales the NDC touch position
	TouchSensitivity = 1.5

	// MaxMobileMove clamps the compact signal component-wise
	MaxMobileMove = 3.5

	// VirtualTiltStep is the degrees per arrow key press in the terminal host
	VirtualTiltStep = 5.0
)
