package parameter

// Progress State Machine
// RiseRate < FallRate: release is visually much faster than hold-to-complete
const (
	// ProgressRiseRate is the progress gained per second while engaging
	ProgressRiseRate = 0.3

	// ProgressFallRate is the progress lost per second while released
	ProgressFallRate = 2.0

	// ProgressThreshold is the value at which the completion event fires
	ProgressThreshold = 1.2

	// ProgressMaxValue allows overshoot past the threshold without runaway growth
	ProgressMaxValue = 1.5
)
