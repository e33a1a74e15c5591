package parameter

import "time"

// Audio
const (
	AudioSampleRate = 48000
	AudioBuffer     = 100 * time.Millisecond

	ChargeBaseFreq = 80.0
	ChargeTopFreq  = 320.0
	ChargeVolume   = 0.12
	ChimeFreq      = 660.0
	ChimeDuration  = 600 * time.Millisecond
	ChimeVolume    = 0.25
)
