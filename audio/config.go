package audio

import (
	"time"

	"github.com/lixenwraith/portal/parameter"
)

// Config holds the charge hum and completion chime settings
type Config struct {
	Enabled      bool          `yaml:"enabled"`
	MasterVolume float64       `yaml:"master_volume"`
	SampleRate   int           `yaml:"sample_rate"`
	Buffer       time.Duration `yaml:"buffer"`

	ChargeBaseFreq float64 `yaml:"charge_base_freq"`
	ChargeTopFreq  float64 `yaml:"charge_top_freq"`
	ChargeVolume   float64 `yaml:"charge_volume"`

	ChimeFreq     float64       `yaml:"chime_freq"`
	ChimeDuration time.Duration `yaml:"chime_duration"`
	ChimeVolume   float64       `yaml:"chime_volume"`
}

// DefaultConfig returns the tuned audio settings
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 1,
		SampleRate:   parameter.AudioSampleRate,
		Buffer:       parameter.AudioBuffer,

		ChargeBaseFreq: parameter.ChargeBaseFreq,
		ChargeTopFreq:  parameter.ChargeTopFreq,
		ChargeVolume:   parameter.ChargeVolume,

		ChimeFreq:     parameter.ChimeFreq,
		ChimeDuration: parameter.ChimeDuration,
		ChimeVolume:   parameter.ChimeVolume,
	}
}
