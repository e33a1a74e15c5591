// Package physics moves the floating object: repulsion from the pointer, smoothing, rotation and agitation
package physics

import (
	"fmt"

	"github.com/lixenwraith/portal/parameter"
)

// SmoothingMode selects how the displacement interpolation factor depends on frame time
type SmoothingMode uint8

const (
	// SmoothingFixed applies SmoothingFactor once per step regardless of dt
	SmoothingFixed SmoothingMode = iota
	// SmoothingNormalized applies 1-exp(-rate*dt), rate matched to SmoothingFactor at ReferenceFPS
	SmoothingNormalized
)

func (m SmoothingMode) String() string {
	if m == SmoothingNormalized {
		return "normalized"
	}
	return "fixed"
}

// MarshalText implements encoding.TextMarshaler
func (m SmoothingMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *SmoothingMode) UnmarshalText(b []byte) error {
	switch string(b) {
	case "fixed", "":
		*m = SmoothingFixed
	case "normalized":
		*m = SmoothingNormalized
	default:
		return fmt.Errorf("unknown smoothing mode %q", b)
	}
	return nil
}

// Config holds repulsion, smoothing, rotation and agitation tuning
type Config struct {
	RepulsionRadius float64       `yaml:"repulsion_radius"`
	RepulsionForce  float64       `yaml:"repulsion_force"`
	RepulsionK      float64       `yaml:"repulsion_k"`
	SmoothingFactor float64       `yaml:"smoothing_factor"`
	Smoothing       SmoothingMode `yaml:"smoothing_mode"`
	ReferenceFPS    float64       `yaml:"reference_fps"`

	RotationRateIdle    float64 `yaml:"rotation_rate_idle"`
	RotationRateEngaged float64 `yaml:"rotation_rate_engaged"`
	WobbleAmplitude     float64 `yaml:"wobble_amplitude"`

	DistortNormal      float64 `yaml:"distort_normal"`
	DistortBoil        float64 `yaml:"distort_boil"`
	DistortSpeedNormal float64 `yaml:"distort_speed_normal"`
	DistortSpeedBoil   float64 `yaml:"distort_speed_boil"`
	AgitationRate      float64 `yaml:"agitation_rate"`

	FloatSpeed             float64 `yaml:"float_speed"`
	FloatIntensity         float64 `yaml:"float_intensity"`
	FloatRotationIntensity float64 `yaml:"float_rotation_intensity"`

	CameraDistance float64 `yaml:"camera_distance"`
	CameraFOV      float64 `yaml:"camera_fov"`
}

// DefaultConfig returns the tuned physics settings
func DefaultConfig() Config {
	return Config{
		RepulsionRadius: parameter.RepulsionRadius,
		RepulsionForce:  parameter.RepulsionForce,
		RepulsionK:      parameter.RepulsionK,
		SmoothingFactor: parameter.SmoothingFactor,
		Smoothing:       SmoothingFixed,
		ReferenceFPS:    parameter.ReferenceFrameRate,

		RotationRateIdle:    parameter.RotationRateIdle,
		RotationRateEngaged: parameter.RotationRateEngaged,
		WobbleAmplitude:     parameter.WobbleAmplitude,

		DistortNormal:      parameter.DistortNormal,
		DistortBoil:        parameter.DistortBoil,
		DistortSpeedNormal: parameter.DistortSpeedNormal,
		DistortSpeedBoil:   parameter.DistortSpeedBoil,
		AgitationRate:      parameter.AgitationRate,

		FloatSpeed:             parameter.FloatSpeed,
		FloatIntensity:         parameter.FloatIntensity,
		FloatRotationIntensity: parameter.FloatRotationIntensity,

		CameraDistance: parameter.CameraDistance,
		CameraFOV:      parameter.CameraFOV,
	}
}
