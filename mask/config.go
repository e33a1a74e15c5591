// Package mask composites the soft, noise-edged reveal layer from trail points or a single growing portal
package mask

import (
	"fmt"

	"github.com/lixenwraith/portal/parameter"
)

// Mode selects the reveal variant
type Mode uint8

const (
	// ModeBrush reveals under every visible trail point
	ModeBrush Mode = iota
	// ModePortal reveals one progress-driven circle at the input position
	ModePortal
	// ModeOverlay reveals one circle whose aperture eases toward open while engaging
	ModeOverlay
)

func (m Mode) String() string {
	switch m {
	case ModePortal:
		return "portal"
	case ModeOverlay:
		return "overlay"
	}
	return "brush"
}

// ParseMode resolves a mode name
func ParseMode(s string) (Mode, error) {
	switch s {
	case "brush", "":
		return ModeBrush, nil
	case "portal":
		return ModePortal, nil
	case "overlay":
		return ModeOverlay, nil
	}
	return ModeBrush, fmt.Errorf("unknown mask mode %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Edge parameterizes the noise-perturbed soft edge of one variant
type Edge struct {
	NoiseScale     float64 `yaml:"noise_scale"`
	NoiseSpeed     float64 `yaml:"noise_speed"`
	NoiseAmplitude float64 `yaml:"noise_amplitude"`
	Width          float64 `yaml:"edge_width"`
}

// Overlay configures the self-timed aperture variant
type Overlay struct {
	Edge       `yaml:",inline"`
	RadiusGain float64 `yaml:"radius_gain"`
	RiseRate   float64 `yaml:"rise_rate"`
	FallRate   float64 `yaml:"fall_rate"`
}

// Config holds every variant plus the shared noise generator settings
type Config struct {
	Mode       Mode    `yaml:"mode"`
	Brush      Edge    `yaml:"brush"`
	Portal     Edge    `yaml:"portal"`
	Overlay    Overlay `yaml:"overlay"`
	RadiusGain float64 `yaml:"radius_gain"`
	Color      string  `yaml:"color"`

	NoiseAlpha   float64 `yaml:"noise_alpha"`
	NoiseBeta    float64 `yaml:"noise_beta"`
	NoiseOctaves int32   `yaml:"noise_octaves"`
	NoiseSeed    int64   `yaml:"noise_seed"`
}

// DefaultConfig returns the tuned mask settings
func DefaultConfig() Config {
	return Config{
		Mode: ModeBrush,
		Brush: Edge{
			NoiseScale:     parameter.BrushNoiseScale,
			NoiseSpeed:     parameter.BrushNoiseSpeed,
			NoiseAmplitude: parameter.BrushNoiseAmplitude,
			Width:          parameter.BrushEdgeWidth,
		},
		Portal: Edge{
			NoiseScale:     parameter.PortalNoiseScale,
			NoiseSpeed:     parameter.PortalNoiseSpeed,
			NoiseAmplitude: parameter.PortalNoiseAmplitude,
			Width:          parameter.PortalEdgeWidth,
		},
		Overlay: Overlay{
			Edge: Edge{
				NoiseScale:     parameter.OverlayNoiseScale,
				NoiseSpeed:     parameter.OverlayNoiseSpeed,
				NoiseAmplitude: parameter.OverlayNoiseAmplitude,
				Width:          parameter.OverlayEdgeWidth,
			},
			RadiusGain: parameter.OverlayRadiusGain,
			RiseRate:   parameter.OverlayRiseRate,
			FallRate:   parameter.OverlayFallRate,
		},
		RadiusGain:   parameter.PortalRadiusGain,
		Color:        parameter.PortalColor,
		NoiseAlpha:   parameter.NoiseAlpha,
		NoiseBeta:    parameter.NoiseBeta,
		NoiseOctaves: parameter.NoiseOctaves,
		NoiseSeed:    parameter.NoiseSeed,
	}
}

// Edge returns the edge parameters of the active mode
func (c Config) Edge() Edge {
	switch c.Mode {
	case ModePortal:
		return c.Portal
	case ModeOverlay:
		return c.Overlay.Edge
	}
	return c.Brush
}
