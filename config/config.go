// Package config aggregates every tunable and overlays a YAML file on the defaults
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/portal/audio"
	"github.com/lixenwraith/portal/engine"
	"github.com/lixenwraith/portal/mask"
	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/render"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Host holds the terminal host settings
type Host struct {
	FrameInterval time.Duration `yaml:"frame_interval"`
	CellWidth     float64       `yaml:"cell_width"`
	CellHeight    float64       `yaml:"cell_height"`

	// Image is an optional texture revealed by the mask
	Image string `yaml:"image"`
}

// Config is the full effective configuration
type Config struct {
	Engine engine.Config `yaml:"engine"`
	Mask   mask.Config   `yaml:"mask"`
	Audio  audio.Config  `yaml:"audio"`
	Render render.Config `yaml:"render"`
	Host   Host          `yaml:"host"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Engine: engine.DefaultConfig(),
		Mask:   mask.DefaultConfig(),
		Audio:  audio.DefaultConfig(),
		Render: render.DefaultConfig(),
		Host: Host{
			FrameInterval: parameter.FrameUpdateInterval,
			CellWidth:     parameter.CellPixelWidth,
			CellHeight:    parameter.CellPixelHeight,
		},
	}
}

// Load overlays the YAML file at path on the defaults and validates the result
// An empty path returns the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := Decode(f, &cfg); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays YAML from r onto cfg; keys absent from r keep their current values
// Unknown keys are rejected
func Decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Marshal renders cfg as YAML
func Marshal(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

// Validate returns the first violated constraint wrapped with ErrInvalid
func (c Config) Validate() error {
	p := c.Engine.Progress
	t := c.Engine.Trail
	ph := c.Engine.Physics
	in := c.Engine.Input

	checks := []struct {
		ok  bool
		msg string
	}{
		{p.RiseRate > 0, "engine.progress.rise_rate must be positive"},
		{p.FallRate > 0, "engine.progress.fall_rate must be positive"},
		{p.Threshold > 0, "engine.progress.completion_threshold must be positive"},
		{p.MaxValue > p.Threshold, "engine.progress.max_value must exceed completion_threshold"},

		{t.Capacity >= 1, "engine.trail.capacity must be at least 1"},
		{t.AgeRate >= 0, "engine.trail.age_rate must not be negative"},
		{t.BaseRadius > 0, "engine.trail.base_radius must be positive"},
		{t.FloodGain >= 0, "engine.trail.flood_gain must not be negative"},

		{ph.RepulsionRadius > 0, "engine.physics.repulsion_radius must be positive"},
		{ph.SmoothingFactor > 0 && ph.SmoothingFactor <= 1, "engine.physics.smoothing_factor must be in (0, 1]"},
		{ph.ReferenceFPS > 0, "engine.physics.reference_fps must be positive"},
		{ph.CameraDistance > 0, "engine.physics.camera_distance must be positive"},
		{ph.CameraFOV > 0 && ph.CameraFOV < 180, "engine.physics.camera_fov must be in (0, 180)"},

		{in.MaxMobileMove >= 0, "engine.input.max_mobile_move must not be negative"},
		{in.Breakpoint > 0, "engine.input.breakpoint must be positive"},
		{c.Engine.PixelScale > 0, "engine.pixel_scale must be positive"},

		{c.Mask.Brush.Width >= 0 && c.Mask.Portal.Width >= 0, "mask edge_width must not be negative"},
		{c.Mask.RadiusGain > 0, "mask.radius_gain must be positive"},
		{c.Mask.Overlay.Width >= 0, "mask.overlay.edge_width must not be negative"},
		{c.Mask.Overlay.RadiusGain > 0, "mask.overlay.radius_gain must be positive"},
		{c.Mask.Overlay.RiseRate > 0 && c.Mask.Overlay.FallRate > 0, "mask.overlay rise_rate and fall_rate must be positive"},
		{c.Mask.NoiseOctaves >= 1, "mask.noise_octaves must be at least 1"},
		{validColor(c.Mask.Color), "mask.color must be a hex color"},

		{c.Audio.SampleRate > 0, "audio.sample_rate must be positive"},
		{c.Audio.Buffer > 0, "audio.buffer must be positive"},
		{unit(c.Audio.MasterVolume) && unit(c.Audio.ChargeVolume) && unit(c.Audio.ChimeVolume), "audio volumes must be in [0, 1]"},

		{unit(c.Render.WireOpacity), "render.wire_opacity must be in [0, 1]"},
		{c.Render.MeshSubdivision >= 0 && c.Render.MeshSubdivision <= parameter.MaxMeshSubdivision, "render.mesh_subdivision out of range"},

		{c.Host.FrameInterval > 0, "host.frame_interval must be positive"},
		{c.Host.CellWidth > 0 && c.Host.CellHeight > 0, "host cell size must be positive"},
	}
	for _, ch := range checks {
		if !ch.ok {
			return fmt.Errorf("%w: %s", ErrInvalid, ch.msg)
		}
	}

	if _, err := render.NewPalette(c.Render); err != nil {
		return fmt.Errorf("%w: render: %v", ErrInvalid, err)
	}
	return nil
}

func unit(v float64) bool {
	return v >= 0 && v <= 1
}

func validColor(hex string) bool {
	_, err := colorful.Hex(hex)
	return err == nil
}
