package config

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/portal/engine"
	"github.com/lixenwraith/portal/mask"
	"github.com/lixenwraith/portal/physics"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portal.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeFile(t, `
engine:
  progress:
    rise_rate: 0.6
  physics:
    smoothing_mode: normalized
  device: compact
mask:
  mode: portal
audio:
  buffer: 50ms
host:
  image: sky.png
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, 0.6, cfg.Engine.Progress.RiseRate)
	assert.Equal(t, def.Engine.Progress.FallRate, cfg.Engine.Progress.FallRate, "untouched keys keep defaults")
	assert.Equal(t, physics.SmoothingNormalized, cfg.Engine.Physics.Smoothing)
	assert.Equal(t, engine.DeviceCompact, cfg.Engine.Device)
	assert.Equal(t, mask.ModePortal, cfg.Mask.Mode)
	assert.Equal(t, def.Mask.Portal, cfg.Mask.Portal)
	assert.Equal(t, 50*time.Millisecond, cfg.Audio.Buffer)
	assert.Equal(t, "sky.png", cfg.Host.Image)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	_, err := Load(writeFile(t, "engine:\n  progress:\n    rise: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rise")
}

func TestLoadRejectsBadEnum(t *testing.T) {
	_, err := Load(writeFile(t, "mask:\n  mode: spiral\n"))
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestValidateReportsFirstViolation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"zero rise", func(c *Config) { c.Engine.Progress.RiseRate = 0 }, "rise_rate"},
		{"max below threshold", func(c *Config) { c.Engine.Progress.MaxValue = 1 }, "max_value"},
		{"max equals threshold", func(c *Config) { c.Engine.Progress.MaxValue = c.Engine.Progress.Threshold }, "max_value"},
		{"empty trail", func(c *Config) { c.Engine.Trail.Capacity = 0 }, "capacity"},
		{"smoothing above one", func(c *Config) { c.Engine.Physics.SmoothingFactor = 1.5 }, "smoothing_factor"},
		{"flat overlay", func(c *Config) { c.Mask.Overlay.RadiusGain = 0 }, "overlay.radius_gain"},
		{"frozen overlay", func(c *Config) { c.Mask.Overlay.FallRate = 0 }, "fall_rate"},
		{"bad mask color", func(c *Config) { c.Mask.Color = "#zz" }, "mask.color"},
		{"loud chime", func(c *Config) { c.Audio.ChimeVolume = 2 }, "volumes"},
		{"bad wire color", func(c *Config) { c.Render.Wire = "nope" }, "wire"},
		{"no frame interval", func(c *Config) { c.Host.FrameInterval = 0 }, "frame_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMarshalDecodesBack(t *testing.T) {
	cfg := Default()
	cfg.Mask.Mode = mask.ModePortal
	cfg.Engine.Device = engine.DeviceWide

	out, err := Marshal(cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(out), "mode: portal"))

	var back Config
	require.NoError(t, Decode(bytes.NewReader(out), &back))
	assert.Equal(t, cfg, back)
}
