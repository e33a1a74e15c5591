// Package render composites engine frames into pixel layers and draws them to a terminal or PNG
package render

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/portal/parameter"
)

// Config holds the host palette and wireframe settings
type Config struct {
	Background  string  `yaml:"background"`
	Wire        string  `yaml:"wire"`
	WireOpacity float64 `yaml:"wire_opacity"`
	Destination string  `yaml:"destination"`
	HUD         string  `yaml:"hud"`

	Wireframe       bool    `yaml:"wireframe"`
	MeshRadius      float64 `yaml:"mesh_radius"`
	MeshSubdivision int     `yaml:"mesh_subdivision"`

	// ShowStatus draws the metrics line in the top row
	ShowStatus bool `yaml:"show_status"`
}

// DefaultConfig returns the stock palette with the wireframe enabled
func DefaultConfig() Config {
	return Config{
		Background:      parameter.BackgroundColor,
		Wire:            parameter.WireColor,
		WireOpacity:     parameter.WireOpacity,
		Destination:     parameter.DestinationColor,
		HUD:             parameter.HUDColor,
		Wireframe:       true,
		MeshRadius:      parameter.MeshRadius,
		MeshSubdivision: parameter.MeshSubdivision,
	}
}

// Palette is the parsed form of the configured colors
type Palette struct {
	Background  colorful.Color
	Wire        colorful.Color
	Destination colorful.Color
	HUD         colorful.Color
}

// NewPalette parses every hex color in cfg
func NewPalette(cfg Config) (Palette, error) {
	var p Palette
	fields := []struct {
		name string
		hex  string
		dst  *colorful.Color
	}{
		{"background", cfg.Background, &p.Background},
		{"wire", cfg.Wire, &p.Wire},
		{"destination", cfg.Destination, &p.Destination},
		{"hud", cfg.HUD, &p.HUD},
	}
	for _, f := range fields {
		c, err := colorful.Hex(f.hex)
		if err != nil {
			return Palette{}, fmt.Errorf("%s color %q: %w", f.name, f.hex, err)
		}
		*f.dst = c
	}
	return p, nil
}
