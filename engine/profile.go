package engine

import (
	"fmt"

	"github.com/lixenwraith/portal/input"
	"github.com/lixenwraith/portal/physics"
)

// DeviceProfile bundles everything that varies by device class
type DeviceProfile struct {
	Class    input.Class
	Anchor   physics.Transform
	Strategy physics.Strategy
}

// ProfileFor returns the preset for class
func ProfileFor(class input.Class) DeviceProfile {
	if class == input.ClassCompact {
		return DeviceProfile{Class: input.ClassCompact, Anchor: physics.CompactAnchor, Strategy: physics.StrategyFollow}
	}
	return DeviceProfile{Class: input.ClassWide, Anchor: physics.WideAnchor, Strategy: physics.StrategyRepulsion}
}

// DeviceOverride forces a device class instead of measuring the viewport
type DeviceOverride uint8

const (
	DeviceAuto DeviceOverride = iota
	DeviceCompact
	DeviceWide
)

func (d DeviceOverride) String() string {
	switch d {
	case DeviceCompact:
		return "compact"
	case DeviceWide:
		return "wide"
	default:
		return "auto"
	}
}

// ParseDeviceOverride resolves auto, compact or wide
func ParseDeviceOverride(s string) (DeviceOverride, error) {
	switch s {
	case "auto", "":
		return DeviceAuto, nil
	case "compact":
		return DeviceCompact, nil
	case "wide":
		return DeviceWide, nil
	}
	return DeviceAuto, fmt.Errorf("unknown device class %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (d DeviceOverride) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *DeviceOverride) UnmarshalText(b []byte) error {
	parsed, err := ParseDeviceOverride(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Resolve returns the forced class, or measured when auto
func (d DeviceOverride) Resolve(measured input.Class) input.Class {
	switch d {
	case DeviceCompact:
		return input.ClassCompact
	case DeviceWide:
		return input.ClassWide
	}
	return measured
}
