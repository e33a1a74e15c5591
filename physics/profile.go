package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/portal/parameter"
)

// Transform is an anchor preset: position, Euler rotation (radians) and uniform scale
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Vec3
	Scale    float64
}

// Anchor presets - pre-defined per device class

// WideAnchor places the object far behind the reveal plane at large scale
var WideAnchor = Transform{
	Position: mgl64.Vec3(parameter.WideAnchorPosition),
	Rotation: mgl64.Vec3(parameter.WideAnchorRotation),
	Scale:    parameter.WideAnchorScale,
}

// CompactAnchor centers a small object for direct-follow on handheld viewports
var CompactAnchor = Transform{
	Position: mgl64.Vec3(parameter.CompactAnchorPosition),
	Rotation: mgl64.Vec3(parameter.CompactAnchorRotation),
	Scale:    parameter.CompactAnchorScale,
}

// Matrix returns translate * rotateZ * rotateY * rotateX * scale
func (t Transform) Matrix() mgl64.Mat4 {
	s := t.Scale
	if s == 0 {
		s = 1
	}
	return mgl64.Translate3D(t.Position.X(), t.Position.Y(), t.Position.Z()).
		Mul4(mgl64.HomogRotate3DZ(t.Rotation.Z())).
		Mul4(mgl64.HomogRotate3DY(t.Rotation.Y())).
		Mul4(mgl64.HomogRotate3DX(t.Rotation.X())).
		Mul4(mgl64.Scale3D(s, s, s))
}

// Strategy selects how the displacement target is derived
type Strategy uint8

const (
	// StrategyRepulsion flees the pointer inside the repulsion radius
	StrategyRepulsion Strategy = iota
	// StrategyFollow uses the clamped input signal directly
	StrategyFollow
)

func (s Strategy) String() string {
	if s == StrategyFollow {
		return "follow"
	}
	return "repulsion"
}
