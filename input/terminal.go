package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/portal/parameter"
)

// TerminalSource translates tcell events into unified input events
// Cell coordinates are converted to logical pixels so classification and normalization share units
// Arrow keys drive a virtual tilt standing in for a gyroscope
type TerminalSource struct {
	Fanout

	cellW, cellH float64
	tiltStep     float64
	buttons      tcell.ButtonMask
	tilt         Orientation
}

// NewTerminalSource creates a source with the given cell size in logical pixels
func NewTerminalSource(cellW, cellH float64) *TerminalSource {
	return &TerminalSource{
		cellW:    cellW,
		cellH:    cellH,
		tiltStep: parameter.VirtualTiltStep,
		tilt:     Orientation{Beta: parameter.GyroBetaRest},
	}
}

// Dispatch forwards ev to subscribers and reports whether it was consumed
// Must be called from the single host event loop
func (s *TerminalSource) Dispatch(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		return s.dispatchMouse(ev)

	case *tcell.EventResize:
		cols, rows := ev.Size()
		s.Resize(float64(cols)*s.cellW, float64(rows)*s.cellH)
		return true

	case *tcell.EventKey:
		return s.dispatchTilt(ev)
	}
	return false
}

func (s *TerminalSource) dispatchMouse(ev *tcell.EventMouse) bool {
	buttons := ev.Buttons()
	if buttons&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		return false
	}

	col, row := ev.Position()
	// Cell centre in logical pixels
	x := (float64(col) + 0.5) * s.cellW
	y := (float64(row) + 0.5) * s.cellH

	pressed := buttons&tcell.Button1 != 0
	wasPressed := s.buttons&tcell.Button1 != 0
	s.buttons = buttons

	switch {
	case pressed && !wasPressed:
		s.Press(x, y)
	case !pressed && wasPressed:
		s.Move(x, y)
		s.Release()
	default:
		s.Move(x, y)
	}
	return true
}

func (s *TerminalSource) dispatchTilt(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyLeft:
		s.tilt.Gamma -= s.tiltStep
	case tcell.KeyRight:
		s.tilt.Gamma += s.tiltStep
	case tcell.KeyUp:
		s.tilt.Beta -= s.tiltStep
	case tcell.KeyDown:
		s.tilt.Beta += s.tiltStep
	default:
		return false
	}
	s.Orient(s.tilt.Gamma, s.tilt.Beta)
	return true
}

// Tilt returns the current virtual orientation
func (s *TerminalSource) Tilt() Orientation {
	return s.tilt
}
