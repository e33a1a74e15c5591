package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/portal/engine"
	"github.com/lixenwraith/portal/geometry"
	"github.com/lixenwraith/portal/mask"
	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/physics"
)

const frame = 1.0 / 60.0

func newComposer(t *testing.T, mode mask.Mode, wireframe bool) *Composer {
	t.Helper()
	mcfg := mask.DefaultConfig()
	mcfg.Mode = mode
	comp, err := mask.NewCompositor(mcfg, nil)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	cfg := DefaultConfig()
	cfg.Wireframe = wireframe
	c, err := NewComposer(cfg, comp, physics.DefaultConfig())
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	return c
}

func newEngine() *engine.Engine {
	e := engine.New(engine.DefaultConfig(), nil)
	e.Input().Resize(800, 600)
	return e
}

func TestPaletteRejectsBadColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wire = "not-a-color"
	if _, err := NewPalette(cfg); err == nil {
		t.Fatal("Expected error for invalid wire color")
	} else if !strings.Contains(err.Error(), "wire") {
		t.Errorf("Expected error to name the field, got %v", err)
	}
}

func TestCanvasBlend(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Fill(colorful.Color{R: 1, G: 1, B: 1})

	c.Blend(1, 1, colorful.Color{}, 0.5)
	got := c.Image().NRGBAAt(1, 1)
	if got.R != 128 || got.G != 128 || got.B != 128 || got.A != 255 {
		t.Errorf("Expected mid grey, got %+v", got)
	}

	// Out of bounds is ignored
	c.Blend(-1, 9, colorful.Color{}, 1)

	untouched := c.Image().NRGBAAt(0, 0)
	if untouched.R != 255 {
		t.Errorf("Expected white at 0,0, got %+v", untouched)
	}
}

func TestCanvasOver(t *testing.T) {
	c := NewCanvas(3, 1)
	c.Fill(colorful.Color{R: 1, G: 1, B: 1})

	layer := image.NewNRGBA(image.Rect(0, 0, 3, 1))
	layer.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	layer.SetNRGBA(1, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 0})
	layer.SetNRGBA(2, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 128})
	c.Over(layer)

	img := c.Image()
	if got := img.NRGBAAt(0, 0); got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("Opaque pixel should replace, got %+v", got)
	}
	if got := img.NRGBAAt(1, 0); got.R != 255 {
		t.Errorf("Transparent pixel should keep background, got %+v", got)
	}
	if got := img.NRGBAAt(2, 0); got.R < 120 || got.R > 135 {
		t.Errorf("Half alpha should land near mid grey, got %+v", got)
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Fill(colorful.Color{R: 1, G: 1, B: 1})
	c.Line(geometry.Segment{X0: 0, Y0: 0, X1: 9, Y1: 9}, colorful.Color{}, 1)

	img := c.Image()
	for i := 0; i < 10; i++ {
		if got := img.NRGBAAt(i, i); got.R != 0 {
			t.Errorf("Diagonal pixel %d not drawn: %+v", i, got)
		}
	}
	if got := img.NRGBAAt(9, 0); got.R != 255 {
		t.Errorf("Off-diagonal pixel drawn: %+v", got)
	}

	before := append([]uint8(nil), img.Pix...)
	c.Line(geometry.Segment{X0: -100, Y0: 5, X1: -50, Y1: 5}, colorful.Color{}, 1)
	if !bytes.Equal(before, img.Pix) {
		t.Error("Off-canvas segment changed pixels")
	}
}

func TestComposeIdleBrushKeepsCornersClear(t *testing.T) {
	c := newComposer(t, mask.ModeBrush, false)
	e := newEngine()

	f := e.Step(frame)
	img := c.Compose(e, f, 40, 30)

	bg := RGBOf(c.Palette().Background)
	got := img.NRGBAAt(0, 0)
	if got.R != bg.R || got.G != bg.G || got.B != bg.B {
		t.Errorf("Expected background at corner, got %+v", got)
	}
	if c.Coverage() <= 0 {
		t.Error("Expected some reveal under the resting cursor")
	}
}

func TestComposePortalFillsCentre(t *testing.T) {
	c := newComposer(t, mask.ModePortal, false)
	e := newEngine()

	e.Input().Press(400, 300)
	var f engine.Frame
	for i := 0; i < 246; i++ {
		f = e.Step(frame)
	}
	img := c.Compose(e, f, 40, 30)

	fill, _ := colorful.Hex(parameter.PortalColor)
	want := RGBOf(fill)
	got := img.NRGBAAt(20, 15)
	if got.R != want.R || got.G != want.G || got.B != want.B {
		t.Errorf("Expected portal fill at centre, got %+v want %+v", got, want)
	}
}

func TestComposeOverlayFollowsAperture(t *testing.T) {
	c := newComposer(t, mask.ModeOverlay, false)
	e := newEngine()

	e.Input().Press(400, 300)
	for i := 0; i < 246; i++ {
		c.Compose(e, e.Step(frame), 40, 30)
	}
	if a := c.Aperture(); a < 0.6 || a > 0.8 {
		t.Fatalf("Expected aperture near 0.71 after 4.1s, got %v", a)
	}
	if cov := c.Coverage(); cov != 1 {
		t.Errorf("Expected full reveal at gain 2.5, got coverage %v", cov)
	}

	e.Input().Release()
	for i := 0; i < 120; i++ {
		c.Compose(e, e.Step(frame), 40, 30)
	}
	if a := c.Aperture(); a > 0.05 {
		t.Errorf("Expected aperture nearly closed after 2s release, got %v", a)
	}
}

func TestComposeWireframeDrawsLines(t *testing.T) {
	c := newComposer(t, mask.ModePortal, true)
	e := newEngine()

	f := e.Step(frame)
	img := c.Compose(e, f, 80, 60)

	bg := RGBOf(c.Palette().Background)
	changed := 0
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			p := img.NRGBAAt(x, y)
			if p.R != bg.R || p.G != bg.G || p.B != bg.B {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("Expected wireframe pixels over the background")
	}
}

func TestTerminalComposeHomeAndDestination(t *testing.T) {
	c := newComposer(t, mask.ModeBrush, false)
	e := newEngine()
	r := NewTerminalRenderer(nil, c, e.Metrics(), true)

	f := e.Step(frame)
	buf := r.Compose(e, f, ViewHome, 40, 15)

	w, h := buf.Bounds()
	if w != 40 || h != 15 {
		t.Fatalf("Expected 40x15 buffer, got %dx%d", w, h)
	}
	if cell := buf.Get(0, 5); cell.Rune != halfBlock {
		t.Errorf("Expected half block pixel, got %q", cell.Rune)
	}
	if row := rowText(buf, 13); !strings.Contains(row, parameter.HintIdle) {
		t.Errorf("Expected idle hint in row 13, got %q", row)
	}
	if row := rowText(buf, 0); !strings.HasPrefix(row, "engine.frame_ms=") {
		t.Errorf("Expected status line in row 0, got %q", row)
	}

	buf = r.Compose(e, f, ViewDestination, 40, 15)
	found := false
	for y := 0; y < 15; y++ {
		if strings.Contains(rowText(buf, y), parameter.DestTitle) {
			found = true
		}
	}
	if !found {
		t.Error("Expected destination title")
	}
}

func TestHintShowsChargingWhileHeld(t *testing.T) {
	c := newComposer(t, mask.ModeBrush, false)
	e := newEngine()
	r := NewTerminalRenderer(nil, c, nil, false)

	e.Input().Press(100, 100)
	f := e.Step(frame)
	buf := r.Compose(e, f, ViewHome, 60, 20)
	if row := rowText(buf, 18); !strings.Contains(row, parameter.HintHolding) {
		t.Errorf("Expected charging hint, got %q", row)
	}
}

func TestWritePNG(t *testing.T) {
	c := NewCanvas(8, 6)
	c.Fill(colorful.Color{R: 0.2, G: 0.4, B: 0.6})

	var out bytes.Buffer
	if err := WritePNG(&out, c.Image()); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	img, err := png.Decode(&out)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("Unexpected bounds %v", img.Bounds())
	}
}

func rowText(buf *CellBuffer, y int) string {
	w, _ := buf.Bounds()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		r := buf.Get(x, y).Rune
		if r == 0 {
			r = ' '
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
