package mask

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/portal/trail"
)

// quietConfig disables edge noise so fields are exact
func quietConfig(mode Mode) Config {
	cfg := DefaultConfig()
	cfg.Mode = mode
	cfg.Brush.NoiseAmplitude = 0
	cfg.Portal.NoiseAmplitude = 0
	cfg.Overlay.NoiseAmplitude = 0
	cfg.Brush.Width = 0.05
	return cfg
}

func newQuiet(t *testing.T, mode Mode) *Compositor {
	t.Helper()
	c, err := NewCompositor(quietConfig(mode), nil)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}
	return c
}

func TestCoverFit(t *testing.T) {
	tests := []struct {
		name                     string
		viewW, viewH, imgW, imgH float64
		want                     Rect
	}{
		{"wide view crops vertical", 1920, 1080, 1000, 1000, Rect{0, 0.21875, 1, 0.78125}},
		{"tall view crops horizontal", 500, 1000, 1000, 1000, Rect{0.25, 0, 0.75, 1}},
		{"matching aspect", 1600, 900, 160, 90, Full},
		{"zero viewport", 0, 1080, 1000, 1000, Full},
		{"zero image", 1920, 1080, 1000, 0, Full},
		{"negative extents", -5, 10, 10, 10, Full},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoverFit(tt.viewW, tt.viewH, tt.imgW, tt.imgH)
			if math.Abs(got.U0-tt.want.U0) > 1e-9 || math.Abs(got.V0-tt.want.V0) > 1e-9 ||
				math.Abs(got.U1-tt.want.U1) > 1e-9 || math.Abs(got.V1-tt.want.V1) > 1e-9 {
				t.Errorf("CoverFit = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestCoverFitNeverStretches checks the sampled region keeps the viewport aspect
func TestCoverFitNeverStretches(t *testing.T) {
	views := [][2]float64{{1920, 1080}, {390, 844}, {800, 800}, {3440, 1440}}
	images := [][2]float64{{2000, 1333}, {1080, 1920}, {512, 512}}

	for _, v := range views {
		for _, img := range images {
			r := CoverFit(v[0], v[1], img[0], img[1])
			if r.Width() > 1+1e-12 || r.Height() > 1+1e-12 {
				t.Fatalf("Rect exceeds texture: %+v", r)
			}
			if r.Width() < 1-1e-12 && r.Height() < 1-1e-12 {
				t.Fatalf("Both axes cropped for view %v image %v: %+v", v, img, r)
			}
			sampled := (r.Width() * img[0]) / (r.Height() * img[1])
			if math.Abs(sampled-v[0]/v[1]) > 1e-9 {
				t.Errorf("View %v image %v: sampled aspect %v, want %v", v, img, sampled, v[0]/v[1])
			}
		}
	}

	r := CoverFit(1920, 1080, 1000, 1000)
	if !(r.V0 > 0 && r.V1 < 1) {
		t.Errorf("Expected proper vertical sub-range for wide viewport, got [%v, %v]", r.V0, r.V1)
	}
}

func TestRectPixels(t *testing.T) {
	r := Rect{0.25, 0, 0.75, 1}
	got := r.Pixels(image.Rect(0, 0, 200, 100))
	if got != image.Rect(50, 0, 150, 100) {
		t.Errorf("Pixels = %v", got)
	}
}

func TestFieldAspectCorrection(t *testing.T) {
	center := mgl64.Vec2{0.5, 0.5}
	tests := []struct {
		st     mgl64.Vec2
		aspect float64
		want   float64
	}{
		{mgl64.Vec2{0.5, 0.5}, 2, 1},
		{mgl64.Vec2{0.55, 0.5}, 2, 1},
		{mgl64.Vec2{0.6, 0.5}, 2, 0},
		{mgl64.Vec2{0.6, 0.5}, 1, 1},
		{mgl64.Vec2{0.5, 0.6}, 2, 1},
		{mgl64.Vec2{0.5, 0.9}, 2, 0},
	}
	for _, tt := range tests {
		if got := Field(tt.st, center, tt.aspect, 0.1, 0.05, 0); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Field(%v, aspect %v) = %v, want %v", tt.st, tt.aspect, got, tt.want)
		}
	}
}

func TestSoftEdgeIsGradual(t *testing.T) {
	mid := Soft(0.125, 0.1, 0.05, 0)
	if mid <= 0 || mid >= 1 {
		t.Errorf("Expected partial opacity inside edge band, got %v", mid)
	}
	if Soft(0.1, 0.1, 0.05, 0.2) != 0 {
		t.Error("Positive noise should push the edge inward")
	}
	if Soft(0.2, 0.1, 0.05, -0.2) != 1 {
		t.Error("Negative noise should push the edge outward")
	}
}

func TestCombineOrderIndependent(t *testing.T) {
	c := newQuiet(t, ModeBrush)
	pts := []trail.Point{
		{X: 0.4, Y: 0.5, Age: 0.1, Active: true},
		{X: 0.5, Y: 0.5, Age: 0.6, Active: true},
		{X: 0.45, Y: 0.55, Age: 0.3, Active: true},
	}
	reversed := []trail.Point{pts[2], pts[1], pts[0]}

	for _, st := range []mgl64.Vec2{{0.45, 0.5}, {0.5, 0.52}, {0.42, 0.55}} {
		a := c.Alpha(st, 1.6, Frame{Points: pts, Radius: 0.08})
		b := c.Alpha(st, 1.6, Frame{Points: reversed, Radius: 0.08})
		if math.Abs(a-b) > 1e-12 {
			t.Errorf("Order changed alpha at %v: %v vs %v", st, a, b)
		}
		if a < 0 || a > 1 {
			t.Errorf("Alpha out of range: %v", a)
		}
	}
}

func TestRenderBrush(t *testing.T) {
	c := newQuiet(t, ModeBrush)
	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))

	f := Frame{
		Points: []trail.Point{{X: 0.5, Y: 0.5, Age: 0, Active: true}},
		Radius: 0.2,
	}
	mean := c.Render(dst, f)

	center := dst.NRGBAAt(10, 10)
	if center.A != 255 || center.R != 0xe7 {
		t.Errorf("Expected opaque fill at center, got %+v", center)
	}
	if corner := dst.NRGBAAt(0, 0); corner.A != 0 {
		t.Errorf("Expected transparent corner, got %+v", corner)
	}
	if mean <= 0 || mean >= 1 {
		t.Errorf("Expected partial coverage, got %v", mean)
	}

	f.Points[0].Age = 0.5
	c.Render(dst, f)
	if a := dst.NRGBAAt(10, 10).A; a != 128 {
		t.Errorf("Expected half opacity from age 0.5, got %d", a)
	}

	f.Points[0].Active = false
	if mean := c.Render(dst, f); mean != 0 {
		t.Errorf("Inactive points must not reveal, got mean %v", mean)
	}
}

func TestRenderPortal(t *testing.T) {
	c := newQuiet(t, ModePortal)
	dst := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	f := Frame{Center: mgl64.Vec2{0.5, 0.5}, Progress: 0.3}

	c.Render(dst, f)
	if dst.NRGBAAt(10, 10).A != 255 || dst.NRGBAAt(0, 0).A != 0 {
		t.Fatalf("Unexpected portal layer: center %+v corner %+v", dst.NRGBAAt(10, 10), dst.NRGBAAt(0, 0))
	}

	// Far past the corner distance the whole frame is revealed
	f.Progress = 1.5
	if mean := c.Render(dst, f); mean != 1 {
		t.Errorf("Expected full coverage, got %v", mean)
	}
	if cov := c.Coverage(20, 20, f); cov != 1 {
		t.Errorf("Coverage disagrees with Render: %v", cov)
	}
}

func TestRenderOverlayRadius(t *testing.T) {
	c := newQuiet(t, ModeOverlay)
	center := mgl64.Vec2{0.5, 0.5}

	// Aperture 0.1 gives radius 0.25 with a 0.2 soft edge
	f := Frame{Center: center, Progress: 0.1}
	if a := c.Alpha(mgl64.Vec2{0.5, 0.7}, 1, f); a != 1 {
		t.Errorf("Expected full alpha inside radius, got %v", a)
	}
	if a := c.Alpha(mgl64.Vec2{0.5, 0.96}, 1, f); a != 0 {
		t.Errorf("Expected zero alpha past the edge, got %v", a)
	}

	// Same value in portal mode only reaches 0.1
	p := newQuiet(t, ModePortal)
	if a := p.Alpha(mgl64.Vec2{0.5, 0.7}, 1, f); a != 0 {
		t.Errorf("Expected portal gain to stay smaller, got %v", a)
	}
}

func TestApertureEases(t *testing.T) {
	a := NewAperture(DefaultConfig().Overlay)

	// Four seconds of 60 fps lerp at 0.3/s: 1-(1-0.005)^240
	var v float64
	for i := 0; i < 240; i++ {
		v = a.Step(true, 1.0/60.0)
	}
	want := 1 - math.Pow(1-0.3/60.0, 240)
	if math.Abs(v-want) > 1e-9 {
		t.Fatalf("Expected opening %v, got %v", want, v)
	}
	if v >= 1 {
		t.Errorf("Expected the lerp to stay short of fully open, got %v", v)
	}

	if got := a.Step(true, -1); got != v {
		t.Errorf("Negative dt must not move the aperture, got %v", got)
	}
	if got := a.Step(true, math.NaN()); got != v {
		t.Errorf("NaN dt must not move the aperture, got %v", got)
	}

	// Closing is faster than opening
	for i := 0; i < 60; i++ {
		a.Step(false, 1.0/60.0)
	}
	closed := v * math.Pow(1-2.0/60.0, 60)
	if math.Abs(a.Value()-closed) > 1e-9 {
		t.Errorf("Expected %v after 1s closing, got %v", closed, a.Value())
	}

	a.Reset()
	if a.Value() != 0 {
		t.Errorf("Expected closed after reset, got %v", a.Value())
	}
}

func TestRenderSamplesTexture(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if x < 100 {
				src.SetNRGBA(x, y, red)
			} else {
				src.SetNRGBA(x, y, blue)
			}
		}
	}

	tex := NewTexture(src)
	c := newQuiet(t, ModePortal)
	c.SetTexture(tex)

	dst := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	c.Render(dst, Frame{Center: mgl64.Vec2{0.5, 0.5}, Progress: 1.5})

	if px := dst.NRGBAAt(5, 20); px.R < 200 || px.B > 50 || px.A != 255 {
		t.Errorf("Expected red left half, got %+v", px)
	}
	if px := dst.NRGBAAt(35, 20); px.B < 200 || px.R > 50 {
		t.Errorf("Expected blue right half, got %+v", px)
	}

	if tex.Fitted(40, 40) != tex.Fitted(40, 40) {
		t.Error("Expected cached fit for unchanged size")
	}
	if tex.Fitted(30, 40).Bounds().Dx() != 30 {
		t.Error("Expected refit on size change")
	}
	if tex.Fitted(0, 10) != nil {
		t.Error("Expected nil fit for degenerate size")
	}
}

func TestLoadTexture(t *testing.T) {
	dir := t.TempDir()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 8, 4))); err != nil {
		t.Fatal(err)
	}
	good := filepath.Join(dir, "dest.png")
	if err := os.WriteFile(good, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	tex, err := LoadTexture(good)
	if err != nil {
		t.Fatalf("LoadTexture: %v", err)
	}
	if tex.Bounds().Dx() != 8 || tex.Bounds().Dy() != 4 {
		t.Errorf("Unexpected bounds %v", tex.Bounds())
	}

	bad := filepath.Join(dir, "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTexture(bad); err == nil {
		t.Error("Expected decode error")
	}
	if _, err := LoadTexture(filepath.Join(dir, "missing.png")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected not-exist error, got %v", err)
	}
}

func TestNoise(t *testing.T) {
	var nilNoise *Noise
	if nilNoise.Offset(0.3, 0.7, 1, DefaultConfig().Brush) != 0 {
		t.Error("Nil noise should be zero")
	}

	e := DefaultConfig().Portal
	a := NewNoise(2, 2, 3, 42)
	b := NewNoise(2, 2, 3, 42)
	nonZero := false
	for i := 0; i < 20; i++ {
		x, y := 0.13*float64(i), 0.07*float64(i)+0.31
		va, vb := a.Offset(x, y, 0.5, e), b.Offset(x, y, 0.5, e)
		if va != vb {
			t.Fatalf("Same seed diverged at %d: %v vs %v", i, va, vb)
		}
		if math.Abs(va) > 2*e.NoiseAmplitude {
			t.Errorf("Offset %v exceeds amplitude envelope", va)
		}
		if va != 0 {
			nonZero = true
		}
	}
	if !nonZero {
		t.Error("Expected some non-zero noise")
	}
}

func TestModeText(t *testing.T) {
	var m Mode
	if err := m.UnmarshalText([]byte("portal")); err != nil || m != ModePortal {
		t.Fatalf("UnmarshalText portal = %v, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("overlay")); err != nil || m != ModeOverlay || m.String() != "overlay" {
		t.Fatalf("UnmarshalText overlay = %v, %v", m, err)
	}
	if err := m.UnmarshalText([]byte("flood")); err == nil {
		t.Error("Expected unknown mode error")
	}
	if b, _ := ModeBrush.MarshalText(); string(b) != "brush" {
		t.Errorf("MarshalText = %q", b)
	}
}

func TestBadColor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Color = "teal"
	if _, err := NewCompositor(cfg, nil); err == nil {
		t.Error("Expected color parse error")
	}
}
