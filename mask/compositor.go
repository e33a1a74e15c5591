package mask

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/portal/trail"
	"github.com/lixenwraith/portal/vmath"
)

// Frame is the per-frame compositor input
// Positions are viewport-normalized with Y growing downward
// Progress is the engine value in portal mode and the aperture in overlay mode
type Frame struct {
	Time     float64
	Points   []trail.Point
	Radius   float64
	Center   mgl64.Vec2
	Progress float64
}

// Compositor renders the reveal layer into an NRGBA image
// Color comes from the bound texture when present, the procedural fill otherwise
type Compositor struct {
	cfg     Config
	noise   *Noise
	texture *Texture
	fill    colorful.Color

	// width/height of one output pixel
	pixelAspect float64
}

// NewCompositor validates the fill color and seeds the noise generator
func NewCompositor(cfg Config, tex *Texture) (*Compositor, error) {
	fill, err := colorful.Hex(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("mask color %q: %w", cfg.Color, err)
	}
	return &Compositor{
		cfg:         cfg,
		noise:       NewNoise(cfg.NoiseAlpha, cfg.NoiseBeta, cfg.NoiseOctaves, cfg.NoiseSeed),
		texture:     tex,
		fill:        fill,
		pixelAspect: 1,
	}, nil
}

// Mode returns the active variant
func (c *Compositor) Mode() Mode {
	return c.cfg.Mode
}

// Config returns the compositor settings
func (c *Compositor) Config() Config {
	return c.cfg
}

// SetMode switches the variant
func (c *Compositor) SetMode(m Mode) {
	c.cfg.Mode = m
}

// SetTexture binds or clears the revealed image
func (c *Compositor) SetTexture(tex *Texture) {
	c.texture = tex
}

// SetPixelAspect sets the width/height ratio of one output pixel
func (c *Compositor) SetPixelAspect(a float64) {
	if a > 0 && vmath.IsFinite(a) {
		c.pixelAspect = a
	}
}

// Alpha returns the combined reveal alpha at normalized position st
// aspect is the viewport width/height ratio
func (c *Compositor) Alpha(st mgl64.Vec2, aspect float64, f Frame) float64 {
	edge := c.cfg.Edge()
	cs := Corrected(st, aspect)
	noise := c.noise.Offset(cs.X(), cs.Y(), f.Time, edge)

	switch c.cfg.Mode {
	case ModePortal:
		return Field(st, f.Center, aspect, f.Progress*c.cfg.RadiusGain, edge.Width, noise)
	case ModeOverlay:
		return Field(st, f.Center, aspect, f.Progress*c.cfg.Overlay.RadiusGain, edge.Width, noise)
	}

	alpha := 0.0
	for _, p := range f.Points {
		if !p.Active {
			continue
		}
		op := p.Opacity()
		if op <= 0 {
			continue
		}
		a := Field(st, mgl64.Vec2{p.X, p.Y}, aspect, f.Radius, edge.Width, noise) * op
		if a <= 0 {
			continue
		}
		alpha = Combine(alpha, a)
	}
	return alpha
}

// Render writes the reveal layer into dst with straight (non-premultiplied) alpha
// Returns the mean alpha over all pixels
func (c *Compositor) Render(dst *image.NRGBA, f Frame) float64 {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return 0
	}
	aspect := Aspect(float64(w)*c.pixelAspect, float64(h))

	var tex *image.NRGBA
	if c.texture != nil {
		tex = c.texture.Fitted(w, h)
	}
	fr, fg, fb := c.fill.RGB255()

	// Trail points with zero opacity never contribute
	if c.cfg.Mode == ModeBrush {
		f.Points = visible(f.Points)
	}

	sum := 0.0
	for y := 0; y < h; y++ {
		v := (float64(y) + 0.5) / float64(h)
		for x := 0; x < w; x++ {
			u := (float64(x) + 0.5) / float64(w)
			a := c.Alpha(mgl64.Vec2{u, v}, aspect, f)
			sum += a

			px := color.NRGBA{R: fr, G: fg, B: fb, A: uint8(vmath.Clamp01(a)*255 + 0.5)}
			if tex != nil {
				src := tex.NRGBAAt(x, y)
				px.R, px.G, px.B = src.R, src.G, src.B
			}
			dst.SetNRGBA(b.Min.X+x, b.Min.Y+y, px)
		}
	}
	return sum / float64(w*h)
}

// Coverage returns the mean alpha of a w×h grid without writing pixels
func (c *Compositor) Coverage(w, h int, f Frame) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	aspect := Aspect(float64(w)*c.pixelAspect, float64(h))
	if c.cfg.Mode == ModeBrush {
		f.Points = visible(f.Points)
	}
	sum := 0.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			st := mgl64.Vec2{(float64(x) + 0.5) / float64(w), (float64(y) + 0.5) / float64(h)}
			sum += c.Alpha(st, aspect, f)
		}
	}
	return sum / float64(w*h)
}

func visible(points []trail.Point) []trail.Point {
	out := make([]trail.Point, 0, len(points))
	for _, p := range points {
		if p.Active && p.Opacity() > 0 {
			out = append(out, p)
		}
	}
	return out
}
