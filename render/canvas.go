package render

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/portal/geometry"
	"github.com/lixenwraith/portal/vmath"
)

// Canvas is an opaque pixel surface; layers are blended over it in straight alpha
type Canvas struct {
	img *image.NRGBA
}

// NewCanvas allocates a w×h canvas
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates only if the size changed
func (c *Canvas) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if c.img != nil && c.img.Rect.Dx() == w && c.img.Rect.Dy() == h {
		return
	}
	c.img = image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Bounds returns the canvas dimensions
func (c *Canvas) Bounds() (w, h int) {
	return c.img.Rect.Dx(), c.img.Rect.Dy()
}

// Image exposes the backing image; valid until the next Resize
func (c *Canvas) Image() *image.NRGBA {
	return c.img
}

// Fill paints every pixel with col using exponential copy
func (c *Canvas) Fill(col colorful.Color) {
	pix := c.img.Pix
	if len(pix) == 0 {
		return
	}
	r, g, b := col.RGB255()
	pix[0], pix[1], pix[2], pix[3] = r, g, b, 255
	for filled := 4; filled < len(pix); filled *= 2 {
		copy(pix[filled:], pix[:filled])
	}
}

// At returns the pixel at x,y as a colorful color
func (c *Canvas) At(x, y int) colorful.Color {
	return toColorful(c.img.NRGBAAt(x, y))
}

// Blend mixes col into the pixel at x,y with weight a in [0,1]
func (c *Canvas) Blend(x, y int, col colorful.Color, a float64) {
	if !image.Pt(x, y).In(c.img.Rect) {
		return
	}
	a = vmath.Clamp01(a)
	if a == 0 {
		return
	}
	dst := c.At(x, y)
	c.set(x, y, dst.BlendRgb(col, a))
}

// Over composites a straight-alpha layer of the same size onto the canvas
func (c *Canvas) Over(layer *image.NRGBA) {
	b := c.img.Rect.Intersect(layer.Rect)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			src := layer.NRGBAAt(x, y)
			switch src.A {
			case 0:
				continue
			case 255:
				c.img.SetNRGBA(x, y, color.NRGBA{R: src.R, G: src.G, B: src.B, A: 255})
			default:
				c.Blend(x, y, toColorful(src), float64(src.A)/255)
			}
		}
	}
}

// Line rasterizes a segment with a DDA walk, blending col at opacity a
// Pixels outside the canvas are skipped
func (c *Canvas) Line(s geometry.Segment, col colorful.Color, a float64) {
	if !vmath.IsFinite(s.X0) || !vmath.IsFinite(s.Y0) || !vmath.IsFinite(s.X1) || !vmath.IsFinite(s.Y1) {
		return
	}
	dx, dy := s.X1-s.X0, s.Y1-s.Y0
	steps := math.Ceil(math.Max(math.Abs(dx), math.Abs(dy)))
	w, h := c.Bounds()
	// Guard against segments projected far off screen
	if steps > float64(4*(w+h)) {
		return
	}
	if steps == 0 {
		c.Blend(int(math.Floor(s.X0)), int(math.Floor(s.Y0)), col, a)
		return
	}
	xi, yi := dx/steps, dy/steps
	x, y := s.X0, s.Y0
	for i := 0; i <= int(steps); i++ {
		c.Blend(int(math.Floor(x)), int(math.Floor(y)), col, a)
		x += xi
		y += yi
	}
}

func (c *Canvas) set(x, y int, col colorful.Color) {
	r, g, b := col.Clamped().RGB255()
	c.img.SetNRGBA(x, y, color.NRGBA{R: r, G: g, B: b, A: 255})
}

func toColorful(p color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
}
