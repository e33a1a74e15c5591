package render

import (
	"fmt"
	"image"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/portal/engine"
	"github.com/lixenwraith/portal/geometry"
	"github.com/lixenwraith/portal/mask"
	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/physics"
	"github.com/lixenwraith/portal/trail"
)

// Composer turns an engine frame into pixels: background, wireframe, then the reveal layer
// Owns its scratch buffers; single-threaded
type Composer struct {
	cfg     Config
	palette Palette

	mask      *mask.Compositor
	aperture  *mask.Aperture
	mesh      *geometry.Mesh
	distorter *geometry.Distorter
	camera    geometry.Camera

	canvas *Canvas
	layer  *image.NRGBA

	pixelAspect float64
	phase       float64
	lastTime    float64
	coverage    float64

	// scratch
	points []trail.Point
	verts  []mgl64.Vec3
	segs   []geometry.Segment
}

// NewComposer builds the wireframe mesh and parses the palette
func NewComposer(cfg Config, comp *mask.Compositor, phys physics.Config) (*Composer, error) {
	if comp == nil {
		return nil, fmt.Errorf("composer: nil mask compositor")
	}
	palette, err := NewPalette(cfg)
	if err != nil {
		return nil, fmt.Errorf("composer palette: %w", err)
	}
	return &Composer{
		cfg:         cfg,
		palette:     palette,
		mask:        comp,
		aperture:    mask.NewAperture(comp.Config().Overlay),
		mesh:        geometry.Icosahedron(cfg.MeshSubdivision),
		distorter:   geometry.NewDistorter(parameter.NoiseAlpha, parameter.NoiseBeta, parameter.NoiseOctaves, parameter.NoiseSeed),
		camera:      geometry.NewCamera(phys.CameraDistance, phys.CameraFOV),
		canvas:      NewCanvas(0, 0),
		pixelAspect: 1,
	}, nil
}

// SetPixelAspect sets the width/height ratio of one output pixel
func (c *Composer) SetPixelAspect(a float64) {
	if a > 0 {
		c.pixelAspect = a
		c.mask.SetPixelAspect(a)
	}
}

// Palette returns the parsed colors
func (c *Composer) Palette() Palette {
	return c.palette
}

// Mask returns the reveal compositor
func (c *Composer) Mask() *mask.Compositor {
	return c.mask
}

// Aperture returns the overlay opening, advanced on every Compose
func (c *Composer) Aperture() float64 {
	return c.aperture.Value()
}

// Coverage returns the mean reveal alpha of the last composed frame
func (c *Composer) Coverage() float64 {
	return c.coverage
}

// MaskFrame assembles the compositor input from engine state
func MaskFrame(e *engine.Engine, f engine.Frame, dst []trail.Point) mask.Frame {
	return mask.Frame{
		Time:     f.Time.Seconds(),
		Points:   e.Trail().Visible(dst),
		Radius:   f.Radius,
		Center:   mgl64.Vec2{f.Sample.X, f.Sample.Y},
		Progress: f.Progress.Value,
	}
}

// Compose renders f into a w×h image; the result is reused by the next call
func (c *Composer) Compose(e *engine.Engine, f engine.Frame, w, h int) *image.NRGBA {
	c.canvas.Resize(w, h)
	c.canvas.Fill(c.palette.Background)
	if w == 0 || h == 0 {
		c.coverage = 0
		return c.canvas.Image()
	}

	// Distortion phase integrates speed so agitation changes never jump the surface
	t := f.Time.Seconds()
	dt := t - c.lastTime
	if dt > 0 {
		c.phase += dt * f.Physics.DistortSpeed
	}
	c.lastTime = t
	opening := c.aperture.Step(f.Sample.Engaging, dt)

	if c.cfg.Wireframe {
		c.drawWireframe(e.Physics().Model(), f.Physics.Distort, w, h)
	}

	if c.layer == nil || c.layer.Rect.Dx() != w || c.layer.Rect.Dy() != h {
		c.layer = image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	mf := MaskFrame(e, f, c.points[:0])
	c.points = mf.Points
	if c.mask.Mode() == mask.ModeOverlay {
		mf.Progress = opening
	}
	c.coverage = c.mask.Render(c.layer, mf)
	c.canvas.Over(c.layer)

	return c.canvas.Image()
}

func (c *Composer) drawWireframe(model mgl64.Mat4, distort float64, w, h int) {
	c.verts = c.distorter.Apply(c.verts, c.mesh, c.cfg.MeshRadius, distort, c.phase)
	vp := c.camera.ViewProjection(float64(w) * c.pixelAspect / float64(h))
	c.segs = geometry.Wireframe(c.segs, c.mesh, c.verts, model, vp, float64(w), float64(h))
	for _, s := range c.segs {
		c.canvas.Line(s, c.palette.Wire, c.cfg.WireOpacity)
	}
}
