package mask

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Texture is a source image with a cover-fitted copy cached per target size
// Not safe for concurrent use; owned by the frame loop
type Texture struct {
	src    image.Image
	fitted *image.NRGBA
	fitW   int
	fitH   int
}

// NewTexture wraps a decoded image
func NewTexture(img image.Image) *Texture {
	return &Texture{src: img}
}

// LoadTexture decodes a PNG, JPEG or WebP file
func LoadTexture(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("texture %s (%s) has no pixels", path, format)
	}
	return NewTexture(img), nil
}

// Bounds returns the source image bounds
func (t *Texture) Bounds() image.Rectangle {
	return t.src.Bounds()
}

// Fitted returns the source cover-fitted to w×h
// The result is reused until the requested size changes
func (t *Texture) Fitted(w, h int) *image.NRGBA {
	if w <= 0 || h <= 0 {
		return nil
	}
	if t.fitted != nil && t.fitW == w && t.fitH == h {
		return t.fitted
	}

	b := t.src.Bounds()
	crop := CoverFit(float64(w), float64(h), float64(b.Dx()), float64(b.Dy())).Pixels(b)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), t.src, crop, xdraw.Src, nil)

	t.fitted, t.fitW, t.fitH = dst, w, h
	return dst
}
