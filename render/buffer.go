package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// RGB is a 24-bit terminal color
type RGB struct {
	R, G, B uint8
}

// RGBOf converts a colorful color, clamping out-of-gamut values
func RGBOf(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{r, g, b}
}

// Color returns the tcell true color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Cell is one terminal cell: a rune with foreground and background
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// CellBuffer is the frame composed in cells before it is flushed to a screen
type CellBuffer struct {
	cells  []Cell
	width  int
	height int
}

// NewCellBuffer creates a buffer with the specified dimensions
func NewCellBuffer(width, height int) *CellBuffer {
	b := &CellBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *CellBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
}

// Bounds returns the buffer dimensions
func (b *CellBuffer) Bounds() (int, int) {
	return b.width, b.height
}

// Set writes a cell; out of bounds writes are dropped
func (b *CellBuffer) Set(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Get returns the cell at x,y or the zero cell when out of bounds
func (b *CellBuffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Text writes s starting at x,y keeping each cell's background
func (b *CellBuffer) Text(x, y int, s string, fg RGB) {
	for _, r := range s {
		if b.inBounds(x, y) {
			c := &b.cells[y*b.width+x]
			c.Rune = r
			c.Fg = fg
		}
		x++
	}
}

// Flush copies every cell to screen; the caller calls Show
func (b *CellBuffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x, c := range row {
			style := tcell.StyleDefault.Foreground(c.Fg.Color()).Background(c.Bg.Color())
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			screen.SetContent(x, y, r, nil, style)
		}
	}
}

func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}
