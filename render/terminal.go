package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/portal/engine"
	"github.com/lixenwraith/portal/parameter"
	"github.com/lixenwraith/portal/status"
)

// View selects what the host shows
type View int

const (
	ViewHome View = iota
	ViewDestination
)

// halfBlock paints the top pixel as foreground and the bottom pixel as background
const halfBlock = '▀'

// TerminalRenderer draws composed frames as half-block pixels, two per cell
type TerminalRenderer struct {
	screen   tcell.Screen
	composer *Composer
	buf      *CellBuffer
	metrics  *status.Registry
	status   bool
}

// NewTerminalRenderer creates a renderer; metrics may be nil when the status line is off
func NewTerminalRenderer(screen tcell.Screen, composer *Composer, metrics *status.Registry, showStatus bool) *TerminalRenderer {
	return &TerminalRenderer{
		screen:   screen,
		composer: composer,
		buf:      NewCellBuffer(0, 0),
		metrics:  metrics,
		status:   showStatus && metrics != nil,
	}
}

// Draw composes f for the current screen size and shows it
func (r *TerminalRenderer) Draw(e *engine.Engine, f engine.Frame, view View) {
	cols, rows := r.screen.Size()
	r.Compose(e, f, view, cols, rows)
	r.buf.Flush(r.screen)
	r.screen.Show()
}

// Compose fills the cell buffer for a cols×rows terminal without touching the screen
func (r *TerminalRenderer) Compose(e *engine.Engine, f engine.Frame, view View, cols, rows int) *CellBuffer {
	r.buf.Resize(cols, rows)
	if cols == 0 || rows == 0 {
		return r.buf
	}

	palette := r.composer.Palette()
	if view == ViewDestination {
		r.drawDestination(palette, cols, rows)
		return r.buf
	}

	img := r.composer.Compose(e, f, cols, rows*2)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := img.NRGBAAt(x, 2*y)
			bottom := img.NRGBAAt(x, 2*y+1)
			r.buf.Set(x, y, Cell{
				Rune: halfBlock,
				Fg:   RGB{top.R, top.G, top.B},
				Bg:   RGB{bottom.R, bottom.G, bottom.B},
			})
		}
	}

	hint := parameter.HintIdle
	if f.Sample.Engaging {
		hint = fmt.Sprintf("%s %3.0f%%", parameter.HintHolding, f.Progress.Value/e.Config().Progress.Threshold*100)
	}
	r.overlayText(cols/2-len([]rune(hint))/2, rows-2, hint, palette.HUD)

	if r.status {
		r.overlayText(0, 0, r.statusLine(cols), palette.HUD)
	}
	return r.buf
}

// overlayText writes s as glyphs over half-block pixels, averaging each cell's two pixels into the background
func (r *TerminalRenderer) overlayText(x, y int, s string, fg colorful.Color) {
	col := RGBOf(fg)
	for _, ch := range s {
		c := r.buf.Get(x, y)
		if c.Rune == halfBlock {
			c.Bg = RGBOf(rgbColor(c.Fg).BlendRgb(rgbColor(c.Bg), 0.5))
		}
		c.Rune = ch
		c.Fg = col
		r.buf.Set(x, y, c)
		x++
	}
}

func (r *TerminalRenderer) drawDestination(p Palette, cols, rows int) {
	bg := RGBOf(p.Destination)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			r.buf.Set(x, y, Cell{Rune: ' ', Fg: bg, Bg: bg})
		}
	}
	fg := RGBOf(p.Background)
	lines := []string{parameter.DestTitle, "", parameter.DestBody, "", parameter.DestReturn}
	top := rows/2 - len(lines)/2
	for i, line := range lines {
		r.buf.Text(cols/2-len([]rune(line))/2, top+i, line, fg)
	}
}

func (r *TerminalRenderer) statusLine(cols int) string {
	var sb strings.Builder
	for _, m := range r.metrics.Snapshot() {
		if sb.Len() > 0 {
			sb.WriteString("  ")
		}
		switch m.Kind {
		case 'f':
			fmt.Fprintf(&sb, "%s=%.2f", m.Key, m.Float)
		case 'i':
			fmt.Fprintf(&sb, "%s=%d", m.Key, m.Int)
		default:
			fmt.Fprintf(&sb, "%s=%s", m.Key, m.Text)
		}
	}
	line := []rune(sb.String())
	if len(line) > cols {
		line = line[:cols]
	}
	return string(line)
}

func rgbColor(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Terminal restore sequences
var (
	csiMouseMotionOff = []byte("\x1b[?1003l")
	csiMouseDragOff   = []byte("\x1b[?1002l")
	csiMouseClickOff  = []byte("\x1b[?1000l")
	csiMouseSGROff    = []byte("\x1b[?1006l")
	csiCursorShow     = []byte("\x1b[?25h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	csiSGR0           = []byte("\x1b[0m")
)

// EmergencyReset attempts to restore the terminal to a sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}
}
