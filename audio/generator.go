package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/portal/status"
	"github.com/lixenwraith/portal/vmath"
)

// ChargeGenerator is an endless hum whose pitch and loudness follow a level in [0,1]
// The level is written by the frame loop and read by the audio goroutine
type ChargeGenerator struct {
	sr      beep.SampleRate
	base    float64
	top     float64
	volume  float64
	level   status.Gauge
	phase   float64
	current float64
}

// NewChargeGenerator creates a silent hum
func NewChargeGenerator(sr beep.SampleRate, base, top, volume float64) *ChargeGenerator {
	return &ChargeGenerator{sr: sr, base: base, top: top, volume: volume}
}

// SetLevel sets the target level, clamped to [0,1]
func (g *ChargeGenerator) SetLevel(level float64) {
	g.level.Set(vmath.Clamp01(level))
}

// Level returns the target level
func (g *ChargeGenerator) Level() float64 {
	return g.level.Get()
}

func (g *ChargeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	target := g.level.Get()
	// Per-sample glide so level steps between frames do not click
	glide := 1 - math.Exp(-1/(0.02*float64(g.sr)))

	for i := range samples {
		g.current += (target - g.current) * glide
		freq := vmath.Mix(g.base, g.top, g.current)

		// Fundamental with a detuned fifth for body
		sample := math.Sin(2*math.Pi*g.phase) + 0.4*math.Sin(2*math.Pi*g.phase*1.5)
		sample *= g.volume * g.current / 1.4

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += freq / float64(g.sr)
		if g.phase >= 1 {
			g.phase -= math.Floor(g.phase)
		}
	}
	return len(samples), true
}

func (g *ChargeGenerator) Err() error {
	return nil
}

// ChimeGenerator is a finite bell: fundamental plus octave overtone with exponential decay
type ChimeGenerator struct {
	sr     beep.SampleRate
	freq   float64
	volume float64
	pos    int
	total  int
}

// NewChimeGenerator creates a chime lasting d
func NewChimeGenerator(sr beep.SampleRate, freq float64, d time.Duration, volume float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, freq: freq, volume: volume, total: sr.N(d)}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		progress := float64(g.pos) / float64(g.total)

		attack := math.Min(t/0.005, 1)
		fund := math.Exp(-progress*5) * math.Sin(2*math.Pi*g.freq*t)
		over := math.Exp(-progress*9) * math.Sin(2*math.Pi*g.freq*2*t)
		sample := attack * g.volume * (0.7*fund + 0.3*over)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
