// Package trace records per-frame engine output and charts it
package trace

import (
	"errors"
	"fmt"
	"image/color"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/lixenwraith/portal/engine"
)

// ErrEmpty is returned when charting a recorder with no samples
var ErrEmpty = errors.New("trace: no samples recorded")

// Sample is the recorded subset of one engine frame
type Sample struct {
	Frame        uint64
	Time         float64
	Progress     float64
	Displacement float64
	Distort      float64
	Radius       float64
	Engaging     bool
	Completed    bool
}

// Recorder accumulates samples; safe for concurrent Record and Save
type Recorder struct {
	mu          sync.Mutex
	threshold   float64
	samples     []Sample
	completions []Sample
}

// NewRecorder creates a recorder that draws the completion threshold as a reference line
func NewRecorder(threshold float64) *Recorder {
	return &Recorder{threshold: threshold}
}

// Record appends f
func (r *Recorder) Record(f engine.Frame) {
	s := Sample{
		Frame:        f.Index,
		Time:         f.Time.Seconds(),
		Progress:     f.Progress.Value,
		Displacement: f.Physics.Displacement.Len(),
		Distort:      f.Physics.Distort,
		Radius:       f.Radius,
		Engaging:     f.Sample.Engaging,
		Completed:    f.Completed,
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = append(r.samples, s)
	if s.Completed {
		r.completions = append(r.completions, s)
	}
}

// Samples returns a copy of the recorded samples
func (r *Recorder) Samples() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, len(r.samples))
	copy(out, r.samples)
	return out
}

// Completions returns the samples on which a completion fired
func (r *Recorder) Completions() []Sample {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sample, len(r.completions))
	copy(out, r.completions)
	return out
}

// Len returns the number of recorded samples
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.samples)
}

// Reset drops all samples
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.samples = r.samples[:0]
	r.completions = r.completions[:0]
}

// Summary condenses a recording
type Summary struct {
	Frames           int
	Duration         float64
	PeakProgress     float64
	MeanDisplacement float64
	PeakDisplacement float64
	EngagedFraction  float64
	Completions      int
}

// Summary returns aggregate statistics; zero when nothing was recorded
func (r *Recorder) Summary() Summary {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.samples)
	if n == 0 {
		return Summary{}
	}
	progress := make([]float64, n)
	disp := make([]float64, n)
	engaged := make([]float64, n)
	for i, s := range r.samples {
		progress[i] = s.Progress
		disp[i] = s.Displacement
		if s.Engaging {
			engaged[i] = 1
		}
	}
	return Summary{
		Frames:           n,
		Duration:         r.samples[n-1].Time - r.samples[0].Time,
		PeakProgress:     floats.Max(progress),
		MeanDisplacement: stat.Mean(disp, nil),
		PeakDisplacement: floats.Max(disp),
		EngagedFraction:  stat.Mean(engaged, nil),
		Completions:      len(r.completions),
	}
}

// Plot builds a chart of progress, displacement and distortion over time
func (r *Recorder) Plot() (*plot.Plot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.samples) == 0 {
		return nil, ErrEmpty
	}

	p := plot.New()
	p.Title.Text = "Hold to travel"
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "value"

	series := []struct {
		name  string
		color color.Color
		value func(s Sample) float64
	}{
		{"progress", color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 255}, func(s Sample) float64 { return s.Progress }},
		{"displacement", color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 255}, func(s Sample) float64 { return s.Displacement }},
		{"distort", color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 255}, func(s Sample) float64 { return s.Distort }},
	}

	for _, sr := range series {
		pts := make(plotter.XYs, len(r.samples))
		for i, s := range r.samples {
			pts[i] = plotter.XY{X: s.Time, Y: sr.value(s)}
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("%s line: %w", sr.name, err)
		}
		line.Color = sr.color
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(sr.name, line)
	}

	if r.threshold > 0 {
		threshold := plotter.NewFunction(func(float64) float64 { return r.threshold })
		threshold.Color = color.Gray{Y: 0x80}
		threshold.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(threshold)
		p.Legend.Add("threshold", threshold)
	}

	if len(r.completions) > 0 {
		pts := make(plotter.XYs, len(r.completions))
		for i, s := range r.completions {
			pts[i] = plotter.XY{X: s.Time, Y: s.Progress}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("completion markers: %w", err)
		}
		sc.Color = color.Black
		p.Add(sc)
		p.Legend.Add("completion", sc)
	}

	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.XOffs = 10
	p.Legend.YOffs = -10
	return p, nil
}

// Save writes the chart to path; the format follows the extension
func (r *Recorder) Save(path string) error {
	p, err := r.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(10*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}
