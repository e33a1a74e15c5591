package main

import (
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/portal/config"
	"github.com/lixenwraith/portal/engine"
	"github.com/lixenwraith/portal/render"
	"github.com/lixenwraith/portal/trace"
)

type simulateFlags struct {
	runFlags
	hold    time.Duration
	release time.Duration
	fps     float64
	plot    string
	frame   string
	width   int
	height  int
}

func newSimulateCmd(g *globalFlags) *cobra.Command {
	var f simulateFlags
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a scripted hold and release without a terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if logFile := setupLogging(g.debug); logFile != nil {
				defer logFile.Close()
			}
			cfg, err := loadWithOverrides(g.configPath, f.runFlags)
			if err != nil {
				return err
			}
			return simulate(cmd.OutOrStdout(), cfg, f)
		},
	}
	cmd.Flags().DurationVar(&f.hold, "hold", 5*time.Second, "how long the press is held")
	cmd.Flags().DurationVar(&f.release, "release", time.Second, "how long to run after release")
	cmd.Flags().Float64Var(&f.fps, "fps", 60, "simulated frame rate")
	cmd.Flags().StringVar(&f.plot, "plot", "", "write a progress chart (png, svg, pdf)")
	cmd.Flags().StringVar(&f.frame, "frame", "", "write the frame at the end of the hold as PNG")
	cmd.Flags().IntVar(&f.width, "width", 320, "viewport and frame width in pixels")
	cmd.Flags().IntVar(&f.height, "height", 180, "viewport and frame height in pixels")
	cmd.Flags().StringVar(&f.mode, "mode", "", "mask variant: brush, portal or overlay")
	cmd.Flags().StringVar(&f.image, "image", "", "image revealed by the mask")
	cmd.Flags().StringVar(&f.device, "device", "", "device class: auto, compact or wide")
	return cmd
}

// simulate drives the engine from scripted time so runs are reproducible
func simulate(out io.Writer, cfg config.Config, f simulateFlags) error {
	if f.fps <= 0 || math.IsInf(f.fps, 0) || math.IsNaN(f.fps) {
		return fmt.Errorf("fps must be positive, got %v", f.fps)
	}
	if f.width <= 0 || f.height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", f.width, f.height)
	}

	var composer *render.Composer
	if f.frame != "" {
		c, err := newComposer(cfg)
		if err != nil {
			return err
		}
		composer = c
	}

	e := engine.New(cfg.Engine, nil)
	e.Input().Resize(float64(f.width), float64(f.height))

	var completions []engine.Completion
	e.OnComplete(func(c engine.Completion) { completions = append(completions, c) })

	rec := trace.NewRecorder(cfg.Engine.Progress.Threshold)
	script := engine.NewScriptedTime(time.Unix(0, 0))
	clock := engine.NewFrameClock(script)
	clock.Tick()

	step := time.Duration(float64(time.Second) / f.fps)
	holdFrames := int(math.Round(f.hold.Seconds() * f.fps))
	releaseFrames := int(math.Round(f.release.Seconds() * f.fps))

	advance := func() engine.Frame {
		script.Advance(step)
		fr := e.Step(clock.Tick())
		rec.Record(fr)
		return fr
	}

	e.Input().Press(float64(f.width)/2, float64(f.height)/2)
	var last engine.Frame
	for i := 0; i < holdFrames; i++ {
		last = advance()
	}

	var snapshot *image.NRGBA
	if composer != nil {
		img := composer.Compose(e, last, f.width, f.height)
		snapshot = image.NewNRGBA(img.Rect)
		copy(snapshot.Pix, img.Pix)
	}

	e.Input().Release()
	for i := 0; i < releaseFrames; i++ {
		last = advance()
	}

	fmt.Fprintf(out, "frames: %d (hold %d, release %d) at %.0f fps\n", rec.Len(), holdFrames, releaseFrames, f.fps)
	fmt.Fprintf(out, "device: %s\n", e.Profile().Class)
	for _, c := range completions {
		fmt.Fprintf(out, "completion: episode=%s at=%s value=%.3f\n", c.Episode, c.At.Round(time.Millisecond), c.Value)
	}
	if len(completions) == 0 {
		fmt.Fprintln(out, "completion: none")
	}
	fmt.Fprintf(out, "final progress: %.3f (%s)\n", last.Progress.Value, last.Phase)
	sum := rec.Summary()
	fmt.Fprintf(out, "peak progress: %.3f  displacement mean %.3f peak %.3f\n", sum.PeakProgress, sum.MeanDisplacement, sum.PeakDisplacement)

	if f.plot != "" {
		if err := rec.Save(f.plot); err != nil {
			return err
		}
		fmt.Fprintf(out, "chart: %s\n", f.plot)
	}
	if snapshot != nil {
		if err := render.SavePNG(f.frame, snapshot); err != nil {
			return err
		}
		fmt.Fprintf(out, "frame: %s\n", f.frame)
	}
	return nil
}
