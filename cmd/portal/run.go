package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/portal/audio"
	"github.com/lixenwraith/portal/config"
	"github.com/lixenwraith/portal/engine"
	"github.com/lixenwraith/portal/input"
	"github.com/lixenwraith/portal/mask"
	"github.com/lixenwraith/portal/render"
)

type runFlags struct {
	mode   string
	image  string
	device string
	mute   bool
	status bool
}

func newRunCmd(g *globalFlags) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the interactive terminal effect",
		RunE: func(_ *cobra.Command, _ []string) error {
			if logFile := setupLogging(g.debug); logFile != nil {
				defer logFile.Close()
			}
			cfg, err := loadWithOverrides(g.configPath, f)
			if err != nil {
				return err
			}
			return runInteractive(cfg)
		},
	}
	cmd.Flags().StringVar(&f.mode, "mode", "", "mask variant: brush, portal or overlay")
	cmd.Flags().StringVar(&f.image, "image", "", "image revealed by the mask (png, jpeg, webp)")
	cmd.Flags().StringVar(&f.device, "device", "", "device class: auto, compact or wide")
	cmd.Flags().BoolVar(&f.mute, "mute", false, "disable audio")
	cmd.Flags().BoolVar(&f.status, "status", false, "show the metrics line")
	return cmd
}

// loadWithOverrides loads the config file and applies command line flags on top
func loadWithOverrides(path string, f runFlags) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	if f.mode != "" {
		m, err := mask.ParseMode(f.mode)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Mask.Mode = m
	}
	if f.device != "" {
		d, err := engine.ParseDeviceOverride(f.device)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Engine.Device = d
	}
	if f.image != "" {
		cfg.Host.Image = f.image
	}
	if f.mute {
		cfg.Audio.Enabled = false
	}
	if f.status {
		cfg.Render.ShowStatus = true
	}
	return cfg, nil
}

// newComposer loads the optional texture and builds the frame composer
func newComposer(cfg config.Config) (*render.Composer, error) {
	var tex *mask.Texture
	if cfg.Host.Image != "" {
		t, err := mask.LoadTexture(cfg.Host.Image)
		if err != nil {
			return nil, err
		}
		tex = t
	}
	comp, err := mask.NewCompositor(cfg.Mask, tex)
	if err != nil {
		return nil, err
	}
	return render.NewComposer(cfg.Render, comp, cfg.Engine.Physics)
}

func runInteractive(cfg config.Config) error {
	composer, err := newComposer(cfg)
	if err != nil {
		return err
	}
	// Half-block pixels are one cell wide and half a cell tall
	composer.SetPixelAspect(cfg.Host.CellWidth * 2 / cfg.Host.CellHeight)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	// Normal exit terminal cleanup
	defer screen.Fini()

	// Panic Recovery: ensure terminal is reset even if the frame loop crashes
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			render.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mPORTAL CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	screen.EnableMouse()
	screen.HideCursor()

	e := engine.New(cfg.Engine, nil)
	src := input.NewTerminalSource(cfg.Host.CellWidth, cfg.Host.CellHeight)
	detach := e.Attach(src)
	defer detach()

	cols, rows := screen.Size()
	src.Resize(float64(cols)*cfg.Host.CellWidth, float64(rows)*cfg.Host.CellHeight)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// Arrow-key tilt needs no platform grant
	e.RequestPermission(ctx, input.RequesterFunc(func(context.Context) (bool, error) { return true, nil }))

	sound := audio.NewSoundManager(cfg.Audio)
	if err := sound.Initialize(); err != nil {
		log.Printf("[audio] %v (continuing without audio)", err)
	}
	defer sound.Cleanup()
	for _, t := range sound.EventTypes() {
		e.Subscribe(t, sound.HandleEvent)
	}

	view := render.ViewHome
	e.OnComplete(func(c engine.Completion) {
		view = render.ViewDestination
		e.Input().Release()
		log.Printf("[host] navigate to destination (episode %s)", c.Episode)
	})

	renderer := render.NewTerminalRenderer(screen, composer, e.Metrics(), cfg.Render.ShowStatus)
	clock := engine.NewFrameClock(engine.NewMonotonicTimeProvider())

	eventChan := make(chan tcell.Event, 256)
	// Input polling uses raw goroutine as it interacts directly with terminal
	go func() {
		defer func() {
			if r := recover(); r != nil {
				render.EmergencyReset(os.Stdout)
				fmt.Fprintf(os.Stderr, "\r\n\x1b[31mEVENT POLLER CRASHED: %v\x1b[0m\r\n", r)
				fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
				os.Exit(1)
			}
		}()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	ticker := time.NewTicker(cfg.Host.FrameInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
					return nil
				case ev.Key() == tcell.KeyEnter && view == render.ViewDestination:
					e.ReturnHome()
					view = render.ViewHome
					continue
				case ev.Rune() == 'p':
					if clock.IsPaused() {
						clock.Resume()
					} else {
						clock.Pause()
					}
					continue
				}
			case *tcell.EventResize:
				screen.Sync()
			case *tcell.EventMouse:
				if !acceptMouse(view, ev) {
					continue
				}
			}
			src.Dispatch(ev)

		case <-ticker.C:
			f := e.Step(clock.Tick())
			if f.Sample.Engaging && view == render.ViewHome {
				sound.SetCharge(f.Progress.Value / cfg.Engine.Progress.Threshold)
			} else {
				sound.SetCharge(0)
			}
			renderer.Draw(e, f, view)
		}
	}
}

// acceptMouse drops presses outside the home view; releases still pass so the source tracks button state
func acceptMouse(view render.View, ev *tcell.EventMouse) bool {
	return view == render.ViewHome || ev.Buttons()&tcell.Button1 == 0
}
