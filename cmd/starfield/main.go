package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfield/audio"
	"github.com/lixenwraith/starfield/caption"
	"github.com/lixenwraith/starfield/config"
	"github.com/lixenwraith/starfield/core"
	"github.com/lixenwraith/starfield/engine"
	"github.com/lixenwraith/starfield/host"
	"github.com/lixenwraith/starfield/render"
	"github.com/lixenwraith/starfield/status"
	"github.com/lixenwraith/starfield/vmath"
)

func main() {
	cfg, err := config.Load(config.DefaultEnvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
		os.Exit(2)
	}
	cfg.BindFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	palette, err := cfg.Palette()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	// Panics anywhere below must restore the terminal before the trace is printed
	core.SetResetHook(screen.Fini)
	defer core.SetResetHook(nil)
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(render.TcellColor(palette.Background)))
	screen.Clear()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	clock := core.SystemTime{}
	window := host.NewWindow(clock)
	stats := status.NewStats()

	fieldCfg := engine.Config{
		Count:        cfg.Particles,
		MaxDuration:  cfg.MaxDuration,
		FadeDuration: cfg.FadeDuration,
		Strength:     cfg.Strength,
		Color:        palette.Particle,
		PointerScale: vmath.Point{X: 1, Y: 2},
	}
	if cfg.Caption {
		tag := caption.Resolve(cfg.Locale)
		log.Printf("caption locale %q resolved to %s", cfg.Locale, tag)
		fieldCfg.Overlays = append(fieldCfg.Overlays, caption.New(tag, palette.Caption))
	}
	if cfg.ExitOnStop {
		fieldCfg.OnStop = cancel
	}

	if cfg.Sound {
		if ambient, err := newAmbient(); err != nil {
			// Non-fatal, the field runs without sound
			log.Printf("audio disabled: %v", err)
		} else {
			defer ambient.Close()
			fieldCfg.OnFrame = ambient.SetLevel
		}
	}

	field := engine.NewField(window, clock, newRand(cfg.Seed), stats, fieldCfg)
	field.Mount(render.NewScreenSurface(screen, palette.Background))
	defer field.Unmount()

	err = window.Run(ctx, screen, cfg.FrameInterval)
	log.Printf("exit: %s", stats)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func newAmbient() (*audio.Ambient, error) {
	ambient, err := audio.NewAmbient(audio.SampleRate, audio.DefaultFrequency, audio.DefaultGain)
	if err != nil {
		return nil, err
	}
	if err := ambient.Start(); err != nil {
		return nil, err
	}
	return ambient, nil
}

func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
