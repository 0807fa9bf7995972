// Package config loads starfield settings from the environment, an optional .env file and flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/starfield/render"
)

// DefaultEnvFile is read when present; a missing file is not an error
const DefaultEnvFile = ".env"

// Config holds every runtime setting
type Config struct {
	Particles     int           `env:"STARFIELD_PARTICLES"      envDefault:"120"`
	MaxDuration   time.Duration `env:"STARFIELD_MAX_DURATION"   envDefault:"3s"`
	FadeDuration  time.Duration `env:"STARFIELD_FADE_DURATION"  envDefault:"2s"`
	Strength      float64       `env:"STARFIELD_STRENGTH"       envDefault:"0.02"`
	FrameInterval time.Duration `env:"STARFIELD_FRAME_INTERVAL" envDefault:"16ms"`
	Color         string        `env:"STARFIELD_COLOR"          envDefault:"#ffffff"`
	Background    string        `env:"STARFIELD_BACKGROUND"     envDefault:"#000000"`
	CaptionColor  string        `env:"STARFIELD_CAPTION_COLOR"  envDefault:"#c084fc"`
	Caption       bool          `env:"STARFIELD_CAPTION"        envDefault:"true"`
	Locale        string        `env:"STARFIELD_LOCALE"`
	Sound         bool          `env:"STARFIELD_SOUND"          envDefault:"false"`
	ExitOnStop    bool          `env:"STARFIELD_EXIT_ON_STOP"   envDefault:"false"`
	Seed          uint64        `env:"STARFIELD_SEED"           envDefault:"0"`
	Debug         bool          `env:"STARFIELD_DEBUG"          envDefault:"false"`
}

// Load reads envFile into the process environment (without overriding existing variables),
// then parses Config from the environment
// The locale falls back to LC_ALL, then LANG
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Locale == "" {
		cfg.Locale = firstEnv("LC_ALL", "LANG")
	}
	return cfg, nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

// BindFlags registers flags defaulting to the current values so flags override the environment
func (c *Config) BindFlags(set *flag.FlagSet) {
	set.IntVar(&c.Particles, "particles", c.Particles, "number of particles")
	set.DurationVar(&c.MaxDuration, "active", c.MaxDuration, "pointer-reactive phase length")
	set.DurationVar(&c.FadeDuration, "fade", c.FadeDuration, "fade-out length after the active phase")
	set.Float64Var(&c.Strength, "strength", c.Strength, "drift per frame as a fraction of the pointer offset (negative attracts)")
	set.DurationVar(&c.FrameInterval, "frame", c.FrameInterval, "frame interval")
	set.StringVar(&c.Color, "color", c.Color, "particle color (#rgb or #rrggbb)")
	set.StringVar(&c.Background, "background", c.Background, "background color")
	set.StringVar(&c.CaptionColor, "caption-color", c.CaptionColor, "hero caption color")
	set.BoolVar(&c.Caption, "caption", c.Caption, "draw the hero caption")
	set.StringVar(&c.Locale, "locale", c.Locale, "caption language, e.g. en or fr_FR.UTF-8")
	set.BoolVar(&c.Sound, "sound", c.Sound, "play an ambient tone that fades with the field")
	set.BoolVar(&c.ExitOnStop, "exit", c.ExitOnStop, "exit when the fade completes")
	set.Uint64Var(&c.Seed, "seed", c.Seed, "random seed, 0 for time-based")
	set.BoolVar(&c.Debug, "debug", c.Debug, "write logs to logs/starfield.log")
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Particles < 0:
		return fmt.Errorf("particles must be >= 0, got %d", c.Particles)
	case c.MaxDuration < 0:
		return fmt.Errorf("active duration must be >= 0, got %v", c.MaxDuration)
	case c.FadeDuration < 0:
		return fmt.Errorf("fade duration must be >= 0, got %v", c.FadeDuration)
	case c.FrameInterval <= 0:
		return fmt.Errorf("frame interval must be > 0, got %v", c.FrameInterval)
	}
	if _, err := c.Palette(); err != nil {
		return err
	}
	return nil
}

// Palette holds the parsed colors
type Palette struct {
	Particle   colorful.Color
	Background colorful.Color
	Caption    colorful.Color
}

// Palette parses the configured colors
func (c Config) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Particle, err = render.ParseColor(c.Color); err != nil {
		return Palette{}, fmt.Errorf("color: %w", err)
	}
	if p.Background, err = render.ParseColor(c.Background); err != nil {
		return Palette{}, fmt.Errorf("background: %w", err)
	}
	if p.Caption, err = render.ParseColor(c.CaptionColor); err != nil {
		return Palette{}, fmt.Errorf("caption color: %w", err)
	}
	return p, nil
}
