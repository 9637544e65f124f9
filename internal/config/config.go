// Package config loads and saves the hotloop YAML configuration file.
package config

import (
	"os"
	"time"

	"github.com/neonloop/hotloop"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth         = 800
	DefaultHeight        = 600
	DefaultTitle         = "hotloop"
	DefaultSampleRate    = hotloop.DefaultSampleRate
	DefaultScreenshotDir = "screenshots"
)

type Config struct {
	Window        WindowConfig `yaml:"window"`
	Sim           SimConfig    `yaml:"sim"`
	Audio         AudioConfig  `yaml:"audio"`
	Debug         bool         `yaml:"debug"`
	ScreenshotDir string       `yaml:"screenshot_dir"`
}

type WindowConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	ShowFPS bool   `yaml:"show_fps"`
}

// SimConfig mirrors hotloop.Config. Durations are in milliseconds.
type SimConfig struct {
	Seed           uint64  `yaml:"seed"`
	TPS            int     `yaml:"tps"`
	RingSegments   int     `yaml:"ring_segments"`
	RingRadius     float64 `yaml:"ring_radius"`
	InitialCars    int     `yaml:"initial_cars"`
	MaxCars        int     `yaml:"max_cars"`
	CarSpawnChance float64 `yaml:"car_spawn_chance"`
	TapCarChance   float64 `yaml:"tap_car_chance"`
	MaxParticles   int     `yaml:"max_particles"`
	DefaultZoom    float64 `yaml:"default_zoom"`
	HoldZoom       float64 `yaml:"hold_zoom"`
	HoldDelayMS    int     `yaml:"hold_delay_ms"`
	TapMaxMS       int     `yaml:"tap_max_ms"`
	SwipeThreshold float64 `yaml:"swipe_threshold"`
	BoostMS        int     `yaml:"boost_ms"`
}

type AudioConfig struct {
	Enabled    bool `yaml:"enabled"`
	SampleRate int  `yaml:"sample_rate"`
}

func DefaultConfig() *Config {
	d := hotloop.DefaultConfig()
	return &Config{
		Window: WindowConfig{
			Title:  DefaultTitle,
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Sim: SimConfig{
			Seed:           d.Seed,
			TPS:            d.TPS,
			RingSegments:   d.RingSegments,
			RingRadius:     d.RingRadius,
			InitialCars:    d.InitialCars,
			MaxCars:        d.MaxCars,
			CarSpawnChance: d.CarSpawnChance,
			TapCarChance:   d.TapCarChance,
			MaxParticles:   d.MaxParticles,
			DefaultZoom:    d.DefaultZoom,
			HoldZoom:       d.HoldZoom,
			HoldDelayMS:    int(d.HoldDelay / time.Millisecond),
			TapMaxMS:       int(d.TapMaxDuration / time.Millisecond),
			SwipeThreshold: d.SwipeThreshold,
			BoostMS:        int(d.BoostDuration / time.Millisecond),
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: DefaultSampleRate,
		},
		ScreenshotDir: DefaultScreenshotDir,
	}
}

// Load reads path over the defaults, so a partial file only overrides the
// keys it names.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "write config %s", path)
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	case c.Sim.TPS <= 0:
		return errors.Errorf("tps %d must be positive", c.Sim.TPS)
	case c.Sim.RingSegments < 0:
		return errors.Errorf("ring_segments %d must not be negative", c.Sim.RingSegments)
	case c.Sim.RingRadius <= 0:
		return errors.Errorf("ring_radius %v must be positive", c.Sim.RingRadius)
	case c.Sim.InitialCars < 0 || c.Sim.MaxCars < 0 || c.Sim.MaxParticles < 0:
		return errors.Errorf("initial_cars %d, max_cars %d and max_particles %d must not be negative",
			c.Sim.InitialCars, c.Sim.MaxCars, c.Sim.MaxParticles)
	case c.Sim.HoldDelayMS <= 0 || c.Sim.TapMaxMS <= 0 || c.Sim.BoostMS <= 0:
		return errors.Errorf("hold_delay_ms %d, tap_max_ms %d and boost_ms %d must be positive",
			c.Sim.HoldDelayMS, c.Sim.TapMaxMS, c.Sim.BoostMS)
	case c.Sim.SwipeThreshold < 0:
		return errors.Errorf("swipe_threshold %v must not be negative", c.Sim.SwipeThreshold)
	case c.Sim.DefaultZoom <= 0 || c.Sim.HoldZoom <= 0:
		return errors.New("zoom levels must be positive")
	case c.Sim.CarSpawnChance < 0 || c.Sim.CarSpawnChance > 1:
		return errors.Errorf("car_spawn_chance %v out of [0,1]", c.Sim.CarSpawnChance)
	case c.Sim.TapCarChance < 0 || c.Sim.TapCarChance > 1:
		return errors.Errorf("tap_car_chance %v out of [0,1]", c.Sim.TapCarChance)
	}
	return nil
}

// Scene converts the sim section to a hotloop.Config.
func (c *Config) Scene() hotloop.Config {
	s := c.Sim
	return hotloop.Config{
		Seed:           s.Seed,
		TPS:            s.TPS,
		RingSegments:   s.RingSegments,
		RingRadius:     s.RingRadius,
		InitialCars:    s.InitialCars,
		MaxCars:        s.MaxCars,
		CarSpawnChance: s.CarSpawnChance,
		TapCarChance:   s.TapCarChance,
		MaxParticles:   s.MaxParticles,
		DefaultZoom:    s.DefaultZoom,
		HoldZoom:       s.HoldZoom,
		HoldDelay:      time.Duration(s.HoldDelayMS) * time.Millisecond,
		TapMaxDuration: time.Duration(s.TapMaxMS) * time.Millisecond,
		SwipeThreshold: s.SwipeThreshold,
		BoostDuration:  time.Duration(s.BoostMS) * time.Millisecond,
	}
}

// Run converts the window section to a hotloop.RunConfig.
func (c *Config) Run() hotloop.RunConfig {
	return hotloop.RunConfig{
		Title:   c.Window.Title,
		Width:   c.Window.Width,
		Height:  c.Window.Height,
		ShowFPS: c.Window.ShowFPS,
		Debug:   c.Debug,
		TPS:     c.Sim.TPS,
	}
}
