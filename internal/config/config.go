package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/quasar/internal/quasar"
)

const (
	DefaultCount   = 100000
	DefaultSeed    = 1
	DefaultSteps   = 600
	DefaultBackend = "auto"
	DefaultWidth   = 800
	DefaultHeight  = 600
)

type Config struct {
	Count       int            `yaml:"count"`
	Seed        int64          `yaml:"seed"`
	Center      PointConfig    `yaml:"center"`
	Jitter      int            `yaml:"jitter"`
	Spin        float32        `yaml:"spin"`
	Dt          float32        `yaml:"dt"`
	G           float32        `yaml:"g"`
	Mass        float32        `yaml:"mass"`
	SofteningR2 float32        `yaml:"softening_r2"`
	HotSpeed    float32        `yaml:"hot_speed"`
	Steps       int            `yaml:"steps"`
	SampleEvery int            `yaml:"sample_every"`
	Backend     string         `yaml:"backend"`
	Workers     int            `yaml:"workers"`
	View        ViewportConfig `yaml:"view"`
}

type PointConfig struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// ViewportConfig is the world-space rectangle renderers map to the screen.
type ViewportConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Count:       DefaultCount,
		Seed:        DefaultSeed,
		Center:      PointConfig{X: quasar.DefaultCenterX, Y: quasar.DefaultCenterY},
		Jitter:      quasar.DefaultJitter,
		Spin:        quasar.DefaultSpin,
		Dt:          quasar.DefaultDt,
		G:           quasar.DefaultG,
		Mass:        quasar.DefaultMass,
		SofteningR2: quasar.DefaultSofteningR2,
		HotSpeed:    quasar.DefaultHotSpeed,
		Steps:       DefaultSteps,
		Backend:     DefaultBackend,
		View:        ViewportConfig{Width: DefaultWidth, Height: DefaultHeight},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadOnto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOnto reads path over base, so keys missing from the file keep the
// values already in base.
func LoadOnto(path string, base *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, base); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) InitParams() quasar.InitParams {
	return quasar.InitParams{
		Count:  c.Count,
		Center: quasar.Vec2{X: c.Center.X, Y: c.Center.Y},
		Jitter: c.Jitter,
		Spin:   c.Spin,
	}
}

func (c *Config) StepParams() quasar.StepParams {
	return quasar.StepParams{
		Dt: c.Dt,
		Attractor: quasar.Attractor{
			Center: quasar.Vec2{X: c.Center.X, Y: c.Center.Y},
			Mass:   c.Mass,
			G:      c.G,
		},
		SofteningR2: c.SofteningR2,
		HotSpeed:    c.HotSpeed,
	}
}

// Validate reports the first non-physical value. Errors wrap
// quasar.ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.InitParams().Validate(); err != nil {
		return err
	}
	if err := c.StepParams().Validate(); err != nil {
		return err
	}
	if c.Steps < 0 {
		return &quasar.ConfigError{Field: "steps", Value: float64(c.Steps), Reason: "must not be negative"}
	}
	if c.Workers < 0 {
		return &quasar.ConfigError{Field: "workers", Value: float64(c.Workers), Reason: "must not be negative"}
	}
	if c.View.Width <= 0 || c.View.Height <= 0 {
		return &quasar.ConfigError{Field: "view", Value: float64(c.View.Width), Reason: "must have positive width and height"}
	}
	return nil
}
