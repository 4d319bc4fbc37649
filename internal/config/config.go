package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/golife/internal/life"
)

const (
	DefaultWidth       = 50
	DefaultHeight      = 25
	DefaultDelay       = 0.1
	DefaultDisplay     = "console"
	DefaultProbability = 0.3
)

// Config describes one simulation setup. Zero Generations means an
// unbounded run.
type Config struct {
	Width       int     `yaml:"width"`
	Height      int     `yaml:"height"`
	Delay       float64 `yaml:"delay"`
	Display     string  `yaml:"display"`
	Pattern     string  `yaml:"pattern"`
	Random      bool    `yaml:"random"`
	Probability float64 `yaml:"probability"`
	Generations int     `yaml:"generations"`
	Seed        int64   `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Delay:       DefaultDelay,
		Display:     DefaultDisplay,
		Probability: DefaultProbability,
	}
}

// Validate enforces the argument contract: positive dimensions,
// non-negative delay, probability in [0, 1].
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: got %dx%d", life.ErrInvalidDimensions, c.Width, c.Height)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must be non-negative, got %f", c.Delay)
	}
	if c.Probability < 0 || c.Probability > 1 {
		return fmt.Errorf("%w: got %f", life.ErrInvalidProbability, c.Probability)
	}
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
