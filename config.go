package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds render defaults, overridable from a YAML file and again
// from command-line flags.
type Config struct {
	SampleRate int     `yaml:"sampleRate"`
	OutDir     string  `yaml:"outDir"`
	Seed       int64   `yaml:"seed"`
	BedSeconds float64 `yaml:"bedSeconds"` // ambience loop length
	TargetPeak float64 `yaml:"targetPeak"` // final peak trim, 0 disables
}

// DefaultConfig returns the settings used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		SampleRate: 48000,
		OutDir:     "out",
		Seed:       1,
		BedSeconds: 60,
	}
}

// LoadConfig reads path, returning DefaultConfig when the file doesn't
// exist (no error).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("config: sampleRate must be positive, got %d", c.SampleRate)
	}
	if c.BedSeconds <= 0 {
		return fmt.Errorf("config: bedSeconds must be positive, got %g", c.BedSeconds)
	}
	if c.TargetPeak < 0 || c.TargetPeak > 1 {
		return fmt.Errorf("config: targetPeak must be in [0, 1], got %g", c.TargetPeak)
	}
	return nil
}

func (c *Config) sampleRateF() float64 {
	return float64(c.SampleRate)
}
