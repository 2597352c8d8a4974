package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the terminal runner
type Config struct {
	Width               int           `json:"width"`
	Height              int           `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	Workers             int           `json:"workers"` // 0 steps sequentially, <0 uses one worker per CPU
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	InjectionCount      int           `json:"injection_count"`
	Seed                int64         `json:"seed"` // 0 seeds from the clock
	Pattern             string        `json:"pattern"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               60,
		Height:              30,
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		Workers:             0,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		Pattern:             "glider",
	}
}

// LoadConfig loads configuration from JSON file on top of DefaultConfig
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Validate reports the first setting the runner cannot work with. knownPattern
// decides whether Pattern names a seed shape; an empty Pattern is always valid.
func (c Config) Validate(knownPattern func(string) bool) error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("[Validate] grid dimensions must be positive, got %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Errorf("[Validate] frame_rate must not be negative, got %v", c.FrameRate)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random_density must be within [0, 1], got %v", c.RandomDensity)
	case c.InjectionCount < 0:
		return errors.Errorf("[Validate] injection_count must not be negative, got %d", c.InjectionCount)
	case c.Pattern != "" && knownPattern != nil && !knownPattern(c.Pattern):
		return errors.Errorf("[Validate] unknown pattern: %q", c.Pattern)
	}
	return nil
}
