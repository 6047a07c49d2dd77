// Package config loads the sfgeom settings file.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/chazu/sfgeom/pkg/algorithm"
	"github.com/chazu/sfgeom/pkg/engine"
)

// Config is the root of the settings file.
type Config struct {
	Tolerance Tolerance `yaml:"tolerance"`
	Log       Log       `yaml:"log"`
	Engine    Engine    `yaml:"engine"`
	Export    Export    `yaml:"export"`
}

// Tolerance mirrors algorithm.Tolerance.
type Tolerance struct {
	Absolute float64 `yaml:"absolute"`
	Relative float64 `yaml:"relative"`
}

// Log selects the logger.
type Log struct {
	// Level is a zap level name: debug, info, warn, error.
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Engine configures script evaluation.
type Engine struct {
	Timeout time.Duration `yaml:"timeout"`
}

// Export configures file output.
type Export struct {
	// Decimals is the WKT precision; negative writes exact rationals.
	Decimals int `yaml:"decimals"`
}

// Default returns the built-in settings.
func Default() Config {
	t := algorithm.DefaultTolerance()
	return Config{
		Tolerance: Tolerance{Absolute: t.Absolute, Relative: t.Relative},
		Log:       Log{Level: "info"},
		Engine:    Engine{Timeout: engine.EvalTimeout},
		Export:    Export{Decimals: -1},
	}
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Tolerance.Absolute < 0 || c.Tolerance.Relative < 0 {
		return errors.Errorf("config: negative tolerance %+v", c.Tolerance)
	}
	if c.Engine.Timeout <= 0 {
		return errors.Errorf("config: engine timeout must be positive, got %s", c.Engine.Timeout)
	}
	return nil
}

// AlgorithmTolerance converts the tolerance section.
func (c Config) AlgorithmTolerance() algorithm.Tolerance {
	return algorithm.Tolerance{Absolute: c.Tolerance.Absolute, Relative: c.Tolerance.Relative}
}
