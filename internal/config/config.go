package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/gni/integrator"
)

const (
	DefaultModel    = "oscillator"
	DefaultMethod   = "verlet"
	DefaultDt       = 0.01
	DefaultDuration = 10.0
	DefaultSample   = 1
	DefaultSize     = 3
)

// ErrInvalidConfig indicates a configuration that cannot describe a run.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config describes one run: a model, the method integrating it and the
// time grid. A non-empty Recipe takes precedence over Method.
type Config struct {
	Model     string             `yaml:"model"`
	Method    string             `yaml:"method,omitempty"`
	Recipe    []TermConfig       `yaml:"recipe,omitempty"`
	Dt        float64            `yaml:"dt"`
	Duration  float64            `yaml:"duration"`
	Sample    int                `yaml:"sample,omitempty"`
	Size      int                `yaml:"size,omitempty"`
	InitState []float64          `yaml:"init_state,omitempty"`
	Params    map[string]float64 `yaml:"params,omitempty"`
}

// TermConfig is one (method, coefficient) pair of a composition recipe.
// An omitted coefficient means 1.
type TermConfig struct {
	Method string   `yaml:"method"`
	Coeff  *float64 `yaml:"coeff,omitempty"`
}

func (t TermConfig) Coefficient() float64 {
	if t.Coeff == nil {
		return 1.0
	}
	return *t.Coeff
}

func DefaultConfig() *Config {
	return &Config{
		Model:    DefaultModel,
		Method:   DefaultMethod,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Sample:   DefaultSample,
		Size:     DefaultSize,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
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

// Validate checks everything that can be checked without the registry,
// including that the time grid yields a valid step count.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("%w: model is required", ErrInvalidConfig)
	}
	if c.Method == "" && len(c.Recipe) == 0 {
		return fmt.Errorf("%w: method or recipe is required", ErrInvalidConfig)
	}
	for i, t := range c.Recipe {
		if t.Method == "" {
			return fmt.Errorf("%w: recipe term %d has no method", ErrInvalidConfig, i)
		}
		if coeff := t.Coefficient(); math.IsNaN(coeff) || math.IsInf(coeff, 0) {
			return fmt.Errorf("%w: recipe term %d has coefficient %v", ErrInvalidConfig, i, coeff)
		}
	}
	if _, err := integrator.StepCount(c.Duration, c.Dt); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Sample < 1 {
		return fmt.Errorf("%w: sample must be at least 1, got %d", ErrInvalidConfig, c.Sample)
	}
	if c.Size < 0 {
		return fmt.Errorf("%w: size must not be negative, got %d", ErrInvalidConfig, c.Size)
	}
	return nil
}

// MethodLabel names the configured method for display and storage.
func (c *Config) MethodLabel() string {
	if len(c.Recipe) == 0 {
		return c.Method
	}
	return "recipe"
}
