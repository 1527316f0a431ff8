// Package config holds the YAML configuration of the difffilter command.
//
// A configuration file looks like
//
//	filters:
//	  - order: 2
//	    time_constant: 0.1
//	    step: 0.01
//	    convention: direct
//	workers: 4
//	simulation:
//	  samples: 500
//	  input: step
//	  amplitude: 1
//	plot:
//	  path: response.png
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/hammal/difffilter/batch"
	"github.com/hammal/difffilter/signal"
	"github.com/hammal/difffilter/ssm"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation and decoding error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// MaxOrder bounds the filter order. Realizations grow quadratically with the
// order and discretization already overflows well below it.
const MaxOrder = 64

// Filter describes one differentiator design.
type Filter struct {
	Order        uint    `yaml:"order"`
	TimeConstant float64 `yaml:"time_constant"`
	Step         float64 `yaml:"step"`
	Convention   string  `yaml:"convention"`
}

// Simulation configures the optional simulation of the designed filters.
// Samples == 0 disables it.
type Simulation struct {
	Samples   int     `yaml:"samples"`
	Input     string  `yaml:"input"`
	Amplitude float64 `yaml:"amplitude"`
	Frequency float64 `yaml:"frequency"`
}

// Plot configures the optional response plot. An empty path disables it.
type Plot struct {
	Path     string  `yaml:"path"`
	WidthCM  float64 `yaml:"width_cm"`
	HeightCM float64 `yaml:"height_cm"`
}

// Config is the top level configuration.
type Config struct {
	Filters    []Filter   `yaml:"filters"`
	Workers    int        `yaml:"workers"`
	Simulation Simulation `yaml:"simulation"`
	Plot       Plot       `yaml:"plot"`
}

// Default returns the configuration of the reference design: a second order
// differentiator with tau = 0.1 sampled at 100 Hz.
func Default() *Config {
	return &Config{
		Filters: []Filter{{Order: 2, TimeConstant: 0.1, Step: 0.01, Convention: ssm.DirectFeedback.String()}},
		Simulation: Simulation{
			Input:     "step",
			Amplitude: 1,
		},
		Plot: Plot{
			WidthCM:  16,
			HeightCM: 10,
		},
	}
}

// Load reads the YAML file at path on top of Default and validates the
// result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document on top of Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	// An empty document keeps the defaults
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field of the configuration.
func (cfg *Config) Validate() error {
	var errs []error
	if len(cfg.Filters) == 0 {
		errs = append(errs, errors.New("no filters"))
	}
	for index, f := range cfg.Filters {
		if f.Order > MaxOrder {
			errs = append(errs, fmt.Errorf("filters[%d]: order must be at most %d, got %d", index, MaxOrder, f.Order))
		}
		if !positive(f.TimeConstant) {
			errs = append(errs, fmt.Errorf("filters[%d]: time_constant must be positive, got %v", index, f.TimeConstant))
		}
		if !positive(f.Step) {
			errs = append(errs, fmt.Errorf("filters[%d]: step must be positive, got %v", index, f.Step))
		}
		if _, err := ssm.ParseConvention(f.Convention); err != nil {
			errs = append(errs, fmt.Errorf("filters[%d]: %w", index, err))
		}
	}
	if cfg.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", cfg.Workers))
	}
	if cfg.Simulation.Samples < 0 {
		errs = append(errs, fmt.Errorf("simulation: samples must not be negative, got %d", cfg.Simulation.Samples))
	}
	if cfg.Simulation.Samples > 0 {
		if _, err := cfg.Signal(); err != nil {
			errs = append(errs, fmt.Errorf("simulation: %w", err))
		}
	}
	if cfg.Plot.Path != "" {
		if cfg.Simulation.Samples == 0 {
			errs = append(errs, errors.New("plot: needs simulation samples"))
		}
		if !positive(cfg.Plot.WidthCM) || !positive(cfg.Plot.HeightCM) {
			errs = append(errs, fmt.Errorf("plot: size must be positive, got %vx%v", cfg.Plot.WidthCM, cfg.Plot.HeightCM))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Jobs converts the filters into batch jobs. The configuration must be valid.
func (cfg *Config) Jobs() []batch.Job {
	jobs := make([]batch.Job, len(cfg.Filters))
	for index, f := range cfg.Filters {
		convention, _ := ssm.ParseConvention(f.Convention)
		jobs[index] = batch.Job{
			Order:        f.Order,
			TimeConstant: f.TimeConstant,
			Step:         f.Step,
			Convention:   convention,
		}
	}
	return jobs
}

// Signal returns the simulation input.
func (cfg *Config) Signal() (signal.Signal, error) {
	return signal.Parse(cfg.Simulation.Input, cfg.Simulation.Amplitude, cfg.Simulation.Frequency)
}

func positive(x float64) bool {
	return x > 0 && !math.IsInf(x, 1)
}
