// Package config loads, saves, and validates simulation configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultParticles   = 50
	DefaultBoxEdge     = 10.0
	DefaultMass        = 1.0
	DefaultDt          = 0.005
	DefaultSteps       = 5000
	DefaultKT          = 1.5
	DefaultSampleEvery = 50
	DefaultMinDist     = 1.0
	DefaultMaxAttempts = 100
	DefaultEpsilon     = 1.0
	DefaultSigma       = 1.0
	DefaultRcut        = 3.0
)

// Config describes one simulation run.
type Config struct {
	Particles int       `yaml:"particles"`
	Box       []float64 `yaml:"box"` // one edge (cube) or three
	Mass      float64   `yaml:"mass"`

	Potential PotentialConfig `yaml:"potential"`

	Dt    float64 `yaml:"dt"`
	Steps int     `yaml:"steps"`
	Seed  int64   `yaml:"seed"`

	KT         float64 `yaml:"kt"`         // target thermal energy, 0 disables the thermostat
	Thermostat bool    `yaml:"thermostat"` // rescale velocities toward KT

	SampleEvery int `yaml:"sample_every"`

	Init        string  `yaml:"init"` // "random" or "lattice"
	MinDist     float64 `yaml:"min_dist"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// PotentialConfig selects and parameterizes the pair potential.
type PotentialConfig struct {
	Epsilon float64 `yaml:"epsilon"`
	Sigma   float64 `yaml:"sigma"`
	Rcut    float64 `yaml:"rcut"`
	Shift   bool    `yaml:"shift"`
	WCA     bool    `yaml:"wca"` // overrides rcut/shift with the WCA form
}

// Default returns the configuration of a small WCA fluid equilibration,
// the classic hands-on starting point.
func Default() *Config {
	return &Config{
		Particles: DefaultParticles,
		Box:       []float64{DefaultBoxEdge},
		Mass:      DefaultMass,
		Potential: PotentialConfig{
			Epsilon: DefaultEpsilon,
			Sigma:   DefaultSigma,
			WCA:     true,
		},
		Dt:          DefaultDt,
		Steps:       DefaultSteps,
		KT:          DefaultKT,
		Thermostat:  true,
		SampleEvery: DefaultSampleEvery,
		Init:        "random",
		MinDist:     DefaultMinDist,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Load reads a config file, layering it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as yaml.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the config for values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Particles < 0 {
		return fmt.Errorf("config: particles must be nonnegative, got %d", c.Particles)
	}
	if len(c.Box) != 1 && len(c.Box) != 3 {
		return fmt.Errorf("config: box needs one or three edge lengths, got %d", len(c.Box))
	}
	for _, l := range c.Box {
		if l <= 0 {
			return fmt.Errorf("config: box edges must be positive, got %f", l)
		}
	}
	if c.Mass <= 0 {
		return fmt.Errorf("config: mass must be positive, got %f", c.Mass)
	}
	if c.Dt < 0 {
		return fmt.Errorf("config: dt must be nonnegative, got %f", c.Dt)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("config: steps must be positive, got %d", c.Steps)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("config: sample_every must be nonnegative, got %d", c.SampleEvery)
	}
	if c.Thermostat && c.KT <= 0 {
		return fmt.Errorf("config: thermostat needs a positive kt, got %f", c.KT)
	}
	if c.Init != "random" && c.Init != "lattice" {
		return fmt.Errorf("config: unknown init %q (random or lattice)", c.Init)
	}
	if !c.Potential.WCA && c.Potential.Rcut <= 0 {
		return fmt.Errorf("config: potential rcut must be positive, got %f", c.Potential.Rcut)
	}
	return nil
}

// BoxEdges expands the box spec to three edge lengths.
func (c *Config) BoxEdges() [3]float64 {
	if len(c.Box) == 1 {
		return [3]float64{c.Box[0], c.Box[0], c.Box[0]}
	}
	return [3]float64{c.Box[0], c.Box[1], c.Box[2]}
}
