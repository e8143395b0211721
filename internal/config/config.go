// Package config defines the YAML model description consumed by the
// CLI and the preset catalogue of built-in models.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps = 50
	DefaultEps   = 0.01
)

// Model kinds.
const (
	KindChain   = "chain"
	KindHMM     = "hmm"
	KindProcess = "process"
	KindSpace   = "space"
)

// Config describes one stochastic model. Which fields matter depends on
// Kind: chains and HMMs use the matrix fields, processes use the
// transition list, spaces use events.
type Config struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`

	States       []string `yaml:"states"`
	Observations []string `yaml:"observations"`

	TransitionMatrix    [][]float64 `yaml:"transition_matrix"`
	EmissionMatrix      [][]float64 `yaml:"emission_matrix"`
	InitialDistribution []float64   `yaml:"initial_distribution"`

	Transitions []Transition `yaml:"transitions"`
	Events      []Event      `yaml:"events"`

	Steps int   `yaml:"steps"`
	Seed  int64 `yaml:"seed"`
}

// Transition is one (from, to, probability) entry of a process table.
type Transition struct {
	From        string  `yaml:"from"`
	To          string  `yaml:"to"`
	Probability float64 `yaml:"probability"`
}

// Event is one registered event of a probability space.
type Event struct {
	Outcomes    []string `yaml:"outcomes"`
	Probability float64  `yaml:"probability"`
}

func DefaultConfig() *Config {
	return &Config{
		Kind:  KindChain,
		Steps: DefaultSteps,
	}
}

// Load reads a YAML model description, applying defaults for omitted
// fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks structural consistency: a known kind, states present,
// and matrix shapes matching the declared spaces. Probabilistic
// invariants (row sums) are left to the models' own verifiers.
func (c *Config) Validate() error {
	switch c.Kind {
	case KindChain, KindHMM, KindProcess, KindSpace:
	default:
		return fmt.Errorf("unknown model kind: %q", c.Kind)
	}

	if len(c.States) == 0 {
		return fmt.Errorf("model %q: no states declared", c.Name)
	}
	if c.Steps < 0 {
		return fmt.Errorf("model %q: negative steps %d", c.Name, c.Steps)
	}

	n := len(c.States)
	if c.Kind == KindChain || c.Kind == KindHMM {
		if len(c.TransitionMatrix) != 0 && len(c.TransitionMatrix) != n {
			return fmt.Errorf("model %q: transition matrix has %d rows, want %d", c.Name, len(c.TransitionMatrix), n)
		}
		for i, row := range c.TransitionMatrix {
			if len(row) != n {
				return fmt.Errorf("model %q: transition row %d has %d entries, want %d", c.Name, i, len(row), n)
			}
		}
	}
	if c.Kind == KindHMM {
		if len(c.Observations) == 0 {
			return fmt.Errorf("model %q: hmm needs an observation alphabet", c.Name)
		}
		if len(c.EmissionMatrix) != n {
			return fmt.Errorf("model %q: emission matrix has %d rows, want %d", c.Name, len(c.EmissionMatrix), n)
		}
		for i, row := range c.EmissionMatrix {
			if len(row) != len(c.Observations) {
				return fmt.Errorf("model %q: emission row %d has %d entries, want %d", c.Name, i, len(row), len(c.Observations))
			}
		}
		if len(c.InitialDistribution) != n {
			return fmt.Errorf("model %q: initial distribution has %d entries, want %d", c.Name, len(c.InitialDistribution), n)
		}
	}

	return nil
}
