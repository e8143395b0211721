// Package experiment builds runnable systems from model descriptions.
package experiment

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/stochsim/internal/config"
	"github.com/san-kum/stochsim/internal/dynsys"
	"github.com/san-kum/stochsim/internal/hmm"
	"github.com/san-kum/stochsim/internal/markov"
	"github.com/san-kum/stochsim/internal/prob"
	"github.com/san-kum/stochsim/internal/stochastic"
)

// Builder constructs one model kind from its config.
type Builder func(cfg *config.Config, rng *rand.Rand) (dynsys.System, error)

// Registry maps model kinds to builders.
type Registry struct {
	builders map[string]Builder
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]Builder)}

	r.builders[config.KindChain] = buildChain
	r.builders[config.KindHMM] = buildHMM
	r.builders[config.KindProcess] = buildProcess
	r.builders[config.KindSpace] = buildSpace

	return r
}

// Build constructs a system of the config's kind.
func (r *Registry) Build(cfg *config.Config, rng *rand.Rand) (dynsys.System, error) {
	builder, ok := r.builders[cfg.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown model kind: %s", cfg.Kind)
	}
	return builder(cfg, rng)
}

// BuildChain is the typed variant for callers that need chain-specific
// operations such as StationaryDistribution.
func BuildChain(cfg *config.Config) (*markov.Chain, error) {
	if cfg.Kind != config.KindChain {
		return nil, fmt.Errorf("model %q is a %s, not a chain", cfg.Name, cfg.Kind)
	}
	chain := markov.New(cfg.Name, cfg.States)
	for i, row := range cfg.TransitionMatrix {
		for j, p := range row {
			if err := chain.SetTransitionProbability(cfg.States[i], cfg.States[j], p); err != nil {
				return nil, err
			}
		}
	}
	return chain, nil
}

// BuildHMM is the typed variant for inference and sampling calls.
func BuildHMM(cfg *config.Config, rng *rand.Rand) (*hmm.Model, error) {
	if cfg.Kind != config.KindHMM {
		return nil, fmt.Errorf("model %q is a %s, not an hmm", cfg.Name, cfg.Kind)
	}
	return hmm.New(cfg.Name, cfg.States, cfg.Observations,
		cfg.TransitionMatrix, cfg.EmissionMatrix, cfg.InitialDistribution, rng)
}

// BuildProcess is the typed variant for trajectory simulation calls.
func BuildProcess(cfg *config.Config, rng *rand.Rand) (*stochastic.Process, error) {
	if cfg.Kind != config.KindProcess {
		return nil, fmt.Errorf("model %q is a %s, not a process", cfg.Name, cfg.Kind)
	}
	process, err := stochastic.New(cfg.Name, cfg.States, cfg.Steps, rng)
	if err != nil {
		return nil, err
	}
	for _, tr := range cfg.Transitions {
		if err := process.SetTransitionProbability(tr.From, tr.To, tr.Probability); err != nil {
			return nil, err
		}
	}
	return process, nil
}

// BuildSpace is the typed variant for probability queries.
func BuildSpace(cfg *config.Config) (*prob.Space, error) {
	if cfg.Kind != config.KindSpace {
		return nil, fmt.Errorf("model %q is a %s, not a space", cfg.Name, cfg.Kind)
	}
	space := prob.New(cfg.Name, cfg.States)
	for _, ev := range cfg.Events {
		if err := space.AddEvent(ev.Outcomes, ev.Probability); err != nil {
			return nil, err
		}
	}
	return space, nil
}

func buildChain(cfg *config.Config, _ *rand.Rand) (dynsys.System, error) {
	return BuildChain(cfg)
}

func buildHMM(cfg *config.Config, rng *rand.Rand) (dynsys.System, error) {
	return BuildHMM(cfg, rng)
}

func buildProcess(cfg *config.Config, rng *rand.Rand) (dynsys.System, error) {
	return BuildProcess(cfg, rng)
}

func buildSpace(cfg *config.Config, _ *rand.Rand) (dynsys.System, error) {
	return BuildSpace(cfg)
}
