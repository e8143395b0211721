// Package stochastic implements a discrete-time stochastic process
// driven by a named transition table.
package stochastic

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/stochsim/internal/dynsys"
)

// Process simulates a time-indexed state sequence. Transitions are
// registered per (from, to) pair; simulation draws the next state
// categorically from the registered outgoing weights of the current
// state.
type Process struct {
	dynsys.History
	name        string
	space       map[string]struct{}
	order       []string
	timeSteps   int
	transitions map[string]map[string]float64
	targets     map[string][]string
	trajectory  []string
	rng         *rand.Rand
	state       dynsys.State
}

// New builds a process over the given state space with the given
// simulation horizon. The rng drives all trajectory draws.
func New(name string, stateSpace []string, timeSteps int, rng *rand.Rand) (*Process, error) {
	if timeSteps < 0 {
		return nil, fmt.Errorf("%w: negative horizon %d", dynsys.ErrShape, timeSteps)
	}
	space := make(map[string]struct{}, len(stateSpace))
	order := make([]string, 0, len(stateSpace))
	for _, s := range stateSpace {
		if _, dup := space[s]; dup {
			continue
		}
		space[s] = struct{}{}
		order = append(order, s)
	}
	return &Process{
		name:        name,
		space:       space,
		order:       order,
		timeSteps:   timeSteps,
		transitions: make(map[string]map[string]float64),
		targets:     make(map[string][]string),
		rng:         rng,
		state:       make(dynsys.State),
	}, nil
}

func (p *Process) Name() string { return p.name }

// SetTransitionProbability registers the probability of moving from one
// state to another, overwriting any prior value for the pair. Validation
// happens before any write.
func (p *Process) SetTransitionProbability(from, to string, probability float64) error {
	if _, ok := p.space[from]; !ok {
		return fmt.Errorf("%w: state %q", dynsys.ErrDomain, from)
	}
	if _, ok := p.space[to]; !ok {
		return fmt.Errorf("%w: state %q", dynsys.ErrDomain, to)
	}
	if probability < 0 || probability > 1 {
		return fmt.Errorf("%w: %v", dynsys.ErrProbRange, probability)
	}

	row, ok := p.transitions[from]
	if !ok {
		row = make(map[string]float64)
		p.transitions[from] = row
	}
	if _, seen := row[to]; !seen {
		p.targets[from] = append(p.targets[from], to)
	}
	row[to] = probability
	return nil
}

// SimulateTrajectory produces a state sequence of at most steps+1 states
// starting at initial. Simulation stops early when the current state has
// no registered outgoing transitions. Each step is a single categorical
// draw over the registered outgoing weights; the weights must sum to 1
// or the draw fails with ErrBadWeights.
func (p *Process) SimulateTrajectory(initial string, steps int) ([]string, error) {
	if _, ok := p.space[initial]; !ok {
		return nil, fmt.Errorf("%w: initial state %q", dynsys.ErrDomain, initial)
	}

	trajectory := make([]string, 1, steps+1)
	trajectory[0] = initial
	current := initial

	for i := 0; i < steps; i++ {
		targets, ok := p.targets[current]
		if !ok || len(targets) == 0 {
			break
		}
		weights := make([]float64, len(targets))
		for j, to := range targets {
			weights[j] = p.transitions[current][to]
		}
		idx, err := dynsys.Categorical(p.rng, weights)
		if err != nil {
			return nil, fmt.Errorf("state %q: %w", current, err)
		}
		current = targets[idx]
		trajectory = append(trajectory, current)
	}

	return trajectory, nil
}

// Trajectory returns a copy of the most recently simulated trajectory.
func (p *Process) Trajectory() []string {
	out := make([]string, len(p.trajectory))
	copy(out, p.trajectory)
	return out
}

// Iterate simulates the configured horizon on first call, seeding from
// the first declared member of the state space. Subsequent calls only
// snapshot; they deliberately do not re-simulate.
func (p *Process) Iterate() error {
	if len(p.trajectory) == 0 && len(p.order) > 0 {
		trajectory, err := p.SimulateTrajectory(p.order[0], p.timeSteps)
		if err != nil {
			return err
		}
		p.trajectory = trajectory
		p.state["trajectory"] = trajectory
	}
	p.SaveState(p.state)
	return nil
}

func (p *Process) Summary() map[string]any {
	space := make([]string, len(p.order))
	copy(space, p.order)
	sort.Strings(space)

	table := make(map[string]map[string]float64, len(p.transitions))
	for from, row := range p.transitions {
		cp := make(map[string]float64, len(row))
		for to, prob := range row {
			cp[to] = prob
		}
		table[from] = cp
	}

	return map[string]any{
		"time_steps":               p.timeSteps,
		"state_space":              space,
		"transition_probabilities": table,
		"trajectory":               p.Trajectory(),
		"history_length":           p.HistoryLen(),
	}
}
