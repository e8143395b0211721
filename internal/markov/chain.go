// Package markov implements a finite Markov chain with stationary
// distribution analysis via eigen-decomposition.
package markov

import (
	"errors"
	"fmt"
	"math/cmplx"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/stochsim/internal/dynsys"
)

// ErrNoStationary indicates the transition matrix has no eigenvalue
// within tolerance of 1, so no stationary distribution can be reported.
var ErrNoStationary = errors.New("markov: no eigenvalue within tolerance of 1")

// eigTol is the tolerance for matching the unit eigenvalue.
const eigTol = 1e-10

// Chain is a square transition-matrix model over an ordered state set.
// Row-stochasticity is the caller's responsibility: setters validate
// membership and range but never row sums.
type Chain struct {
	dynsys.History
	name       string
	states     []string
	index      map[string]int
	trans      *mat.Dense
	stationary []float64
	state      dynsys.State
}

// New builds a chain over the given ordered states with a zero
// transition matrix. Duplicate states collapse, keeping first position.
func New(name string, states []string) *Chain {
	index := make(map[string]int, len(states))
	ordered := make([]string, 0, len(states))
	for _, s := range states {
		if _, dup := index[s]; dup {
			continue
		}
		index[s] = len(ordered)
		ordered = append(ordered, s)
	}
	// gonum rejects zero-sized matrices, so the empty chain carries a nil
	// matrix and fails at query time instead of construction.
	var trans *mat.Dense
	if n := len(ordered); n > 0 {
		trans = mat.NewDense(n, n, nil)
	}
	return &Chain{
		name:   name,
		states: ordered,
		index:  index,
		trans:  trans,
		state:  make(dynsys.State),
	}
}

func (c *Chain) Name() string { return c.name }

// States returns the ordered state labels.
func (c *Chain) States() []string {
	out := make([]string, len(c.states))
	copy(out, c.states)
	return out
}

// SetTransitionProbability writes P(from, to), validating before the
// write so a failed call leaves the matrix untouched.
func (c *Chain) SetTransitionProbability(from, to string, probability float64) error {
	i, ok := c.index[from]
	if !ok {
		return fmt.Errorf("%w: state %q", dynsys.ErrDomain, from)
	}
	j, ok := c.index[to]
	if !ok {
		return fmt.Errorf("%w: state %q", dynsys.ErrDomain, to)
	}
	if probability < 0 || probability > 1 {
		return fmt.Errorf("%w: %v", dynsys.ErrProbRange, probability)
	}
	c.trans.Set(i, j, probability)
	return nil
}

// TransitionMatrix returns a copy of the transition matrix, or nil for
// an empty chain.
func (c *Chain) TransitionMatrix() *mat.Dense {
	if c.trans == nil {
		return nil
	}
	return mat.DenseCopyOf(c.trans)
}

// StationaryDistribution solves pi*P = pi: it eigen-decomposes the
// transpose of the transition matrix, selects the eigenvalue closest to
// 1 within tolerance, and returns the real part of its eigenvector
// normalized to sum 1. Repeated calls without mutation return the same
// vector.
func (c *Chain) StationaryDistribution() ([]float64, error) {
	n := len(c.states)
	if n == 0 {
		return nil, fmt.Errorf("%w: empty chain", ErrNoStationary)
	}

	var eig mat.Eigen
	if ok := eig.Factorize(c.trans.T(), mat.EigenRight); !ok {
		return nil, fmt.Errorf("%w: eigendecomposition failed", ErrNoStationary)
	}

	values := eig.Values(nil)
	pick := -1
	best := eigTol
	for i, v := range values {
		if d := cmplx.Abs(v - 1); d < best {
			best = d
			pick = i
		}
	}
	if pick < 0 {
		return nil, ErrNoStationary
	}

	var vectors mat.CDense
	eig.VectorsTo(&vectors)

	pi := make([]float64, n)
	for i := 0; i < n; i++ {
		pi[i] = real(vectors.At(i, pick))
	}
	total := floats.Sum(pi)
	if total == 0 {
		return nil, fmt.Errorf("%w: degenerate eigenvector", ErrNoStationary)
	}
	floats.Scale(1/total, pi)
	return pi, nil
}

// Step draws the successor of current from its transition row. The row
// must sum to 1 or the draw fails with ErrBadWeights.
func (c *Chain) Step(rng *rand.Rand, current string) (string, error) {
	i, ok := c.index[current]
	if !ok {
		return "", fmt.Errorf("%w: state %q", dynsys.ErrDomain, current)
	}
	row := mat.Row(nil, i, c.trans)
	j, err := dynsys.Categorical(rng, row)
	if err != nil {
		return "", fmt.Errorf("state %q: %w", current, err)
	}
	return c.states[j], nil
}

// Iterate recomputes the stationary distribution, stores it, and
// snapshots.
func (c *Chain) Iterate() error {
	pi, err := c.StationaryDistribution()
	if err != nil {
		return err
	}
	c.stationary = pi
	c.state["stationary_distribution"] = pi
	c.SaveState(c.state)
	return nil
}

func (c *Chain) Summary() map[string]any {
	n := len(c.states)
	matrix := make([][]float64, n)
	for i := 0; i < n; i++ {
		matrix[i] = mat.Row(nil, i, c.trans)
	}

	var stationary []float64
	if c.stationary != nil {
		stationary = make([]float64, len(c.stationary))
		copy(stationary, c.stationary)
	}

	return map[string]any{
		"states":                  c.States(),
		"transition_matrix":       matrix,
		"stationary_distribution": stationary,
		"history_length":          c.HistoryLen(),
	}
}
