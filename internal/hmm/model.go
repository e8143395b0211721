// Package hmm implements a hidden Markov model with exact inference
// (forward, backward, Viterbi) and sequence sampling.
//
// Parameters are immutable once constructed. Construction checks shapes
// only; row-stochasticity is a separate, opt-in contract checked by the
// Verify predicates. All inference operations are pure functions of the
// parameters and an observation sequence, so a constructed model is safe
// for concurrent queries.
package hmm

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/stochsim/internal/dynsys"
)

// verifyTol is the tolerance for the row-sum checks in the Verify
// predicates.
const verifyTol = 1e-8

// Model holds HMM parameters: hidden states, observable symbols, a
// |states|×|states| transition matrix, a |states|×|symbols| emission
// matrix, and an initial distribution over states.
type Model struct {
	dynsys.History
	name        string
	states      []string
	symbols     []string
	stateIndex  map[string]int
	symbolIndex map[string]int
	trans       [][]float64
	emit        [][]float64
	initial     []float64
	rng         *rand.Rand
	state       dynsys.State
}

// New validates shapes and builds a model. The matrices are copied, so
// the caller's slices stay independent. The rng drives Sample draws.
func New(name string, states, symbols []string, trans, emit [][]float64, initial []float64, rng *rand.Rand) (*Model, error) {
	n, m := len(states), len(symbols)
	if n == 0 {
		return nil, fmt.Errorf("%w: no hidden states", dynsys.ErrShape)
	}
	if m == 0 {
		return nil, fmt.Errorf("%w: no observation symbols", dynsys.ErrShape)
	}
	if len(trans) != n {
		return nil, fmt.Errorf("%w: transition matrix has %d rows, want %d", dynsys.ErrShape, len(trans), n)
	}
	if len(emit) != n {
		return nil, fmt.Errorf("%w: emission matrix has %d rows, want %d", dynsys.ErrShape, len(emit), n)
	}
	if len(initial) != n {
		return nil, fmt.Errorf("%w: initial distribution has %d entries, want %d", dynsys.ErrShape, len(initial), n)
	}

	stateIndex := make(map[string]int, n)
	for i, s := range states {
		if _, dup := stateIndex[s]; dup {
			return nil, fmt.Errorf("%w: duplicate state %q", dynsys.ErrShape, s)
		}
		stateIndex[s] = i
	}
	symbolIndex := make(map[string]int, m)
	for j, o := range symbols {
		if _, dup := symbolIndex[o]; dup {
			return nil, fmt.Errorf("%w: duplicate symbol %q", dynsys.ErrShape, o)
		}
		symbolIndex[o] = j
	}

	transCopy := make([][]float64, n)
	for i, row := range trans {
		if len(row) != n {
			return nil, fmt.Errorf("%w: transition row %d has %d entries, want %d", dynsys.ErrShape, i, len(row), n)
		}
		transCopy[i] = append([]float64(nil), row...)
	}
	emitCopy := make([][]float64, n)
	for i, row := range emit {
		if len(row) != m {
			return nil, fmt.Errorf("%w: emission row %d has %d entries, want %d", dynsys.ErrShape, i, len(row), m)
		}
		emitCopy[i] = append([]float64(nil), row...)
	}

	return &Model{
		name:        name,
		states:      append([]string(nil), states...),
		symbols:     append([]string(nil), symbols...),
		stateIndex:  stateIndex,
		symbolIndex: symbolIndex,
		trans:       transCopy,
		emit:        emitCopy,
		initial:     append([]float64(nil), initial...),
		rng:         rng,
		state:       make(dynsys.State),
	}, nil
}

func (m *Model) Name() string { return m.name }

// States returns the ordered hidden-state labels.
func (m *Model) States() []string { return append([]string(nil), m.states...) }

// Symbols returns the ordered observation alphabet.
func (m *Model) Symbols() []string { return append([]string(nil), m.symbols...) }

// VerifyTransitionMatrix reports whether every transition row sums to 1
// within tolerance.
func (m *Model) VerifyTransitionMatrix() bool {
	return rowsStochastic(m.trans)
}

// VerifyEmissionMatrix reports whether every emission row sums to 1
// within tolerance.
func (m *Model) VerifyEmissionMatrix() bool {
	return rowsStochastic(m.emit)
}

// VerifyInitialDistribution reports whether the initial distribution
// sums to 1 within tolerance.
func (m *Model) VerifyInitialDistribution() bool {
	return math.Abs(floats.Sum(m.initial)-1) <= verifyTol
}

func rowsStochastic(rows [][]float64) bool {
	for _, row := range rows {
		if math.Abs(floats.Sum(row)-1) > verifyTol {
			return false
		}
	}
	return true
}

// indexObservations maps symbols to alphabet indices, rejecting unknown
// symbols and empty sequences.
func (m *Model) indexObservations(observations []string) ([]int, error) {
	if len(observations) == 0 {
		return nil, fmt.Errorf("%w: empty observation sequence", dynsys.ErrShape)
	}
	idx := make([]int, len(observations))
	for t, o := range observations {
		j, ok := m.symbolIndex[o]
		if !ok {
			return nil, fmt.Errorf("%w: observation %q", dynsys.ErrDomain, o)
		}
		idx[t] = j
	}
	return idx, nil
}

// Iterate snapshots the current state. The parameters have no autonomous
// dynamics; inference never mutates them.
func (m *Model) Iterate() error {
	m.SaveState(m.state)
	return nil
}

func (m *Model) Summary() map[string]any {
	trans := make([][]float64, len(m.trans))
	for i, row := range m.trans {
		trans[i] = append([]float64(nil), row...)
	}
	emit := make([][]float64, len(m.emit))
	for i, row := range m.emit {
		emit[i] = append([]float64(nil), row...)
	}

	return map[string]any{
		"hidden_states":        m.States(),
		"observations":         m.Symbols(),
		"transition_matrix":    trans,
		"emission_matrix":      emit,
		"initial_distribution": append([]float64(nil), m.initial...),
		"history_length":       m.HistoryLen(),
	}
}
