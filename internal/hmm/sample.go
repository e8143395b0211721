package hmm

import (
	"fmt"

	"github.com/san-kum/stochsim/internal/dynsys"
)

// Sample draws an observation sequence of exactly the requested length:
// a hidden path starting from a categorical draw over the initial
// distribution and continuing via transition rows, emitting one symbol
// per hidden state from its emission row. Each call is an independent
// draw from the model's rng.
//
// The rows actually reached must sum to 1; a non-stochastic row
// surfaces as ErrBadWeights rather than a silent renormalization.
func (m *Model) Sample(length int) ([]string, error) {
	if length < 0 {
		return nil, fmt.Errorf("%w: negative length %d", dynsys.ErrShape, length)
	}
	if length == 0 {
		return []string{}, nil
	}

	hidden := make([]int, length)
	current, err := dynsys.Categorical(m.rng, m.initial)
	if err != nil {
		return nil, fmt.Errorf("initial distribution: %w", err)
	}
	hidden[0] = current

	for t := 1; t < length; t++ {
		current, err = dynsys.Categorical(m.rng, m.trans[current])
		if err != nil {
			return nil, fmt.Errorf("transition row %q: %w", m.states[hidden[t-1]], err)
		}
		hidden[t] = current
	}

	observations := make([]string, length)
	for t, i := range hidden {
		j, err := dynsys.Categorical(m.rng, m.emit[i])
		if err != nil {
			return nil, fmt.Errorf("emission row %q: %w", m.states[i], err)
		}
		observations[t] = m.symbols[j]
	}

	return observations, nil
}
