package dynsys

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// weightTol is the tolerance for the sum-to-one check on sampling weights.
const weightTol = 1e-9

// Categorical draws one index from the given weights. The weights must be
// non-negative and sum to 1 within tolerance; unnormalized weights are
// rejected with ErrBadWeights rather than silently renormalized.
func Categorical(rng *rand.Rand, weights []float64) (int, error) {
	if len(weights) == 0 {
		return 0, fmt.Errorf("%w: empty weight vector", ErrShape)
	}
	for _, w := range weights {
		if w < 0 || w > 1 {
			return 0, fmt.Errorf("%w: weight %v", ErrProbRange, w)
		}
	}
	total := floats.Sum(weights)
	if math.Abs(total-1) > weightTol {
		return 0, fmt.Errorf("%w: sum %v", ErrBadWeights, total)
	}

	u := rng.Float64()
	acc := 0.0
	for i, w := range weights {
		acc += w
		if u < acc {
			return i, nil
		}
	}
	// Rounding can leave acc marginally below 1; the draw lands on the
	// last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}
	return len(weights) - 1, nil
}
