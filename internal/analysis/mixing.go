package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/stochsim/internal/dynsys"
	"github.com/san-kum/stochsim/internal/markov"
)

// MixingTime estimates how many steps the chain needs before the
// distribution of its state, started deterministically at start, is
// within eps total-variation distance of the stationary distribution.
//
// The point-mass row vector is propagated through the transition matrix
// one step at a time. Returns maxSteps and no error when the threshold
// is not reached within the budget; the caller decides whether that is a
// failure.
func MixingTime(chain *markov.Chain, start string, eps float64, maxSteps int) (int, error) {
	pi, err := chain.StationaryDistribution()
	if err != nil {
		return 0, err
	}

	states := chain.States()
	startIdx := -1
	for i, s := range states {
		if s == start {
			startIdx = i
			break
		}
	}
	if startIdx < 0 {
		return 0, fmt.Errorf("%w: state %q", dynsys.ErrDomain, start)
	}

	trans := chain.TransitionMatrix()
	n := len(states)

	dist := mat.NewVecDense(n, nil)
	dist.SetVec(startIdx, 1)

	next := mat.NewVecDense(n, nil)
	for step := 0; step <= maxSteps; step++ {
		if TotalVariation(dist.RawVector().Data, pi) <= eps {
			return step, nil
		}
		// row vector update dist*P, computed as P^T applied to the column
		next.MulVec(trans.T(), dist)
		dist.CopyVec(next)
	}

	return maxSteps, nil
}

// ConvergenceRate returns the mean absolute successive difference of an
// iterate value sequence. Values under ~1e-6 indicate convergence.
func ConvergenceRate(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(values); i++ {
		d := values[i] - values[i-1]
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum / float64(len(values)-1)
}
