package hmm

import "math"

// Viterbi decodes the single most probable hidden-state path for the
// observation sequence via log-space dynamic programming.
//
// Zero probabilities become -Inf under the log, which excludes the
// corresponding paths without special-casing; IEEE -Inf arithmetic keeps
// the recursion well defined. Ties in the arg-max break toward the first
// index, so decoding is deterministic.
func (m *Model) Viterbi(observations []string) ([]string, error) {
	obs, err := m.indexObservations(observations)
	if err != nil {
		return nil, err
	}

	bigT, n := len(obs), len(m.states)
	delta := make([][]float64, bigT)
	psi := make([][]int, bigT)
	for t := range delta {
		delta[t] = make([]float64, n)
		psi[t] = make([]int, n)
	}

	for i := 0; i < n; i++ {
		delta[0][i] = math.Log(m.initial[i]) + math.Log(m.emit[i][obs[0]])
	}

	for t := 1; t < bigT; t++ {
		for j := 0; j < n; j++ {
			bestScore := math.Inf(-1)
			bestPrev := 0
			for i := 0; i < n; i++ {
				score := delta[t-1][i] + math.Log(m.trans[i][j])
				if score > bestScore {
					bestScore = score
					bestPrev = i
				}
			}
			psi[t][j] = bestPrev
			delta[t][j] = bestScore + math.Log(m.emit[j][obs[t]])
		}
	}

	path := make([]int, bigT)
	path[bigT-1] = argmax(delta[bigT-1])
	for t := bigT - 2; t >= 0; t-- {
		path[t] = psi[t+1][path[t+1]]
	}

	labels := make([]string, bigT)
	for t, i := range path {
		labels[t] = m.states[i]
	}
	return labels, nil
}

// argmax returns the first index reaching the maximum.
func argmax(values []float64) int {
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}
