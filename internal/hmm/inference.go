package hmm

import (
	"gonum.org/v1/gonum/floats"
)

// Forward computes the forward probabilities
//
//	alpha[t][i] = P(o_1..o_t, hidden_t = i)
//
// for the given observation sequence. No scaling is applied, so long
// sequences underflow toward 0; callers working at realistic lengths
// should reason in log space from SequenceProbability instead.
func (m *Model) Forward(observations []string) ([][]float64, error) {
	obs, err := m.indexObservations(observations)
	if err != nil {
		return nil, err
	}

	bigT, n := len(obs), len(m.states)
	alpha := make([][]float64, bigT)
	for t := range alpha {
		alpha[t] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		alpha[0][i] = m.initial[i] * m.emit[i][obs[0]]
	}

	for t := 1; t < bigT; t++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for i := 0; i < n; i++ {
				sum += alpha[t-1][i] * m.trans[i][j]
			}
			alpha[t][j] = sum * m.emit[j][obs[t]]
		}
	}

	return alpha, nil
}

// Backward computes the backward probabilities
//
//	beta[t][i] = P(o_{t+1}..o_T | hidden_t = i)
//
// with beta[T-1][i] = 1 for all i. Like Forward, the recursion is unscaled.
func (m *Model) Backward(observations []string) ([][]float64, error) {
	obs, err := m.indexObservations(observations)
	if err != nil {
		return nil, err
	}

	bigT, n := len(obs), len(m.states)
	beta := make([][]float64, bigT)
	for t := range beta {
		beta[t] = make([]float64, n)
	}

	for i := 0; i < n; i++ {
		beta[bigT-1][i] = 1
	}

	for t := bigT - 2; t >= 0; t-- {
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < n; j++ {
				sum += m.trans[i][j] * m.emit[j][obs[t+1]] * beta[t+1][j]
			}
			beta[t][i] = sum
		}
	}

	return beta, nil
}

// SequenceProbability returns P(o_1..o_T), the total probability of the
// observation sequence under the model, as the sum of the final forward
// row.
func (m *Model) SequenceProbability(observations []string) (float64, error) {
	alpha, err := m.Forward(observations)
	if err != nil {
		return 0, err
	}
	return floats.Sum(alpha[len(alpha)-1]), nil
}
