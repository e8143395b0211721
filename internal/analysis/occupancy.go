package analysis

import "math"

// Occupancy computes the fraction of trajectory steps spent in each of
// the given states, in state order. States never visited get 0; an empty
// trajectory yields all zeros.
func Occupancy(trajectory []string, states []string) []float64 {
	counts := make(map[string]int, len(states))
	for _, s := range trajectory {
		counts[s]++
	}

	fractions := make([]float64, len(states))
	if len(trajectory) == 0 {
		return fractions
	}
	total := float64(len(trajectory))
	for i, s := range states {
		fractions[i] = float64(counts[s]) / total
	}
	return fractions
}

// Entropy returns the Shannon entropy of a distribution in nats, with
// the convention 0*log(0) = 0.
func Entropy(dist []float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log(p)
		}
	}
	return h
}

// TotalVariation returns the total-variation distance, half the L1
// difference, between
// two distributions of equal length.
func TotalVariation(p, q []float64) float64 {
	d := 0.0
	for i := range p {
		d += math.Abs(p[i] - q[i])
	}
	return d / 2
}
