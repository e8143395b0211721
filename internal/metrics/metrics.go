// Package metrics provides running statistics over simulated
// trajectories of state labels.
package metrics

import "github.com/san-kum/stochsim/internal/analysis"

// Metric accumulates a statistic over a stream of visited states.
type Metric interface {
	Name() string
	Observe(state string)
	Value() float64
	Reset()
}

// ObserveAll feeds an entire trajectory through each metric.
func ObserveAll(trajectory []string, ms ...Metric) {
	for _, s := range trajectory {
		for _, m := range ms {
			m.Observe(s)
		}
	}
}

// Collect returns the current values keyed by metric name.
func Collect(ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Visits counts how many distinct states appeared.
type Visits struct {
	name string
	seen map[string]struct{}
}

func NewVisits() *Visits {
	return &Visits{name: "distinct_states", seen: make(map[string]struct{})}
}

func (v *Visits) Name() string { return v.name }

func (v *Visits) Observe(state string) { v.seen[state] = struct{}{} }

func (v *Visits) Value() float64 { return float64(len(v.seen)) }

func (v *Visits) Reset() { v.seen = make(map[string]struct{}) }

// Entropy tracks the Shannon entropy of the occupancy distribution of
// the states observed so far.
type Entropy struct {
	name   string
	counts map[string]int
	total  int
}

func NewEntropy() *Entropy {
	return &Entropy{name: "occupancy_entropy", counts: make(map[string]int)}
}

func (e *Entropy) Name() string { return e.name }

func (e *Entropy) Observe(state string) {
	e.counts[state]++
	e.total++
}

func (e *Entropy) Value() float64 {
	if e.total == 0 {
		return 0
	}
	dist := make([]float64, 0, len(e.counts))
	for _, c := range e.counts {
		dist = append(dist, float64(c)/float64(e.total))
	}
	return analysis.Entropy(dist)
}

func (e *Entropy) Reset() {
	e.counts = make(map[string]int)
	e.total = 0
}
