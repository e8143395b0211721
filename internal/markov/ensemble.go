package markov

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Ensemble runs many independent random walks of the same chain in
// parallel, one goroutine per run, each with its own seeded generator.
// The chain must not be mutated while an ensemble is running.
type Ensemble struct {
	chain     *Chain
	numRuns   int
	seedStart int64
}

func NewEnsemble(chain *Chain, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{chain: chain, numRuns: numRuns, seedStart: seedStart}
}

// Run walks every trajectory for the given number of steps starting from
// start. Run i uses seed seedStart+i, so results are reproducible.
func (e *Ensemble) Run(ctx context.Context, start string, steps int) ([][]string, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", e.numRuns)
	}
	if steps < 0 {
		return nil, fmt.Errorf("negative steps: %d", steps)
	}

	trajectories := make([][]string, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(e.seedStart + int64(idx)))
			trajectories[idx], errs[idx] = e.walk(ctx, rng, start, steps)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return trajectories, nil
}

func (e *Ensemble) walk(ctx context.Context, rng *rand.Rand, start string, steps int) ([]string, error) {
	trajectory := make([]string, 0, steps+1)
	trajectory = append(trajectory, start)

	current := start
	for step := 0; step < steps; step++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		next, err := e.chain.Step(rng, current)
		if err != nil {
			return nil, fmt.Errorf("run step %d: %w", step, err)
		}
		trajectory = append(trajectory, next)
		current = next
	}
	return trajectory, nil
}

// EmpiricalDistribution pools the visit counts of all trajectories into
// one occupancy distribution over the given states.
func EmpiricalDistribution(trajectories [][]string, states []string) []float64 {
	counts := make(map[string]int, len(states))
	total := 0
	for _, trajectory := range trajectories {
		for _, s := range trajectory {
			counts[s]++
			total++
		}
	}

	dist := make([]float64, len(states))
	if total == 0 {
		return dist
	}
	for i, s := range states {
		dist[i] = float64(counts[s]) / float64(total)
	}
	return dist
}
