package markov

import (
	"context"
	"math"
	"testing"
)

func TestEnsemble_ApproachesStationary(t *testing.T) {
	chain := newWeatherChain(t)

	ensemble := NewEnsemble(chain, 50, 1)
	trajectories, err := ensemble.Run(context.Background(), "sunny", 500)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(trajectories) != 50 {
		t.Fatalf("got %d trajectories, want 50", len(trajectories))
	}
	for i, trajectory := range trajectories {
		if len(trajectory) != 501 {
			t.Fatalf("trajectory %d has %d states, want 501", i, len(trajectory))
		}
		if trajectory[0] != "sunny" {
			t.Errorf("trajectory %d starts at %q, want sunny", i, trajectory[0])
		}
	}

	empirical := EmpiricalDistribution(trajectories, chain.States())
	pi, err := chain.StationaryDistribution()
	if err != nil {
		t.Fatalf("stationary failed: %v", err)
	}
	for i := range pi {
		if math.Abs(empirical[i]-pi[i]) > 0.03 {
			t.Errorf("empirical[%d] = %.4f, stationary %.4f", i, empirical[i], pi[i])
		}
	}
}

func TestEnsemble_Reproducible(t *testing.T) {
	chain := newWeatherChain(t)

	first, err := NewEnsemble(chain, 4, 7).Run(context.Background(), "rainy", 30)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	second, err := NewEnsemble(chain, 4, 7).Run(context.Background(), "rainy", 30)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("run %d diverges at step %d: %q vs %q", i, j, first[i][j], second[i][j])
			}
		}
	}
}

func TestEnsemble_Cancellation(t *testing.T) {
	chain := newWeatherChain(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewEnsemble(chain, 2, 1).Run(ctx, "sunny", 100); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestEnsemble_InvalidArguments(t *testing.T) {
	chain := newWeatherChain(t)

	if _, err := NewEnsemble(chain, 0, 1).Run(context.Background(), "sunny", 10); err == nil {
		t.Error("expected error for zero runs")
	}
	if _, err := NewEnsemble(chain, 2, 1).Run(context.Background(), "sunny", -1); err == nil {
		t.Error("expected error for negative steps")
	}
}

func TestEmpiricalDistribution_Empty(t *testing.T) {
	dist := EmpiricalDistribution(nil, []string{"a", "b"})
	if dist[0] != 0 || dist[1] != 0 {
		t.Errorf("expected zeros for no trajectories, got %v", dist)
	}
}
