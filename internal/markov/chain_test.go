package markov

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/stochsim/internal/dynsys"
)

func newWeatherChain(t *testing.T) *Chain {
	t.Helper()
	c := New("weather", []string{"sunny", "rainy"})
	set := func(from, to string, p float64) {
		t.Helper()
		if err := c.SetTransitionProbability(from, to, p); err != nil {
			t.Fatalf("set %s->%s failed: %v", from, to, err)
		}
	}
	set("sunny", "sunny", 0.9)
	set("sunny", "rainy", 0.1)
	set("rainy", "sunny", 0.5)
	set("rainy", "rainy", 0.5)
	return c
}

func TestChain_StationaryDistribution(t *testing.T) {
	c := newWeatherChain(t)

	pi, err := c.StationaryDistribution()
	if err != nil {
		t.Fatalf("stationary failed: %v", err)
	}

	want := []float64{5.0 / 6.0, 1.0 / 6.0}
	for i := range want {
		if math.Abs(pi[i]-want[i]) > 1e-6 {
			t.Errorf("pi[%d] = %v, want %v", i, pi[i], want[i])
		}
	}

	sum := 0.0
	for _, p := range pi {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("stationary distribution sums to %v, want 1", sum)
	}
}

func TestChain_StationaryDistribution_Idempotent(t *testing.T) {
	c := newWeatherChain(t)

	first, err := c.StationaryDistribution()
	if err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	second, err := c.StationaryDistribution()
	if err != nil {
		t.Fatalf("second call failed: %v", err)
	}
	for i := range first {
		if math.Abs(first[i]-second[i]) > 1e-12 {
			t.Errorf("repeated call differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestChain_StationaryDistribution_NoUnitEigenvalue(t *testing.T) {
	c := New("leaky", []string{"a", "b"})
	// rows sum to 0.9: eigenvalues 0.9 and 0.2, none within tolerance of 1
	mustSet(t, c, "a", "a", 0.5)
	mustSet(t, c, "a", "b", 0.4)
	mustSet(t, c, "b", "a", 0.3)
	mustSet(t, c, "b", "b", 0.6)

	if _, err := c.StationaryDistribution(); !errors.Is(err, ErrNoStationary) {
		t.Errorf("expected ErrNoStationary, got %v", err)
	}
}

func TestChain_SetTransitionProbability_Validation(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		p        float64
		want     error
	}{
		{"unknown from", "z", "a", 0.5, dynsys.ErrDomain},
		{"unknown to", "a", "z", 0.5, dynsys.ErrDomain},
		{"negative", "a", "b", -0.01, dynsys.ErrProbRange},
		{"above one", "a", "b", 2, dynsys.ErrProbRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("chain", []string{"a", "b"})
			if err := c.SetTransitionProbability(tt.from, tt.to, tt.p); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}

			m := c.TransitionMatrix()
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					if m.At(i, j) != 0 {
						t.Errorf("matrix mutated at (%d,%d) after failed set", i, j)
					}
				}
			}
		})
	}
}

func TestChain_Step(t *testing.T) {
	c := newWeatherChain(t)
	rng := rand.New(rand.NewSource(3))

	sunny := 0
	const draws = 50000
	for i := 0; i < draws; i++ {
		next, err := c.Step(rng, "rainy")
		if err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if next == "sunny" {
			sunny++
		}
	}
	got := float64(sunny) / draws
	if got < 0.48 || got > 0.52 {
		t.Errorf("P(rainy->sunny) = %.3f, want ~0.5", got)
	}

	if _, err := c.Step(rng, "foggy"); !errors.Is(err, dynsys.ErrDomain) {
		t.Errorf("expected ErrDomain for unknown state, got %v", err)
	}
}

func TestChain_Iterate(t *testing.T) {
	c := newWeatherChain(t)

	if err := c.Iterate(); err != nil {
		t.Fatalf("iterate failed: %v", err)
	}
	if c.HistoryLen() != 1 {
		t.Errorf("expected 1 snapshot, got %d", c.HistoryLen())
	}

	summary := c.Summary()
	pi, ok := summary["stationary_distribution"].([]float64)
	if !ok || len(pi) != 2 {
		t.Fatalf("summary missing stationary distribution: %v", summary["stationary_distribution"])
	}
	if math.Abs(pi[0]-5.0/6.0) > 1e-6 {
		t.Errorf("stored pi[0] = %v, want 5/6", pi[0])
	}
}

func TestChain_Iterate_SurfacesFailure(t *testing.T) {
	c := New("leaky", []string{"a", "b"})
	mustSet(t, c, "a", "b", 0.4)

	if err := c.Iterate(); !errors.Is(err, ErrNoStationary) {
		t.Errorf("expected ErrNoStationary from iterate, got %v", err)
	}
	if c.HistoryLen() != 0 {
		t.Errorf("failed iterate must not snapshot, got %d entries", c.HistoryLen())
	}
}

func TestChain_DuplicateStatesCollapse(t *testing.T) {
	c := New("dup", []string{"a", "b", "a"})
	if got := len(c.States()); got != 2 {
		t.Errorf("expected 2 states, got %d", got)
	}
}

func TestChain_Empty(t *testing.T) {
	c := New("empty", nil)

	if got := len(c.States()); got != 0 {
		t.Errorf("expected 0 states, got %d", got)
	}
	if m := c.TransitionMatrix(); m != nil {
		t.Errorf("expected nil matrix for empty chain, got %v", m)
	}
	if _, err := c.StationaryDistribution(); !errors.Is(err, ErrNoStationary) {
		t.Errorf("expected ErrNoStationary, got %v", err)
	}
	if _, err := c.Step(rand.New(rand.NewSource(1)), "a"); !errors.Is(err, dynsys.ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
	if err := c.SetTransitionProbability("a", "b", 0.5); !errors.Is(err, dynsys.ErrDomain) {
		t.Errorf("expected ErrDomain, got %v", err)
	}
	if err := c.Iterate(); !errors.Is(err, ErrNoStationary) {
		t.Errorf("expected ErrNoStationary from Iterate, got %v", err)
	}
	if c.HistoryLen() != 0 {
		t.Errorf("failed Iterate must not snapshot, history %d", c.HistoryLen())
	}
}

func mustSet(t *testing.T, c *Chain, from, to string, p float64) {
	t.Helper()
	if err := c.SetTransitionProbability(from, to, p); err != nil {
		t.Fatalf("set %s->%s failed: %v", from, to, err)
	}
}
