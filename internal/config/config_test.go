package config

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weather.yaml")
	doc := `kind: chain
name: weather
states: [sunny, rainy]
transition_matrix:
  - [0.9, 0.1]
  - [0.5, 0.5]
seed: 7
`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Kind != KindChain {
		t.Errorf("kind = %q, want chain", cfg.Kind)
	}
	if cfg.Name != "weather" {
		t.Errorf("name = %q, want weather", cfg.Name)
	}
	if len(cfg.States) != 2 {
		t.Errorf("states = %v, want 2 entries", cfg.States)
	}
	if cfg.TransitionMatrix[1][0] != 0.5 {
		t.Errorf("transition[1][0] = %g, want 0.5", cfg.TransitionMatrix[1][0])
	}
	if cfg.Steps != DefaultSteps {
		t.Errorf("omitted steps = %d, want default %d", cfg.Steps, DefaultSteps)
	}
	if cfg.Seed != 7 {
		t.Errorf("seed = %d, want 7", cfg.Seed)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.yaml")
	orig := &Config{
		Kind:   KindProcess,
		Name:   "walk",
		States: []string{"a", "b"},
		Transitions: []Transition{
			{From: "a", To: "b", Probability: 1},
			{From: "b", To: "a", Probability: 1},
		},
		Steps: 20,
	}

	if err := Save(path, orig); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Name != orig.Name || got.Kind != orig.Kind || got.Steps != orig.Steps {
		t.Errorf("round trip changed header fields: %+v", got)
	}
	if len(got.Transitions) != 2 || got.Transitions[0].To != "b" {
		t.Errorf("round trip changed transitions: %+v", got.Transitions)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid chain",
			cfg: Config{Kind: KindChain, Name: "c", States: []string{"a", "b"},
				TransitionMatrix: [][]float64{{0.5, 0.5}, {0.5, 0.5}}},
		},
		{
			name:    "unknown kind",
			cfg:     Config{Kind: "graph", States: []string{"a"}},
			wantErr: true,
		},
		{
			name:    "no states",
			cfg:     Config{Kind: KindChain},
			wantErr: true,
		},
		{
			name:    "negative steps",
			cfg:     Config{Kind: KindChain, States: []string{"a"}, Steps: -1},
			wantErr: true,
		},
		{
			name: "ragged transition matrix",
			cfg: Config{Kind: KindChain, States: []string{"a", "b"},
				TransitionMatrix: [][]float64{{1, 0}, {1}}},
			wantErr: true,
		},
		{
			name: "hmm without alphabet",
			cfg: Config{Kind: KindHMM, States: []string{"a"},
				TransitionMatrix:    [][]float64{{1}},
				EmissionMatrix:      [][]float64{{1}},
				InitialDistribution: []float64{1}},
			wantErr: true,
		},
		{
			name: "hmm emission shape",
			cfg: Config{Kind: KindHMM, States: []string{"a"}, Observations: []string{"x", "y"},
				TransitionMatrix:    [][]float64{{1}},
				EmissionMatrix:      [][]float64{{1}},
				InitialDistribution: []float64{1}},
			wantErr: true,
		},
		{
			name: "hmm initial length",
			cfg: Config{Kind: KindHMM, States: []string{"a"}, Observations: []string{"x"},
				TransitionMatrix:    [][]float64{{1}},
				EmissionMatrix:      [][]float64{{1}},
				InitialDistribution: []float64{1, 0}},
			wantErr: true,
		},
		{
			name: "process without matrices",
			cfg:  Config{Kind: KindProcess, States: []string{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("got err=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) == 0 {
		t.Fatal("no presets registered")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("preset names not sorted: %v", names)
	}

	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %q not found by GetPreset", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %q invalid: %v", name, err)
		}
	}
}

func TestGetPreset_Unknown(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Errorf("expected nil for unknown preset, got %+v", cfg)
	}
}
