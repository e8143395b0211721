package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trajectory := []string{"sunny", "sunny", "rainy"}
	indices := []int{0, 0, 1}
	metrics := map[string]float64{"distinct_states": 2}

	runID, err := store.Save("weather", "chain", 7, 3, metrics, trajectory, indices)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected non-empty run id")
	}

	meta, err := store.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.ID != runID {
		t.Errorf("id = %q, want %q", meta.ID, runID)
	}
	if meta.Model != "weather" || meta.Kind != "chain" {
		t.Errorf("model/kind = %q/%q, want weather/chain", meta.Model, meta.Kind)
	}
	if meta.Seed != 7 || meta.Steps != 3 {
		t.Errorf("seed/steps = %d/%d, want 7/3", meta.Seed, meta.Steps)
	}
	if meta.Metrics["distinct_states"] != 2 {
		t.Errorf("metrics = %v, want distinct_states=2", meta.Metrics)
	}
}

func TestLoadTrajectory(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	trajectory := []string{"a", "b", "a"}
	runID, err := store.Save("walk", "process", 1, 3, nil, trajectory, []int{0, 1, 0})
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	states, indices, err := store.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(states) != 3 || len(indices) != 3 {
		t.Fatalf("got %d states, %d indices, want 3 each", len(states), len(indices))
	}
	for i, want := range trajectory {
		if states[i] != want {
			t.Errorf("states[%d] = %q, want %q", i, states[i], want)
		}
	}
	if indices[1] != 1 {
		t.Errorf("indices[1] = %g, want 1", indices[1])
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	if _, err := store.Save("m1", "chain", 1, 10, nil, []string{"a"}, []int{0}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want 1", len(runs))
	}
	if runs[0].Model != "m1" {
		t.Errorf("model = %q, want m1", runs[0].Model)
	}
}

func TestList_MissingDir(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "never-created"))

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("listed %d runs from a missing dir, want 0", len(runs))
	}
}

func TestList_SkipsMalformedRuns(t *testing.T) {
	dir := t.TempDir()
	store := New(dir)
	if err := store.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	badDir := filepath.Join(dir, "broken_run")
	if err := os.MkdirAll(badDir, 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(badDir, "metadata.json"), []byte("{not json"), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	if _, err := store.Save("good", "chain", 1, 1, nil, []string{"a"}, []int{0}); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("listed %d runs, want the 1 valid run", len(runs))
	}
}
