package main

import (
	"testing"

	"github.com/san-kum/stochsim/internal/storage"
)

func TestRunModel_ProcessHonorsSteps(t *testing.T) {
	dataDir = t.TempDir()
	configFile = ""
	seed = 1
	steps = 10
	defer func() { steps = 0 }()

	if err := runModel(nil, []string{"walk"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("stored %d runs, want 1", len(runs))
	}
	if runs[0].Steps != 10 {
		t.Errorf("stored steps = %d, want the --steps value 10", runs[0].Steps)
	}

	// the walk preset has outgoing transitions everywhere, so the
	// trajectory never stops early
	trajectory, _, err := st.LoadTrajectory(runs[0].ID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(trajectory) != 11 {
		t.Errorf("trajectory has %d states, want 11 for a 10-step walk", len(trajectory))
	}
}

func TestRunModel_ChainHonorsSteps(t *testing.T) {
	dataDir = t.TempDir()
	configFile = ""
	seed = 1
	steps = 5
	defer func() { steps = 0 }()

	if err := runModel(nil, []string{"weather"}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("stored %d runs, want 1", len(runs))
	}
	trajectory, _, err := st.LoadTrajectory(runs[0].ID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(trajectory) != 6 {
		t.Errorf("trajectory has %d states, want 6 for a 5-step walk", len(trajectory))
	}
}
