package config

import "sort"

// Presets are the built-in model descriptions, usable anywhere a model
// file is accepted.
var Presets = map[string]*Config{
	"weather": {
		Kind:   KindChain,
		Name:   "weather",
		States: []string{"sunny", "rainy"},
		TransitionMatrix: [][]float64{
			{0.9, 0.1},
			{0.5, 0.5},
		},
		Steps: 100,
	},
	"umbrella": {
		Kind:         KindHMM,
		Name:         "umbrella",
		States:       []string{"rain", "dry"},
		Observations: []string{"umbrella", "no_umbrella"},
		TransitionMatrix: [][]float64{
			{0.7, 0.3},
			{0.3, 0.7},
		},
		EmissionMatrix: [][]float64{
			{0.9, 0.1},
			{0.2, 0.8},
		},
		InitialDistribution: []float64{0.5, 0.5},
		Steps:               20,
	},
	"walk": {
		Kind:   KindProcess,
		Name:   "walk",
		States: []string{"left", "center", "right"},
		Transitions: []Transition{
			{From: "left", To: "left", Probability: 0.5},
			{From: "left", To: "center", Probability: 0.5},
			{From: "center", To: "left", Probability: 0.25},
			{From: "center", To: "center", Probability: 0.5},
			{From: "center", To: "right", Probability: 0.25},
			{From: "right", To: "center", Probability: 0.5},
			{From: "right", To: "right", Probability: 0.5},
		},
		Steps: 50,
	},
	"die": {
		Kind:   KindSpace,
		Name:   "die",
		States: []string{"1", "2", "3", "4", "5", "6"},
		Events: []Event{
			{Outcomes: []string{"2", "4", "6"}, Probability: 0.5},
			{Outcomes: []string{"1", "2"}, Probability: 1.0 / 3.0},
			{Outcomes: []string{"2"}, Probability: 1.0 / 6.0},
		},
	},
}

// GetPreset returns the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	return Presets[name]
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
