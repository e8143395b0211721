package dynsys

import "math"

// Objective scores a state; lower is better.
type Objective func(State) float64

// UpdateFunc derives a set of state updates from the current state.
type UpdateFunc func(State) State

// IterativeOptimizer tracks the best state seen under an objective.
type IterativeOptimizer struct {
	History
	name      string
	state     State
	objective Objective
	best      State
	bestValue float64
}

func NewIterativeOptimizer(name string, objective Objective) *IterativeOptimizer {
	return &IterativeOptimizer{
		name:      name,
		state:     make(State),
		objective: objective,
		bestValue: math.Inf(1),
	}
}

func (o *IterativeOptimizer) Name() string { return o.name }

// Set writes one named value into the live state.
func (o *IterativeOptimizer) Set(key string, value any) { o.state[key] = value }

func (o *IterativeOptimizer) BestValue() float64 { return o.bestValue }

func (o *IterativeOptimizer) Iterate() error {
	current := o.objective(o.state)
	if current < o.bestValue {
		o.bestValue = current
		o.best = o.state.Clone()
	}
	o.SaveState(o.state)
	return nil
}

func (o *IterativeOptimizer) Summary() map[string]any {
	return map[string]any{
		"current_state":  o.state.Clone(),
		"best_state":     o.best.Clone(),
		"best_value":     o.bestValue,
		"history_length": o.HistoryLen(),
	}
}

// FeedbackLoop applies a feedback function to its own state each step.
type FeedbackLoop struct {
	History
	name     string
	state    State
	feedback UpdateFunc
	applied  []State
}

func NewFeedbackLoop(name string, feedback UpdateFunc) *FeedbackLoop {
	return &FeedbackLoop{name: name, state: make(State), feedback: feedback}
}

func (f *FeedbackLoop) Name() string { return f.name }

func (f *FeedbackLoop) Set(key string, value any) { f.state[key] = value }

func (f *FeedbackLoop) Iterate() error {
	update := f.feedback(f.state)
	f.applied = append(f.applied, update.Clone())
	for k, v := range update {
		f.state[k] = v
	}
	f.SaveState(f.state)
	return nil
}

func (f *FeedbackLoop) Summary() map[string]any {
	return map[string]any{
		"current_state":  f.state.Clone(),
		"feedback_steps": len(f.applied),
		"history_length": f.HistoryLen(),
	}
}

// AdaptiveSystem is a feedback loop whose update rule models adaptation
// to its environment rather than correction toward a target.
type AdaptiveSystem struct {
	History
	name    string
	state   State
	adapt   UpdateFunc
	applied []State
}

func NewAdaptiveSystem(name string, adapt UpdateFunc) *AdaptiveSystem {
	return &AdaptiveSystem{name: name, state: make(State), adapt: adapt}
}

func (a *AdaptiveSystem) Name() string { return a.name }

func (a *AdaptiveSystem) Set(key string, value any) { a.state[key] = value }

func (a *AdaptiveSystem) Iterate() error {
	update := a.adapt(a.state)
	a.applied = append(a.applied, update.Clone())
	for k, v := range update {
		a.state[k] = v
	}
	a.SaveState(a.state)
	return nil
}

func (a *AdaptiveSystem) Summary() map[string]any {
	return map[string]any{
		"current_state":    a.state.Clone(),
		"adaptation_steps": len(a.applied),
		"history_length":   a.HistoryLen(),
	}
}

// BalanceFunc reports the correction needed per named value; the system
// is balanced when the summed absolute correction is below threshold.
type BalanceFunc func(State) map[string]float64

// BalanceController applies corrections until deviation falls under its
// threshold.
type BalanceController struct {
	History
	name      string
	state     State
	balance   BalanceFunc
	threshold float64
	balanced  bool
}

func NewBalanceController(name string, balance BalanceFunc, threshold float64) *BalanceController {
	return &BalanceController{
		name:      name,
		state:     make(State),
		balance:   balance,
		threshold: threshold,
	}
}

func (b *BalanceController) Name() string { return b.name }

func (b *BalanceController) Set(key string, value any) { b.state[key] = value }

func (b *BalanceController) Balanced() bool { return b.balanced }

func (b *BalanceController) Iterate() error {
	correction := b.balance(b.state)
	deviation := 0.0
	for _, v := range correction {
		deviation += math.Abs(v)
	}
	b.balanced = deviation < b.threshold
	if !b.balanced {
		for k, v := range correction {
			b.state[k] = v
		}
	}
	b.SaveState(b.state)
	return nil
}

func (b *BalanceController) Summary() map[string]any {
	return map[string]any{
		"current_state":  b.state.Clone(),
		"is_balanced":    b.balanced,
		"history_length": b.HistoryLen(),
	}
}
