package dynsys

// State holds the named values of a system at one instant.
type State map[string]any

// Clone returns an independent copy of the state. Slice and nested map
// values of the kinds the engine stores are copied element-wise, so
// mutating the original afterwards never alters the clone.
func (s State) Clone() State {
	c := make(State, len(s))
	for k, v := range s {
		c[k] = cloneValue(v)
	}
	return c
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []float64:
		cp := make([]float64, len(val))
		copy(cp, val)
		return cp
	case []string:
		cp := make([]string, len(val))
		copy(cp, val)
		return cp
	case []int:
		cp := make([]int, len(val))
		copy(cp, val)
		return cp
	case map[string]float64:
		cp := make(map[string]float64, len(val))
		for k, x := range val {
			cp[k] = x
		}
		return cp
	case State:
		return val.Clone()
	case map[string]any:
		return State(val).Clone()
	default:
		return v
	}
}

// System is the contract every stochastic model implements. Iterate
// advances the system by one step and records exactly one snapshot;
// Summary reports current state plus model-specific derived fields
// without mutating anything.
type System interface {
	Name() string
	Iterate() error
	Summary() map[string]any

	// Snapshot bookkeeping, normally promoted from an embedded History.
	HistoryLen() int
	Snapshot(i int) State
}

// Observer receives a callback after every completed iteration of a run.
type Observer interface {
	OnIterate(sys System, step int)
}
