package dynsys

import (
	"context"
	"fmt"
)

// Result reports the outcome of a Runner.Run call.
type Result struct {
	Steps      int
	HistoryLen int
}

// Runner drives a System through repeated iterations. It owns no model
// state; the same Runner may be reused across systems.
type Runner struct {
	observers []Observer
}

func NewRunner() *Runner {
	return &Runner{observers: make([]Observer, 0)}
}

func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run iterates sys the given number of times, checking ctx between steps.
// On cancellation or an iteration error the partial result is returned
// along with the error.
func (r *Runner) Run(ctx context.Context, sys System, steps int) (*Result, error) {
	if steps < 0 {
		return nil, fmt.Errorf("steps must be non-negative, got %d", steps)
	}

	result := &Result{}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			result.HistoryLen = sys.HistoryLen()
			return result, ctx.Err()
		default:
		}

		if err := sys.Iterate(); err != nil {
			result.HistoryLen = sys.HistoryLen()
			return result, fmt.Errorf("iterate %s step %d: %w", sys.Name(), i, err)
		}
		result.Steps++

		for _, o := range r.observers {
			o.OnIterate(sys, i)
		}
	}

	result.HistoryLen = sys.HistoryLen()
	return result, nil
}
