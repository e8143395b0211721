// Package dynsys provides core primitives for finite-state stochastic systems.
//
// The package defines the fundamental contract shared by every model in the
// engine:
//
//   - [State]: named values describing a system at one instant
//   - [System]: interface for iterable systems (advance, summarize, snapshot)
//   - [History]: append-only record of state snapshots
//   - [Runner]: orchestrates iteration runs with cancellation and observers
//
// # Example
//
//	chain := markov.New("weather", []string{"sunny", "rainy"})
//	runner := dynsys.NewRunner()
//	result, _ := runner.Run(ctx, chain, 100)
//
// # Thread Safety
//
// Systems are NOT safe for concurrent mutation. Query operations on a fully
// constructed model are pure and may be called from multiple goroutines, but
// Iterate and the various setters must be externally serialized.
package dynsys
