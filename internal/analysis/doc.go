// Package analysis provides diagnostics for trajectories and chains.
//
// The package includes tools for characterizing stochastic models:
//
//   - [Occupancy]: visit fractions of a simulated trajectory
//   - [Entropy]: Shannon entropy of a distribution
//   - [TotalVariation]: distance between two distributions
//   - [MixingTime]: steps until the chain law is close to stationary
//   - [ConvergenceRate]: mean successive change of an iterate sequence
//
// # Mixing Detection
//
// A small mixing time indicates the chain forgets its start quickly:
//
//	steps, _ := analysis.MixingTime(chain, "sunny", 0.01, 1000)
package analysis
