package dynsys

import "errors"

// Validation errors shared by the stochastic models. All setters are
// fail-fast: they validate before writing, so a returned error means no
// mutation took place.
var (
	// ErrDomain indicates a state, outcome, or observation symbol outside
	// the declared space.
	ErrDomain = errors.New("dynsys: value outside the declared space")

	// ErrProbRange indicates a probability outside [0, 1].
	ErrProbRange = errors.New("dynsys: probability outside [0, 1]")

	// ErrShape indicates mismatched parameter dimensions.
	ErrShape = errors.New("dynsys: parameter shape mismatch")

	// ErrBadWeights indicates categorical sampling weights that do not
	// sum to 1.
	ErrBadWeights = errors.New("dynsys: categorical weights do not sum to 1")
)
