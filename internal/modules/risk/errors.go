package risk

import "errors"

// Sentinel errors returned by the calculator. Callers match them with
// errors.Is; the wrapped message carries the offending shapes or values.
var (
	// ErrDimensionMismatch is returned when the weight vector length does not
	// match the covariance matrix dimension, or the matrix is not square.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrInvalidConfidence is returned when a confidence level is NaN or
	// outside [0, 1]. The boundaries 0 and 1 are valid and degenerate to the
	// sample minimum and maximum.
	ErrInvalidConfidence = errors.New("invalid confidence level")

	// ErrEmptySeries is returned when a return table has no columns or no
	// observations.
	ErrEmptySeries = errors.New("empty return series")
)
