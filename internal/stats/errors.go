package stats

import "errors"

var (
	// ErrInvalidArgument is returned for unrecognized alternatives and
	// non-positive counts.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDivisionByZero is returned when a standard error or a normalizing
	// base value is zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain is returned for inputs outside the domain of the test:
	// negative variances, successes above trials, significance outside (0, 1)
	// or non-positive degrees of freedom.
	ErrDomain = errors.New("domain error")
)
