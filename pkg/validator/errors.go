package validator

import "errors"

// Configuration errors returned by validator constructors. They indicate a
// rule declared with structurally invalid bounds, never a bad candidate value.
var (
	// ErrInvalidLengthRange is returned when a bounded max length is smaller than min.
	ErrInvalidLengthRange = errors.New("max length must not be smaller than min length")

	// ErrInvalidExactLength is returned when an exact length is not positive.
	ErrInvalidExactLength = errors.New("exact length must be larger than 0")

	// ErrNegativeLength is returned when a min length is negative.
	ErrNegativeLength = errors.New("min length must not be negative")

	// ErrInvalidRange is returned when a lower bound exceeds the upper bound.
	ErrInvalidRange = errors.New("lower bound must not exceed upper bound")

	// ErrNoOptions is returned when a membership rule is declared without options.
	ErrNoOptions = errors.New("at least one valid option is expected")
)
