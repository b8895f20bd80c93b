package decimal

import "errors"

var (
	// ErrInvalidSyntax is returned when text is not a plain decimal literal.
	ErrInvalidSyntax = errors.New("invalid decimal syntax")

	// ErrOverflow is returned when the integer part alone does not fit into 96 bits.
	ErrOverflow = errors.New("decimal value out of range")
)
