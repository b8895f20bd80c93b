package validator

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Unbounded disables the upper bound of a TrimmedLength rule.
const Unbounded = -1

// TrimmedLength bounds the length of a value after trimming surrounding
// whitespace. Length is counted in runes. Absent values pass.
type TrimmedLength struct {
	min, max int
	exact    bool
}

// NewTrimmedLength returns a rule accepting trimmed lengths in [min, max].
// Pass Unbounded as max for a lower bound only.
func NewTrimmedLength(min, max int) (TrimmedLength, error) {
	if min < 0 {
		return TrimmedLength{}, fmt.Errorf("%w: min %d", ErrNegativeLength, min)
	}
	if max != Unbounded && max < min {
		return TrimmedLength{}, fmt.Errorf("%w: min %d, max %d", ErrInvalidLengthRange, min, max)
	}
	return TrimmedLength{min: min, max: max}, nil
}

// NewTrimmedExactLength returns a rule accepting a trimmed length of exactly n.
func NewTrimmedExactLength(n int) (TrimmedLength, error) {
	if n <= 0 {
		return TrimmedLength{}, fmt.Errorf("%w: got %d", ErrInvalidExactLength, n)
	}
	return TrimmedLength{min: n, max: n, exact: true}, nil
}

func (r TrimmedLength) Min() int { return r.min }
func (r TrimmedLength) Max() int { return r.max }

func (r TrimmedLength) Match(s string) bool {
	return r.fits(trimmedLen(s))
}

func (r TrimmedLength) fits(n int) bool {
	return n >= r.min && (r.max == Unbounded || n <= r.max)
}

func (r TrimmedLength) Validate(value *string) Outcome {
	if value == nil {
		return pass()
	}
	n := trimmedLen(*value)
	if r.fits(n) {
		return pass()
	}

	args := map[string]any{
		"MinLength":   r.min,
		"MaxLength":   r.max,
		"TotalLength": n,
	}
	if r.exact {
		return fail(ReasonExactLength,
			fmt.Sprintf("must be %d characters in length, you entered %d characters", r.max, n), args)
	}
	if r.max == Unbounded {
		return fail(ReasonTrimmedLength,
			fmt.Sprintf("must be at least %d characters, you entered %d characters", r.min, n), args)
	}
	return fail(ReasonTrimmedLength,
		fmt.Sprintf("must be between %d and %d characters, you entered %d characters", r.min, r.max, n), args)
}

func trimmedLen(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}
