package validator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrymomot/propcheck/pkg/decimal"
)

// ValidInt accepts integers written without an alternate representation.
// Leading zeros are ignored, so "007" passes while "1.5", "+5" and "1e3" fail.
type ValidInt struct{}

func (ValidInt) Match(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) > 1 {
		s = strings.TrimLeft(s, "0")
	}
	n, ok := parseInt(s)
	return ok && strconv.Itoa(n) == s
}

func (r ValidInt) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	return fail(ReasonInvalidInt, "must be a valid number", nil)
}

// ValidDecimal accepts any plain decimal literal.
type ValidDecimal struct{}

func (ValidDecimal) Match(s string) bool {
	_, err := decimal.Parse(s)
	return err == nil
}

func (r ValidDecimal) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	return fail(ReasonInvalidDecimal, "must be a valid number", nil)
}

// ValidByte accepts the integers 0 and 1, a boolean stored as a byte.
type ValidByte struct{}

func (ValidByte) Match(s string) bool {
	n, ok := parseInt(s)
	return ok && n >= 0 && n <= 1
}

func (r ValidByte) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	return fail(ReasonInvalidByte, "must be a valid byte", nil)
}

// ValidPercentage accepts decimals between 0 and 100 inclusive.
type ValidPercentage struct{}

func (ValidPercentage) Match(s string) bool {
	return inRange(s, 0, 100)
}

func (r ValidPercentage) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	return fail(ReasonInvalidPercentage, "should be between 0 and 100", map[string]any{
		"low":  0,
		"high": 100,
	})
}

// Between accepts decimals within an inclusive integer range.
type Between struct {
	low, high int
}

// NewBetween returns a Between rule. It fails when low is greater than high.
func NewBetween(low, high int) (Between, error) {
	if low > high {
		return Between{}, fmt.Errorf("%w: between %d and %d", ErrInvalidRange, low, high)
	}
	return Between{low: low, high: high}, nil
}

func (r Between) Low() int  { return r.low }
func (r Between) High() int { return r.high }

func (r Between) Match(s string) bool {
	return inRange(s, r.low, r.high)
}

func (r Between) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	return fail(ReasonBetween, fmt.Sprintf("should be between %d and %d", r.low, r.high), map[string]any{
		"low":  r.low,
		"high": r.high,
	})
}

func inRange(s string, low, high int) bool {
	v, err := decimal.Parse(s)
	if err != nil {
		return false
	}
	return v.CmpInt64(int64(low)) >= 0 && v.CmpInt64(int64(high)) <= 0
}

// GreaterThan accepts decimals greater than or equal to Min.
// Candidates that are not numeric fail with ReasonNotNumeric.
type GreaterThan struct {
	Min int
}

func (r GreaterThan) Match(s string) bool {
	v, err := decimal.Parse(s)
	return err == nil && v.CmpInt64(int64(r.Min)) >= 0
}

func (r GreaterThan) Validate(value *string) Outcome {
	if value == nil {
		return fail(ReasonNotNumeric, "must be a valid number", nil)
	}
	v, err := decimal.Parse(*value)
	if err != nil {
		return fail(ReasonNotNumeric, "must be a valid number", nil)
	}
	if v.CmpInt64(int64(r.Min)) < 0 {
		return fail(ReasonGreaterThan, fmt.Sprintf("must be greater than %d", r.Min), map[string]any{
			"min": r.Min,
		})
	}
	return pass()
}

// DecimalPlaces limits the number of significant fractional digits.
// Trailing zeros do not count, so "12.340" has two decimal places.
// Candidates that are absent or not numeric pass; pair with ValidDecimal
// to reject them.
type DecimalPlaces struct {
	Max int
}

func (r DecimalPlaces) Match(s string) bool {
	v, err := decimal.Parse(s)
	if err != nil {
		return true
	}
	return v.Scale(true) <= r.Max
}

func (r DecimalPlaces) Validate(value *string) Outcome {
	if value == nil || r.Match(*value) {
		return pass()
	}
	return fail(ReasonDecimalPlaces, fmt.Sprintf("must have a maximum of %d decimal places", r.Max), map[string]any{
		"max": r.Max,
	})
}
