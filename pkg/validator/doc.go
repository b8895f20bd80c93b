// Package validator provides composable validation rules for business-object
// properties whose values arrive as text: numbers, decimals with limited
// precision, years, months, days of a month, dates, membership in a set of
// options, uniqueness within a corpus and trimmed length bounds.
//
// Every rule is a small immutable struct implementing Validator:
//
//	type Validator interface {
//	    Validate(value *string) Outcome
//	}
//
// A nil value stands for an absent candidate. Outcome reports whether the
// candidate passed and, on failure, a Reason code, a default Message and the
// named Args a host can substitute into its own message template (for
// example MinLength, MaxLength and TotalLength for TrimmedLength).
//
// Most rules also expose Match(string) bool, the bare predicate.
//
// # Architecture
//
// Source files group rules by domain (`numeric_rules.go`, `date_rules.go`,
// `choice_rules.go`, `string_rules.go`). Rules that need bounds are built
// with a constructor that checks them up front and returns a configuration
// error (ErrInvalidLengthRange, ErrInvalidExactLength, ErrNegativeLength,
// ErrInvalidRange, ErrNoOptions). A candidate that fails a rule is never an
// error; it is an Outcome with Passed set to false.
//
// Decimal precision is computed by package decimal from the literal text, so
// "12.340" has two significant decimal places regardless of float rounding.
//
// # Usage
//
//	length, err := validator.NewTrimmedLength(2, 4)
//	if err != nil {
//	    return err // misconfigured rule
//	}
//
//	err = validator.Apply(
//	    validator.Check("quantity", qty, validator.ValidInt{}),
//	    validator.Check("price", price, validator.DecimalPlaces{Max: 2}),
//	    validator.Check("code", code, length),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    // iterate over field-level failures
//	}
//
// Check evaluates a rule once and adapts its Outcome into a Rule whose
// ValidationError carries the field, reason, message and translation values.
// Apply aggregates failed rules into ValidationErrors.
//
// # Concurrency
//
// Rules hold no mutable state and can be shared between goroutines.
package validator
