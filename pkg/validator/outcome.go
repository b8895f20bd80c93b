package validator

// Failure reasons reported in Outcome.Reason.
const (
	ReasonInvalidInt        = "invalid_int"
	ReasonInvalidDecimal    = "invalid_decimal"
	ReasonInvalidByte       = "invalid_byte"
	ReasonInvalidPercentage = "invalid_percentage"
	ReasonBetween           = "between"
	ReasonGreaterThan       = "greater_than"
	ReasonNotNumeric        = "not_numeric"
	ReasonDecimalPlaces     = "decimal_places"
	ReasonInvalidMonth      = "invalid_month"
	ReasonInvalidYear       = "invalid_year"
	ReasonInvalidDate       = "invalid_date"
	ReasonBefore            = "before"
	ReasonAfter             = "after"
	ReasonNotInOptions      = "in"
	ReasonInOptions         = "not_in"
	ReasonNotUnique         = "unique"
	ReasonNotValidForMonth  = "not_valid_for_month"
	ReasonTrimmedLength     = "trimmed_length"
	ReasonExactLength       = "exact_length"
)

// Outcome is the result of evaluating a single candidate.
// Reason, Message and Args are only set when Passed is false.
type Outcome struct {
	Passed  bool
	Reason  string
	Message string
	Args    map[string]any
}

// Validator evaluates a candidate value. A nil value means the candidate is absent.
// Implementations hold immutable configuration and are safe for concurrent use.
type Validator interface {
	Validate(value *string) Outcome
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(value *string) Outcome

func (f ValidatorFunc) Validate(value *string) Outcome {
	return f(value)
}

func pass() Outcome {
	return Outcome{Passed: true}
}

func fail(reason, message string, args map[string]any) Outcome {
	return Outcome{
		Reason:  reason,
		Message: message,
		Args:    args,
	}
}

// String returns a pointer to s, for passing present candidates to Validate.
func String(s string) *string {
	return &s
}
