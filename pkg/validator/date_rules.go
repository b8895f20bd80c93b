package validator

import (
	"fmt"
	"time"
)

const (
	// MinYear is the earliest year accepted by ValidYear.
	MinYear = 1950
	// YearsAhead is how far past the current year ValidYear reaches.
	YearsAhead = 2

	// dayOfMonthReferenceYear is a non-leap year, so February always has 28 days.
	dayOfMonthReferenceYear = 1950
)

// ValidMonth accepts integers from 1 to 12.
type ValidMonth struct{}

func (ValidMonth) Match(s string) bool {
	n, ok := parseInt(s)
	return ok && n >= 1 && n <= 12
}

func (r ValidMonth) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	return fail(ReasonInvalidMonth, "must be a valid month between 1 and 12", nil)
}

// ValidYear accepts integer years from MinYear to YearsAhead past the current
// year. The current year is read on every evaluation from Now, or time.Now
// when Now is nil.
type ValidYear struct {
	Now func() time.Time
}

func (r ValidYear) maxYear() int {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return now().Year() + YearsAhead
}

func (r ValidYear) Match(s string) bool {
	n, ok := parseInt(s)
	return ok && n >= MinYear && n <= r.maxYear()
}

func (r ValidYear) Validate(value *string) Outcome {
	maxYear := r.maxYear()
	if value != nil {
		if n, ok := parseInt(*value); ok && n >= MinYear && n <= maxYear {
			return pass()
		}
	}
	return fail(ReasonInvalidYear, fmt.Sprintf("must be a valid year between %d and %d", MinYear, maxYear), map[string]any{
		"min": MinYear,
		"max": maxYear,
	})
}

// ValidDate accepts text that parses as a calendar date. Absent values fail.
type ValidDate struct{}

func (ValidDate) Match(s string) bool {
	_, ok := parseDate(s)
	return ok
}

func (r ValidDate) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	return fail(ReasonInvalidDate, "must be a valid date", nil)
}

// Before accepts dates on or before Date. Only the calendar date is
// compared; the time of day on either side is ignored.
type Before struct {
	Date time.Time
}

func (r Before) Match(s string) bool {
	t, ok := parseDate(s)
	return ok && !dateOnly(t).After(dateOnly(r.Date))
}

func (r Before) Validate(value *string) Outcome {
	return compareDate(value, r.Match, ReasonBefore, "must be earlier than", r.Date)
}

// After accepts dates on or after Date. Only the calendar date is compared.
type After struct {
	Date time.Time
}

func (r After) Match(s string) bool {
	t, ok := parseDate(s)
	return ok && !dateOnly(t).Before(dateOnly(r.Date))
}

func (r After) Validate(value *string) Outcome {
	return compareDate(value, r.Match, ReasonAfter, "must be later than", r.Date)
}

// compareDate treats absent candidates as not applicable and reports
// unparseable ones as invalid dates.
func compareDate(value *string, match func(string) bool, reason, message string, ref time.Time) Outcome {
	if value == nil {
		return pass()
	}
	if _, ok := parseDate(*value); !ok {
		return fail(ReasonInvalidDate, "must be a valid date", nil)
	}
	if match(*value) {
		return pass()
	}
	date := ref.Format(time.DateOnly)
	return fail(reason, message+" "+date, map[string]any{
		"date": date,
	})
}

// DayOfMonth checks a day number against the month given as raw text.
//
// The month is not validated here: when it does not parse, or lies outside
// 1-12, every numeric day passes and the month's own rule reports the problem.
// Days are checked against a non-leap year, so February 29 is always rejected.
type DayOfMonth struct {
	month string
}

// NewDayOfMonth binds the rule to the month text.
func NewDayOfMonth(month string) DayOfMonth {
	return DayOfMonth{month: month}
}

// Month returns the bound month text.
func (r DayOfMonth) Month() string {
	return r.month
}

func (r DayOfMonth) Validate(value *string) Outcome {
	if value == nil {
		return fail(ReasonNotNumeric, "is not a valid number", nil)
	}
	day, ok := parseInt(*value)
	if !ok {
		return fail(ReasonNotNumeric, "is not a valid number", nil)
	}

	month, ok := parseInt(r.month)
	if !ok || month < 1 || month > 12 {
		return pass()
	}

	maxDay := daysIn(time.Month(month), dayOfMonthReferenceYear)
	if day > maxDay {
		return fail(ReasonNotValidForMonth, "is not a valid date during the month given", map[string]any{
			"day":     day,
			"month":   month,
			"max_day": maxDay,
		})
	}
	return pass()
}

func daysIn(m time.Month, year int) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
