package validator

import (
	"fmt"
	"strings"
)

// In accepts trimmed values matching one of its options, ignoring case.
// Blank and absent values fail.
type In struct {
	options []string
	folded  map[string]struct{}
}

// NewIn builds an In rule. At least one option is required.
func NewIn(options ...string) (In, error) {
	if len(options) == 0 {
		return In{}, ErrNoOptions
	}
	return In{
		options: append([]string(nil), options...),
		folded:  foldSet(options),
	}, nil
}

// Options returns a copy of the declared options.
func (r In) Options() []string {
	return append([]string(nil), r.options...)
}

func (r In) Match(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	_, ok := r.folded[fold(strings.TrimSpace(s))]
	return ok
}

func (r In) Validate(value *string) Outcome {
	if value != nil && r.Match(*value) {
		return pass()
	}
	formatted := formatOptions(r.options)
	return fail(ReasonNotInOptions, "must be one of these values: "+formatted, map[string]any{
		"options": formatted,
	})
}

// NotIn accepts trimmed values matching none of its options, ignoring case.
// Blank and absent values pass.
type NotIn struct {
	folded map[string]struct{}
}

// NewNotIn builds a NotIn rule. An empty option list accepts everything.
func NewNotIn(options ...string) NotIn {
	return NotIn{folded: foldSet(options)}
}

func (r NotIn) Match(s string) bool {
	if strings.TrimSpace(s) == "" {
		return true
	}
	_, ok := r.folded[fold(strings.TrimSpace(s))]
	return !ok
}

func (r NotIn) Validate(value *string) Outcome {
	if value == nil || r.Match(*value) {
		return pass()
	}
	return fail(ReasonInOptions, "already exists", nil)
}

// Unique accepts a value that occurs at most once in a corpus of existing
// values, comparing trimmed text without regard to case. The candidate's own
// stored copy counts as one occurrence. Nil corpus entries are skipped.
type Unique struct {
	counts map[string]int
}

// NewUnique builds a Unique rule over the corpus.
func NewUnique(corpus []*string) Unique {
	counts := make(map[string]int, len(corpus))
	for _, item := range corpus {
		if item == nil {
			continue
		}
		counts[fold(strings.TrimSpace(*item))]++
	}
	return Unique{counts: counts}
}

// NewUniqueStrings is NewUnique for a corpus without nil entries.
func NewUniqueStrings(corpus ...string) Unique {
	items := make([]*string, len(corpus))
	for i := range corpus {
		items[i] = &corpus[i]
	}
	return NewUnique(items)
}

// Count returns how many corpus entries match s.
func (r Unique) Count(s string) int {
	return r.counts[fold(strings.TrimSpace(s))]
}

func (r Unique) Match(s string) bool {
	return r.Count(s) <= 1
}

func (r Unique) Validate(value *string) Outcome {
	if value == nil || r.Match(*value) {
		return pass()
	}
	return fail(ReasonNotUnique, "must be unique", map[string]any{
		"count": r.Count(*value),
	})
}

func foldSet(options []string) map[string]struct{} {
	set := make(map[string]struct{}, len(options))
	for _, o := range options {
		set[fold(o)] = struct{}{}
	}
	return set
}

// formatOptions renders options as "a, b or c".
func formatOptions(options []string) string {
	switch len(options) {
	case 0:
		return ""
	case 1:
		return options[0]
	default:
		return fmt.Sprintf("%s or %s", strings.Join(options[:len(options)-1], ", "), options[len(options)-1])
	}
}
