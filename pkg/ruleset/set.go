package ruleset

import (
	"context"
	"io"
	"log/slog"

	"github.com/dmitrymomot/propcheck/pkg/logger"
	"github.com/dmitrymomot/propcheck/pkg/validator"
)

// Set is a compiled, immutable rule set. It is safe for concurrent use.
type Set struct {
	fields []field
	logger *slog.Logger
}

type field struct {
	name  string
	rules []compiledRule
}

type compiledRule struct {
	kind      string
	validator validator.Validator
	// monthField names the field holding the month for day_of_month rules
	// bound at evaluation time.
	monthField string
}

func (r compiledRule) bind(values map[string]*string) validator.Validator {
	if r.monthField == "" {
		return r.validator
	}
	month := ""
	if m := values[r.monthField]; m != nil {
		month = *m
	}
	return validator.NewDayOfMonth(month)
}

// Load parses and compiles a rule set document.
func Load(ctx context.Context, r io.Reader, opts ...Option) (*Set, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return Compile(ctx, doc, opts...)
}

// LoadFile parses and compiles the rule set stored at path.
func LoadFile(ctx context.Context, path string, opts ...Option) (*Set, error) {
	doc, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(ctx, doc, opts...)
}

// Fields returns the declared field names in order.
func (s *Set) Fields() []string {
	names := make([]string, len(s.fields))
	for i, f := range s.fields {
		names[i] = f.name
	}
	return names
}

// Rules returns the rule kinds declared for a field, in order.
func (s *Set) Rules(name string) []string {
	for _, f := range s.fields {
		if f.name != name {
			continue
		}
		kinds := make([]string, len(f.rules))
		for i, r := range f.rules {
			kinds[i] = r.kind
		}
		return kinds
	}
	return nil
}

// Evaluate runs every rule against values and returns one Rule per
// evaluation, in declaration order. Missing fields are absent candidates.
func (s *Set) Evaluate(values map[string]*string) []validator.Rule {
	var rules []validator.Rule
	for _, f := range s.fields {
		for _, r := range f.rules {
			rules = append(rules, validator.Check(f.name, values[f.name], r.bind(values)))
		}
	}
	return rules
}

// Validate evaluates values and returns validator.ValidationErrors when any
// rule fails, or nil.
func (s *Set) Validate(ctx context.Context, values map[string]*string) error {
	err := validator.Apply(s.Evaluate(values)...)

	failed := validator.ExtractValidationErrors(err)
	for _, e := range failed {
		s.logger.DebugContext(ctx, "rule failed", logger.Field(e.Field), logger.Reason(e.Reason))
	}
	s.logger.DebugContext(ctx, "values validated",
		"fields", len(s.fields),
		"failures", len(failed),
	)
	return err
}
