package ruleset

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/dmitrymomot/propcheck/pkg/corpus"
	"github.com/dmitrymomot/propcheck/pkg/logger"
	"github.com/dmitrymomot/propcheck/pkg/validator"
)

// Rule kinds accepted in RuleDef.Rule.
const (
	KindValidInt        = "valid_int"
	KindValidDecimal    = "valid_decimal"
	KindValidByte       = "valid_byte"
	KindValidPercentage = "valid_percentage"
	KindBetween         = "between"
	KindGreaterThan     = "greater_than"
	KindDecimalPlaces   = "decimal_places"
	KindValidMonth      = "valid_month"
	KindValidYear       = "valid_year"
	KindValidDate       = "valid_date"
	KindBefore          = "before"
	KindAfter           = "after"
	KindIn              = "in"
	KindNotIn           = "not_in"
	KindUnique          = "unique"
	KindDayOfMonth      = "day_of_month"
	KindTrimmedLength   = "trimmed_length"
)

// Compile builds a Set from doc. Every rule is constructed up front, so a
// structurally invalid bound or an unknown rule fails here and never during
// validation. Every declared corpus must name exactly one backend, but a
// corpus is read once and only when a rule references it.
func Compile(ctx context.Context, doc Document, opts ...Option) (*Set, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	for _, name := range slices.Sorted(maps.Keys(doc.Corpora)) {
		if err := doc.Corpora[name].validate(); err != nil {
			return nil, fmt.Errorf("corpus %s: %w", name, err)
		}
	}

	c := &compiler{
		ctx:    ctx,
		opts:   o,
		doc:    doc,
		loaded: make(map[string][]*string),
	}

	set := &Set{logger: o.logger}
	seen := make(map[string]bool, len(doc.Fields))
	for _, fd := range doc.Fields {
		name := strings.TrimSpace(fd.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: field without name", ErrInvalidDocument)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateField, name)
		}
		seen[name] = true

		f := field{name: name}
		for i, rd := range fd.Rules {
			r, err := c.rule(rd)
			if err != nil {
				return nil, fmt.Errorf("field %s, rule %d (%s): %w", name, i+1, rd.Rule, err)
			}
			f.rules = append(f.rules, r)
		}
		set.fields = append(set.fields, f)
	}

	o.logger.DebugContext(ctx, "rule set compiled",
		"fields", len(set.fields),
		"corpora", len(c.loaded),
	)
	return set, nil
}

type compiler struct {
	ctx    context.Context
	opts   *options
	doc    Document
	loaded map[string][]*string
}

func (c *compiler) rule(rd RuleDef) (compiledRule, error) {
	kind := rd.Rule
	r := compiledRule{kind: kind}

	switch kind {
	case KindValidInt:
		r.validator = validator.ValidInt{}
	case KindValidDecimal:
		r.validator = validator.ValidDecimal{}
	case KindValidByte:
		r.validator = validator.ValidByte{}
	case KindValidPercentage:
		r.validator = validator.ValidPercentage{}
	case KindValidMonth:
		r.validator = validator.ValidMonth{}
	case KindValidYear:
		r.validator = validator.ValidYear{Now: c.opts.now}
	case KindValidDate:
		r.validator = validator.ValidDate{}

	case KindBetween:
		if rd.Low == nil || rd.High == nil {
			return r, fmt.Errorf("%w: low and high", ErrMissingParam)
		}
		v, err := validator.NewBetween(*rd.Low, *rd.High)
		if err != nil {
			return r, errors.Join(ErrInvalidRule, err)
		}
		r.validator = v

	case KindGreaterThan:
		if rd.Min == nil {
			return r, fmt.Errorf("%w: min", ErrMissingParam)
		}
		r.validator = validator.GreaterThan{Min: *rd.Min}

	case KindDecimalPlaces:
		if rd.Places == nil {
			return r, fmt.Errorf("%w: places", ErrMissingParam)
		}
		if *rd.Places < 0 {
			return r, fmt.Errorf("%w: places must not be negative", ErrInvalidRule)
		}
		r.validator = validator.DecimalPlaces{Max: *rd.Places}

	case KindBefore, KindAfter:
		if strings.TrimSpace(rd.Date) == "" {
			return r, fmt.Errorf("%w: date", ErrMissingParam)
		}
		ref, err := dateparse.ParseIn(strings.TrimSpace(rd.Date), time.UTC)
		if err != nil {
			return r, errors.Join(ErrInvalidRule, err)
		}
		if kind == KindBefore {
			r.validator = validator.Before{Date: ref}
		} else {
			r.validator = validator.After{Date: ref}
		}

	case KindIn:
		opts, err := c.options(rd)
		if err != nil {
			return r, err
		}
		v, err := validator.NewIn(opts...)
		if err != nil {
			return r, errors.Join(ErrInvalidRule, err)
		}
		r.validator = v

	case KindNotIn:
		opts, err := c.options(rd)
		if err != nil {
			return r, err
		}
		r.validator = validator.NewNotIn(opts...)

	case KindUnique:
		if rd.Corpus == "" {
			return r, fmt.Errorf("%w: corpus", ErrMissingParam)
		}
		values, err := c.corpus(rd.Corpus)
		if err != nil {
			return r, err
		}
		r.validator = validator.NewUnique(values)

	case KindDayOfMonth:
		switch {
		case rd.MonthField != "":
			r.monthField = rd.MonthField
		case rd.Month != nil:
			r.validator = validator.NewDayOfMonth(*rd.Month)
		default:
			return r, fmt.Errorf("%w: month or month_field", ErrMissingParam)
		}

	case KindTrimmedLength:
		v, err := trimmedLength(rd)
		if err != nil {
			return r, err
		}
		r.validator = v

	default:
		return r, fmt.Errorf("%w: %q", ErrUnknownRule, kind)
	}

	return r, nil
}

func trimmedLength(rd RuleDef) (validator.TrimmedLength, error) {
	var (
		v   validator.TrimmedLength
		err error
	)
	switch {
	case rd.Length != nil:
		v, err = validator.NewTrimmedExactLength(*rd.Length)
	case rd.Min != nil || rd.Max != nil:
		lo, hi := 0, validator.Unbounded
		if rd.Min != nil {
			lo = *rd.Min
		}
		if rd.Max != nil {
			hi = *rd.Max
		}
		v, err = validator.NewTrimmedLength(lo, hi)
	default:
		return v, fmt.Errorf("%w: length or min/max", ErrMissingParam)
	}
	if err != nil {
		return v, errors.Join(ErrInvalidRule, err)
	}
	return v, nil
}

// options returns inline options, or the values of the referenced corpus.
func (c *compiler) options(rd RuleDef) ([]string, error) {
	if rd.Corpus == "" {
		return rd.Options, nil
	}
	values, err := c.corpus(rd.Corpus)
	if err != nil {
		return nil, err
	}
	return append(corpus.Strings(values), rd.Options...), nil
}

func (c *compiler) corpus(name string) ([]*string, error) {
	if values, ok := c.loaded[name]; ok {
		return values, nil
	}

	def, ok := c.doc.Corpora[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCorpus, name)
	}
	src, err := c.source(def)
	if err != nil {
		return nil, fmt.Errorf("corpus %s: %w", name, err)
	}

	values, err := src.Values(c.ctx)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("%w: %s", ErrCorpusLoad, name), err)
	}
	c.opts.logger.DebugContext(c.ctx, "corpus loaded", logger.Corpus(name), logger.Count(len(values)))

	c.loaded[name] = values
	return values, nil
}

func (c *compiler) source(def CorpusDef) (corpus.Source, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}

	switch {
	case def.Postgres != nil:
		if c.opts.postgres == nil {
			return nil, fmt.Errorf("%w: postgres", ErrCorpusUnavailable)
		}
		return corpus.NewPostgres(c.opts.postgres, def.Postgres.Table, def.Postgres.Column)
	case def.Redis != nil:
		if c.opts.redis == nil {
			return nil, fmt.Errorf("%w: redis", ErrCorpusUnavailable)
		}
		return corpus.NewRedis(c.opts.redis, def.Redis.Key, def.Redis.Kind)
	default:
		return corpus.Static(def.Values), nil
	}
}
