package ruleset_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/propcheck/pkg/ruleset"
	"github.com/dmitrymomot/propcheck/pkg/validator"
)

const orderRules = `
corpora:
  skus:
    values: [SKU-1, sku-1, SKU-2]
  reserved:
    values: [admin, root]
fields:
  - name: quantity
    rules:
      - rule: valid_int
      - rule: between
        low: 1
        high: 100
  - name: price
    rules:
      - rule: valid_decimal
      - rule: decimal_places
        places: 2
      - rule: greater_than
        min: 0
  - name: discount
    rules:
      - rule: valid_percentage
  - name: code
    rules:
      - rule: trimmed_length
        min: 2
        max: 4
  - name: country
    rules:
      - rule: in
        options: [DE, FR, US]
  - name: username
    rules:
      - rule: not_in
        corpus: reserved
  - name: sku
    rules:
      - rule: unique
        corpus: skus
  - name: month
    rules:
      - rule: valid_month
  - name: day
    rules:
      - rule: day_of_month
        month_field: month
  - name: year
    rules:
      - rule: valid_year
  - name: shipped
    rules:
      - rule: valid_date
      - rule: after
        date: "2024-01-01"
      - rule: before
        date: "2030-12-31"
  - name: gift
    rules:
      - rule: valid_byte
  - name: pin
    rules:
      - rule: trimmed_length
        length: 4
`

func str(s string) *string { return &s }

func fixedClock() time.Time {
	return time.Date(2026, time.October, 16, 0, 0, 0, 0, time.UTC)
}

func loadOrderRules(t *testing.T) *ruleset.Set {
	t.Helper()
	set, err := ruleset.Load(context.Background(), strings.NewReader(orderRules), ruleset.WithClock(fixedClock))
	require.NoError(t, err)
	return set
}

func validOrder() map[string]*string {
	return map[string]*string{
		"quantity": str("007"),
		"price":    str("12.340"),
		"discount": str("12.5"),
		"code":     str("  ab  "),
		"country":  str("de"),
		"username": str("alice"),
		"sku":      str("sku-2"),
		"month":    str("2"),
		"day":      str("28"),
		"year":     str("2028"),
		"shipped":  str("2025-03-01 10:00:00"),
		"gift":     str("1"),
		"pin":      str(" 1234 "),
	}
}

func TestLoad_Structure(t *testing.T) {
	t.Parallel()

	set := loadOrderRules(t)
	assert.Equal(t, []string{
		"quantity", "price", "discount", "code", "country", "username",
		"sku", "month", "day", "year", "shipped", "gift", "pin",
	}, set.Fields())
	assert.Equal(t, []string{"valid_decimal", "decimal_places", "greater_than"}, set.Rules("price"))
	assert.Nil(t, set.Rules("missing"))
}

func TestSet_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		set := loadOrderRules(t)
		assert.NoError(t, set.Validate(context.Background(), validOrder()))
	})

	t.Run("collects failures per field", func(t *testing.T) {
		set := loadOrderRules(t)

		values := validOrder()
		values["quantity"] = str("0.5")
		values["price"] = str("12.345")
		values["code"] = str("abcde")
		values["country"] = str("IT")
		values["username"] = str(" ROOT ")
		values["sku"] = str("SKU-1")
		values["day"] = str("29")
		values["year"] = str("2029")
		values["shipped"] = str("2023-12-31")
		values["gift"] = str("2")
		values["pin"] = str("123")

		err := set.Validate(context.Background(), values)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)

		reasons := map[string][]string{}
		for _, e := range verrs {
			reasons[e.Field] = append(reasons[e.Field], e.Reason)
		}
		assert.Equal(t, map[string][]string{
			"quantity": {validator.ReasonInvalidInt, validator.ReasonBetween},
			"price":    {validator.ReasonDecimalPlaces},
			"code":     {validator.ReasonTrimmedLength},
			"country":  {validator.ReasonNotInOptions},
			"username": {validator.ReasonInOptions},
			"sku":      {validator.ReasonNotUnique},
			"day":      {validator.ReasonNotValidForMonth},
			"year":     {validator.ReasonInvalidYear},
			"shipped":  {validator.ReasonAfter},
			"gift":     {validator.ReasonInvalidByte},
			"pin":      {validator.ReasonExactLength},
		}, reasons)

		code := verrs.GetErrors("code")
		require.Len(t, code, 1)
		assert.Equal(t, 5, code[0].TranslationValues["TotalLength"])
	})

	t.Run("day is checked against the month field", func(t *testing.T) {
		set := loadOrderRules(t)

		values := validOrder()
		values["month"] = str("1")
		values["day"] = str("31")
		assert.NoError(t, set.Validate(context.Background(), values))

		values["month"] = str("not a month")
		err := set.Validate(context.Background(), values)
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)
		assert.Equal(t, []string{"month"}, verrs.Fields())
	})

	t.Run("missing fields are absent", func(t *testing.T) {
		set := loadOrderRules(t)

		err := set.Validate(context.Background(), map[string]*string{})
		verrs := validator.ExtractValidationErrors(err)
		require.NotNil(t, verrs)

		assert.False(t, verrs.Has("code"), "absent value has no length violation")
		assert.False(t, verrs.Has("username"), "absent value is not in the reserved list")
		assert.False(t, verrs.Has("sku"), "absent value is unique")
		assert.True(t, verrs.Has("quantity"))
		assert.True(t, verrs.Has("day"))
	})
}

func TestSet_LogsSummary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	set, err := ruleset.Load(context.Background(), strings.NewReader(orderRules),
		ruleset.WithClock(fixedClock), ruleset.WithLogger(log))
	require.NoError(t, err)
	require.NoError(t, set.Validate(context.Background(), validOrder()))

	out := buf.String()
	assert.Contains(t, out, "rule set compiled")
	assert.Contains(t, out, "corpus loaded")
	assert.Contains(t, out, "values validated")
	assert.Contains(t, out, "failures=0")
}

func TestCompile_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		yaml string
		want error
	}{
		{
			name: "inverted length bounds",
			yaml: "fields:\n  - name: code\n    rules:\n      - rule: trimmed_length\n        min: 5\n        max: 2\n",
			want: validator.ErrInvalidLengthRange,
		},
		{
			name: "zero exact length",
			yaml: "fields:\n  - name: code\n    rules:\n      - rule: trimmed_length\n        length: 0\n",
			want: validator.ErrInvalidExactLength,
		},
		{
			name: "inverted range",
			yaml: "fields:\n  - name: qty\n    rules:\n      - rule: between\n        low: 10\n        high: 1\n",
			want: validator.ErrInvalidRange,
		},
		{
			name: "in without options",
			yaml: "fields:\n  - name: c\n    rules:\n      - rule: in\n",
			want: validator.ErrNoOptions,
		},
		{
			name: "unknown rule",
			yaml: "fields:\n  - name: c\n    rules:\n      - rule: shiny\n",
			want: ruleset.ErrUnknownRule,
		},
		{
			name: "missing parameter",
			yaml: "fields:\n  - name: c\n    rules:\n      - rule: decimal_places\n",
			want: ruleset.ErrMissingParam,
		},
		{
			name: "missing month",
			yaml: "fields:\n  - name: d\n    rules:\n      - rule: day_of_month\n",
			want: ruleset.ErrMissingParam,
		},
		{
			name: "bad reference date",
			yaml: "fields:\n  - name: d\n    rules:\n      - rule: before\n        date: someday\n",
			want: ruleset.ErrInvalidRule,
		},
		{
			name: "unknown corpus",
			yaml: "fields:\n  - name: u\n    rules:\n      - rule: unique\n        corpus: nope\n",
			want: ruleset.ErrUnknownCorpus,
		},
		{
			name: "ambiguous corpus",
			yaml: "corpora:\n  c:\n    values: [a]\n    redis: {key: k}\nfields:\n  - name: u\n    rules:\n      - rule: unique\n        corpus: c\n",
			want: ruleset.ErrInvalidCorpus,
		},
		{
			name: "unreferenced corpus without backend",
			yaml: "corpora:\n  c: {}\nfields: []\n",
			want: ruleset.ErrInvalidCorpus,
		},
		{
			name: "unreferenced corpus with two backends",
			yaml: "corpora:\n  c:\n    values: [a]\n    redis: {key: k}\nfields:\n  - name: u\n    rules:\n      - rule: valid_int\n",
			want: ruleset.ErrInvalidCorpus,
		},
		{
			name: "postgres not configured",
			yaml: "corpora:\n  c:\n    postgres: {table: users, column: name}\nfields:\n  - name: u\n    rules:\n      - rule: unique\n        corpus: c\n",
			want: ruleset.ErrCorpusUnavailable,
		},
		{
			name: "duplicate field",
			yaml: "fields:\n  - name: a\n  - name: a\n",
			want: ruleset.ErrDuplicateField,
		},
		{
			name: "unnamed field",
			yaml: "fields:\n  - rules: []\n",
			want: ruleset.ErrInvalidDocument,
		},
		{
			name: "unknown key",
			yaml: "fields:\n  - name: a\n    rulez: []\n",
			want: ruleset.ErrInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := ruleset.Load(context.Background(), strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, set)
		})
	}
}

func TestCompile_StaticMonth(t *testing.T) {
	t.Parallel()

	doc := ruleset.Document{Fields: []ruleset.FieldDef{{
		Name:  "day",
		Rules: []ruleset.RuleDef{{Rule: ruleset.KindDayOfMonth, Month: str("4")}},
	}}}
	set, err := ruleset.Compile(context.Background(), doc)
	require.NoError(t, err)

	assert.NoError(t, set.Validate(context.Background(), map[string]*string{"day": str("30")}))
	assert.Error(t, set.Validate(context.Background(), map[string]*string{"day": str("31")}))
}

type fakeRedis struct {
	members []string
}

func (f *fakeRedis) SMembers(context.Context, string) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(f.members, nil)
}

func (f *fakeRedis) LRange(context.Context, string, int64, int64) *redis.StringSliceCmd {
	return redis.NewStringSliceResult(f.members, nil)
}

func TestCompile_RedisCorpus(t *testing.T) {
	t.Parallel()

	doc := `
corpora:
  tags:
    redis: {key: tags, kind: list}
fields:
  - name: tag
    rules:
      - rule: unique
        corpus: tags
  - name: known
    rules:
      - rule: in
        corpus: tags
        options: [extra]
`
	set, err := ruleset.Load(context.Background(), strings.NewReader(doc),
		ruleset.WithRedis(&fakeRedis{members: []string{"go", "Go", "rust"}}))
	require.NoError(t, err)

	err = set.Validate(context.Background(), map[string]*string{"tag": str("go"), "known": str("EXTRA")})
	verrs := validator.ExtractValidationErrors(err)
	require.NotNil(t, verrs)
	assert.Equal(t, []string{"tag"}, verrs.Fields())

	assert.NoError(t, set.Validate(context.Background(), map[string]*string{"tag": str("rust"), "known": str("Rust")}))
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(orderRules), 0o600))

	set, err := ruleset.LoadFile(context.Background(), path, ruleset.WithClock(fixedClock))
	require.NoError(t, err)
	assert.Len(t, set.Fields(), 13)

	_, err = ruleset.LoadFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDocument_Backends(t *testing.T) {
	t.Parallel()

	t.Run("referenced corpus", func(t *testing.T) {
		doc, err := ruleset.Parse(strings.NewReader(
			"corpora:\n  a:\n    postgres: {table: t, column: c}\n  b:\n    redis: {key: k}\n" +
				"fields:\n  - name: u\n    rules:\n      - rule: unique\n        corpus: a\n",
		))
		require.NoError(t, err)
		assert.True(t, doc.UsesPostgres())
		assert.False(t, doc.UsesRedis())
	})

	t.Run("unreferenced corpora need no connection", func(t *testing.T) {
		doc, err := ruleset.Parse(strings.NewReader("corpora:\n  a:\n    postgres: {table: t, column: c}\n  b:\n    redis: {key: k}\n"))
		require.NoError(t, err)
		assert.False(t, doc.UsesPostgres())
		assert.False(t, doc.UsesRedis())

		set, err := ruleset.Compile(context.Background(), doc)
		require.NoError(t, err)
		assert.NotNil(t, set)
	})

	empty, err := ruleset.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.False(t, empty.UsesPostgres())
	assert.Empty(t, empty.Fields)
}
