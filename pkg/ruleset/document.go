package ruleset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is the YAML form of a rule set.
type Document struct {
	Corpora map[string]CorpusDef `yaml:"corpora"`
	Fields  []FieldDef           `yaml:"fields"`
}

// FieldDef lists the rules applied to one field, in evaluation order.
type FieldDef struct {
	Name  string    `yaml:"name"`
	Rules []RuleDef `yaml:"rules"`
}

// RuleDef declares a single rule. Only the parameters used by Rule are read.
type RuleDef struct {
	Rule       string   `yaml:"rule"`
	Low        *int     `yaml:"low,omitempty"`
	High       *int     `yaml:"high,omitempty"`
	Min        *int     `yaml:"min,omitempty"`
	Max        *int     `yaml:"max,omitempty"`
	Length     *int     `yaml:"length,omitempty"`
	Places     *int     `yaml:"places,omitempty"`
	Date       string   `yaml:"date,omitempty"`
	Options    []string `yaml:"options,omitempty"`
	Corpus     string   `yaml:"corpus,omitempty"`
	Month      *string  `yaml:"month,omitempty"`
	MonthField string   `yaml:"month_field,omitempty"`
}

// CorpusDef declares where the existing values of a corpus come from.
type CorpusDef struct {
	Values   []string     `yaml:"values,omitempty"`
	Postgres *PostgresDef `yaml:"postgres,omitempty"`
	Redis    *RedisDef    `yaml:"redis,omitempty"`
}

// validate reports ErrInvalidCorpus unless exactly one backend is declared.
func (c CorpusDef) validate() error {
	declared := 0
	if c.Values != nil {
		declared++
	}
	if c.Postgres != nil {
		declared++
	}
	if c.Redis != nil {
		declared++
	}
	if declared != 1 {
		return ErrInvalidCorpus
	}
	return nil
}

type PostgresDef struct {
	Table  string `yaml:"table"`
	Column string `yaml:"column"`
}

type RedisDef struct {
	Key  string `yaml:"key"`
	Kind string `yaml:"kind,omitempty"`
}

// Parse decodes a Document. Unknown keys are rejected.
func Parse(r io.Reader) (Document, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return Document{}, errors.Join(ErrInvalidDocument, err)
	}
	return doc, nil
}

// ParseFile decodes the Document stored at path.
func ParseFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open rule set: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// UsesPostgres reports whether a corpus referenced by some rule reads from
// PostgreSQL.
func (d Document) UsesPostgres() bool {
	for _, c := range d.referenced() {
		if c.Postgres != nil {
			return true
		}
	}
	return false
}

// UsesRedis reports whether a corpus referenced by some rule reads from Redis.
func (d Document) UsesRedis() bool {
	for _, c := range d.referenced() {
		if c.Redis != nil {
			return true
		}
	}
	return false
}

// referenced returns the declared corpora that at least one rule names.
func (d Document) referenced() []CorpusDef {
	var out []CorpusDef
	seen := make(map[string]bool)
	for _, fd := range d.Fields {
		for _, rd := range fd.Rules {
			if rd.Corpus == "" || seen[rd.Corpus] {
				continue
			}
			seen[rd.Corpus] = true
			if def, ok := d.Corpora[rd.Corpus]; ok {
				out = append(out, def)
			}
		}
	}
	return out
}
