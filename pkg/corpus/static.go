package corpus

import "context"

// Source yields the existing values a candidate is compared against.
// Nil entries stand for absent values and are skipped by uniqueness checks.
type Source interface {
	Values(ctx context.Context) ([]*string, error)
}

// Static is an in-memory corpus.
type Static []string

func (s Static) Values(context.Context) ([]*string, error) {
	out := make([]*string, len(s))
	for i := range s {
		v := s[i]
		out[i] = &v
	}
	return out, nil
}

// Strings drops nil entries and dereferences the rest.
func Strings(values []*string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != nil {
			out = append(out, *v)
		}
	}
	return out
}
