package ruleset

import "errors"

var (
	ErrInvalidDocument   = errors.New("invalid rule set document")
	ErrDuplicateField    = errors.New("field declared more than once")
	ErrUnknownRule       = errors.New("unknown rule kind")
	ErrMissingParam      = errors.New("missing rule parameter")
	ErrInvalidRule       = errors.New("invalid rule configuration")
	ErrUnknownCorpus     = errors.New("unknown corpus")
	ErrInvalidCorpus     = errors.New("corpus must declare exactly one of values, postgres or redis")
	ErrCorpusUnavailable = errors.New("corpus backend is not configured")
	ErrCorpusLoad        = errors.New("failed to load corpus")
)
