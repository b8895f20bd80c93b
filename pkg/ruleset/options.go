package ruleset

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/propcheck/pkg/corpus"
	"github.com/dmitrymomot/propcheck/pkg/logger"
)

// Option configures Compile.
type Option func(*options)

type options struct {
	postgres corpus.Querier
	redis    corpus.RedisReader
	logger   *slog.Logger
	now      func() time.Time
}

// WithPostgres enables corpora backed by PostgreSQL.
func WithPostgres(db corpus.Querier) Option {
	return func(o *options) {
		o.postgres = db
	}
}

// WithRedis enables corpora backed by Redis.
func WithRedis(client corpus.RedisReader) Option {
	return func(o *options) {
		o.redis = client
	}
}

// WithLogger sets the logger used for compile and validation summaries.
// Nil loggers are ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithClock overrides the clock read by valid_year rules.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func defaultOptions() *options {
	return &options{
		logger: logger.Discard(),
	}
}
