package corpus

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds connection settings for a corpus database.
type PostgresConfig struct {
	ConnectionString string        `env:"PROPCHECK_PG_CONN_URL"`                      // ConnectionString is the postgres connection URL.
	MaxOpenConns     int32         `env:"PROPCHECK_PG_MAX_OPEN_CONNS" envDefault:"4"` // MaxOpenConns is the maximum number of open connections.
	RetryAttempts    int           `env:"PROPCHECK_PG_RETRY_ATTEMPTS" envDefault:"3"` // RetryAttempts is the number of connection attempts.
	RetryInterval    time.Duration `env:"PROPCHECK_PG_RETRY_INTERVAL" envDefault:"2s"` // RetryInterval is the base delay between attempts.
}

// ConnectPostgres opens a connection pool and pings it, retrying with a
// linearly growing delay: attempt n waits n*RetryInterval. The last failed
// attempt returns at once.
func ConnectPostgres(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	// pgx falls back to libpq defaults for an empty string, which would dial localhost.
	if cfg.ConnectionString == "" {
		return nil, ErrMissingConnString
	}
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	if cfg.MaxOpenConns > 0 {
		connConfig.MaxConns = cfg.MaxOpenConns
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}
		lastErr = err
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrPostgresNotReady, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrPostgresNotReady, lastErr)
}

// Querier is the subset of *pgxpool.Pool and *pgx.Conn used by Postgres.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Postgres reads a corpus from one column of a table. NULLs become nil entries.
type Postgres struct {
	db    Querier
	query string
}

// NewPostgres builds a source for column of table. The table may be schema
// qualified ("public.users"). Identifiers are quoted, never interpolated raw.
func NewPostgres(db Querier, table, column string) (*Postgres, error) {
	if strings.TrimSpace(table) == "" || strings.TrimSpace(column) == "" {
		return nil, ErrEmptyIdentifier
	}

	tableIdent := pgx.Identifier(strings.Split(table, "."))
	columnIdent := pgx.Identifier{column}

	return &Postgres{
		db:    db,
		query: fmt.Sprintf("SELECT %s::text FROM %s", columnIdent.Sanitize(), tableIdent.Sanitize()),
	}, nil
}

// Query returns the SQL statement the source runs.
func (p *Postgres) Query() string {
	return p.query
}

func (p *Postgres) Values(ctx context.Context) ([]*string, error) {
	rows, err := p.db.Query(ctx, p.query)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	values, err := pgx.CollectRows(rows, pgx.RowTo[*string])
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return values, nil
}
