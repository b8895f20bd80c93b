package corpus

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds connection settings for a corpus Redis server.
type RedisConfig struct {
	ConnectionURL  string        `env:"PROPCHECK_REDIS_URL"`                           // ConnectionURL is in the format "redis://:password@localhost:6379/0".
	RetryAttempts  int           `env:"PROPCHECK_REDIS_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"PROPCHECK_REDIS_RETRY_INTERVAL" envDefault:"2s"` // RetryInterval is the delay between attempts.
	ConnectTimeout time.Duration `env:"PROPCHECK_REDIS_CONNECT_TIMEOUT" envDefault:"10s"`
}

// ConnectRedis creates a client and waits until it answers PING. On failure
// the error of the last attempt is joined to ErrRedisNotReady.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisURL, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	attempts := max(cfg.RetryAttempts, 1)
	var lastErr error
	for i := range attempts {
		client := redis.NewClient(opts)
		err := client.Ping(ctx).Err()
		if err == nil {
			return client, nil
		}
		_ = client.Close()
		lastErr = err
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(cfg.RetryInterval):
		}
	}

	return nil, errors.Join(ErrRedisNotReady, lastErr)
}

// Redis key kinds.
const (
	RedisSet  = "set"
	RedisList = "list"
)

// RedisReader is the subset of redis.Cmdable used by Redis.
type RedisReader interface {
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
}

// Redis reads a corpus from a set (SMEMBERS) or a list (LRANGE 0 -1).
// Lists keep duplicates; sets only collapse exact duplicates, so
// case-insensitive matches can still repeat.
type Redis struct {
	client RedisReader
	key    string
	kind   string
}

// NewRedis builds a source for key. An empty kind means RedisSet.
func NewRedis(client RedisReader, key, kind string) (*Redis, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	switch kind {
	case "":
		kind = RedisSet
	case RedisSet, RedisList:
	default:
		return nil, ErrUnknownRedisKind
	}
	return &Redis{client: client, key: key, kind: kind}, nil
}

func (r *Redis) Values(ctx context.Context) ([]*string, error) {
	var cmd *redis.StringSliceCmd
	if r.kind == RedisList {
		cmd = r.client.LRange(ctx, r.key, 0, -1)
	} else {
		cmd = r.client.SMembers(ctx, r.key)
	}

	members, err := cmd.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, errors.Join(ErrRedisReadFailed, err)
	}
	return Static(members).Values(ctx)
}
