// Package corpus provides sources of existing values used by uniqueness and
// membership rules: an in-memory list, a column of a PostgreSQL table (pgx/v5)
// and a Redis set or list (go-redis/v9).
//
// A Source is read once when a rule is built; the resulting rule keeps its own
// snapshot, so later changes to the backing store are not observed until the
// rule is rebuilt.
//
//	pool, err := corpus.ConnectPostgres(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	src, err := corpus.NewPostgres(pool, "public.users", "username")
//	if err != nil {
//	    return err
//	}
//	values, err := src.Values(ctx)
//	if err != nil {
//	    return err
//	}
//	unique := validator.NewUnique(values)
//
// Connection helpers retry until the backing service answers a ping, using the
// retry settings from PostgresConfig and RedisConfig. Both configs are read
// from environment variables with caarlos0/env tags.
package corpus
