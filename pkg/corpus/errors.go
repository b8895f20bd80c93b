package corpus

import "errors"

var (
	ErrEmptyIdentifier       = errors.New("empty table or column name")
	ErrEmptyKey              = errors.New("empty redis key")
	ErrUnknownRedisKind      = errors.New("unknown redis key kind, expected set or list")
	ErrQueryFailed           = errors.New("failed to read corpus values from postgres")
	ErrRedisReadFailed       = errors.New("failed to read corpus values from redis")
	ErrMissingConnString     = errors.New("postgres connection string is not set")
	ErrFailedToParseDBConfig = errors.New("failed to parse postgres connection string")
	ErrPostgresNotReady      = errors.New("postgres did not become ready")
	ErrFailedToParseRedisURL = errors.New("failed to parse redis connection string")
	ErrRedisNotReady         = errors.New("redis did not become ready within the given time period")
)
