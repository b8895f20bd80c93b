// Package config loads process configuration from environment variables.
//
// It combines github.com/joho/godotenv, which reads .env files into the
// environment, with github.com/caarlos0/env/v11, which maps variables onto
// struct fields through `env` tags. Parsed structs are cached per type so
// every package that calls Load for the same type sees one consistent value.
//
// # Usage
//
//	type Config struct {
//		LogLevel  string `env:"PROPCHECK_LOG_LEVEL" envDefault:"info"`
//		LogFormat string `env:"PROPCHECK_LOG_FORMAT" envDefault:"text"`
//	}
//
//	if err := config.LoadEnv("propcheck.env"); err != nil {
//		return err
//	}
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// LoadEnv never overrides variables that are already set, so real environment
// values win over file contents. ResetCache forces the next Load to parse
// again, which tests use after changing variables.
//
// # Errors
//
//   - ErrNilPointer when Load receives a nil pointer.
//   - ErrParsingConfig wrapping the env library error, for example a missing
//     required variable or a value of the wrong type.
//   - ErrLoadingEnvFile when an explicitly requested env file cannot be read.
package config
