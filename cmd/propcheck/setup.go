package main

import (
	"io"
	"log/slog"

	"github.com/dmitrymomot/propcheck/pkg/config"
	"github.com/dmitrymomot/propcheck/pkg/logger"
)

// appConfig holds the settings read from PROPCHECK_* variables. Corpus
// backends have their own configs in package corpus and are only loaded when
// a rule set needs them.
type appConfig struct {
	LogLevel  string `env:"PROPCHECK_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"PROPCHECK_LOG_FORMAT" envDefault:"text"`
	RulesFile string `env:"PROPCHECK_RULES_FILE"`
}

// rulesKey carries the rule set path in contexts so every log line names it.
type rulesKey struct{}

func loadConfig(flags *globalFlags) (appConfig, error) {
	var cfg appConfig
	if flags.envFile != "" {
		if err := config.LoadEnv(flags.envFile); err != nil {
			return cfg, err
		}
	}
	if err := config.Load(&cfg); err != nil {
		return cfg, err
	}
	if flags.logLevel != "" {
		cfg.LogLevel = flags.logLevel
	}
	if flags.logFormat != "" {
		cfg.LogFormat = flags.logFormat
	}
	return cfg, nil
}

func newLogger(cfg appConfig, out io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	return logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithOutput(out),
		logger.WithAttr(logger.Component(appName)),
		logger.WithContextValue("rules", rulesKey{}),
	), nil
}
