// Package logger builds *slog.Logger values for propcheck commands.
//
// New takes functional options selecting the output format, the minimum level,
// static attributes and ContextExtractor callbacks. The handler it creates is
// wrapped in LogHandlerDecorator, which runs the extractors on every record so
// values stored in a context.Context (such as the rule set being evaluated)
// appear on each line logged with that context.
//
// ParseLevel and ParseFormat turn configuration strings into options input:
//
//	level, err := logger.ParseLevel(cfg.LogLevel)
//	if err != nil {
//		return err
//	}
//	format, err := logger.ParseFormat(cfg.LogFormat)
//	if err != nil {
//		return err
//	}
//	log := logger.New(
//		logger.WithLevel(level),
//		logger.WithFormat(format),
//		logger.WithContextValue("rules", rulesKey{}),
//	)
//
// Attribute helpers such as Field, Rule and Reason keep key names consistent
// between packages.
package logger
