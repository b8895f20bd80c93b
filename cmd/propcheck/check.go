package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/propcheck/pkg/config"
	"github.com/dmitrymomot/propcheck/pkg/corpus"
	"github.com/dmitrymomot/propcheck/pkg/logger"
	"github.com/dmitrymomot/propcheck/pkg/ruleset"
	"github.com/dmitrymomot/propcheck/pkg/validator"
)

func checkCmd(flags *globalFlags) *cobra.Command {
	var rulesPath string

	cmd := &cobra.Command{
		Use:   "check [--rules rules.yaml] values.yaml...",
		Short: "Validate value documents against a rule set",
		Long: `Validate every YAML document in the given files against a rule set.

Each document maps field names to values. Missing fields and null values are
treated as absent. Failures are printed as "field: message" lines and the
command exits with status 1 when any document fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if rulesPath != "" {
				cfg.RulesFile = rulesPath
			}
			if cfg.RulesFile == "" {
				return errors.New("no rule set: pass --rules or set PROPCHECK_RULES_FILE")
			}

			log, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), rulesKey{}, cfg.RulesFile)
			return runCheck(ctx, log, cfg.RulesFile, args, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&rulesPath, "rules", "r", "", "Rule set file; overrides PROPCHECK_RULES_FILE")

	return cmd
}

func runCheck(ctx context.Context, log *slog.Logger, rulesPath string, files []string, out io.Writer) error {
	doc, err := ruleset.ParseFile(rulesPath)
	if err != nil {
		return err
	}

	opts := []ruleset.Option{ruleset.WithLogger(log)}

	if doc.UsesPostgres() {
		var pgCfg corpus.PostgresConfig
		if err := config.Load(&pgCfg); err != nil {
			return err
		}
		pool, err := corpus.ConnectPostgres(ctx, pgCfg)
		if err != nil {
			return err
		}
		defer pool.Close()
		opts = append(opts, ruleset.WithPostgres(pool))
	}

	if doc.UsesRedis() {
		var redisCfg corpus.RedisConfig
		if err := config.Load(&redisCfg); err != nil {
			return err
		}
		client, err := corpus.ConnectRedis(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()
		opts = append(opts, ruleset.WithRedis(client))
	}

	set, err := ruleset.Compile(ctx, doc, opts...)
	if err != nil {
		return err
	}

	failed := 0
	for _, path := range files {
		docs, err := readValues(path)
		if err != nil {
			return err
		}
		for i, values := range docs {
			err := set.Validate(ctx, values)
			verrs := validator.ExtractValidationErrors(err)
			if err != nil && verrs == nil {
				return err
			}
			if len(verrs) == 0 {
				continue
			}

			failed++
			if len(files) > 1 || len(docs) > 1 {
				fmt.Fprintf(out, "# %s (document %d)\n", path, i+1)
			}
			for _, e := range verrs {
				fmt.Fprintf(out, "%s: %s\n", e.Field, e.Message)
			}
		}
	}

	if failed > 0 {
		log.InfoContext(ctx, "check finished", logger.Count(failed), slog.String("result", "failed"))
		return errValidationFailed
	}
	log.InfoContext(ctx, "check finished", logger.Count(0), slog.String("result", "ok"))
	return nil
}

// readValues decodes every YAML document in path. Values keep their literal
// text, so "12.340" is not reformatted.
func readValues(path string) ([]map[string]*string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open values: %w", err)
	}
	defer f.Close()

	var docs []map[string]*string
	dec := yaml.NewDecoder(f)
	for {
		var values map[string]*string
		err := dec.Decode(&values)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode values %s: %w", path, err)
		}
		if values == nil {
			values = map[string]*string{}
		}
		docs = append(docs, values)
	}
	return docs, nil
}
