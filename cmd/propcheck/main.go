// Package main provides the propcheck binary. propcheck validates YAML
// documents of field values against a declarative rule set.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
)

const (
	Version = "0.1.0"
	appName = "propcheck"
)

// errValidationFailed signals that at least one document broke a rule. The
// failures themselves are already printed.
var errValidationFailed = errors.New("validation failed")

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		if !errors.Is(err, errValidationFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

type globalFlags struct {
	envFile   string
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Validate field values against declarative rules",
		Long: `propcheck evaluates YAML documents of field values against a rule set.

Rule sets declare numeric, date, membership, uniqueness and length rules per
field. Uniqueness and membership rules can read their existing values from
inline lists, PostgreSQL columns or Redis sets and lists.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "Env file to load before reading PROPCHECK_* variables")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides PROPCHECK_LOG_LEVEL")
	cmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format (text, json); overrides PROPCHECK_LOG_FORMAT")

	cmd.AddCommand(
		checkCmd(&flags),
		scaleCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, Version)
			},
		},
	)

	return cmd
}
