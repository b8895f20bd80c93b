package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/propcheck/pkg/decimal"
)

func scaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scale <decimal>...",
		Short: "Print the declared and significant scale of decimal literals",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VALUE\tSCALE\tSIGNIFICANT")

			var errs []error
			for _, arg := range args {
				v, err := decimal.Parse(arg)
				if err != nil {
					errs = append(errs, fmt.Errorf("%q: %w", arg, err))
					continue
				}
				fmt.Fprintf(w, "%s\t%d\t%d\n", v, v.Scale(false), v.Scale(true))
			}
			if err := w.Flush(); err != nil {
				return err
			}
			return errors.Join(errs...)
		},
	}
}
