package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calculator"
)

// NewFuncsCommand creates the funcs subcommand.
func NewFuncsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "funcs",
		Args:  cobra.NoArgs,
		Short: "list built-in functions and constants",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tKIND\tUSAGE")
			for _, f := range calculator.Funcs() {
				kind := "function"
				if f.Const {
					kind = "constant"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", f.Name, kind, f.Usage())
			}
			return w.Flush()
		},
	}
}
