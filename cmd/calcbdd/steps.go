package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"calculator-bdd/internal/scenario"
)

func newStepsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "steps",
		Short: "List the step templates the runner understands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, def := range scenario.NewCalculatorRegistry().Steps() {
				fmt.Fprintf(cmd.OutOrStdout(), "%-9s %s\n", def.Name, def.Pattern)
			}
			return nil
		},
	}
}
