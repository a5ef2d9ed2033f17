package main

import (
	"errors"
	"io"

	"github.com/spf13/cobra"

	"calculator-bdd/internal/config"
	"calculator-bdd/internal/observability"
)

// errScenariosFailed makes the process exit non-zero without printing
// anything beyond the report.
var errScenariosFailed = errors.New("scenarios failed")

func newRootCmd(out io.Writer) *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "calcbdd",
		Short:         "Behaviour-driven scenarios for a four-operation calculator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			return observability.InitLogger(logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.SyncLogger()
		},
	}

	cmd.SetOut(out)
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newStepsCmd())

	return cmd
}
