package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"calculator-bdd/features"
	"calculator-bdd/internal/config"
	"calculator-bdd/internal/observability"
	"calculator-bdd/internal/scenario"
)

type runOptions struct {
	tags   []string
	format string
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [paths...]",
		Short: "Run feature files or directories; the bundled features run when none are given",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFeatures(cmd, opts, args)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.tags, "tags", "t", nil, "only run scenarios matching the tag expression (@a,@b is either; ~@a excludes); repeatable")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "pretty", "output format ("+strings.Join(scenario.Formats, ", ")+")")

	return cmd
}

func runFeatures(cmd *cobra.Command, opts *runOptions, paths []string) error {
	ctx := cmd.Context()

	formatter, err := scenario.NewFormatter(opts.format)
	if err != nil {
		return err
	}

	var feats []*scenario.Feature
	if len(paths) == 0 {
		feats, err = scenario.LoadFS(features.FS, features.Pattern)
	} else {
		feats, err = scenario.LoadFiles(paths...)
	}
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdown, err := observability.Setup(ctx, observability.Providers{
		Tracing:   cfg.Tracing,
		Metrics:   cfg.Metrics,
		LogExport: cfg.LogExport,
	})
	if err != nil {
		return fmt.Errorf("start telemetry: %w", err)
	}
	defer shutdown(context.WithoutCancel(ctx))

	if err := scenario.InitMetrics(); err != nil {
		return err
	}

	runner := scenario.NewRunner(scenario.NewCalculatorRegistry(), scenario.WithTags(opts.tags...))
	report := runner.Run(ctx, feats...)

	if err := formatter.Format(cmd.OutOrStdout(), report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if report.Failed() {
		return errScenariosFailed
	}
	return nil
}
