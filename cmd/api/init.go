package main

import (
	"context"

	"calculator-bdd/internal/config"
	"calculator-bdd/internal/observability"
	"calculator-bdd/internal/scenario"
)

// initTelemetry starts the OTel providers enabled in cfg and registers the
// scenario instruments.
func initTelemetry(ctx context.Context, cfg config.Config) (func(context.Context), error) {
	shutdown, err := observability.Setup(ctx, observability.Providers{
		Tracing:   cfg.Tracing,
		Metrics:   cfg.Metrics,
		LogExport: cfg.LogExport,
	})
	if err != nil {
		return nil, err
	}

	if err := scenario.InitMetrics(); err != nil {
		shutdown(ctx)
		return nil, err
	}

	return shutdown, nil
}
