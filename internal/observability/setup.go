package observability

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// Providers selects the OTel providers started by Setup.
type Providers struct {
	Tracing   bool
	Metrics   bool
	LogExport bool
}

type shutdownFunc func(context.Context) error

// Setup starts the selected providers. The returned func shuts them down in
// reverse order, logs any failure once, and is safe to call when nothing was
// started.
func Setup(ctx context.Context, p Providers) (func(context.Context), error) {
	var shutdowns []shutdownFunc

	shutdown := func(ctx context.Context) {
		if err := shutdownAll(ctx, shutdowns); err != nil {
			Logger.Error("telemetry shutdown failed", zap.Error(err))
		}
	}

	steps := []struct {
		enabled bool
		init    func(context.Context) (func(context.Context) error, error)
	}{
		{p.Tracing, InitTracing},
		{p.Metrics, InitMetrics},
		{p.LogExport, InitLogging},
	}

	for _, step := range steps {
		if !step.enabled {
			continue
		}
		fn, err := step.init(ctx)
		if err != nil {
			shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}

// shutdownAll runs every func, last first, and joins their errors.
func shutdownAll(ctx context.Context, fns []shutdownFunc) error {
	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
