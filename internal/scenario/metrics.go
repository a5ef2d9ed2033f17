package scenario

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments. They are no-ops until InitMetrics runs.
var (
	opsCounter    metric.Int64Counter     = noop.Int64Counter{}
	opsHistogram  metric.Float64Histogram = noop.Float64Histogram{}
	resultGauge   metric.Float64Gauge     = noop.Float64Gauge{}
	stepsCounter  metric.Int64Counter     = noop.Int64Counter{}
	scenarioCount metric.Int64Counter     = noop.Int64Counter{}
	errorCounter  metric.Int64Counter     = noop.Int64Counter{}
	requestErrors metric.Int64Counter     = noop.Int64Counter{}
)

// InitMetrics registers the OTel instruments for calculator operations and
// scenario runs. Call it once at startup, after observability.InitMetrics.
func InitMetrics() error {
	meter := otel.Meter("scenario")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed by steps"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	stepsCounter, err = meter.Int64Counter("scenario.steps.total",
		metric.WithDescription("Executed steps by status"),
		metric.WithUnit("{step}"),
	)
	if err != nil {
		return fmt.Errorf("creating steps counter: %w", err)
	}

	scenarioCount, err = meter.Int64Counter("scenario.scenarios.total",
		metric.WithDescription("Executed scenarios by status"),
		metric.WithUnit("{scenario}"),
	)
	if err != nil {
		return fmt.Errorf("creating scenarios counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("scenario.step.errors.total",
		metric.WithDescription("Failed and undefined steps by step template"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	requestErrors, err = meter.Int64Counter("scenario.requests.errors.total",
		metric.WithDescription("Rejected scenario run requests"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating request error counter: %w", err)
	}

	return nil
}
