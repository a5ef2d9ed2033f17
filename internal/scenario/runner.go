package scenario

import (
	"context"
	"fmt"
	"time"

	"calculator-bdd/internal/observability"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the scenario runner's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("scenario")

// Runner executes features against a step registry.
type Runner struct {
	registry *Registry
	tags     TagFilter
}

type Option func(*Runner)

// WithTags restricts the run to scenarios matching the tag expressions.
// Scenarios filtered out are reported as skipped.
func WithTags(exprs ...string) Option {
	return func(r *Runner) {
		r.tags = ParseTagFilter(exprs...)
	}
}

func NewRunner(registry *Registry, opts ...Option) *Runner {
	r := &Runner{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every scenario of features in order. Each scenario starts from
// a fresh Context. Once ctx is done the remaining scenarios are skipped.
func (r *Runner) Run(ctx context.Context, features ...*Feature) *Report {
	report := &Report{RunID: uuid.NewString()}

	ctx, span := tracer.Start(ctx, "scenario.run",
		trace.WithAttributes(
			attribute.String("run.id", report.RunID),
			attribute.Int("run.features", len(features)),
		),
	)
	defer span.End()

	logger := observability.LoggerWithTrace(ctx)
	logger.Info("starting scenario run",
		zap.String("run_id", report.RunID),
		zap.Int("features", len(features)),
	)

	for _, f := range features {
		report.add(r.runFeature(ctx, f))
	}

	if report.Failed() {
		span.SetStatus(codes.Error, fmt.Sprintf("%d scenarios failed", report.Summary.Scenarios.Failed))
	} else {
		span.SetStatus(codes.Ok, "")
	}

	logger.Info("scenario run completed",
		zap.String("run_id", report.RunID),
		zap.Int("scenarios_passed", report.Summary.Scenarios.Passed),
		zap.Int("scenarios_failed", report.Summary.Scenarios.Failed),
		zap.Int("scenarios_skipped", report.Summary.Scenarios.Skipped),
	)

	return report
}

func (r *Runner) runFeature(ctx context.Context, f *Feature) FeatureResult {
	ctx, span := tracer.Start(ctx, "scenario.feature",
		trace.WithAttributes(
			attribute.String("feature.name", f.Name),
			attribute.String("feature.uri", f.URI),
		),
	)
	defer span.End()

	fr := FeatureResult{URI: f.URI, Name: f.Name}
	for _, sc := range f.Expand() {
		var res ScenarioResult
		if ctx.Err() != nil || !r.tags.Match(sc.Tags) {
			res = skippedScenario(sc)
		} else {
			res = r.runScenario(ctx, sc)
		}
		scenarioCount.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(res.Status))))
		fr.Scenarios = append(fr.Scenarios, res)
	}
	fr.Status = featureStatus(fr.Scenarios)

	span.SetAttributes(attribute.String("feature.status", string(fr.Status)))
	return fr
}

func skippedScenario(sc Scenario) ScenarioResult {
	res := ScenarioResult{Name: sc.Name, Line: sc.Line, Tags: sc.Tags, Status: StatusSkipped}
	for _, st := range sc.Steps {
		res.Steps = append(res.Steps, skippedStep(st))
	}
	return res
}

func skippedStep(st Step) StepResult {
	return StepResult{Keyword: st.Keyword, Text: st.Text, Line: st.Line, Status: StatusSkipped}
}

// runScenario runs the steps of sc in order, creating a child span for every
// step. The first failed or undefined step fails the scenario and skips the
// rest.
func (r *Runner) runScenario(ctx context.Context, sc Scenario) ScenarioResult {
	ctx, span := tracer.Start(ctx, "scenario.scenario",
		trace.WithAttributes(
			attribute.String("scenario.name", sc.Name),
			attribute.Int("scenario.line", sc.Line),
			attribute.StringSlice("scenario.tags", sc.Tags),
		),
	)
	defer span.End()

	logger := observability.LoggerWithTrace(ctx).With(zap.String("scenario", sc.Name))

	state := &Context{}
	res := ScenarioResult{Name: sc.Name, Line: sc.Line, Tags: sc.Tags, Status: StatusPassed}

	for i, st := range sc.Steps {
		if res.Status != StatusPassed {
			res.Steps = append(res.Steps, skippedStep(st))
			stepsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(StatusSkipped))))
			continue
		}

		sr, err := r.runStep(ctx, logger, i, st, state)
		res.Steps = append(res.Steps, sr)
		stepsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("status", string(sr.Status))))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, fmt.Sprintf("failed at step %d", i))
			res.Status = StatusFailed
		}
	}

	if res.Status == StatusPassed {
		span.SetStatus(codes.Ok, "")
	}

	logger.Info("scenario completed",
		zap.String("status", string(res.Status)),
		zap.Int("line", sc.Line),
		zap.Int("steps", len(sc.Steps)),
	)
	return res
}

func (r *Runner) runStep(ctx context.Context, logger *zap.Logger, i int, st Step, state *Context) (StepResult, error) {
	sr := StepResult{Keyword: st.Keyword, Text: st.Text, Line: st.Line}

	def, args, ok := r.registry.Match(st.Text)
	name := def.Name
	if !ok {
		name = "undefined"
	}

	stepCtx, stepSpan := tracer.Start(ctx, fmt.Sprintf("scenario.step.%d.%s", i, name),
		trace.WithAttributes(
			attribute.Int("step.index", i),
			attribute.String("step.keyword", st.Keyword),
			attribute.String("step.text", st.Text),
			attribute.Int("step.line", st.Line),
		),
	)
	defer stepSpan.End()

	if !ok {
		err := fmt.Errorf("%w: %s", ErrUndefinedStep, st)
		observability.RecordError(stepCtx, stepSpan, logger, errorCounter, name, "undefined step", err,
			zap.Int("line", st.Line),
		)
		sr.Status = StatusUndefined
		sr.Error = err.Error()
		return sr, err
	}

	start := time.Now()
	err := callStep(stepCtx, def.Fn, state, args)
	sr.DurationMS = float64(time.Since(start).Microseconds()) / 1000.0

	if err != nil {
		observability.RecordError(stepCtx, stepSpan, logger, errorCounter, name, "step failed", err,
			zap.String("step", st.String()),
			zap.Int("line", st.Line),
		)
		sr.Status = StatusFailed
		sr.Error = err.Error()
		return sr, err
	}

	stepSpan.SetStatus(codes.Ok, "")
	logger.Debug("step passed",
		zap.String("step", st.String()),
		zap.Float64("duration_ms", sr.DurationMS),
	)
	sr.Status = StatusPassed
	return sr, nil
}

// callStep converts a panicking step into a step failure.
func callStep(ctx context.Context, fn StepFunc, state *Context, args []string) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("step panicked: %v", p)
		}
	}()
	return fn(ctx, state, args)
}
