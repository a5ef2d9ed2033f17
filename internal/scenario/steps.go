package scenario

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"calculator-bdd/internal/calculator"
	"calculator-bdd/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// intArg captures a decimal, optionally signed integer.
const intArg = `([+-]?\d+)`

// NewCalculatorRegistry returns a registry holding the calculator steps.
func NewCalculatorRegistry() *Registry {
	r := NewRegistry()
	RegisterCalculatorSteps(r)
	return r
}

// RegisterCalculatorSteps adds the setup, arithmetic and assertion templates.
func RegisterCalculatorSteps(r *Registry) {
	r.MustRegister("setup", `I have a calculator`, haveCalculator)

	r.MustRegister("add", `I add `+intArg+` and `+intArg,
		binaryStep("add", false, func(c *calculator.Calculator, a, b int64) (calculator.Value, error) {
			return c.Add(a, b), nil
		}))

	// "I subtract 3 from 10" computes 10 - 3.
	r.MustRegister("subtract", `I subtract `+intArg+` from `+intArg,
		binaryStep("subtract", true, func(c *calculator.Calculator, a, b int64) (calculator.Value, error) {
			return c.Subtract(a, b), nil
		}))

	r.MustRegister("multiply", `I multiply `+intArg+` by `+intArg,
		binaryStep("multiply", false, func(c *calculator.Calculator, a, b int64) (calculator.Value, error) {
			return c.Multiply(a, b), nil
		}))

	r.MustRegister("divide", `I divide `+intArg+` by `+intArg,
		binaryStep("divide", false, (*calculator.Calculator).Divide))

	r.MustRegister("assert", `the result should be `+intArg, resultShouldBe)
}

func haveCalculator(ctx context.Context, sc *Context, args []string) error {
	sc.Calculator = calculator.New()
	sc.Result = calculator.Value{}
	sc.HasResult = false
	return nil
}

// binaryStep wraps one engine operation in a child span with operand
// attributes, timing metrics and a debug log. swap reverses the captured
// operands for templates that name b before a.
func binaryStep(opName string, swap bool, compute func(*calculator.Calculator, int64, int64) (calculator.Value, error)) StepFunc {
	return func(ctx context.Context, sc *Context, args []string) error {
		a, b, err := parseOperands(args)
		if err != nil {
			return err
		}
		if swap {
			a, b = b, a
		}

		if sc.Calculator == nil {
			return ErrNoCalculator
		}

		ctx, span := tracer.Start(ctx, "calculator."+opName,
			trace.WithAttributes(
				attribute.String("calculator.operation", opName),
				attribute.Int64("calculator.operand.a", a),
				attribute.Int64("calculator.operand.b", b),
			),
		)
		defer span.End()

		start := time.Now()
		result, err := compute(sc.Calculator, a, b)
		elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}

		attrs := metric.WithAttributes(attribute.String("operation", opName))
		opsCounter.Add(ctx, 1, attrs)
		opsHistogram.Record(ctx, elapsed, attrs)
		resultGauge.Record(ctx, result.Float64(), attrs)

		span.AddEvent("computation.complete", trace.WithAttributes(
			attribute.String("result", result.String()),
			attribute.Float64("duration_ms", elapsed),
		))
		span.SetAttributes(attribute.String("calculator.result", result.String()))
		span.SetStatus(codes.Ok, "")

		observability.LoggerWithTrace(ctx).Debug("calculator operation completed",
			zap.String("operation", opName),
			zap.Int64("a", a),
			zap.Int64("b", b),
			zap.Stringer("result", result),
			zap.Float64("duration_ms", elapsed),
		)

		sc.setResult(result)
		return nil
	}
}

func resultShouldBe(ctx context.Context, sc *Context, args []string) error {
	expected, err := parseInt(args[0])
	if err != nil {
		return err
	}

	if !sc.HasResult {
		return ErrNoResult
	}

	if !sc.Result.Equal(calculator.Int(expected)) {
		return &AssertionError{Expected: expected, Actual: sc.Result}
	}
	return nil
}

func parseOperands(args []string) (int64, int64, error) {
	if len(args) != 2 {
		return 0, 0, fmt.Errorf("expected 2 operands, got %d", len(args))
	}
	a, err := parseInt(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := parseInt(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func parseInt(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse integer %q: %w", s, err)
	}
	return n, nil
}
