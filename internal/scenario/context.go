package scenario

import (
	"errors"
	"fmt"

	"calculator-bdd/internal/calculator"
)

var (
	// ErrNoCalculator is returned by an action step that runs before setup.
	ErrNoCalculator = errors.New("no calculator: missing \"I have a calculator\" step")
	// ErrNoResult is returned by an assertion that runs before any action.
	ErrNoResult = errors.New("no result: no operation has completed")
	// ErrUndefinedStep marks step text that matches no template.
	ErrUndefinedStep = errors.New("undefined step")
)

// Context is the state of one scenario execution.
type Context struct {
	Calculator *calculator.Calculator
	Result     calculator.Value
	HasResult  bool
}

func (c *Context) setResult(v calculator.Value) {
	c.Result = v
	c.HasResult = true
}

// AssertionError reports a result that differs from the expected value.
type AssertionError struct {
	Expected int64
	Actual   calculator.Value
}

func (e *AssertionError) Error() string {
	return fmt.Sprintf("expected %d, got %s", e.Expected, e.Actual)
}
