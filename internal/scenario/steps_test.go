package scenario

import (
	"context"
	"errors"
	"testing"

	"calculator-bdd/internal/calculator"
)

func runText(t *testing.T, sc *Context, text string) error {
	t.Helper()

	def, args, ok := NewCalculatorRegistry().Match(text)
	if !ok {
		t.Fatalf("expected %q to match a step", text)
	}
	return def.Fn(context.Background(), sc, args)
}

func TestCalculatorStepsMatchTemplates(t *testing.T) {
	tests := []struct {
		text string
		name string
		args []string
	}{
		{text: "I have a calculator", name: "setup"},
		{text: "I add 5 and 3", name: "add", args: []string{"5", "3"}},
		{text: "I add -5 and +3", name: "add", args: []string{"-5", "+3"}},
		{text: "I subtract 3 from 10", name: "subtract", args: []string{"3", "10"}},
		{text: "I multiply 4 by 6", name: "multiply", args: []string{"4", "6"}},
		{text: "I divide 20 by 5", name: "divide", args: []string{"20", "5"}},
		{text: "the result should be 8", name: "assert", args: []string{"8"}},
	}

	reg := NewCalculatorRegistry()
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			def, args, ok := reg.Match(tc.text)
			if !ok {
				t.Fatalf("expected %q to match", tc.text)
			}
			if def.Name != tc.name {
				t.Fatalf("expected step %q, got %q", tc.name, def.Name)
			}
			if len(args) != len(tc.args) {
				t.Fatalf("expected args %v, got %v", tc.args, args)
			}
			for i := range args {
				if args[i] != tc.args[i] {
					t.Fatalf("expected args %v, got %v", tc.args, args)
				}
			}
		})
	}
}

func TestCalculatorStepsRejectNonIntegers(t *testing.T) {
	reg := NewCalculatorRegistry()
	for _, text := range []string{
		"I add 1.5 and 2",
		"I add five and 3",
		"I have a calculator please",
		"the result should be",
	} {
		if _, _, ok := reg.Match(text); ok {
			t.Fatalf("did not expect %q to match", text)
		}
	}
}

func TestOperandOutOfRangeFailsStep(t *testing.T) {
	sc := &Context{Calculator: calculator.New()}

	err := runText(t, sc, "I add 9223372036854775808 and 1")
	if err == nil {
		t.Fatal("expected parse error for an operand outside int64")
	}
	if sc.HasResult {
		t.Fatal("expected no result to be stored")
	}
}

func TestSetupStepCreatesFreshCalculator(t *testing.T) {
	sc := &Context{Result: calculator.Int(42), HasResult: true}

	if err := runText(t, sc, "I have a calculator"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sc.Calculator == nil {
		t.Fatal("expected calculator to be set")
	}
	if sc.HasResult {
		t.Fatal("expected result to be cleared")
	}
}

func TestArithmeticStepsStoreResult(t *testing.T) {
	tests := []struct {
		text string
		want calculator.Value
	}{
		{text: "I add 5 and 3", want: calculator.Int(8)},
		{text: "I add 9007199254740993 and 1", want: calculator.New().Add(9007199254740993, 1)},
		{text: "I subtract 3 from 10", want: calculator.Int(7)},
		{text: "I multiply 4 by 6", want: calculator.Int(24)},
		{text: "I divide 20 by 5", want: calculator.Real(4)},
		{text: "I divide 7 by 2", want: calculator.Real(3.5)},
	}

	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			sc := &Context{Calculator: calculator.New()}
			if err := runText(t, sc, tc.text); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sc.HasResult || !sc.Result.Equal(tc.want) || sc.Result.IsInt() != tc.want.IsInt() {
				t.Fatalf("expected result %s, got %s (set=%t)", tc.want, sc.Result, sc.HasResult)
			}
			if !sc.Calculator.Result().Equal(tc.want) {
				t.Fatalf("expected engine result %s, got %s", tc.want, sc.Calculator.Result())
			}
		})
	}
}

func TestDivideByZeroStepLeavesContextUntouched(t *testing.T) {
	sc := &Context{Calculator: calculator.New()}
	if err := runText(t, sc, "I add 2 and 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := runText(t, sc, "I divide 5 by 0")
	if !errors.Is(err, calculator.ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
	if !sc.Result.Equal(calculator.Int(4)) || !sc.Calculator.Result().Equal(calculator.Int(4)) {
		t.Fatalf("expected result 4 to survive, got context %s engine %s", sc.Result, sc.Calculator.Result())
	}
}

func TestActionBeforeSetupFails(t *testing.T) {
	err := runText(t, &Context{}, "I add 1 and 1")
	if !errors.Is(err, ErrNoCalculator) {
		t.Fatalf("expected ErrNoCalculator, got %v", err)
	}
}

func TestAssertionStep(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		sc := &Context{Result: calculator.Int(8), HasResult: true}
		if err := runText(t, sc, "the result should be 8"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("mismatch carries both values", func(t *testing.T) {
		sc := &Context{Result: calculator.Real(3.5), HasResult: true}
		err := runText(t, sc, "the result should be 3")

		var mismatch *AssertionError
		if !errors.As(err, &mismatch) {
			t.Fatalf("expected *AssertionError, got %v", err)
		}
		if mismatch.Expected != 3 || !mismatch.Actual.Equal(calculator.Real(3.5)) {
			t.Fatalf("expected 3 vs 3.5, got %+v", mismatch)
		}
		if err.Error() != "expected 3, got 3.5" {
			t.Fatalf("unexpected message %q", err.Error())
		}
	})

	t.Run("integer past float precision", func(t *testing.T) {
		sc := &Context{Calculator: calculator.New()}
		if err := runText(t, sc, "I add 9007199254740993 and 1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := runText(t, sc, "the result should be 9007199254740994"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := runText(t, sc, "the result should be 9007199254740992")
		if err == nil || err.Error() != "expected 9007199254740992, got 9007199254740994" {
			t.Fatalf("expected exact mismatch, got %v", err)
		}
	})

	t.Run("integral quotient", func(t *testing.T) {
		sc := &Context{Result: calculator.Real(4), HasResult: true}
		if err := runText(t, sc, "the result should be 4"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("no result yet", func(t *testing.T) {
		err := runText(t, &Context{}, "the result should be 0")
		if !errors.Is(err, ErrNoResult) {
			t.Fatalf("expected ErrNoResult, got %v", err)
		}
	})
}

func TestRegistryFirstMatchWins(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("specific", `I add 1 and 1`, func(context.Context, *Context, []string) error { return nil })
	reg.MustRegister("general", `I add (\d+) and (\d+)`, func(context.Context, *Context, []string) error { return nil })

	def, _, ok := reg.Match("I add 1 and 1")
	if !ok || def.Name != "specific" {
		t.Fatalf("expected specific step, got %q (ok=%t)", def.Name, ok)
	}

	if got := len(reg.Steps()); got != 2 {
		t.Fatalf("expected 2 steps, got %d", got)
	}
}

func TestRegistryRejectsInvalidPattern(t *testing.T) {
	err := NewRegistry().Register("broken", `I add (\d+ and`, nil)
	if err == nil {
		t.Fatal("expected compile error")
	}
}
