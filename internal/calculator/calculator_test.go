package calculator

import (
	"errors"
	"math"
	"testing"
	"testing/quick"
)

var quickConfig = &quick.Config{MaxCount: 500}

func TestBinaryOperations(t *testing.T) {
	tests := []struct {
		name string
		op   func(c *Calculator, a, b int64) Value
		a, b int64
		want string
	}{
		{name: "add", op: (*Calculator).Add, a: 5, b: 3, want: "8"},
		{name: "add negatives", op: (*Calculator).Add, a: -5, b: -3, want: "-8"},
		{name: "add past 2^53", op: (*Calculator).Add, a: 9007199254740993, b: 1, want: "9007199254740994"},
		{name: "add past int64", op: (*Calculator).Add, a: math.MaxInt64, b: 1, want: "9223372036854775808"},
		{name: "subtract", op: (*Calculator).Subtract, a: 10, b: 3, want: "7"},
		{name: "subtract below zero", op: (*Calculator).Subtract, a: 3, b: 10, want: "-7"},
		{name: "subtract past int64", op: (*Calculator).Subtract, a: math.MinInt64, b: 1, want: "-9223372036854775809"},
		{name: "multiply", op: (*Calculator).Multiply, a: 4, b: 6, want: "24"},
		{name: "multiply by zero", op: (*Calculator).Multiply, a: 4, b: 0, want: "0"},
		{name: "multiply past int64", op: (*Calculator).Multiply, a: math.MaxInt64, b: 2, want: "18446744073709551614"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			got := tc.op(c, tc.a, tc.b)
			if !got.IsInt() || got.String() != tc.want {
				t.Fatalf("expected integer %s, got %s (int=%t)", tc.want, got, got.IsInt())
			}
			if !c.Result().Equal(got) {
				t.Fatalf("expected stored result %s, got %s", tc.want, c.Result())
			}
		})
	}
}

// wide spreads a 32-bit operand across the int64 range without letting a
// sum or difference with another 32-bit operand overflow.
func wide(a int32, shift uint8) int64 {
	return int64(a) << (shift % 31)
}

func TestIntegerOperationsAreExact(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		prop := func(a int32, shift uint8, b int32) bool {
			x, y := wide(a, shift), int64(b)
			got := New().Add(x, y)
			return got.IsInt() && got.BigInt().IsInt64() && got.BigInt().Int64() == x+y
		}
		if err := quick.Check(prop, quickConfig); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("subtract", func(t *testing.T) {
		prop := func(a int32, shift uint8, b int32) bool {
			x, y := wide(a, shift), int64(b)
			got := New().Subtract(x, y)
			return got.IsInt() && got.BigInt().IsInt64() && got.BigInt().Int64() == x-y
		}
		if err := quick.Check(prop, quickConfig); err != nil {
			t.Fatal(err)
		}
	})

	t.Run("multiply", func(t *testing.T) {
		prop := func(a, b int32) bool {
			x, y := int64(a), int64(b)
			got := New().Multiply(x, y)
			return got.IsInt() && got.BigInt().IsInt64() && got.BigInt().Int64() == x*y
		}
		if err := quick.Check(prop, quickConfig); err != nil {
			t.Fatal(err)
		}
	})
}

func TestDivideUsesRealDivision(t *testing.T) {
	c := New()

	got, err := c.Divide(7, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.IsInt() || got.Float64() != 3.5 {
		t.Fatalf("expected real 3.5, got %s", got)
	}
}

func TestDivideMatchesFloatQuotient(t *testing.T) {
	prop := func(a, b int32) bool {
		if b == 0 {
			return true
		}
		got, err := New().Divide(int64(a), int64(b))
		return err == nil && !got.IsInt() && got.Float64() == float64(a)/float64(b)
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Fatal(err)
	}
}

func TestDivideByZeroKeepsPreviousResult(t *testing.T) {
	c := New()
	c.Multiply(4, 6)

	_, err := c.Divide(5, 0)
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}

	if !c.Result().Equal(Int(24)) {
		t.Fatalf("expected stored result 24 to survive, got %s", c.Result())
	}
}

func TestDivideByZeroPreservesAnyResult(t *testing.T) {
	prop := func(a, b, numerator int64, divide bool) bool {
		c := New()
		if divide && b != 0 {
			c.Divide(a, b)
		} else {
			c.Multiply(a, b)
		}
		before := c.Result()

		_, err := c.Divide(numerator, 0)
		return errors.Is(err, ErrDivisionByZero) && c.Result().Equal(before)
	}
	if err := quick.Check(prop, quickConfig); err != nil {
		t.Fatal(err)
	}
}

func TestNewStartsAtZero(t *testing.T) {
	got := New().Result()
	if !got.IsInt() || !got.Equal(Int(0)) {
		t.Fatalf("expected integer 0, got %s", got)
	}
}

func TestRepeatedCallsAgree(t *testing.T) {
	ops := map[string]func(c *Calculator, a, b int64) (Value, error){
		"add": func(c *Calculator, a, b int64) (Value, error) { return c.Add(a, b), nil },
		"subtract": func(c *Calculator, a, b int64) (Value, error) {
			return c.Subtract(a, b), nil
		},
		"multiply": func(c *Calculator, a, b int64) (Value, error) {
			return c.Multiply(a, b), nil
		},
		"divide": (*Calculator).Divide,
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			prop := func(a, b int64) bool {
				c := New()
				first, err1 := op(c, a, b)
				second, err2 := op(c, a, b)
				fresh, err3 := op(New(), a, b)
				if (err1 == nil) != (err2 == nil) || (err1 == nil) != (err3 == nil) {
					return false
				}
				return first.Equal(second) && first.Equal(fresh)
			}
			if err := quick.Check(prop, quickConfig); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{name: "zero value is integer zero", a: Value{}, b: Int(0), want: true},
		{name: "integral real equals integer", a: Real(4), b: Int(4), want: true},
		{name: "fractional real", a: Real(3.5), b: Int(3), want: false},
		{name: "integer beyond float precision", a: New().Add(9007199254740993, 0), b: Real(9007199254740992), want: false},
		{name: "nan", a: Real(math.NaN()), b: Int(0), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Fatalf("expected %t, got %t", tc.want, got)
			}
			if got := tc.b.Equal(tc.a); got != tc.want {
				t.Fatalf("expected symmetric %t, got %t", tc.want, got)
			}
		})
	}
}

func BenchmarkAdd(b *testing.B) {
	c := New()
	for i := 0; i < b.N; i++ {
		c.Add(int64(i), 1)
	}
}
