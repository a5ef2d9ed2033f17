// Package calculator is the arithmetic engine driven by the scenario steps.
// It keeps a single result register that every successful operation
// overwrites. Add, Subtract and Multiply keep exact integers; Divide is the
// only operation that yields a real number.
package calculator

import (
	"errors"
	"fmt"
	"math/big"
)

// ErrDivisionByZero is returned by Divide when the divisor is zero.
var ErrDivisionByZero = errors.New("division by zero")

// Calculator holds the result of the last completed operation.
type Calculator struct {
	result Value
}

// New returns a calculator whose result register is zero.
func New() *Calculator {
	return &Calculator{}
}

// Add returns a + b.
func (c *Calculator) Add(a, b int64) Value {
	c.result = bigValue(new(big.Int).Add(big.NewInt(a), big.NewInt(b)))
	return c.result
}

// Subtract returns a - b.
func (c *Calculator) Subtract(a, b int64) Value {
	c.result = bigValue(new(big.Int).Sub(big.NewInt(a), big.NewInt(b)))
	return c.result
}

// Multiply returns a * b.
func (c *Calculator) Multiply(a, b int64) Value {
	c.result = bigValue(new(big.Int).Mul(big.NewInt(a), big.NewInt(b)))
	return c.result
}

// Divide returns a / b using real division, so 7 / 2 is 3.5. The quotient is
// rounded once to the nearest float64.
// The stored result is left untouched when b is zero.
func (c *Calculator) Divide(a, b int64) (Value, error) {
	if b == 0 {
		return Value{}, fmt.Errorf("%w: %d / %d", ErrDivisionByZero, a, b)
	}
	q, _ := new(big.Rat).SetFrac(big.NewInt(a), big.NewInt(b)).Float64()
	c.result = Real(q)
	return c.result, nil
}

// Result returns the value produced by the most recent successful operation.
func (c *Calculator) Result() Value {
	return c.result
}
