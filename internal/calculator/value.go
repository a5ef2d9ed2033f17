package calculator

import (
	"math"
	"math/big"
	"strconv"
)

// Value is a calculator result: an exact integer, or a real number produced
// by division. The zero Value is the integer 0.
type Value struct {
	n      *big.Int // nil means zero; never mutated once set
	f      float64
	isReal bool
}

// Int returns the integer value n.
func Int(n int64) Value {
	return Value{n: big.NewInt(n)}
}

// Real returns the real value f.
func Real(f float64) Value {
	return Value{f: f, isReal: true}
}

func bigValue(n *big.Int) Value {
	return Value{n: n}
}

// IsInt reports whether v holds an exact integer.
func (v Value) IsInt() bool {
	return !v.isReal
}

// BigInt returns a copy of the integer held by v, or nil for a real value.
func (v Value) BigInt() *big.Int {
	if v.isReal {
		return nil
	}
	if v.n == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v.n)
}

// Float64 returns the nearest float64 to v.
func (v Value) Float64() float64 {
	if v.isReal {
		return v.f
	}
	if v.n == nil {
		return 0
	}
	f, _ := new(big.Float).SetInt(v.n).Float64()
	return f
}

// Equal reports whether v and o denote the same number. An integer and a
// real are equal only when the real is exactly that integer.
func (v Value) Equal(o Value) bool {
	switch {
	case v.isReal && o.isReal:
		return v.f == o.f
	case !v.isReal && !o.isReal:
		return v.BigInt().Cmp(o.BigInt()) == 0
	case v.isReal:
		return exactlyEqual(o.BigInt(), v.f)
	default:
		return exactlyEqual(v.BigInt(), o.f)
	}
}

func exactlyEqual(n *big.Int, f float64) bool {
	if math.IsNaN(f) {
		return false
	}
	return new(big.Float).SetInt(n).Cmp(big.NewFloat(f)) == 0
}

func (v Value) String() string {
	if v.isReal {
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	}
	if v.n == nil {
		return "0"
	}
	return v.n.String()
}
