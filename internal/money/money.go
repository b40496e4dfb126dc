// Package money wraps the arithmetic used in currency calculations in
// arbitrary-precision decimals. Summing many small ledger amounts with raw
// float64 accumulates cent-level drift; every aggregate in this codebase
// must go through these functions instead of the built-in operators.
package money

import "github.com/shopspring/decimal"

// Add returns a + b.
func Add(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Float64()
	return f
}

// Sub returns a - b.
func Sub(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Float64()
	return f
}

// Mul returns a * b.
func Mul(a, b float64) float64 {
	f, _ := decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Float64()
	return f
}

// Div returns a / b, or 0 when b is zero. It never panics and never
// produces Inf or NaN.
func Div(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	f, _ := decimal.NewFromFloat(a).Div(decimal.NewFromFloat(b)).Float64()
	return f
}

// Sum adds a list of values through the decimal representation.
func Sum(values []float64) float64 {
	acc := decimal.Zero
	for _, v := range values {
		acc = acc.Add(decimal.NewFromFloat(v))
	}
	f, _ := acc.Float64()
	return f
}
