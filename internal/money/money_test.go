package money

import (
	"math"
	"testing"
)

func TestAdd(t *testing.T) {
	// The canonical binary-float failure: 0.1 + 0.2 != 0.3.
	if got := Add(0.1, 0.2); got != 0.3 {
		t.Errorf("Add(0.1, 0.2) = %v, want 0.3", got)
	}
	if got := Add(-5.25, 5.25); got != 0 {
		t.Errorf("Add(-5.25, 5.25) = %v, want 0", got)
	}
}

func TestSub(t *testing.T) {
	if got := Sub(0.3, 0.1); got != 0.2 {
		t.Errorf("Sub(0.3, 0.1) = %v, want 0.2", got)
	}
	if got := Sub(100, 150); got != -50 {
		t.Errorf("Sub(100, 150) = %v, want -50", got)
	}
}

func TestMul(t *testing.T) {
	if got := Mul(100, 1.08); got != 108 {
		t.Errorf("Mul(100, 1.08) = %v, want 108", got)
	}
	if got := Mul(0, 52.5); got != 0 {
		t.Errorf("Mul(0, 52.5) = %v, want 0", got)
	}
}

func TestDiv(t *testing.T) {
	if got := Div(5000, 50); got != 100 {
		t.Errorf("Div(5000, 50) = %v, want 100", got)
	}

	// Zero divisor degrades to 0, never Inf or NaN.
	got := Div(100, 0)
	if got != 0 {
		t.Errorf("Div(100, 0) = %v, want 0", got)
	}
	if math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("Div(100, 0) produced a non-finite value: %v", got)
	}
}

func TestSum(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := Sum(nil); got != 0 {
			t.Errorf("Sum(nil) = %v, want 0", got)
		}
	})

	t.Run("no_drift_over_many_small_amounts", func(t *testing.T) {
		// 1000 x 0.10 accumulates visible drift with float64 addition.
		values := make([]float64, 1000)
		var naive float64
		for i := range values {
			values[i] = 0.1
			naive += 0.1
		}
		if naive == 100 {
			t.Log("naive float addition happened to land exactly; drift check is vacuous")
		}
		if got := Sum(values); got != 100 {
			t.Errorf("Sum(1000 x 0.1) = %v, want exactly 100", got)
		}
	})
}
