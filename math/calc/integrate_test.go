package calc

import (
	"errors"
	"math"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegrate(t *testing.T) {
	tests := []struct {
		xs  []float64
		f   func(x float64) float64
		exp float64
	}{
		// Two points: trapezoid, exact for lines.
		{[]float64{1, 3}, func(x float64) float64 { return 2*x + 1 }, 10},
		// Simpson's rule is exact for quadratics.
		{[]float64{0, 0.5, 1}, func(x float64) float64 { return x * x }, 1.0 / 3},
		{[]float64{0, 0.25, 0.5, 0.75, 1},
			func(x float64) float64 { return 3*x*x - x }, 0.5},
		{[]float64{1e10, 1e12, 1e14}, func(x float64) float64 { return x },
			(1e28 - 1e20) / 2},
	}

	for i, test := range tests {
		ys := make([]float64, len(test.xs))
		for j := range ys {
			ys[j] = test.f(test.xs[j])
		}
		val, err := Integrate(test.xs, ys)
		require.NoError(t, err, "test %d", i)
		assert.InEpsilon(t, test.exp, val, 1e-12, "test %d", i)
	}
}

func TestIntegrateErrors(t *testing.T) {
	tests := []struct {
		xs, ys []float64
		err    error
	}{
		{nil, nil, ErrGridTooSmall},
		{[]float64{1e12}, []float64{1}, ErrGridTooSmall},
		{[]float64{1, 1, 2}, []float64{1, 1, 1}, ErrUnsorted},
		{[]float64{3, 2, 1}, []float64{1, 1, 1}, ErrUnsorted},
		{[]float64{1, math.NaN(), 3}, []float64{1, 1, 1}, ErrUnsorted},
		{[]float64{1, 2, 3}, []float64{1, 1}, ErrLengthMismatch},
	}

	for i, test := range tests {
		_, err := Integrate(test.xs, test.ys)
		if !errors.Is(err, test.err) {
			t.Errorf("%d) Expected %v, got %v", i, test.err, err)
		}
	}
}

func TestIntegrateColumns(t *testing.T) {
	xs := []float64{0, 0.5, 1.5, 2}
	m := mat64.NewDense(len(xs), 3, nil)
	for i, x := range xs {
		m.Set(i, 0, 1)
		m.Set(i, 1, x)
		m.Set(i, 2, x*x)
	}

	out, err := IntegrateColumns(xs, m)
	require.NoError(t, err)
	require.Len(t, out, 3)

	for j := 0; j < 3; j++ {
		col := mat64.Col(nil, j, m)
		exp, err := Integrate(xs, col)
		require.NoError(t, err)
		assert.Equal(t, exp, out[j])
	}
	assert.InDelta(t, 2.0, out[0], 1e-12)
	assert.InDelta(t, 2.0, out[1], 1e-12)

	_, err = IntegrateColumns(xs[:3], m)
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = IntegrateColumns(xs[:1], mat64.NewDense(1, 3, nil))
	assert.ErrorIs(t, err, ErrGridTooSmall)
}
