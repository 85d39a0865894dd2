package halo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/axionhm/math/calc"
)

func TestMassFunctionTable(t *testing.T) {
	// A power law is a straight line in log-log space, so the spline
	// reproduces it exactly.
	ms := []float64{1e8, 1e10, 1e12, 1e14, 1e16}
	dndm := make([]float64, len(ms))
	for i, m := range ms {
		dndm[i] = 3e5 * math.Pow(m, -1.9)
	}
	mf, err := NewMassFunctionTable(ms, dndm)
	require.NoError(t, err)

	query := []float64{1e8, 3.3e9, 1e11, 2e13, 1e16}
	n, err := mf.MassFunction(query, Spectrum{}, nil, 0, 0)
	require.NoError(t, err)
	require.Len(t, n, len(query))
	for i, m := range query {
		assert.InEpsilon(t, 3e5*math.Pow(m, -1.9), n[i], 1e-9, "M = %g", m)
	}

	_, err = mf.MassFunction([]float64{1e7}, Spectrum{}, nil, 0, 0)
	assert.ErrorIs(t, err, ErrOutOfTable)
	_, err = mf.MassFunction([]float64{1e12, 1e17}, Spectrum{}, nil, 0, 0)
	assert.ErrorIs(t, err, ErrOutOfTable)
}

func TestBiasTable(t *testing.T) {
	ms := []float64{1e10, 1e12, 1e14}
	b, err := NewBiasTable(ms, []float64{0.7, 1.1, 3.0})
	require.NoError(t, err)

	out, err := b.Bias(ms, Spectrum{}, nil, 0.25)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.7, 1.1, 3.0}, out, 1e-12)

	mid, err := b.Bias([]float64{1e13}, Spectrum{}, nil, 0.25)
	require.NoError(t, err)
	assert.True(t, mid[0] > 1.1 && mid[0] < 3.0, "b(1e13) = %g", mid[0])
}

func TestLogTableNodes(t *testing.T) {
	ms := []float64{1e8, 3e8, 1e10, 1.6e10, 1e12, 3e13}
	ys := []float64{1, 0.02, 5, 40, 40, 1e-3}
	tab, err := newLogTable("test", ms, ys)
	require.NoError(t, err)

	out, err := tab.eval(ms)
	require.NoError(t, err)
	for i := range ms {
		assert.InEpsilon(t, ys[i], out[i], 1e-12, "M = %g", ms[i])
	}
}

func TestLogTableSmooth(t *testing.T) {
	// log10(y) = sin(log10(M)) is smooth in log-log space.
	n := 50
	ms, ys := make([]float64, n), make([]float64, n)
	for i := range ms {
		x := math.Pi * float64(i) / float64(n-1)
		ms[i], ys[i] = math.Pow(10, x), math.Pow(10, math.Sin(x))
	}
	tab, err := newLogTable("test", ms, ys)
	require.NoError(t, err)

	for i := 0; i < 23; i++ {
		x := 0.2 + 2.8*float64(i)/22
		out, err := tab.eval([]float64{math.Pow(10, x)})
		require.NoError(t, err)
		assert.InDelta(t, math.Sin(x), math.Log10(out[0]), 1e-4, "x = %g", x)
	}
}

func TestLogTableTwoPoints(t *testing.T) {
	b, err := NewBiasTable([]float64{1e10, 1e12}, []float64{1, 100})
	require.NoError(t, err)
	out, err := b.Bias([]float64{1e10, 1e11, 1e12}, Spectrum{}, nil, 0.25)
	require.NoError(t, err)
	assert.InEpsilon(t, 1.0, out[0], 1e-12)
	assert.InEpsilon(t, 10.0, out[1], 1e-12)
	assert.InEpsilon(t, 100.0, out[2], 1e-12)
}

func TestTableErrors(t *testing.T) {
	_, err := NewBiasTable([]float64{1e10}, []float64{1})
	assert.ErrorIs(t, err, calc.ErrGridTooSmall)
	_, err = NewBiasTable([]float64{1e10, 1e12}, []float64{1})
	assert.ErrorIs(t, err, ErrLengthMismatch)
	_, err = NewMassFunctionTable([]float64{1e10, 1e12}, []float64{1, 0})
	assert.ErrorIs(t, err, ErrBadSpectrum)
	_, err = NewMassFunctionTable([]float64{1e12, 1e10}, []float64{1, 1})
	assert.ErrorIs(t, err, calc.ErrUnsorted)
	_, err = NewMassFunctionTable([]float64{1e10, 1e12}, []float64{1, math.NaN()})
	assert.ErrorIs(t, err, ErrBadSpectrum)
	_, err = NewMassFunctionTable([]float64{-1, 1e12}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrBadSpectrum)
}
