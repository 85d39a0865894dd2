package halo

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/math/calc"
)

// logTable interpolates a positive tabulated function with a natural cubic
// spline in log10(M)-log10(y) space.
type logTable struct {
	name   string
	sp     interp.NaturalCubic
	lo, hi float64
}

func newLogTable(name string, ms, ys []float64) (*logTable, error) {
	if len(ms) != len(ys) {
		return nil, fmt.Errorf("%w: %s table has %d masses and %d values",
			ErrLengthMismatch, name, len(ms), len(ys))
	}
	if err := calc.CheckGrid(ms); err != nil {
		return nil, fmt.Errorf("halo: %s table: %w", name, err)
	}

	logMs, logYs := make([]float64, len(ms)), make([]float64, len(ys))
	for i := range ms {
		if !(ms[i] > 0) || !(ys[i] > 0) || math.IsInf(ys[i], 0) {
			return nil, fmt.Errorf("%w: %s table has (M, y) = (%g, %g), "+
				"but both must be positive", ErrBadSpectrum, name, ms[i], ys[i])
		}
		logMs[i], logYs[i] = math.Log10(ms[i]), math.Log10(ys[i])
	}
	if err := calc.CheckGrid(logMs); err != nil {
		return nil, fmt.Errorf("halo: %s table in log space: %w", name, err)
	}

	t := &logTable{name: name, lo: ms[0], hi: ms[len(ms)-1]}
	if err := t.sp.Fit(logMs, logYs); err != nil {
		return nil, fmt.Errorf("halo: %s table: %w", name, err)
	}
	return t, nil
}

func (t *logTable) eval(ms []float64) ([]float64, error) {
	out := make([]float64, len(ms))
	for i, m := range ms {
		// Predict clamps to the end points rather than failing.
		if !(m >= t.lo && m <= t.hi) {
			return nil, fmt.Errorf("%w: %s table covers [%g, %g], but "+
				"M = %g was requested", ErrOutOfTable, t.name, t.lo, t.hi, m)
		}
		out[i] = math.Pow(10, t.sp.Predict(math.Log10(m)))
	}
	return out, nil
}

// MassFunctionTable is a MassFunction read off a precomputed table, e.g. one
// written by another code for a single cosmology. The spectra, cosmology and
// density fractions passed to MassFunction are ignored.
type MassFunctionTable struct {
	t *logTable
}

var _ MassFunction = &MassFunctionTable{}

// NewMassFunctionTable builds a MassFunctionTable from ascending masses and
// positive values of dn/dM.
func NewMassFunctionTable(ms, dndm []float64) (*MassFunctionTable, error) {
	t, err := newLogTable("mass function", ms, dndm)
	if err != nil {
		return nil, err
	}
	return &MassFunctionTable{t}, nil
}

func (mf *MassFunctionTable) MassFunction(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega, omegaSigma float64,
) ([]float64, error) {
	return mf.t.eval(ms)
}

// BiasTable is a Bias read off a precomputed table. The arguments other than
// the masses are ignored.
type BiasTable struct {
	t *logTable
}

var _ Bias = &BiasTable{}

// NewBiasTable builds a BiasTable from ascending masses and positive biases.
func NewBiasTable(ms, bias []float64) (*BiasTable, error) {
	t, err := newLogTable("bias", ms, bias)
	if err != nil {
		return nil, err
	}
	return &BiasTable{t}, nil
}

func (b *BiasTable) Bias(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega float64,
) ([]float64, error) {
	return b.t.eval(ms)
}
