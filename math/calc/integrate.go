/*package calc provides the sampled quadrature used by the halo model
integrals over mass.
*/
package calc

import (
	"errors"
	"fmt"
	"math"

	"github.com/gonum/matrix/mat64"
	"gonum.org/v1/gonum/integrate"
)

var (
	// ErrGridTooSmall is returned when a grid has fewer than two points. A
	// single sample has no width, so there is no integral to take.
	ErrGridTooSmall = errors.New("calc: integration grid has fewer than two points")
	// ErrUnsorted is returned when a grid is not finite and strictly
	// increasing.
	ErrUnsorted = errors.New("calc: integration grid is not strictly increasing")
	// ErrLengthMismatch is returned when the samples are not aligned with the
	// grid.
	ErrLengthMismatch = errors.New("calc: samples and grid have different lengths")
)

// CheckGrid returns an error if xs cannot be used as an integration
// variable.
func CheckGrid(xs []float64) error {
	if len(xs) < 2 {
		return fmt.Errorf("%w (len = %d)", ErrGridTooSmall, len(xs))
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) {
			return fmt.Errorf("%w: xs[%d] = %g", ErrUnsorted, i, xs[i])
		}
		if i > 0 && !(xs[i] > xs[i-1]) {
			return fmt.Errorf("%w: xs[%d] = %g, xs[%d] = %g",
				ErrUnsorted, i-1, xs[i-1], i, xs[i])
		}
	}
	return nil
}

// Integrate integrates the samples ys over the grid xs. Grids with three or
// more points use Simpson's rule for irregularly spaced data and two-point
// grids use the trapezoid rule.
func Integrate(xs, ys []float64) (float64, error) {
	if err := CheckGrid(xs); err != nil {
		return 0, err
	}
	if len(ys) != len(xs) {
		return 0, fmt.Errorf("%w: len(xs) = %d, len(ys) = %d",
			ErrLengthMismatch, len(xs), len(ys))
	}
	return sampled(xs, ys), nil
}

// IntegrateColumns integrates every column of m along its rows, which must be
// aligned with xs. The result has one element per column. This is how
// integrals over a mass grid are vectorised over wavenumber.
func IntegrateColumns(xs []float64, m mat64.Matrix) ([]float64, error) {
	if err := CheckGrid(xs); err != nil {
		return nil, err
	}
	rows, cols := m.Dims()
	if rows != len(xs) {
		return nil, fmt.Errorf("%w: len(xs) = %d, matrix has %d rows",
			ErrLengthMismatch, len(xs), rows)
	}

	out, col := make([]float64, cols), make([]float64, rows)
	for j := range out {
		mat64.Col(col, j, m)
		out[j] = sampled(xs, col)
	}
	return out, nil
}

func sampled(xs, ys []float64) float64 {
	if len(xs) == 2 {
		return integrate.Trapezoidal(xs, ys)
	}
	return integrate.Simpsons(xs, ys)
}
