/*package halotest provides deterministic stand-ins for the halo model
collaborators, for use in tests.
*/
package halotest

import (
	"math"

	"github.com/gonum/matrix/mat64"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/halo"
)

// Cosmology returns a toy cosmology with a five percent axion component.
func Cosmology() *cosmo.Cosmology {
	return &cosmo.Cosmology{
		OmegaM0: 0.3, OmegaAx0: 0.05, OmegaDB0: 0.25, OmegaL0: 0.7,
		H: 0.7, Z: 0, MAx: 1e-22,
	}
}

// LogGrid returns n points spaced uniformly in log between lo and hi.
func LogGrid(lo, hi float64, n int) []float64 {
	xs := make([]float64, n)
	dlog := math.Log10(hi/lo) / float64(n-1)
	for i := range xs {
		xs[i] = lo * math.Pow(10, dlog*float64(i))
	}
	xs[n-1] = hi
	return xs
}

// Spectrum returns a smooth toy linear spectrum at the wavenumbers k. The
// axion spectrum is the cold one with a small-scale cutoff.
func Spectrum(k []float64) halo.Spectrum {
	s := halo.Spectrum{
		K:     append([]float64{}, k...),
		Cold:  make([]float64, len(k)),
		Axion: make([]float64, len(k)),
	}
	for i, ki := range k {
		x := ki / 0.02
		s.Cold[i] = 2e4 * x / math.Pow(1+x*x, 1.4)
		s.Axion[i] = s.Cold[i] / math.Pow(1+(ki/0.5)*(ki/0.5), 4)
	}
	return s
}

// ConstMassFunction returns a mass function which is n at every mass.
func ConstMassFunction(n float64) halo.MassFunctionFunc {
	return func(
		ms []float64, _ halo.Spectrum, _ *cosmo.Cosmology, _, _ float64,
	) ([]float64, error) {
		return fill(len(ms), n), nil
	}
}

// ConstBias returns a bias which is b at every mass.
func ConstBias(b float64) halo.BiasFunc {
	return func(
		ms []float64, _ halo.Spectrum, _ *cosmo.Cosmology, _ float64,
	) ([]float64, error) {
		return fill(len(ms), b), nil
	}
}

// Radius returns the radius in Mpc/h enclosing 200 times the mean density of
// a component with fraction omega.
func Radius(m, omega float64) float64 {
	return math.Cbrt(3 * m / (4 * math.Pi * 200 * cosmo.RhoComp0(omega)))
}

// Lorentzian returns the profile u(k, M) = 1 / (1 + (k R(M))^2), which goes
// to 1 as k -> 0.
func Lorentzian() halo.ProfileFunc {
	return func(
		ms, k []float64, _ halo.Spectrum, _ *cosmo.Cosmology, _ *halo.Config,
		omega, _ float64,
	) (*mat64.Dense, error) {
		u := mat64.NewDense(len(ms), len(k), nil)
		for i := range ms {
			r := Radius(ms[i], omega)
			for j := range k {
				kr := k[j] * r
				u.Set(i, j, 1/(1+kr*kr))
			}
		}
		return u, nil
	}
}

// Model returns a cold halo model with a constant mass function n, a
// constant bias b and Lorentzian profiles.
func Model(n, b float64) *halo.Model {
	return &halo.Model{
		MassFunction: ConstMassFunction(n),
		Bias:         ConstBias(b),
		Profile:      Lorentzian(),
	}
}

func fill(n int, x float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = x
	}
	return out
}
