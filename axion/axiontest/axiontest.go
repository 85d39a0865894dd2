/*package axiontest provides deterministic stand-ins for the axion
collaborators, for use in tests.
*/
package axiontest

import (
	"math"

	"github.com/gonum/matrix/mat64"

	"github.com/phil-mansfield/axionhm/axion"
	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/halo"
	"github.com/phil-mansfield/axionhm/halo/halotest"
)

// Beta2 returns a cutoff exponent collaborator which always gives beta2.
func Beta2(beta2 float64) axion.CutoffExponentFunc {
	return func(*cosmo.Cosmology, halo.Spectrum) (float64, error) {
		return beta2, nil
	}
}

// CentralDensityAbove returns a central density collaborator with a solution
// only for masses >= mCut. Other masses get -1.
func CentralDensityAbove(mCut float64) axion.CentralDensityFunc {
	return func(
		ms []float64, _ *cosmo.Cosmology, _ halo.Spectrum, _ bool, _, _ float64,
	) ([]float64, error) {
		out := make([]float64, len(ms))
		for i, m := range ms {
			if m >= mCut {
				out[i] = math.Log10(m)
			} else {
				out[i] = -1
			}
		}
		return out, nil
	}
}

// CosmicRatio returns a mass relation which gives every cold halo the cosmic
// axion-to-cold ratio, M_ax = (1 - cdmFrac) / cdmFrac M_c.
func CosmicRatio() axion.MassRelationFunc {
	return func(
		mc []float64, _, _, _, _, cdmFrac, _, _ float64,
	) ([]float64, error) {
		out := make([]float64, len(mc))
		for i := range mc {
			out[i] = (1 - cdmFrac) / cdmFrac * mc[i]
		}
		return out, nil
	}
}

// Cored returns an axion profile u(k, M) = 1 / (1 + (k R)^2)^2, where R is
// twice the cold halo radius.
func Cored() axion.ProfileFunc {
	return func(
		k, ms []float64, c *cosmo.Cosmology, _ halo.Spectrum, _ []float64,
	) (*mat64.Dense, error) {
		u := mat64.NewDense(len(ms), len(k), nil)
		for i := range ms {
			r := 2 * halotest.Radius(ms[i], c.OmegaDB0)
			for j := range k {
				kr := k[j] * r
				u.Set(i, j, 1/((1+kr*kr)*(1+kr*kr)))
			}
		}
		return u, nil
	}
}

// Model returns an axion halo model built from the halotest and axiontest
// stubs. Masses below mCut host no axion halo.
func Model(n, b, mCut float64) *axion.Model {
	return &axion.Model{
		Model:          *halotest.Model(n, b),
		AxionProfile:   Cored(),
		CentralDensity: CentralDensityAbove(mCut),
		MassRelation:   CosmicRatio(),
		Beta2:          Beta2(0.6),
	}
}
