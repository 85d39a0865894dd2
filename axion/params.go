/*package axion implements the extended halo model for a mixture of cold
matter and ultralight axions: the per-halo axion parameters and the assembly
of the cold, cross and axion power spectra.
*/
package axion

import (
	"fmt"
	"log"
	"math"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/halo"
	"github.com/phil-mansfield/axionhm/logging"
	"github.com/phil-mansfield/axionhm/math/calc"
)

// Halo is a cold halo which hosts an axion halo.
type Halo struct {
	// Mass is the cold halo mass in Msun/h.
	Mass float64
	// CentralDensity is the axion central density parameter. It is always
	// positive.
	CentralDensity float64
	// AxionMass is the mass of the hosted axion halo in Msun/h.
	AxionMass float64
}

// Params holds the axion halo parameters derived from a mass grid. It is
// built by BuildParams and must be rebuilt whenever the cosmology or mass grid
// changes.
type Params struct {
	// Beta1 and Beta2 are the exponents of the M_ax(M_c) relation.
	Beta1, Beta2 float64
	// Halos are the masses of the original grid which host axion halos, in
	// their original order.
	Halos []Halo
	// FracCluster is the fraction of the axion density inside halos.
	FracCluster float64
}

// Len returns the number of halos.
func (p *Params) Len() int { return len(p.Halos) }

// Masses returns the reduced mass grid.
func (p *Params) Masses() []float64 {
	out := make([]float64, len(p.Halos))
	for i := range p.Halos {
		out[i] = p.Halos[i].Mass
	}
	return out
}

// CentralDensities returns the central density parameters, aligned with
// Masses.
func (p *Params) CentralDensities() []float64 {
	out := make([]float64, len(p.Halos))
	for i := range p.Halos {
		out[i] = p.Halos[i].CentralDensity
	}
	return out
}

// AxionMasses returns the axion halo masses, aligned with Masses.
func (p *Params) AxionMasses() []float64 {
	out := make([]float64, len(p.Halos))
	for i := range p.Halos {
		out[i] = p.Halos[i].AxionMass
	}
	return out
}

// Validate returns an error if p cannot be integrated over.
func (p *Params) Validate() error {
	if len(p.Halos) == 0 {
		return ErrNoAxionHalos
	}
	if err := calc.CheckGrid(p.Masses()); err != nil {
		return fmt.Errorf("axion: reduced mass grid: %w", err)
	}
	if !(p.FracCluster > 0) || math.IsInf(p.FracCluster, 0) {
		return fmt.Errorf("%w: FracCluster = %g", ErrNoClustering, p.FracCluster)
	}
	return nil
}

// BuildParams derives the axion halo parameters for the ascending mass grid
// ms. Masses for which the central density collaborator finds no solution
// are dropped. The clustered fraction is
//
//	f = 1/rho_ax int dM n(M) b(M) M_ax(M)
//
// over the remaining masses. cfg.EtaGiven is passed to the central density
// collaborator; the same cfg should later be given to FullHaloModel.
func (m *Model) BuildParams(
	ms []float64, c *cosmo.Cosmology, sigma halo.Spectrum, cfg *halo.Config,
) (*Params, error) {
	if err := halo.CheckInputs(c, cfg); err != nil {
		return nil, err
	}
	if !(c.OmegaAx0 > 0) {
		return nil, ErrNoAxions
	}
	if err := sigma.CheckCold("sigma"); err != nil {
		return nil, err
	}
	if err := calc.CheckGrid(ms); err != nil {
		return nil, fmt.Errorf("axion: mass grid: %w", err)
	}
	if m.Beta2 == nil {
		return nil, fmt.Errorf("%w: Beta2", halo.ErrMissingCollaborator)
	}

	p := &Params{Beta1: 1}
	var err error
	if p.Beta2, err = m.Beta2.Beta2(c, sigma); err != nil {
		return nil, fmt.Errorf("axion: beta2: %w", err)
	}

	cd, err := m.centralDensityAt(ms, c, sigma, cfg.EtaGiven, p.Beta1, p.Beta2)
	if err != nil {
		return nil, err
	}
	for i := range ms {
		if cd[i] > 0 {
			p.Halos = append(p.Halos, Halo{Mass: ms[i], CentralDensity: cd[i]})
		}
	}
	if logging.Mode == logging.Debug {
		log.Printf("axion: %d of %d masses host axion halos",
			len(p.Halos), len(ms))
	}
	if len(p.Halos) == 0 {
		return nil, fmt.Errorf("%w (grid [%g, %g], %d masses)",
			ErrNoAxionHalos, ms[0], ms[len(ms)-1], len(ms))
	}

	mInt := p.Masses()
	mAx, err := m.axionMassAt(mInt, p.Beta1, p.Beta2, c)
	if err != nil {
		return nil, err
	}
	for i := range p.Halos {
		p.Halos[i].AxionMass = mAx[i]
	}

	n, err := m.MassFunctionAt(mInt, sigma, c, c.OmegaDB0, c.OmegaDB0)
	if err != nil {
		return nil, err
	}
	b, err := m.BiasAt(mInt, sigma, c, c.OmegaDB0)
	if err != nil {
		return nil, err
	}
	integrand := make([]float64, len(mInt))
	for i := range integrand {
		integrand[i] = n[i] * mAx[i] * b[i]
	}
	clustered, err := calc.Integrate(mInt, integrand)
	if err != nil {
		return nil, fmt.Errorf("axion: clustered fraction: %w", err)
	}
	p.FracCluster = clustered / cosmo.RhoComp0(c.OmegaAx0)

	if err := p.Validate(); err != nil {
		return nil, err
	}
	if logging.Mode == logging.Debug && p.FracCluster > 1 {
		log.Printf("axion: clustered fraction %g is larger than one",
			p.FracCluster)
	}
	return p, nil
}
