package axion

import (
	"fmt"

	"github.com/gonum/matrix/mat64"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/halo"
)

// Profile evaluates the normalised Fourier transform of the axion halo
// density profile for the cold halo masses ms. centralDens is aligned with
// ms. The result has one row per mass and one column per wavenumber.
type Profile interface {
	AxionProfile(
		k, ms []float64, c *cosmo.Cosmology, eval halo.Spectrum,
		centralDens []float64,
	) (*mat64.Dense, error)
}

// CentralDensity finds the central density parameter which gives each cold
// halo mass its axion halo. Masses without a solution are signalled with a
// value <= 0 (or NaN) rather than an error.
type CentralDensity interface {
	CentralDensity(
		ms []float64, c *cosmo.Cosmology, sigma halo.Spectrum, etaGiven bool,
		beta1, beta2 float64,
	) ([]float64, error)
}

// MassRelation is the M_ax(M_c) relation giving the axion halo mass hosted by
// a cold halo of mass mc.
type MassRelation interface {
	AxionMass(
		mc []float64, beta1, beta2, z, omegaM, cdmFrac, h, mAx float64,
	) ([]float64, error)
}

// CutoffExponent computes the beta2 exponent of the mass relation from the
// axion cutoff mass.
type CutoffExponent interface {
	Beta2(c *cosmo.Cosmology, sigma halo.Spectrum) (float64, error)
}

// ProfileFunc adapts an ordinary function to the Profile interface.
type ProfileFunc func(
	k, ms []float64, c *cosmo.Cosmology, eval halo.Spectrum, centralDens []float64,
) (*mat64.Dense, error)

func (f ProfileFunc) AxionProfile(
	k, ms []float64, c *cosmo.Cosmology, eval halo.Spectrum, centralDens []float64,
) (*mat64.Dense, error) {
	return f(k, ms, c, eval, centralDens)
}

// CentralDensityFunc adapts an ordinary function to the CentralDensity
// interface.
type CentralDensityFunc func(
	ms []float64, c *cosmo.Cosmology, sigma halo.Spectrum, etaGiven bool,
	beta1, beta2 float64,
) ([]float64, error)

func (f CentralDensityFunc) CentralDensity(
	ms []float64, c *cosmo.Cosmology, sigma halo.Spectrum, etaGiven bool,
	beta1, beta2 float64,
) ([]float64, error) {
	return f(ms, c, sigma, etaGiven, beta1, beta2)
}

// MassRelationFunc adapts an ordinary function to the MassRelation interface.
type MassRelationFunc func(
	mc []float64, beta1, beta2, z, omegaM, cdmFrac, h, mAx float64,
) ([]float64, error)

func (f MassRelationFunc) AxionMass(
	mc []float64, beta1, beta2, z, omegaM, cdmFrac, h, mAx float64,
) ([]float64, error) {
	return f(mc, beta1, beta2, z, omegaM, cdmFrac, h, mAx)
}

// CutoffExponentFunc adapts an ordinary function to the CutoffExponent
// interface.
type CutoffExponentFunc func(c *cosmo.Cosmology, sigma halo.Spectrum) (float64, error)

func (f CutoffExponentFunc) Beta2(
	c *cosmo.Cosmology, sigma halo.Spectrum,
) (float64, error) {
	return f(c, sigma)
}

// Model extends the cold halo model with the axion collaborators.
type Model struct {
	halo.Model

	AxionProfile   Profile
	CentralDensity CentralDensity
	MassRelation   MassRelation
	Beta2          CutoffExponent
}

func (m *Model) axionProfileAt(
	k []float64, p *Params, c *cosmo.Cosmology, eval halo.Spectrum,
) (*mat64.Dense, error) {
	if m.AxionProfile == nil {
		return nil, fmt.Errorf("%w: AxionProfile", halo.ErrMissingCollaborator)
	}
	ms := p.Masses()
	u, err := m.AxionProfile.AxionProfile(k, ms, c, eval, p.CentralDensities())
	if err != nil {
		return nil, fmt.Errorf("axion: axion profile: %w", err)
	}
	if err := halo.CheckShape("axion profile", u, len(ms), len(k)); err != nil {
		return nil, err
	}
	return u, nil
}

func (m *Model) centralDensityAt(
	ms []float64, c *cosmo.Cosmology, sigma halo.Spectrum, etaGiven bool,
	beta1, beta2 float64,
) ([]float64, error) {
	if m.CentralDensity == nil {
		return nil, fmt.Errorf("%w: CentralDensity", halo.ErrMissingCollaborator)
	}
	cd, err := m.CentralDensity.CentralDensity(ms, c, sigma, etaGiven, beta1, beta2)
	if err != nil {
		return nil, fmt.Errorf("axion: central density: %w", err)
	}
	if len(cd) != len(ms) {
		return nil, fmt.Errorf("%w: central density returned %d values for "+
			"%d masses", halo.ErrLengthMismatch, len(cd), len(ms))
	}
	return cd, nil
}

func (m *Model) axionMassAt(
	mc []float64, beta1, beta2 float64, c *cosmo.Cosmology,
) ([]float64, error) {
	if m.MassRelation == nil {
		return nil, fmt.Errorf("%w: MassRelation", halo.ErrMissingCollaborator)
	}
	mAx, err := m.MassRelation.AxionMass(
		mc, beta1, beta2, c.Z, c.OmegaM0, c.CDMFrac(), c.H, c.MAx,
	)
	if err != nil {
		return nil, fmt.Errorf("axion: mass relation: %w", err)
	}
	if len(mAx) != len(mc) {
		return nil, fmt.Errorf("%w: mass relation returned %d values for "+
			"%d masses", halo.ErrLengthMismatch, len(mAx), len(mc))
	}
	return mAx, nil
}
