package halo

import (
	"fmt"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/math/calc"
)

// ColdInput holds the inputs of NonLinearMatter.
type ColdInput struct {
	// Masses is the ascending mass grid in Msun/h.
	Masses []float64
	// Eval is the linear spectrum at the output wavenumbers. Only K and Cold
	// are read.
	Eval Spectrum
	// Sigma is the spectrum used by the collaborators for sigma(M).
	Sigma Spectrum
	// Omega is the density fraction of the clustering component and
	// OmegaSigma the one used for sigma(M).
	Omega, OmegaSigma float64
	// ExcludeAxions multiplies the one-halo term by (1 - f_ax)^2, treating
	// axions the way HMcode2020 treats massive neutrinos.
	ExcludeAxions bool
}

// ColdResult is the output of NonLinearMatter. Every spectrum is aligned
// with the evaluation wavenumbers.
type ColdResult struct {
	Total, OneHalo, TwoHalo []float64
	// MassFunction and Profile are the collaborator evaluations used for the
	// one-halo term, returned so callers do not need to recompute them.
	MassFunction []float64
	Profile      *mat64.Dense
}

// NonLinearMatter computes the nonlinear cold matter power spectrum,
//
//	P(k) = (P_1h(k)^a + P_2h(k)^a)^(1/a)
//	P_1h(k) = 1/rho^2 int dM M^2 n(M) u(k, M)^2
//	P_2h(k) = P_lin(k)
//
// along with the HMcode2020 modifications enabled in cfg.
func (m *Model) NonLinearMatter(
	c *cosmo.Cosmology, cfg *Config, in *ColdInput,
) (*ColdResult, error) {
	if err := CheckInputs(c, cfg); err != nil {
		return nil, err
	}
	if err := in.Eval.CheckCold("evaluation"); err != nil {
		return nil, err
	}
	if err := in.Sigma.CheckCold("sigma"); err != nil {
		return nil, err
	}
	if err := calc.CheckGrid(in.Masses); err != nil {
		return nil, fmt.Errorf("halo: mass grid: %w", err)
	}

	ms, k := in.Masses, in.Eval.K
	u, err := m.ProfileAt(ms, k, in.Sigma, c, cfg, in.Omega, in.OmegaSigma)
	if err != nil {
		return nil, err
	}
	n, err := m.MassFunctionAt(ms, in.Sigma, c, in.Omega, in.OmegaSigma)
	if err != nil {
		return nil, err
	}

	integrand := mat64.NewDense(len(ms), len(k), nil)
	for i := range ms {
		w := ms[i] * ms[i] * n[i]
		for j := range k {
			uij := u.At(i, j)
			integrand.Set(i, j, w*uij*uij)
		}
	}
	oneHalo, err := calc.IntegrateColumns(ms, integrand)
	if err != nil {
		return nil, err
	}

	rho := cosmo.RhoComp0(in.Omega)
	norm := 1 / (rho * rho)
	if in.ExcludeAxions {
		cdm := 1 - c.AxionFrac()
		norm *= cdm * cdm
	}
	floats.Scale(norm, oneHalo)
	if cfg.OneHaloDamping {
		for j := range oneHalo {
			oneHalo[j] *= OneHaloDamping(k[j], cfg.KStar)
		}
	}

	twoHalo := make([]float64, len(k))
	copy(twoHalo, in.Eval.Cold)
	if cfg.TwoHaloDamping {
		for j := range twoHalo {
			twoHalo[j] *= TwoHaloDamping(k[j], cfg.F, cfg.KD, cfg.ND)
		}
	}

	fAx := c.AxionFrac()
	total := make([]float64, len(k))
	for j := range total {
		total[j] = Blend(oneHalo[j], twoHalo[j], cfg.ColdAlpha(k[j], c.Z, fAx))
	}
	if err := CheckFinite("cold power spectrum", total); err != nil {
		return nil, err
	}

	return &ColdResult{
		Total: total, OneHalo: oneHalo, TwoHalo: twoHalo,
		MassFunction: n, Profile: u,
	}, nil
}

// CheckInputs validates a cosmology and halo model configuration together.
func CheckInputs(c *cosmo.Cosmology, cfg *Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return cfg.Validate()
}
