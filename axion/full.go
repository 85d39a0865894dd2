package axion

import (
	"fmt"
	"log"
	"math"
	"sort"
	"time"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/halo"
	"github.com/phil-mansfield/axionhm/logging"
	"github.com/phil-mansfield/axionhm/math/calc"
)

// Result holds the nonlinear power spectra of the full axion halo model, all
// aligned with the evaluation wavenumbers and in (Mpc/h)^3.
type Result struct {
	// Total is the total matter spectrum.
	Total []float64
	// Cold is the cold matter (CDM + baryon) spectrum.
	Cold []float64
	// Cross is the cold-axion cross spectrum.
	Cross []float64
	// Axion is the axion spectrum.
	Axion []float64

	// The one- and two-halo terms of the clustered parts of Cross and Axion.
	CrossOneHalo, CrossTwoHalo []float64
	AxionOneHalo, AxionTwoHalo []float64
}

// FullHaloModel computes the nonlinear matter power spectrum of a cosmology
// with cold matter and axions. ms is the full cold mass grid and p the axion
// parameters built from it. eval must contain the cold and axion linear
// spectra at the output wavenumbers; sigma is used for sigma(M).
//
// The cross and axion spectra split the axions into a clustered fraction
// f = p.FracCluster, described by one- and two-halo terms, and a smooth
// remainder which follows the linear axion spectrum:
//
//	P_cx = f P_cx^h + (1-f) sqrt(P_ax^L P_c)
//	P_ax = f^2 P_ax^h + 2 (1-f) f sqrt(P_ax^h P_ax^L) + (1-f)^2 P_ax^L
//	P    = (Om_c/Om_m)^2 P_c + 2 Om_c Om_ax/Om_m^2 P_cx + (Om_ax/Om_m)^2 P_ax
func (m *Model) FullHaloModel(
	ms []float64, p *Params, eval, sigma halo.Spectrum,
	c *cosmo.Cosmology, cfg *halo.Config,
) (*Result, error) {
	var t time.Time
	if logging.Mode == logging.Performance {
		t = time.Now()
	}

	if err := halo.CheckInputs(c, cfg); err != nil {
		return nil, err
	}
	if !(c.OmegaAx0 > 0) {
		return nil, ErrNoAxions
	}
	if p == nil {
		return nil, ErrNoAxionHalos
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := calc.CheckGrid(ms); err != nil {
		return nil, fmt.Errorf("axion: mass grid: %w", err)
	}
	if err := p.checkGrid(ms); err != nil {
		return nil, err
	}
	if err := eval.CheckAxion("evaluation"); err != nil {
		return nil, err
	}

	cold, err := m.NonLinearMatter(c, cfg, &halo.ColdInput{
		Masses: ms, Eval: eval, Sigma: sigma,
		Omega: c.OmegaDB0, OmegaSigma: c.OmegaDB0,
	})
	if err != nil {
		return nil, err
	}

	ht, err := m.terms(ms, p, eval, sigma, c, cfg, cold)
	if err != nil {
		return nil, err
	}

	k, f := eval.K, p.FracCluster
	res := &Result{
		Total: make([]float64, len(k)),
		Cold:  cold.Total,
		Cross: make([]float64, len(k)),
		Axion: make([]float64, len(k)),

		CrossOneHalo: ht.crossOne, CrossTwoHalo: ht.crossTwo,
		AxionOneHalo: ht.axOne, AxionTwoHalo: ht.axTwo,
	}

	wc := c.OmegaDB0 / c.OmegaM0
	wa := c.OmegaAx0 / c.OmegaM0
	alpha := cfg.CrossAlpha()
	for j := range k {
		pAxLin := eval.Axion[j]

		res.Cross[j] = f*halo.Blend(ht.crossOne[j], ht.crossTwo[j], alpha) +
			(1-f)*math.Sqrt(pAxLin*res.Cold[j])

		clustered := ht.axOne[j] + ht.axTwo[j]
		res.Axion[j] = f*f*clustered +
			2*(1-f)*f*math.Sqrt(clustered*pAxLin) +
			(1-f)*(1-f)*pAxLin

		res.Total[j] = wc*wc*res.Cold[j] + 2*wc*wa*res.Cross[j] +
			wa*wa*res.Axion[j]
	}

	for _, out := range []struct {
		name string
		xs   []float64
	}{
		{"total matter power spectrum", res.Total},
		{"cross power spectrum", res.Cross},
		{"axion power spectrum", res.Axion},
	} {
		if err := halo.CheckFinite(out.name, out.xs); err != nil {
			return nil, err
		}
	}

	if logging.Mode == logging.Performance {
		log.Printf("Time: %s", time.Since(t).String())
		log.Printf("Memory:\n%s", logging.MemString())
	}
	return res, nil
}

type haloTerms struct {
	crossOne, crossTwo, axOne, axTwo []float64
}

// terms computes the one- and two-halo terms of the cross and axion spectra.
// Integrals over all cold halos use ms, integrals involving axion halos use
// the reduced grid of p.
func (m *Model) terms(
	ms []float64, p *Params, eval, sigma halo.Spectrum,
	c *cosmo.Cosmology, cfg *halo.Config, cold *halo.ColdResult,
) (*haloTerms, error) {
	k := eval.K
	mInt, mAx := p.Masses(), p.AxionMasses()
	omega := c.OmegaDB0

	// The full-grid mass function and cold profile were evaluated with the
	// same arguments by NonLinearMatter.
	n, uC := cold.MassFunction, cold.Profile
	b, err := m.BiasAt(ms, sigma, c, omega)
	if err != nil {
		return nil, err
	}
	nInt, err := m.MassFunctionAt(mInt, sigma, c, omega, omega)
	if err != nil {
		return nil, err
	}
	bInt, err := m.BiasAt(mInt, sigma, c, omega)
	if err != nil {
		return nil, err
	}
	uCInt, err := m.ProfileAt(mInt, k, sigma, c, cfg, omega, omega)
	if err != nil {
		return nil, err
	}
	uAxInt, err := m.axionProfileAt(k, p, c, eval)
	if err != nil {
		return nil, err
	}

	rhoC, rhoAx := cosmo.RhoComp0(omega), cosmo.RhoComp0(c.OmegaAx0)
	f := p.FracCluster

	// Cross one-halo term.
	w := make([]float64, len(mInt))
	for i := range w {
		w[i] = mInt[i] * mAx[i] * nInt[i]
	}
	crossOne, err := calc.IntegrateColumns(mInt, weighted(w, uCInt, uAxInt))
	if err != nil {
		return nil, err
	}
	floats.Scale(1/(rhoC*rhoAx*f), crossOne)

	// Axion one-halo term.
	for i := range w {
		w[i] = mAx[i] * mAx[i] * nInt[i]
	}
	axOne, err := calc.IntegrateColumns(mInt, weighted(w, uAxInt, uAxInt))
	if err != nil {
		return nil, err
	}
	floats.Scale(1/((rhoAx*f)*(rhoAx*f)), axOne)

	if cfg.OneHaloDamping {
		for j := range k {
			d := halo.OneHaloDamping(k[j], cfg.KStar)
			crossOne[j] *= d
			axOne[j] *= d
		}
	}

	// Cold two-halo factor over all cold halos. The integral misses the
	// mass below ms[0]; since u(k -> 0, M) = 1 the missing part is
	// u(k, M_min) (1 - int dM M n b / rho). See appendix A of
	// Mead et al. 2020, arXiv:2005.00009.
	coldFactor, err := m.coldTwoHaloFactor(ms, n, b, uC, sigma, c, cfg, k)
	if err != nil {
		return nil, err
	}

	// Axion two-halo factor over the reduced grid.
	for i := range w {
		w[i] = mAx[i] * nInt[i] * bInt[i]
	}
	axFactor, err := calc.IntegrateColumns(mInt, weighted(w, uAxInt, nil))
	if err != nil {
		return nil, err
	}

	crossTwo, axTwo := make([]float64, len(k)), make([]float64, len(k))
	for j := range k {
		pc := eval.Cold[j]
		crossTwo[j] = pc * coldFactor[j] * axFactor[j] / (rhoAx * f)
		axTwo[j] = pc * (axFactor[j] / rhoAx) * axFactor[j] / rhoAx / (f * f)
	}

	return &haloTerms{
		crossOne: crossOne, crossTwo: crossTwo, axOne: axOne, axTwo: axTwo,
	}, nil
}

// coldTwoHaloFactor returns 1/rho int dM M n b u(k, M) plus the correction
// for the mass below the grid.
func (m *Model) coldTwoHaloFactor(
	ms, n, b []float64, uC *mat64.Dense, sigma halo.Spectrum,
	c *cosmo.Cosmology, cfg *halo.Config, k []float64,
) ([]float64, error) {
	omega := c.OmegaDB0
	rho := cosmo.RhoComp0(omega)

	w := make([]float64, len(ms))
	for i := range w {
		w[i] = ms[i] * n[i] * b[i]
	}
	factor, err := calc.IntegrateColumns(ms, weighted(w, uC, nil))
	if err != nil {
		return nil, err
	}
	norm, err := calc.Integrate(ms, w)
	if err != nil {
		return nil, err
	}

	// The profile of a single mass is a 1 x len(k) matrix; only its row is
	// used.
	uMin, err := m.ProfileAt([]float64{floats.Min(ms)}, k, sigma, c, cfg, omega, omega)
	if err != nil {
		return nil, err
	}
	missing := 1 - norm/rho
	for j := range factor {
		factor[j] = factor[j]/rho + uMin.At(0, j)*missing
	}
	return factor, nil
}

// weighted returns the matrix w[i] a[i, j] b[i, j]. b may be nil.
func weighted(w []float64, a, b *mat64.Dense) *mat64.Dense {
	rows, cols := a.Dims()
	out := mat64.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			x := w[i] * a.At(i, j)
			if b != nil {
				x *= b.At(i, j)
			}
			out.Set(i, j, x)
		}
	}
	return out
}

// checkGrid returns ErrForeignParams unless every halo mass of p is an
// element of the ascending grid ms.
func (p *Params) checkGrid(ms []float64) error {
	for _, h := range p.Halos {
		i := sort.SearchFloat64s(ms, h.Mass)
		if i == len(ms) || ms[i] != h.Mass {
			return fmt.Errorf("%w: M = %g is not in the grid [%g, %g]",
				ErrForeignParams, h.Mass, ms[0], ms[len(ms)-1])
		}
	}
	return nil
}
