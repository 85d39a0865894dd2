package halo_test

import (
	"errors"
	"testing"

	"github.com/gonum/matrix/mat64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/axionhm/cosmo"
	"github.com/phil-mansfield/axionhm/halo"
	"github.com/phil-mansfield/axionhm/halo/halotest"
	"github.com/phil-mansfield/axionhm/math/calc"
)

func coldInput(ms []float64) *halo.ColdInput {
	c := halotest.Cosmology()
	return &halo.ColdInput{
		Masses:     ms,
		Eval:       halotest.Spectrum(halotest.LogGrid(1e-3, 1e2, 40)),
		Sigma:      halotest.Spectrum(halotest.LogGrid(1e-4, 1e3, 200)),
		Omega:      c.OmegaDB0,
		OmegaSigma: c.OmegaDB0,
	}
}

func undampedConfig() *halo.Config {
	cfg := halo.DefaultConfig()
	cfg.OneHaloDamping = false
	return &cfg
}

func TestNonLinearMatterSum(t *testing.T) {
	m := halotest.Model(1e-17, 1)
	in := coldInput(halotest.LogGrid(1e10, 1e15, 31))

	res, err := m.NonLinearMatter(halotest.Cosmology(), undampedConfig(), in)
	require.NoError(t, err)
	require.Len(t, res.Total, len(in.Eval.K))

	for j := range res.Total {
		assert.Equal(t, res.OneHalo[j]+res.TwoHalo[j], res.Total[j], "k[%d]", j)
		assert.Equal(t, in.Eval.Cold[j], res.TwoHalo[j], "k[%d]", j)
		assert.True(t, res.OneHalo[j] > 0, "k[%d]", j)
	}
	// The one-halo term falls with k once the profiles are resolved.
	assert.Greater(t, res.OneHalo[0], res.OneHalo[len(res.OneHalo)-1])

	r, c := res.Profile.Dims()
	assert.Equal(t, len(in.Masses), r)
	assert.Equal(t, len(in.Eval.K), c)
	assert.Len(t, res.MassFunction, len(in.Masses))
}

func TestNonLinearMatterOneHalo(t *testing.T) {
	// With u = 1 the one-halo term is int M^2 n dM / rho^2 at every k.
	m := halotest.Model(1e-17, 1)
	m.Profile = halo.ProfileFunc(func(
		ms, k []float64, _ halo.Spectrum, _ *cosmo.Cosmology, _ *halo.Config,
		_, _ float64,
	) (*mat64.Dense, error) {
		u := mat64.NewDense(len(ms), len(k), nil)
		for i := range ms {
			for j := range k {
				u.Set(i, j, 1)
			}
		}
		return u, nil
	})

	c := halotest.Cosmology()
	in := coldInput([]float64{1e10, 1e12, 1e14})
	res, err := m.NonLinearMatter(c, undampedConfig(), in)
	require.NoError(t, err)

	ys := make([]float64, len(in.Masses))
	for i, mass := range in.Masses {
		ys[i] = mass * mass * 1e-17
	}
	integral, err := calc.Integrate(in.Masses, ys)
	require.NoError(t, err)
	rho := cosmo.RhoComp0(c.OmegaDB0)
	for j := range res.OneHalo {
		assert.InEpsilon(t, integral/(rho*rho), res.OneHalo[j], 1e-12)
	}

	in.ExcludeAxions = true
	excl, err := m.NonLinearMatter(c, undampedConfig(), in)
	require.NoError(t, err)
	fac := (1 - c.AxionFrac()) * (1 - c.AxionFrac())
	for j := range res.OneHalo {
		assert.InEpsilon(t, fac*res.OneHalo[j], excl.OneHalo[j], 1e-12)
	}
}

func TestNonLinearMatterDamping(t *testing.T) {
	m := halotest.Model(1e-17, 1)
	c := halotest.Cosmology()
	in := coldInput(halotest.LogGrid(1e10, 1e15, 31))

	plain, err := m.NonLinearMatter(c, undampedConfig(), in)
	require.NoError(t, err)

	cfg := halo.DefaultConfig()
	cfg.TwoHaloDamping = true
	damped, err := m.NonLinearMatter(c, &cfg, in)
	require.NoError(t, err)

	for j, k := range in.Eval.K {
		assert.InEpsilon(t, plain.OneHalo[j]*halo.OneHaloDamping(k, cfg.KStar),
			damped.OneHalo[j], 1e-12)
		assert.InEpsilon(t,
			plain.TwoHalo[j]*halo.TwoHaloDamping(k, cfg.F, cfg.KD, cfg.ND),
			damped.TwoHalo[j], 1e-12)
	}
	assert.InDelta(t, 0, damped.OneHalo[0]/plain.OneHalo[0], 1e-3)
}

func TestNonLinearMatterSmooth(t *testing.T) {
	m := halotest.Model(1e-17, 1)
	c := halotest.Cosmology()
	in := coldInput(halotest.LogGrid(1e10, 1e15, 31))

	cfg := halo.DefaultConfig()
	cfg.Smooth, cfg.Alpha = true, []float64{0.8, 1}
	res, err := m.NonLinearMatter(c, &cfg, in)
	require.NoError(t, err)

	for j, k := range in.Eval.K {
		a := halo.SmoothAlpha(k, c.Z, 0.8, c.AxionFrac())
		assert.InEpsilon(t, halo.Blend(res.OneHalo[j], res.TwoHalo[j], a),
			res.Total[j], 1e-14)
		// alpha < 1 blends sit above the sum, alpha > 1 below it.
		sum := res.OneHalo[j] + res.TwoHalo[j]
		if a < 1 {
			assert.GreaterOrEqual(t, res.Total[j], sum*(1-1e-12))
		} else if a > 1 {
			assert.LessOrEqual(t, res.Total[j], sum*(1+1e-12))
		}
	}
}

func TestNonLinearMatterErrors(t *testing.T) {
	c := halotest.Cosmology()
	badLen := halotest.Model(1e-17, 1)
	badLen.MassFunction = halo.MassFunctionFunc(func(
		ms []float64, _ halo.Spectrum, _ *cosmo.Cosmology, _, _ float64,
	) ([]float64, error) {
		return make([]float64, len(ms)+1), nil
	})
	failing := halotest.Model(1e-17, 1)
	errSolver := errors.New("did not converge")
	failing.Profile = halo.ProfileFunc(func(
		_, _ []float64, _ halo.Spectrum, _ *cosmo.Cosmology, _ *halo.Config,
		_, _ float64,
	) (*mat64.Dense, error) {
		return nil, errSolver
	})
	zeroAlpha := halo.DefaultConfig()
	zeroAlpha.Alpha = []float64{0, 1}

	tests := []struct {
		m   *halo.Model
		cfg *halo.Config
		in  *halo.ColdInput
		err error
	}{
		{halotest.Model(1e-17, 1), undampedConfig(),
			coldInput([]float64{1e12}), calc.ErrGridTooSmall},
		{halotest.Model(1e-17, 1), undampedConfig(),
			coldInput(nil), calc.ErrGridTooSmall},
		{halotest.Model(1e-17, 1), undampedConfig(),
			coldInput([]float64{1e12, 1e10, 1e14}), calc.ErrUnsorted},
		{badLen, undampedConfig(),
			coldInput([]float64{1e10, 1e12}), halo.ErrLengthMismatch},
		{failing, undampedConfig(),
			coldInput([]float64{1e10, 1e12}), errSolver},
		{&halo.Model{}, undampedConfig(),
			coldInput([]float64{1e10, 1e12}), halo.ErrMissingCollaborator},
		{halotest.Model(1e-17, 1), &zeroAlpha,
			coldInput([]float64{1e10, 1e12}), halo.ErrZeroExponent},
	}

	for i, test := range tests {
		_, err := test.m.NonLinearMatter(c, test.cfg, test.in)
		assert.ErrorIs(t, err, test.err, "test %d", i)
	}

	in := coldInput([]float64{1e10, 1e12})
	in.Eval.Cold = in.Eval.Cold[1:]
	_, err := halotest.Model(1e-17, 1).NonLinearMatter(c, undampedConfig(), in)
	assert.ErrorIs(t, err, halo.ErrLengthMismatch)
}

func TestNonLinearMatterTwoPointGrid(t *testing.T) {
	m := halotest.Model(1e-17, 1)
	in := coldInput([]float64{1e11, 1e13})
	res, err := m.NonLinearMatter(halotest.Cosmology(), undampedConfig(), in)
	require.NoError(t, err)
	for j := range res.Total {
		assert.Equal(t, res.OneHalo[j]+res.TwoHalo[j], res.Total[j])
	}
}
