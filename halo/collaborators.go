package halo

import (
	"fmt"

	"github.com/gonum/matrix/mat64"

	"github.com/phil-mansfield/axionhm/cosmo"
)

// MassFunction evaluates the halo mass function dn/dM, in (h/Mpc)^3 / (Msun/h),
// at every mass in ms. omega is the density fraction of the component which
// forms halos and omegaSigma the one used for sigma(M).
type MassFunction interface {
	MassFunction(
		ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega, omegaSigma float64,
	) ([]float64, error)
}

// Bias evaluates the linear halo bias at every mass in ms.
type Bias interface {
	Bias(ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega float64) ([]float64, error)
}

// Profile evaluates the normalised Fourier transform of the cold halo density
// profile, u(k, M). The result has one row per mass and one column per
// wavenumber and must tend to 1 as k -> 0.
type Profile interface {
	Profile(
		ms, k []float64, sigma Spectrum, c *cosmo.Cosmology, cfg *Config,
		omega, omegaSigma float64,
	) (*mat64.Dense, error)
}

// MassFunctionFunc adapts an ordinary function to the MassFunction interface.
type MassFunctionFunc func(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega, omegaSigma float64,
) ([]float64, error)

func (f MassFunctionFunc) MassFunction(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega, omegaSigma float64,
) ([]float64, error) {
	return f(ms, sigma, c, omega, omegaSigma)
}

// BiasFunc adapts an ordinary function to the Bias interface.
type BiasFunc func(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega float64,
) ([]float64, error)

func (f BiasFunc) Bias(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega float64,
) ([]float64, error) {
	return f(ms, sigma, c, omega)
}

// ProfileFunc adapts an ordinary function to the Profile interface.
type ProfileFunc func(
	ms, k []float64, sigma Spectrum, c *cosmo.Cosmology, cfg *Config,
	omega, omegaSigma float64,
) (*mat64.Dense, error)

func (f ProfileFunc) Profile(
	ms, k []float64, sigma Spectrum, c *cosmo.Cosmology, cfg *Config,
	omega, omegaSigma float64,
) (*mat64.Dense, error) {
	return f(ms, k, sigma, c, cfg, omega, omegaSigma)
}

// Model bundles the cold-matter collaborators of the halo model. Bias is not
// needed by NonLinearMatter, but is used by the axion model.
type Model struct {
	MassFunction MassFunction
	Bias         Bias
	Profile      Profile
}

// MassFunctionAt calls the mass function collaborator and checks that its
// output is aligned with ms.
func (m *Model) MassFunctionAt(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega, omegaSigma float64,
) ([]float64, error) {
	if m.MassFunction == nil {
		return nil, fmt.Errorf("%w: MassFunction", ErrMissingCollaborator)
	}
	n, err := m.MassFunction.MassFunction(ms, sigma, c, omega, omegaSigma)
	if err != nil {
		return nil, fmt.Errorf("halo: mass function: %w", err)
	}
	if len(n) != len(ms) {
		return nil, fmt.Errorf("%w: mass function returned %d values for "+
			"%d masses", ErrLengthMismatch, len(n), len(ms))
	}
	return n, nil
}

// BiasAt calls the bias collaborator and checks that its output is aligned
// with ms.
func (m *Model) BiasAt(
	ms []float64, sigma Spectrum, c *cosmo.Cosmology, omega float64,
) ([]float64, error) {
	if m.Bias == nil {
		return nil, fmt.Errorf("%w: Bias", ErrMissingCollaborator)
	}
	b, err := m.Bias.Bias(ms, sigma, c, omega)
	if err != nil {
		return nil, fmt.Errorf("halo: bias: %w", err)
	}
	if len(b) != len(ms) {
		return nil, fmt.Errorf("%w: bias returned %d values for %d masses",
			ErrLengthMismatch, len(b), len(ms))
	}
	return b, nil
}

// ProfileAt calls the profile collaborator and checks that its output has
// shape [len(ms), len(k)].
func (m *Model) ProfileAt(
	ms, k []float64, sigma Spectrum, c *cosmo.Cosmology, cfg *Config,
	omega, omegaSigma float64,
) (*mat64.Dense, error) {
	if m.Profile == nil {
		return nil, fmt.Errorf("%w: Profile", ErrMissingCollaborator)
	}
	u, err := m.Profile.Profile(ms, k, sigma, c, cfg, omega, omegaSigma)
	if err != nil {
		return nil, fmt.Errorf("halo: cold profile: %w", err)
	}
	if err := CheckShape("cold profile", u, len(ms), len(k)); err != nil {
		return nil, err
	}
	return u, nil
}

// CheckShape returns an error wrapping ErrLengthMismatch unless u is a
// rows x cols matrix.
func CheckShape(name string, u *mat64.Dense, rows, cols int) error {
	if u == nil {
		return fmt.Errorf("%w: %s is nil", ErrLengthMismatch, name)
	}
	r, c := u.Dims()
	if r != rows || c != cols {
		return fmt.Errorf("%w: %s has shape [%d, %d], expected [%d, %d]",
			ErrLengthMismatch, name, r, c, rows, cols)
	}
	return nil
}
