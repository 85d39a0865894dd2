/*package cosmo contains background cosmology: the parameter record consumed
by the halo model and the mean densities derived from it.
*/
package cosmo

import (
	"errors"
	"fmt"
	"math"
)

const (
	// MpcMks is one megaparsec in meters.
	MpcMks = 3.0856775814913673e22
	// GMks is Newton's constant in m^3 kg^-1 s^-2.
	GMks = 6.6743e-11
	// MSunMks is one solar mass in kilograms.
	MSunMks = 1.98847e30
)

// ErrInvalid is returned by Cosmology.Validate.
var ErrInvalid = errors.New("cosmo: invalid cosmology")

// Cosmology holds the present-day parameters of a model with cold matter,
// baryons and an ultralight axion component. It is never modified by the
// routines which read it.
type Cosmology struct {
	// OmegaM0 is the total matter density fraction.
	OmegaM0 float64 `toml:"omega_m_0" yaml:"omega_m_0"`
	// OmegaAx0 is the axion density fraction.
	OmegaAx0 float64 `toml:"omega_ax_0" yaml:"omega_ax_0"`
	// OmegaDB0 is the cold dark matter + baryon density fraction.
	OmegaDB0 float64 `toml:"omega_db_0" yaml:"omega_db_0"`
	OmegaL0  float64 `toml:"omega_l_0" yaml:"omega_l_0"`
	// H is the reduced Hubble parameter, H0 / (100 km/s/Mpc).
	H float64 `toml:"h" yaml:"h"`
	Z float64 `toml:"z" yaml:"z"`
	// MAx is the axion particle mass in eV.
	MAx float64 `toml:"m_ax" yaml:"m_ax"`
}

// Validate returns an error wrapping ErrInvalid if any parameter is outside
// of its physical range.
func (c *Cosmology) Validate() error {
	switch {
	case !(c.OmegaM0 > 0):
		return fmt.Errorf("%w: OmegaM0 = %g, but it must be positive",
			ErrInvalid, c.OmegaM0)
	case !(c.OmegaDB0 > 0):
		return fmt.Errorf("%w: OmegaDB0 = %g, but it must be positive",
			ErrInvalid, c.OmegaDB0)
	case !(c.OmegaAx0 >= 0):
		return fmt.Errorf("%w: OmegaAx0 = %g, but it can't be negative",
			ErrInvalid, c.OmegaAx0)
	case c.OmegaAx0 > c.OmegaM0:
		return fmt.Errorf("%w: OmegaAx0 = %g is larger than OmegaM0 = %g",
			ErrInvalid, c.OmegaAx0, c.OmegaM0)
	case !(c.H > 0):
		return fmt.Errorf("%w: h = %g, but it must be positive",
			ErrInvalid, c.H)
	case !(c.Z > -1):
		return fmt.Errorf("%w: z = %g, but it must be larger than -1",
			ErrInvalid, c.Z)
	case c.OmegaAx0 > 0 && !(c.MAx > 0):
		return fmt.Errorf("%w: m_ax = %g, but axions are present so it "+
			"must be positive", ErrInvalid, c.MAx)
	}
	return nil
}

// AxionFrac returns OmegaAx0 / OmegaM0.
func (c *Cosmology) AxionFrac() float64 { return c.OmegaAx0 / c.OmegaM0 }

// CDMFrac returns 1 - OmegaAx0 / OmegaM0, the non-axion matter fraction.
func (c *Cosmology) CDMFrac() float64 { return 1 - c.AxionFrac() }

// HubbleFrac calculates h(z) = H(z)/H0. Here H(z) is from Hubble's Law,
// H(z)**2 + k (c/a)**2 = H0**2 h100**2 (OmegaR a**-4 + OmegaM a**-3 + OmegaL).
// Assumes k, r = 0.
func HubbleFrac(omegaM, omegaL, z float64) float64 {
	return math.Sqrt(omegaM*math.Pow(1.0+z, 3.0) + omegaL)
}

// (And by "Mks", I mean "Mks/h".)
func rhoCriticalMks(H0, omegaM, omegaL, z float64) float64 {
	H0Mks := (H0 * 1000) / MpcMks
	H100 := H0 / 100
	H0MksH := H0Mks / H100

	H := HubbleFrac(omegaM, omegaL, z) * H0MksH
	return 3.0 * H * H / (8.0 * math.Pi * GMks)
}

// RhoCritical calculates the critical density of the universe. The returned
// value is in h^2 Msun / Mpc^3, i.e. (Msun/h) / (Mpc/h)^3.
func RhoCritical(H0, omegaM, omegaL, z float64) float64 {
	return rhoCriticalMks(H0, omegaM, omegaL, z) * math.Pow(MpcMks, 3) / MSunMks
}

// RhoAverage calculates the average density of matter in the universe. The
// returned value is in h^2 Msun / Mpc^3.
func RhoAverage(H0, omegaM, omegaL, z float64) float64 {
	return RhoCritical(H0, omegaM, omegaL, 0) * omegaM * math.Pow(1+z, 3.0)
}

// RhoComp0 returns the present-day comoving mean density of a component with
// density fraction omega, in h^2 Msun / Mpc^3. Since it is expressed in h
// units it does not depend on the Hubble parameter.
func RhoComp0(omega float64) float64 {
	return omega * RhoCritical(100, 1, 0, 0)
}
