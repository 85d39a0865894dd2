package halo

import (
	"fmt"
	"math"
)

// Config controls which HMcode2020-style modifications are applied to the
// halo model (Mead et al. 2021, arXiv:2009.01858).
type Config struct {
	// Smooth turns on the scale-dependent alpha blend of the cold one- and
	// two-halo terms. Otherwise they are summed.
	Smooth bool `toml:"smooth_alpha" yaml:"smooth_alpha"`
	// OneHaloDamping suppresses every one-halo term on large scales.
	OneHaloDamping bool `toml:"one_halo_damping" yaml:"one_halo_damping"`
	// TwoHaloDamping suppresses the cold two-halo term on small scales.
	TwoHaloDamping bool `toml:"two_halo_damping" yaml:"two_halo_damping"`
	// EtaGiven selects a given halo bloating parameter. The cold profile
	// collaborator reads it from the Config and axion.Model.BuildParams
	// passes it to the central density collaborator.
	EtaGiven bool `toml:"eta_given" yaml:"eta_given"`

	// Alpha holds the blend exponents: Alpha[0] for cold matter and
	// Alpha[1] for the cold-axion cross spectrum.
	Alpha []float64 `toml:"alpha" yaml:"alpha"`
	// KStar is the one-halo damping scale in h/Mpc.
	KStar float64 `toml:"k_star" yaml:"k_star"`
	// F, KD and ND are the amplitude, scale (h/Mpc) and exponent of the
	// two-halo damping.
	F  float64 `toml:"f" yaml:"f"`
	KD float64 `toml:"k_d" yaml:"k_d"`
	ND float64 `toml:"n_d" yaml:"n_d"`
}

// DefaultConfig returns the configuration used by the full axion halo model
// when nothing else is specified: only the one-halo damping is active and
// both blends reduce to plain sums. The damping parameters are the HMcode2020
// fits evaluated at sigma8 = 0.8.
func DefaultConfig() Config {
	return Config{
		OneHaloDamping: true,
		Alpha:          []float64{1, 1},
		KStar:          0.0704,
		F:              0.219,
		KD:             0.0729,
		ND:             2.853,
	}
}

// Validate checks that the configuration can be used without dividing by
// zero.
func (cfg *Config) Validate() error {
	if len(cfg.Alpha) != 2 {
		return fmt.Errorf("%w: alpha has %d elements, but needs a cold "+
			"and a cross exponent", ErrLengthMismatch, len(cfg.Alpha))
	}
	for i, a := range cfg.Alpha {
		if a == 0 || math.IsNaN(a) || math.IsInf(a, 0) {
			return fmt.Errorf("%w: alpha[%d] = %g", ErrZeroExponent, i, a)
		}
	}

	if cfg.OneHaloDamping && !(cfg.KStar > 0 && !math.IsInf(cfg.KStar, 0)) {
		return fmt.Errorf("%w: one-halo damping is on, but k_star = %g",
			ErrBadDamping, cfg.KStar)
	}
	if cfg.TwoHaloDamping {
		switch {
		case !(cfg.KD > 0 && !math.IsInf(cfg.KD, 0)):
			return fmt.Errorf("%w: two-halo damping is on, but k_d = %g",
				ErrBadDamping, cfg.KD)
		case cfg.ND == 0 || math.IsNaN(cfg.ND) || math.IsInf(cfg.ND, 0):
			return fmt.Errorf("%w: two-halo damping is on, but n_d = %g",
				ErrBadDamping, cfg.ND)
		case math.IsNaN(cfg.F) || math.IsInf(cfg.F, 0):
			return fmt.Errorf("%w: two-halo damping is on, but f = %g",
				ErrBadDamping, cfg.F)
		}
	}
	return nil
}

// ColdAlpha returns the exponent blending the cold one- and two-halo terms
// at wavenumber k. See SmoothAlpha.
func (cfg *Config) ColdAlpha(k, z, axionFrac float64) float64 {
	if !cfg.Smooth {
		return 1
	}
	return SmoothAlpha(k, z, cfg.Alpha[0], axionFrac)
}

// CrossAlpha returns the exponent blending the cross one- and two-halo terms.
// It is used whether or not Smooth is set.
func (cfg *Config) CrossAlpha() float64 { return cfg.Alpha[1] }
