package halo

import (
	"fmt"
	"math"
)

// Spectrum is a set of linear power spectrum samples. K is in h/Mpc and the
// spectra are in (Mpc/h)^3. Two Spectrum values are passed around together:
// the evaluation spectrum, whose K is where the output is computed, and the
// sigma spectrum, which collaborators integrate to get sigma(M). They are
// kept apart so that the two resolutions can be chosen independently.
type Spectrum struct {
	K []float64 `toml:"k" yaml:"k"`
	// Cold is the cold dark matter + baryon spectrum.
	Cold []float64 `toml:"cold" yaml:"cold"`
	// Axion is the axion spectrum. It is only required by the evaluation
	// spectrum of the full axion model.
	Axion []float64 `toml:"power_axion" yaml:"power_axion"`
}

// CheckCold returns an error if the wavenumbers and cold spectrum are not a
// usable sample set. name is used in the error message.
func (s *Spectrum) CheckCold(name string) error {
	if len(s.K) == 0 {
		return fmt.Errorf("%w: %s spectrum has no wavenumbers",
			ErrBadSpectrum, name)
	}
	if len(s.Cold) != len(s.K) {
		return fmt.Errorf("%w: %s spectrum has %d wavenumbers, but %d "+
			"cold samples", ErrLengthMismatch, name, len(s.K), len(s.Cold))
	}
	for i, k := range s.K {
		if !(k > 0) || math.IsInf(k, 0) {
			return fmt.Errorf("%w: %s spectrum has k[%d] = %g",
				ErrBadSpectrum, name, i, k)
		}
	}
	return CheckFinite(name+" cold spectrum", s.Cold)
}

// CheckAxion is CheckCold with the additional requirement that the axion
// spectrum is present.
func (s *Spectrum) CheckAxion(name string) error {
	if err := s.CheckCold(name); err != nil {
		return err
	}
	if len(s.Axion) != len(s.K) {
		return fmt.Errorf("%w: %s spectrum has %d wavenumbers, but %d "+
			"axion samples", ErrLengthMismatch, name, len(s.K), len(s.Axion))
	}
	return CheckFinite(name+" axion spectrum", s.Axion)
}

// CheckFinite returns an error wrapping ErrNonFinite if any element of xs is
// NaN or Inf.
func CheckFinite(name string, xs []float64) error {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%w: %s[%d] = %g", ErrNonFinite, name, i, x)
		}
	}
	return nil
}
