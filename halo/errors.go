package halo

import "errors"

var (
	// ErrLengthMismatch is returned when arrays which must be index-aligned
	// are not, including collaborator outputs.
	ErrLengthMismatch = errors.New("halo: array lengths do not match")
	// ErrZeroExponent is returned when a blend exponent is zero or not
	// finite.
	ErrZeroExponent = errors.New("halo: blend exponent must be finite and non-zero")
	// ErrBadDamping is returned when an enabled damping term has an unusable
	// scale or exponent.
	ErrBadDamping = errors.New("halo: invalid damping parameters")
	// ErrBadSpectrum is returned for empty or non-physical power spectrum
	// samples.
	ErrBadSpectrum = errors.New("halo: invalid power spectrum samples")
	// ErrNonFinite is returned when a computed spectrum contains NaN or Inf.
	ErrNonFinite = errors.New("halo: non-finite value in power spectrum")
	// ErrMissingCollaborator is returned when a Model field needed by a
	// computation is nil.
	ErrMissingCollaborator = errors.New("halo: collaborator not set")
	// ErrOutOfTable is returned when a tabulated collaborator is asked for a
	// mass outside its table.
	ErrOutOfTable = errors.New("halo: mass outside of tabulated range")
)
