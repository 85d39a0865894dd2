package axion

import "errors"

var (
	// ErrNoAxions is returned when the cosmology has no axion component.
	ErrNoAxions = errors.New("axion: cosmology has no axion density")
	// ErrNoAxionHalos is returned when no mass in the grid hosts an axion
	// halo, leaving nothing to integrate over.
	ErrNoAxionHalos = errors.New("axion: no mass has a central density solution")
	// ErrNoClustering is returned when the clustered axion fraction is not a
	// positive finite number.
	ErrNoClustering = errors.New("axion: clustered axion fraction is not positive")
	// ErrForeignParams is returned when Params were built from a different
	// mass grid than the one being integrated over.
	ErrForeignParams = errors.New("axion: params were built for another mass grid")
)
