package halo

import (
	"math"
)

const (
	// AlphaPivot is the centre of the alpha transition in h/Mpc.
	AlphaPivot = 0.5
	// AlphaWidth is the width of the alpha transition in h/Mpc.
	AlphaWidth = 0.1
	// axionFracFloor is the axion fraction below which the large-scale
	// alpha floor is not applied.
	axionFracFloor = 0.01
)

// OneHaloDamping returns the factor (k/kStar)^4 / (1 + (k/kStar)^4) which
// removes the unphysical one-halo power on large scales. It goes to 0 as
// k -> 0 and to 1 as k -> infinity.
func OneHaloDamping(k, kStar float64) float64 {
	x := math.Pow(k/kStar, 4)
	if math.IsInf(x, 1) {
		return 1
	}
	return x / (1 + x)
}

// TwoHaloDamping returns the factor 1 - f (k/kd)^nd / (1 + (k/kd)^nd) which
// suppresses the two-halo term on small scales.
func TwoHaloDamping(k, f, kd, nd float64) float64 {
	x := math.Pow(k/kd, nd)
	if math.IsInf(x, 1) {
		return 1 - f
	}
	return 1 - f*x/(1+x)
}

// SmoothAlpha returns the blend exponent at wavenumber k. It moves
// logistically from a large-scale floor of max(alpha, 1.1/(1+z)) to alpha
// around AlphaPivot. The floor is dropped when the axion fraction is below
// one percent.
func SmoothAlpha(k, z, alpha, axionFrac float64) float64 {
	alpha1 := math.Max(alpha, 1.1/(1+z))
	if axionFrac < axionFracFloor {
		alpha1 = alpha
	}
	return alpha1 + (alpha-alpha1)/(1+math.Exp((AlphaPivot-k)/AlphaWidth))
}

// Blend returns the generalised mean (one^alpha + two^alpha)^(1/alpha). When
// alpha is exactly 1 this is exactly one + two.
func Blend(one, two, alpha float64) float64 {
	if alpha == 1 {
		return one + two
	}
	return math.Pow(math.Pow(one, alpha)+math.Pow(two, alpha), 1/alpha)
}
