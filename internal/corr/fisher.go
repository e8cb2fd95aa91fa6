package corr

import "math"

// FisherZ applies Fisher's z-transform to a correlation coefficient.
// Averaging correlations in z-space reduces the bias of the plain
// arithmetic mean (Corey et al.).
func FisherZ(r float64) float64 {
	return math.Atanh(r)
}

// FisherZInv maps a z-score back to a correlation coefficient.
func FisherZInv(z float64) float64 {
	return math.Tanh(z)
}
