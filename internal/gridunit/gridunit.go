// Package gridunit infers the conversion factor between raw coordinate
// units and one grid step. Vector measurements usually arrive on a regular
// grid whose spacing is some awkward physical quantity (e.g. 3.5 µm); the
// spacing is recovered as the floating-point GCD of each axis's coordinate
// offsets.
package gridunit

import (
	"errors"
	"fmt"
	"math"

	"github.com/velocimetry/velcorr/internal/vfield"
)

// GCDFloat tolerance and rounding defaults. Rounding to 12 decimals strips
// the noise the repeated Mod calls accumulate without disturbing any
// physically plausible grid spacing.
const (
	DefaultRTol  = 1e-5
	DefaultATol  = 1e-10
	DefaultRound = 12
)

// MinFactor is the smallest factor accepted from the resolver. A near-zero
// GCD is the degenerate signature of duplicate coordinate values and would
// blow up the downstream division.
const MinFactor = 1e-9

var (
	// ErrTooFewValues indicates an axis with fewer than two samples.
	ErrTooFewValues = errors.New("need at least two coordinate values per axis")

	// ErrDegenerateFactor indicates the resolved factor is too close to
	// zero to divide by, typically from duplicate coordinate values.
	ErrDegenerateFactor = errors.New("resolved conversion factor is degenerate")
)

// AxisMismatchError reports per-axis GCDs that disagree. The factor must be
// identical for both axes; a mismatch means the axes carry different noise
// and is a hard error, never silently reconciled.
type AxisMismatchError struct {
	X float64
	Y float64
}

func (e *AxisMismatchError) Error() string {
	return fmt.Sprintf("per-axis conversion factors disagree: x=%v y=%v", e.X, e.Y)
}

// GCDFloat computes the greatest common divisor of two reals with the
// Euclidean algorithm, iterating x, y = y, x mod y until the remainder
// falls within rtol*min(|x|,|y|) + atol. The result is rounded to rnd
// decimals; rnd < 0 disables rounding.
func GCDFloat(x, y, rtol, atol float64, rnd int) float64 {
	for math.Abs(y) > rtol*math.Min(math.Abs(x), math.Abs(y))+atol {
		x, y = y, math.Mod(x, y)
	}
	if rnd < 0 {
		return x
	}
	p := math.Pow(10, float64(rnd))
	return math.Round(x*p) / p
}

// FindConversionFactor resolves the shared grid conversion factor from the
// raw x/y coordinate columns of tbl. Each axis is reduced independently
// (minimum subtracted, then pairwise GCDFloat across all values in row
// order); the two axis factors must agree exactly.
func FindConversionFactor(tbl *vfield.Table, xCol, yCol string) (float64, error) {
	fx, err := axisFactor(tbl, xCol)
	if err != nil {
		return 0, err
	}
	fy, err := axisFactor(tbl, yCol)
	if err != nil {
		return 0, err
	}
	if fx != fy {
		return 0, &AxisMismatchError{X: fx, Y: fy}
	}
	if fx < MinFactor {
		return 0, fmt.Errorf("%w: %v", ErrDegenerateFactor, fx)
	}
	return fx, nil
}

func axisFactor(tbl *vfield.Table, col string) (float64, error) {
	vals, ok := tbl.Column(col)
	if !ok {
		return 0, &vfield.ColumnError{Column: col}
	}
	if len(vals) < 2 {
		return 0, fmt.Errorf("%w: column %q has %d", ErrTooFewValues, col, len(vals))
	}

	min := vals[0]
	for i, v := range vals {
		if math.IsNaN(v) {
			return 0, fmt.Errorf("%w: column %q row %d", vfield.ErrMissingPosition, col, i)
		}
		if v < min {
			min = v
		}
	}

	offsets := make([]float64, len(vals))
	for i, v := range vals {
		offsets[i] = v - min
	}

	gcd := GCDFloat(offsets[0], offsets[1], DefaultRTol, DefaultATol, DefaultRound)
	for _, v := range offsets[2:] {
		gcd = GCDFloat(gcd, v, DefaultRTol, DefaultATol, DefaultRound)
	}
	return gcd, nil
}
