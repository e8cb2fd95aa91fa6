// Package corr implements the Dombrowski et al. (2004) spatial velocity
// correlation measure over dense 2D vector fields. For a given radius the
// field is compared against itself shifted to 8 compass-point offsets; the
// normalized mean dot product across those orientations is the correlation
// score at that radius.
package corr

import (
	"errors"
	"fmt"
	"math"

	"github.com/velocimetry/velcorr/internal/vfield"
)

var (
	// ErrRadiusTooSmall indicates a radius below 1.
	ErrRadiusTooSmall = errors.New("radius must be 1 or greater")

	// ErrRadiusTooLarge indicates a radius that does not fit inside the
	// field: valid radii are strictly less than min(width, height).
	ErrRadiusTooLarge = errors.New("radius must be less than min(width, height)")
)

// Result holds the correlation score and observation statistics for one
// radius. The observation counts bucket the same per-cell comparison
// counter cumulatively, so NEQ8 <= NGE4 <= NObserved always holds.
type Result struct {
	// Score is the normalized spatial autocorrelation, roughly in [-1, 1].
	// It is NaN when the field is degenerate: all cells missing, or zero
	// velocity variance making the normalization ratio undefined.
	Score float64

	// NObserved counts grid cells with at least one valid comparison.
	NObserved int

	// NGE4 counts grid cells with four or more valid comparisons.
	NGE4 int

	// NEQ8 counts grid cells with all eight comparisons valid.
	NEQ8 int
}

// Params tunes the correlation computation. The zero value is the standard
// measure.
type Params struct {
	// FisherAverage averages the 8 per-orientation correlations through
	// Fisher's z-transform instead of arithmetically. See Corey et al. on
	// averaging correlation coefficients.
	FisherAverage bool
}

// VelocityCorr computes the spatial correlation of field at the given
// radius, sampling the 8 unit-circle orientations at pi/4 steps.
//
// Shifted-out-of-bounds neighbors are genuinely absent (no toroidal wrap):
// a comparison only contributes when both the center cell and its offset
// neighbor hold samples.
func VelocityCorr(field *vfield.VectorField, radius int, p Params) (Result, error) {
	w, h := field.Dims()
	if radius < 1 {
		return Result{}, fmt.Errorf("%w: got %d", ErrRadiusTooSmall, radius)
	}
	if radius >= min(w, h) {
		return Result{}, fmt.Errorf("%w: radius %d, field %dx%d", ErrRadiusTooLarge, radius, w, h)
	}

	meanSqSpeed, meanVecSq, nPresent := globalTerms(field)
	denom := meanSqSpeed - meanVecSq

	// Per-cell count of orientations at which this cell had a valid
	// comparison, indexed y*w+x.
	samples := make([]int, w*h)
	var contribs []float64

	for k := 0; k < 8; k++ {
		theta := float64(k) * math.Pi / 4
		dx := int(math.Round(float64(radius) * math.Cos(theta)))
		dy := int(math.Round(float64(radius) * math.Sin(theta)))

		var sumDot float64
		nDot := 0
		for y := 0; y < h; y++ {
			sy := y - dy
			if sy < 0 || sy >= h {
				continue
			}
			for x := 0; x < w; x++ {
				sx := x - dx
				if sx < 0 || sx >= w {
					continue
				}
				a, ok := field.At(x, y)
				if !ok {
					continue
				}
				b, ok := field.At(sx, sy)
				if !ok {
					continue
				}
				sumDot += a.Dot(b)
				nDot++
				samples[y*w+x]++
			}
		}

		// An orientation with no valid comparisons yields a missing
		// contribution and is excluded from the final mean.
		if nDot == 0 {
			continue
		}
		contribs = append(contribs, (sumDot/float64(nDot)-meanVecSq)/denom)
	}

	res := Result{Score: math.NaN()}
	for _, c := range samples {
		if c >= 1 {
			res.NObserved++
		}
		if c >= 4 {
			res.NGE4++
		}
		if c == 8 {
			res.NEQ8++
		}
	}

	if nPresent == 0 || denom == 0 || len(contribs) == 0 {
		return res, nil
	}
	if p.FisherAverage {
		res.Score = fisherMean(contribs)
	} else {
		res.Score = mean(contribs)
	}
	return res, nil
}

// globalTerms computes the field-wide normalization terms over non-missing
// cells: the mean squared speed <v.v>, and the squared mean vector <v>.<v>.
func globalTerms(field *vfield.VectorField) (meanSqSpeed, meanVecSq float64, n int) {
	w, h := field.Dims()
	var sumSq, sumU, sumV float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			vec, ok := field.At(x, y)
			if !ok {
				continue
			}
			sumSq += vec.Dot(vec)
			sumU += vec.U
			sumV += vec.V
			n++
		}
	}
	if n == 0 {
		return math.NaN(), math.NaN(), 0
	}
	mu := sumU / float64(n)
	mv := sumV / float64(n)
	return sumSq / float64(n), mu*mu + mv*mv, n
}

func mean(xs []float64) float64 {
	var sum float64
	for _, v := range xs {
		sum += v
	}
	return sum / float64(len(xs))
}

func fisherMean(rs []float64) float64 {
	zs := make([]float64, len(rs))
	for i, r := range rs {
		zs[i] = FisherZ(r)
	}
	return FisherZInv(mean(zs))
}
