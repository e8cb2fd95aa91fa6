package sweep

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary aggregates score statistics across a sweep, ignoring radii whose
// score is missing.
type Summary struct {
	Radii       int // radii swept
	Scored      int // radii with a defined score
	MeanScore   float64
	StddevScore float64
	MinScore    float64
	MaxScore    float64
}

// Summarize reduces a sweep's results to summary statistics. Mean and
// stddev are NaN when no radius produced a defined score.
func Summarize(results []RadiusResult) Summary {
	scores := make([]float64, 0, len(results))
	for _, r := range results {
		if !math.IsNaN(r.Score) {
			scores = append(scores, r.Score)
		}
	}
	s := Summary{
		Radii:       len(results),
		Scored:      len(scores),
		MeanScore:   math.NaN(),
		StddevScore: math.NaN(),
		MinScore:    math.NaN(),
		MaxScore:    math.NaN(),
	}
	if len(scores) == 0 {
		return s
	}
	s.MeanScore = stat.Mean(scores, nil)
	s.StddevScore = stat.StdDev(scores, nil)
	s.MinScore = floats.Min(scores)
	s.MaxScore = floats.Max(scores)
	return s
}
