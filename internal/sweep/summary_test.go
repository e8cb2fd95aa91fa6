package sweep

import (
	"math"
	"testing"

	"github.com/velocimetry/velcorr/internal/corr"
)

func TestSummarize(t *testing.T) {
	results := []RadiusResult{
		{Radius: 1, Result: corr.Result{Score: 0.8}},
		{Radius: 2, Result: corr.Result{Score: 0.4}},
		{Radius: 3, Result: corr.Result{Score: math.NaN()}},
		{Radius: 4, Result: corr.Result{Score: 0.0}},
	}
	s := Summarize(results)

	if s.Radii != 4 {
		t.Errorf("Radii = %d, want 4", s.Radii)
	}
	if s.Scored != 3 {
		t.Errorf("Scored = %d, want 3", s.Scored)
	}
	if math.Abs(s.MeanScore-0.4) > 1e-12 {
		t.Errorf("MeanScore = %v, want 0.4", s.MeanScore)
	}
	if s.MinScore != 0 || s.MaxScore != 0.8 {
		t.Errorf("Min/Max = %v/%v, want 0/0.8", s.MinScore, s.MaxScore)
	}
}

func TestSummarizeAllMissing(t *testing.T) {
	results := []RadiusResult{
		{Radius: 1, Result: corr.Result{Score: math.NaN()}},
	}
	s := Summarize(results)
	if s.Scored != 0 {
		t.Errorf("Scored = %d, want 0", s.Scored)
	}
	if !math.IsNaN(s.MeanScore) || !math.IsNaN(s.MinScore) {
		t.Error("statistics over no scores should be NaN")
	}
}
