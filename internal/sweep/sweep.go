// Package sweep drives the correlation engine across a range of radii and
// assembles the per-radius output table. Radii are independent, so the
// sweep fans out across a bounded worker pool and collects results in
// radius order for deterministic output.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/velocimetry/velcorr/internal/corr"
	"github.com/velocimetry/velcorr/internal/vfield"
)

// ErrEmptyRange indicates the configured radius range contains no radii
// that fit inside the field.
var ErrEmptyRange = errors.New("radius range contains no valid radii")

// Config holds the sweep parameters.
type Config struct {
	MinRadius  int // default 1
	MaxRadius  int // default 25, clamped to min(W,H)-1
	RadiusStep int // default 1

	// Workers bounds the worker pool; 0 means GOMAXPROCS.
	Workers int

	// FisherAverage is passed through to the correlation engine.
	FisherAverage bool

	// UnitsPerStep is the physical length of one grid step. When non-zero
	// each result also reports the radius in physical units.
	UnitsPerStep float64
}

func (c Config) withDefaults() Config {
	if c.MinRadius == 0 {
		c.MinRadius = 1
	}
	if c.MaxRadius == 0 {
		c.MaxRadius = 25
	}
	if c.RadiusStep == 0 {
		c.RadiusStep = 1
	}
	if c.Workers == 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

// RadiusResult is one output row: the radius swept and the correlation
// result at that radius.
type RadiusResult struct {
	Radius      int
	RadiusUnits float64 // physical length; 0 when UnitsPerStep unknown
	corr.Result
}

// Radii expands the configured range for the given field, ascending. The
// configured maximum is clamped to the largest radius the field admits.
func (c Config) Radii(field *vfield.VectorField) ([]int, error) {
	c = c.withDefaults()
	if c.MinRadius < 1 {
		return nil, fmt.Errorf("%w: min radius %d", corr.ErrRadiusTooSmall, c.MinRadius)
	}
	if c.RadiusStep < 1 {
		return nil, fmt.Errorf("radius step must be positive, got %d", c.RadiusStep)
	}
	w, h := field.Dims()
	max := c.MaxRadius
	if limit := min(w, h) - 1; max > limit {
		max = limit
	}
	var radii []int
	for r := c.MinRadius; r <= max; r += c.RadiusStep {
		radii = append(radii, r)
	}
	if len(radii) == 0 {
		return nil, fmt.Errorf("%w: [%d, %d] on %dx%d field", ErrEmptyRange, c.MinRadius, c.MaxRadius, w, h)
	}
	return radii, nil
}

// Run sweeps the radius range over field. Results come back in radius
// order regardless of worker scheduling. The first engine error aborts
// the sweep; ctx cancellation does the same.
func Run(ctx context.Context, field *vfield.VectorField, cfg Config) ([]RadiusResult, error) {
	cfg = cfg.withDefaults()
	radii, err := cfg.Radii(field)
	if err != nil {
		return nil, err
	}

	results := make([]RadiusResult, len(radii))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	for i, radius := range radii {
		i, radius := i, radius
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := corr.VelocityCorr(field, radius, corr.Params{FisherAverage: cfg.FisherAverage})
			if err != nil {
				return fmt.Errorf("radius %d: %w", radius, err)
			}
			results[i] = RadiusResult{
				Radius:      radius,
				RadiusUnits: float64(radius) * cfg.UnitsPerStep,
				Result:      res,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
