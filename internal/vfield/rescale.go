package vfield

import (
	"fmt"
	"math"
)

// IntegerTolerance is the maximum fractional remainder a rescaled position
// may carry and still be treated as an integer grid coordinate.
const IntegerTolerance = 1e-5

// ScaleConfig selects how raw coordinates map onto grid steps. Exactly one
// of the two paths applies:
//
//   - auto path: ConversionFactor alone, typically inferred by the gridunit
//     resolver;
//   - legacy path: an explicit StepSize (grid spacing in pixels) combined
//     multiplicatively with PixelUnitConversion (units per pixel, 1 when
//     unset).
//
// Both normalize to one internal factor so the rescaling logic exists once.
type ScaleConfig struct {
	ConversionFactor    float64
	StepSize            int
	PixelUnitConversion float64
}

// Factor resolves the configuration to the single conversion factor applied
// to both axes.
func (c ScaleConfig) Factor() (float64, error) {
	if c.StepSize != 0 || c.PixelUnitConversion != 0 {
		if c.StepSize <= 0 {
			return 0, fmt.Errorf("%w: got %d", ErrBadStepSize, c.StepSize)
		}
		conv := c.PixelUnitConversion
		if conv == 0 {
			conv = 1
		}
		if conv < 0 {
			return 0, fmt.Errorf("%w: pixel unit conversion %v", ErrBadFactor, conv)
		}
		return float64(c.StepSize) * conv, nil
	}
	if c.ConversionFactor <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrBadFactor, c.ConversionFactor)
	}
	return c.ConversionFactor, nil
}

// RescalePositions maps the raw x/y coordinate columns of tbl onto integer
// grid steps: per axis, (raw - min(raw)) / factor. Every rescaled value must
// sit within IntegerTolerance of the integer below it, otherwise the
// configured factor does not match the data and ErrNotCastable is returned.
//
// The input table is never mutated; the result is a copy with the two
// position columns replaced by their rescaled integral values.
func RescalePositions(tbl *Table, cfg ScaleConfig, xCol, yCol string) (*Table, error) {
	factor, err := cfg.Factor()
	if err != nil {
		return nil, err
	}

	out := tbl.Clone()
	for _, name := range []string{xCol, yCol} {
		vals, ok := out.Column(name)
		if !ok {
			return nil, &ColumnError{Column: name}
		}
		min := columnMin(vals)
		for i, v := range vals {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("%w: column %q row %d", ErrMissingPosition, name, i)
			}
			scaled := (v - min) / factor
			if math.Abs(math.Mod(scaled, 1)) > IntegerTolerance {
				return nil, fmt.Errorf("%w (column %q row %d: %v)", ErrNotCastable, name, i, scaled)
			}
			// Remainder is within tolerance, so truncation is exact.
			vals[i] = math.Trunc(scaled)
		}
	}
	return out, nil
}
