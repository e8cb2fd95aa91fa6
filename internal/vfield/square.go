package vfield

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Columns names the four input columns the densifier consumes. Defaults
// match the PIV tooling convention the data usually arrives in.
type Columns struct {
	X string
	Y string
	U string
	V string
}

// DefaultColumns returns the conventional PIV export column names.
func DefaultColumns() Columns {
	return Columns{
		X: "x [px]",
		Y: "y [px]",
		U: "u [px/frame]",
		V: "v [px/frame]",
	}
}

// SquareInput expands the sparse sample list in tbl into a dense vector
// field covering the full grid {0..maxX} x {0..maxY}. Grid cells without a
// sample are missing. Position columns must hold non-negative integral
// values with no missing entries; velocity columns may carry missing values,
// which stay missing in the field.
//
// When two rows share a grid coordinate the later row wins, matching a
// left-join that is applied in row order.
func SquareInput(tbl *Table, cols Columns) (*VectorField, error) {
	xs, err := positionColumn(tbl, cols.X)
	if err != nil {
		return nil, err
	}
	ys, err := positionColumn(tbl, cols.Y)
	if err != nil {
		return nil, err
	}
	us, ok := tbl.Column(cols.U)
	if !ok {
		return nil, &ColumnError{Column: cols.U}
	}
	vs, ok := tbl.Column(cols.V)
	if !ok {
		return nil, &ColumnError{Column: cols.V}
	}

	maxX, maxY := 0, 0
	for i := range xs {
		if xs[i] > maxX {
			maxX = xs[i]
		}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}
	w, h := maxX+1, maxY+1

	uPlane := nanPlane(h, w)
	vPlane := nanPlane(h, w)
	for i := range xs {
		uPlane[ys[i]*w+xs[i]] = us[i]
		vPlane[ys[i]*w+xs[i]] = vs[i]
	}

	// The planes are reshaped from the same join, so a length mismatch can
	// only come from a bug in this function.
	if len(uPlane) != h*w || len(vPlane) != h*w {
		return nil, fmt.Errorf("internal: reshaped planes %d/%d cells, want %d", len(uPlane), len(vPlane), h*w)
	}

	return NewVectorField(mat.NewDense(h, w, uPlane), mat.NewDense(h, w, vPlane))
}

// positionColumn fetches a position column and validates it holds only
// non-negative integral values with no missing entries.
func positionColumn(tbl *Table, name string) ([]int, error) {
	vals, ok := tbl.Column(name)
	if !ok {
		return nil, &ColumnError{Column: name}
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			return nil, fmt.Errorf("%w: column %q row %d", ErrMissingPosition, name, i)
		}
		if v < 0 || v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: column %q row %d holds %v", ErrBadPosition, name, i, v)
		}
		out[i] = int(v)
	}
	return out, nil
}

func nanPlane(rows, cols int) []float64 {
	p := make([]float64, rows*cols)
	for i := range p {
		p[i] = math.NaN()
	}
	return p
}
