package vfield

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Vec is one velocity sample: x-velocity U and y-velocity V.
type Vec struct {
	U float64
	V float64
}

// Dot returns the dot product of two vectors.
func (a Vec) Dot(b Vec) float64 {
	return a.U*b.U + a.V*b.V
}

// VectorField is a dense rectangular grid of velocity vectors. Every integer
// coordinate in [0,W) x [0,H) has a cell; cells without a sample are missing.
//
// Internally the field is two stacked scalar planes (u and v) with NaN as
// the missing sentinel, but callers access cells through the comma-ok At
// accessor and never see NaN, so missing cells cannot leak into arithmetic
// by accident. Fields are read-only after construction.
type VectorField struct {
	u *mat.Dense // H rows, W cols
	v *mat.Dense
}

// NewVectorField stacks two scalar planes (x-velocity, y-velocity) into a
// vector field. NaN entries mark missing cells. Both planes must share
// dimensions.
func NewVectorField(u, v *mat.Dense) (*VectorField, error) {
	ur, uc := u.Dims()
	vr, vc := v.Dims()
	if ur != vr || uc != vc {
		return nil, ErrBadShape
	}
	return &VectorField{u: u, v: v}, nil
}

// Dims returns the field width and height.
func (f *VectorField) Dims() (w, h int) {
	r, c := f.u.Dims()
	return c, r
}

// At returns the velocity at grid cell (x, y) and whether the cell holds a
// sample. Panics if (x, y) lies outside the field.
func (f *VectorField) At(x, y int) (Vec, bool) {
	u := f.u.At(y, x)
	v := f.v.At(y, x)
	if math.IsNaN(u) || math.IsNaN(v) {
		return Vec{}, false
	}
	return Vec{U: u, V: v}, true
}

// MissingCount returns the number of cells without a sample.
func (f *VectorField) MissingCount() int {
	w, h := f.Dims()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if _, ok := f.At(x, y); !ok {
				n++
			}
		}
	}
	return n
}
