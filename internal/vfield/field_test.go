package vfield

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestNewVectorFieldShapeMismatch(t *testing.T) {
	u := mat.NewDense(2, 3, nil)
	v := mat.NewDense(3, 2, nil)
	_, err := NewVectorField(u, v)
	assert.ErrorIs(t, err, ErrBadShape)
}

func TestVectorFieldAt(t *testing.T) {
	u := mat.NewDense(2, 2, []float64{1, 2, 3, math.NaN()})
	v := mat.NewDense(2, 2, []float64{5, 6, 7, 8})
	field, err := NewVectorField(u, v)
	require.NoError(t, err)

	w, h := field.Dims()
	assert.Equal(t, 2, w)
	assert.Equal(t, 2, h)

	vec, ok := field.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, Vec{U: 2, V: 6}, vec)

	// A NaN in either plane marks the cell missing.
	_, ok = field.At(1, 1)
	assert.False(t, ok)
	assert.Equal(t, 1, field.MissingCount())
}

func TestVecDot(t *testing.T) {
	a := Vec{U: 1, V: 2}
	b := Vec{U: 3, V: -4}
	assert.Equal(t, -5.0, a.Dot(b))
}

func TestTableCloneIsDeep(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []float64{1, 2}))

	clone := tbl.Clone()
	vals, _ := clone.Column("a")
	vals[0] = 99

	orig, _ := tbl.Column("a")
	assert.Equal(t, 1.0, orig[0])
}

func TestTableAddColumnLengthMismatch(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("a", []float64{1, 2}))
	assert.Error(t, tbl.AddColumn("b", []float64{1}))
}

func TestTableNamesOrder(t *testing.T) {
	tbl := NewTable()
	require.NoError(t, tbl.AddColumn("b", []float64{1}))
	require.NoError(t, tbl.AddColumn("a", []float64{2}))
	assert.Equal(t, []string{"b", "a"}, tbl.Names())
	assert.Equal(t, 1, tbl.Len())
}
