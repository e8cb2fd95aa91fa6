// Package testutil provides shared test utilities and field fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/velocimetry/velcorr/internal/vfield"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertInDelta fails the test if got differs from want by more than delta.
func AssertInDelta(t *testing.T, got, want, delta float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(got-want) > delta {
		t.Errorf("got %v, want %v ± %v", got, want, delta)
	}
}

// FieldFromVecs builds a vector field from rows of vectors, rows[y][x].
// All rows must share a length.
func FieldFromVecs(t *testing.T, rows [][]vfield.Vec) *vfield.VectorField {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	u := mat.NewDense(h, w, nil)
	v := mat.NewDense(h, w, nil)
	for y, row := range rows {
		for x, vec := range row {
			u.Set(y, x, vec.U)
			v.Set(y, x, vec.V)
		}
	}
	f, err := vfield.NewVectorField(u, v)
	AssertNoError(t, err)
	return f
}

// UniformField returns a w x h field where every cell holds vec.
func UniformField(t *testing.T, w, h int, vec vfield.Vec) *vfield.VectorField {
	t.Helper()
	rows := make([][]vfield.Vec, h)
	for y := range rows {
		rows[y] = make([]vfield.Vec, w)
		for x := range rows[y] {
			rows[y][x] = vec
		}
	}
	return FieldFromVecs(t, rows)
}

// OpposingField returns an n x n field with vectors (+1,+1) above the main
// diagonal, (-1,-1) below it, and zero vectors on it. Cells across the
// diagonal anti-align, driving the correlation strongly negative at large
// radii.
func OpposingField(t *testing.T, n int) *vfield.VectorField {
	t.Helper()
	rows := make([][]vfield.Vec, n)
	for y := range rows {
		rows[y] = make([]vfield.Vec, n)
		for x := range rows[y] {
			switch {
			case x > y:
				rows[y][x] = vfield.Vec{U: 1, V: 1}
			case x < y:
				rows[y][x] = vfield.Vec{U: -1, V: -1}
			}
		}
	}
	return FieldFromVecs(t, rows)
}

// NoiseField returns a w x h field of independent unit vectors at uniform
// random angles, deterministic for a given seed.
func NoiseField(t *testing.T, w, h int, seed int64) *vfield.VectorField {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]vfield.Vec, h)
	for y := range rows {
		rows[y] = make([]vfield.Vec, w)
		for x := range rows[y] {
			theta := rng.Float64() * 2 * math.Pi
			rows[y][x] = vfield.Vec{U: math.Cos(theta), V: math.Sin(theta)}
		}
	}
	return FieldFromVecs(t, rows)
}

// SpiralField returns a (2*radius+1) square field of unit vectors tangent
// to circles around the center cell, which itself holds a zero vector. A
// smooth swirl correlates strongly at small radii.
func SpiralField(t *testing.T, radius int) *vfield.VectorField {
	t.Helper()
	n := 2*radius + 1
	rows := make([][]vfield.Vec, n)
	for y := range rows {
		rows[y] = make([]vfield.Vec, n)
		for x := range rows[y] {
			px := float64(x - radius)
			py := float64(radius - y)
			if px == 0 && py == 0 {
				continue
			}
			theta := math.Atan2(py, px) - math.Pi/2
			rows[y][x] = vfield.Vec{U: math.Cos(theta), V: math.Sin(theta)}
		}
	}
	return FieldFromVecs(t, rows)
}
