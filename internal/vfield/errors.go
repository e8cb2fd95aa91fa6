package vfield

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingColumn indicates a required input column is absent.
	ErrMissingColumn = errors.New("required column missing")

	// ErrMissingPosition indicates a position column contains missing values.
	// Positions are mandatory for every sample; only velocities may be absent.
	ErrMissingPosition = errors.New("position values must not be missing")

	// ErrBadPosition indicates a position value is negative or non-integral.
	ErrBadPosition = errors.New("position values must be non-negative integers")

	// ErrBadFactor indicates a non-positive conversion factor.
	ErrBadFactor = errors.New("conversion factor must be greater than zero")

	// ErrBadStepSize indicates a non-positive grid step size.
	ErrBadStepSize = errors.New("step size must be a positive integer")

	// ErrNotCastable indicates rescaled positions do not land on integer
	// grid coordinates within tolerance.
	ErrNotCastable = errors.New("cannot safely cast scaled positions to integers; " +
		"confirm that the step size and unit conversion are correct")

	// ErrBadShape indicates the two scalar planes of a vector field do not
	// share dimensions.
	ErrBadShape = errors.New("vector field planes must share dimensions")
)

// ColumnError reports which required column was not found.
type ColumnError struct {
	Column string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q not found in input", e.Column)
}

func (e *ColumnError) Unwrap() error { return ErrMissingColumn }
