// Package vfield turns irregular point+velocity tabular data into a dense
// rectangular vector field.
//
// The pipeline is: RescalePositions maps raw coordinates onto an integer
// grid, then SquareInput expands the sparse sample list into a VectorField
// with one cell per grid coordinate, unsampled cells marked missing.
package vfield
