// Package config loads optional run configuration from JSON. The schema
// mirrors the command-line flags; flags win over file values so a config
// file can hold site defaults while individual runs override them.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// FileConfig is the JSON schema. Every field is optional; nil means "not
// set in the file".
type FileConfig struct {
	DataStartRow *int     `json:"data_start_row,omitempty"`
	MinRadius    *int     `json:"min_radius,omitempty"`
	MaxRadius    *int     `json:"max_radius,omitempty"`
	RadiusStep   *int     `json:"radius_step,omitempty"`
	PixelConv    *float64 `json:"pixel_to_unit_conversion_factor,omitempty"`
	GridStepSize *int     `json:"grid_step_size,omitempty"`
	Workers      *int     `json:"workers,omitempty"`
	Fisher       *bool    `json:"fisher_average,omitempty"`

	XPosColumn *string `json:"x_position_column,omitempty"`
	YPosColumn *string `json:"y_position_column,omitempty"`
	XVelColumn *string `json:"x_velocity_column,omitempty"`
	YVelColumn *string `json:"y_velocity_column,omitempty"`
}

// Options is the fully resolved run configuration.
type Options struct {
	DataStartRow int
	MinRadius    int
	MaxRadius    int
	RadiusStep   int
	PixelConv    float64 // 0 = not provided, auto-infer the factor
	GridStepSize int     // 0 = not provided
	Workers      int
	Fisher       bool

	XPosColumn string
	YPosColumn string
	XVelColumn string
	YVelColumn string
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		DataStartRow: 0,
		MinRadius:    1,
		MaxRadius:    25,
		RadiusStep:   1,
		XPosColumn:   "x [px]",
		YPosColumn:   "y [px]",
		XVelColumn:   "u [px/frame]",
		YVelColumn:   "v [px/frame]",
	}
}

// Load reads and parses a JSON config file.
func Load(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var fc FileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &fc, nil
}

// Apply copies every set field of the file config onto opts.
func (fc *FileConfig) Apply(opts *Options) {
	if fc == nil {
		return
	}
	if fc.DataStartRow != nil {
		opts.DataStartRow = *fc.DataStartRow
	}
	if fc.MinRadius != nil {
		opts.MinRadius = *fc.MinRadius
	}
	if fc.MaxRadius != nil {
		opts.MaxRadius = *fc.MaxRadius
	}
	if fc.RadiusStep != nil {
		opts.RadiusStep = *fc.RadiusStep
	}
	if fc.PixelConv != nil {
		opts.PixelConv = *fc.PixelConv
	}
	if fc.GridStepSize != nil {
		opts.GridStepSize = *fc.GridStepSize
	}
	if fc.Workers != nil {
		opts.Workers = *fc.Workers
	}
	if fc.Fisher != nil {
		opts.Fisher = *fc.Fisher
	}
	if fc.XPosColumn != nil {
		opts.XPosColumn = *fc.XPosColumn
	}
	if fc.YPosColumn != nil {
		opts.YPosColumn = *fc.YPosColumn
	}
	if fc.XVelColumn != nil {
		opts.XVelColumn = *fc.XVelColumn
	}
	if fc.YVelColumn != nil {
		opts.YVelColumn = *fc.YVelColumn
	}
}
