package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "velcorr.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndApply(t *testing.T) {
	path := writeConfig(t, `{
		"min_radius": 2,
		"max_radius": 40,
		"pixel_to_unit_conversion_factor": 0.5,
		"x_position_column": "X",
		"fisher_average": true
	}`)

	fc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	opts := DefaultOptions()
	fc.Apply(&opts)

	if opts.MinRadius != 2 || opts.MaxRadius != 40 {
		t.Errorf("radius range = [%d, %d], want [2, 40]", opts.MinRadius, opts.MaxRadius)
	}
	if opts.PixelConv != 0.5 {
		t.Errorf("PixelConv = %v, want 0.5", opts.PixelConv)
	}
	if opts.XPosColumn != "X" {
		t.Errorf("XPosColumn = %q, want X", opts.XPosColumn)
	}
	if !opts.Fisher {
		t.Error("Fisher should be set")
	}
	// Unset fields keep their defaults.
	if opts.RadiusStep != 1 {
		t.Errorf("RadiusStep = %d, want default 1", opts.RadiusStep)
	}
	if opts.YPosColumn != "y [px]" {
		t.Errorf("YPosColumn = %q, want default", opts.YPosColumn)
	}
}

func TestApplyNilConfig(t *testing.T) {
	opts := DefaultOptions()
	var fc *FileConfig
	fc.Apply(&opts)
	if opts != DefaultOptions() {
		t.Error("nil config should leave defaults untouched")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Error("expected error for missing file")
	}
	path := writeConfig(t, "{not json")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestDefaultOptionsColumns(t *testing.T) {
	opts := DefaultOptions()
	if opts.XVelColumn != "u [px/frame]" || opts.YVelColumn != "v [px/frame]" {
		t.Errorf("velocity column defaults = %q/%q", opts.XVelColumn, opts.YVelColumn)
	}
}
