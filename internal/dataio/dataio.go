// Package dataio reads sample tables from CSV and writes sweep results
// back out. It is the thin boundary around the core pipeline: all
// validation of the data itself lives with the vfield and corr packages.
package dataio

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/velocimetry/velcorr/internal/sweep"
	"github.com/velocimetry/velcorr/internal/vfield"
)

// ReadOptions configures CSV ingestion.
type ReadOptions struct {
	// DataStartRow is the zero-based row index of the header; rows before
	// it are discarded. Instruments often prepend free-form metadata.
	DataStartRow int
}

// missing markers recognized in numeric cells.
var missingMarkers = map[string]bool{
	"":    true,
	"na":  true,
	"n/a": true,
	"nan": true,
}

// ReadSamples parses CSV from r into a table of float64 columns. The first
// row at DataStartRow names the columns; every later row is one sample.
// Cells that are empty or carry an NA/NaN marker become missing values.
// Any other unparseable cell is an error, since silently dropping a sample
// would skew the correlation counts.
func ReadSamples(r io.Reader, opts ReadOptions) (*vfield.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Metadata rows before the header may be ragged; row widths are
	// checked against the header below instead.
	cr.FieldsPerRecord = -1

	for i := 0; i < opts.DataStartRow; i++ {
		if _, err := cr.Read(); err != nil {
			return nil, fmt.Errorf("skipping to data start row %d: %w", opts.DataStartRow, err)
		}
	}

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	cols := make([][]float64, len(header))
	row := opts.DataStartRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", row, err)
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", row, len(record), len(header))
		}
		for i, cell := range record {
			v, err := parseCell(cell)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", row, header[i], err)
			}
			cols[i] = append(cols[i], v)
		}
	}

	tbl := vfield.NewTable()
	for i, name := range header {
		if err := tbl.AddColumn(name, cols[i]); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

func parseCell(cell string) (float64, error) {
	cell = strings.TrimSpace(cell)
	if missingMarkers[strings.ToLower(cell)] {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric value %q", cell)
	}
	return v, nil
}

// WriteResults writes one CSV row per swept radius, radius ascending, in
// the order results arrive. The radius_units column is included only when
// withUnits is set (i.e. a physical conversion factor is known).
func WriteResults(w io.Writer, results []sweep.RadiusResult, withUnits bool) error {
	cw := csv.NewWriter(w)

	header := []string{"radius"}
	if withUnits {
		header = append(header, "radius_units")
	}
	header = append(header, "corr_score", "n_observed", "n_ge4", "n_eq8")
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, res := range results {
		row := []string{strconv.Itoa(res.Radius)}
		if withUnits {
			row = append(row, formatFloat(res.RadiusUnits))
		}
		row = append(row,
			formatFloat(res.Score),
			strconv.Itoa(res.NObserved),
			strconv.Itoa(res.NGE4),
			strconv.Itoa(res.NEQ8),
		)
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
