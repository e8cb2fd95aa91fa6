package vfield

import (
	"fmt"
	"math"
)

// Table is an in-memory tabular record set of named float64 columns.
// Missing cells are NaN. Row order is preserved but carries no meaning.
//
// Tables are the boundary type between the I/O layer and the field
// pipeline: the reader hands one in, the pipeline never mutates it.
type Table struct {
	names []string
	cols  map[string][]float64
	rows  int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{cols: make(map[string][]float64)}
}

// AddColumn appends a named column. All columns must share the same length;
// adding a column whose name already exists replaces it.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(t.names) > 0 && len(values) != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", name, len(values), t.rows)
	}
	if _, exists := t.cols[name]; !exists {
		t.names = append(t.names, name)
		t.rows = len(values)
	}
	t.cols[name] = values
	return nil
}

// Column returns the named column values, or false if absent.
// The returned slice is the table's backing storage; callers must not
// modify it.
func (t *Table) Column(name string) ([]float64, bool) {
	c, ok := t.cols[name]
	return c, ok
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Names returns the column names in insertion order.
func (t *Table) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, name := range t.names {
		vals := make([]float64, len(t.cols[name]))
		copy(vals, t.cols[name])
		out.AddColumn(name, vals)
	}
	return out
}

// columnMin returns the minimum of a column, ignoring NaN entries.
// Returns NaN for an empty or all-missing column.
func columnMin(vals []float64) float64 {
	m := math.NaN()
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v < m {
			m = v
		}
	}
	return m
}
