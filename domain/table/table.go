// Package table provides the in-memory tabular dataset lifted between builds.
package table

import (
	"errors"
	"fmt"
	"strconv"
)

// Errors returned when constructing or querying tables.
var (
	ErrDuplicateIndex = errors.New("duplicate row index")
	ErrRowWidth       = errors.New("row width does not match columns")
	ErrMissingColumn  = errors.New("missing column")
)

// Table is an ordered set of named string columns. Each row carries an index
// value that is unique within the table.
type Table struct {
	columns []string
	index   []string
	rows    [][]string
}

// Option configures table construction.
type Option func(*options)

type options struct {
	index []string
}

// WithIndex sets explicit row index values. They must be unique.
func WithIndex(index []string) Option {
	return func(o *options) {
		o.index = index
	}
}

// New creates a Table. Without WithIndex rows are indexed 0..n-1.
func New(columns []string, rows [][]string, opts ...Option) (Table, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	for i, row := range rows {
		if len(row) != len(columns) {
			return Table{}, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRowWidth, i, len(row), len(columns))
		}
	}

	index := o.index
	if index == nil {
		index = make([]string, len(rows))
		for i := range rows {
			index[i] = strconv.Itoa(i)
		}
	}
	if len(index) != len(rows) {
		return Table{}, fmt.Errorf("index has %d values for %d rows", len(index), len(rows))
	}

	seen := make(map[string]struct{}, len(index))
	for _, v := range index {
		if _, ok := seen[v]; ok {
			return Table{}, fmt.Errorf("%w: %q", ErrDuplicateIndex, v)
		}
		seen[v] = struct{}{}
	}

	cols := append([]string(nil), columns...)
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	return Table{
		columns: cols,
		index:   append([]string(nil), index...),
		rows:    copied,
	}, nil
}

// Columns returns the column names in order.
func (t Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t Table) Len() int {
	return len(t.rows)
}

// Index returns the index value of row i.
func (t Table) Index(i int) string {
	return t.index[i]
}

// Row returns a copy of the cells of row i.
func (t Table) Row(i int) []string {
	return append([]string(nil), t.rows[i]...)
}

// ColumnIndex returns the position of a column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row i in the named column.
func (t Table) Value(i int, column string) (string, error) {
	pos := t.ColumnIndex(column)
	if pos < 0 {
		return "", fmt.Errorf("%w: %s", ErrMissingColumn, column)
	}
	return t.rows[i][pos], nil
}

// Subset returns the rows at the given positions, preserving their index.
func (t Table) Subset(positions []int) Table {
	out := Table{
		columns: t.Columns(),
		index:   make([]string, 0, len(positions)),
		rows:    make([][]string, 0, len(positions)),
	}
	for _, p := range positions {
		out.index = append(out.index, t.index[p])
		out.rows = append(out.rows, t.Row(p))
	}
	return out
}

// Records returns each row as a column name to value map.
func (t Table) Records() []map[string]string {
	records := make([]map[string]string, len(t.rows))
	for i, row := range t.rows {
		rec := make(map[string]string, len(t.columns))
		for j, c := range t.columns {
			rec[c] = row[j]
		}
		records[i] = rec
	}
	return records
}
