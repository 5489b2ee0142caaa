// Package table provides the in-memory labeled table that feature generators
// consume and produce.
//
// A Table is a set of named columns with a fixed order. Every column holds the
// same number of cells. Cells are one of:
//
//   - nil (missing value)
//   - int64
//   - float64
//   - bool
//   - time.Time
//   - string
//
// Tables are treated as values: Select and WithColumns return new tables and
// never modify the receiver.
package table

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
)

// ErrColumnNotFound is returned when a requested column does not exist.
var ErrColumnNotFound = errors.New("column not found")

// Series is an optional label vector aligned with the rows of a Table.
type Series []any

// Table is an ordered collection of equally sized named columns.
type Table struct {
	columns []string
	data    map[string][]any
	rows    int
}

// New builds a table from column names and their data.
// The order of columns is taken from the columns slice.
func New(columns []string, data map[string][]any) (*Table, error) {
	t := &Table{
		columns: make([]string, 0, len(columns)),
		data:    make(map[string][]any, len(columns)),
	}

	for i, name := range columns {
		if _, dup := t.data[name]; dup {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		values, ok := data[name]
		if !ok {
			return nil, fmt.Errorf("no data for column %q", name)
		}
		if i == 0 {
			t.rows = len(values)
		} else if len(values) != t.rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", name, len(values), t.rows)
		}
		t.columns = append(t.columns, name)
		t.data[name] = values
	}

	return t, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(columns []string, data map[string][]any) *Table {
	t, err := New(columns, data)
	if err != nil {
		panic(err)
	}
	return t
}

// Columns returns a copy of the column names in order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return t.rows
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return len(t.columns)
}

// Has reports whether the table has a column with the given name.
func (t *Table) Has(name string) bool {
	_, ok := t.data[name]
	return ok
}

// Column returns the cells of the named column.
// The returned slice is shared with the table and must not be modified.
func (t *Table) Column(name string) ([]any, bool) {
	values, ok := t.data[name]
	return values, ok
}

// Row returns the cells of row i in column order.
func (t *Table) Row(i int) []any {
	row := make([]any, len(t.columns))
	for j, name := range t.columns {
		row[j] = t.data[name][i]
	}
	return row
}

// Select returns a new table with exactly the named columns, in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	data := make(map[string][]any, len(names))
	for _, name := range names {
		values, ok := t.data[name]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
		}
		data[name] = values
	}
	out, err := New(names, data)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		out.rows = t.rows
	}
	return out, nil
}

// WithColumns relabels the columns positionally: column i is renamed to names[i].
func (t *Table) WithColumns(names []string) (*Table, error) {
	if len(names) != len(t.columns) {
		return nil, fmt.Errorf("cannot relabel %d columns with %d names", len(t.columns), len(names))
	}
	data := make(map[string][]any, len(names))
	for i, name := range names {
		data[name] = t.data[t.columns[i]]
	}
	out, err := New(names, data)
	if err != nil {
		return nil, err
	}
	out.rows = t.rows
	return out, nil
}

// Pop splits the named column off the table, returning the remaining table and
// the column as a Series.
func (t *Table) Pop(name string) (*Table, Series, error) {
	values, ok := t.data[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	rest := make([]string, 0, len(t.columns)-1)
	for _, c := range t.columns {
		if c != name {
			rest = append(rest, c)
		}
	}
	out, err := t.Select(rest...)
	if err != nil {
		return nil, nil, err
	}
	return out, Series(slices.Clone(values)), nil
}

// Equal reports whether both tables have the same columns in the same order and
// the same cells.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.rows != other.rows || !slices.Equal(t.columns, other.columns) {
		return false
	}
	for _, name := range t.columns {
		if !reflect.DeepEqual(t.data[name], other.data[name]) {
			return false
		}
	}
	return true
}
