// Package table implements a small immutable columnar table with a
// dplyr-style verb set: Filter, Select, WithColumn, Sort, GroupBy and
// friends. Every verb is a pure function from one table value to a new
// one; input tables are never modified, so intermediate results can be
// kept and reused freely.
package table

import "fmt"

// Field describes one column of a table's schema.
type Field struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Table is an ordered set of equally sized columns. The zero value is
// not useful; build tables with New or the dataset loaders.
type Table struct {
	cols []*Column
	n    int
}

// New assembles a table from columns. All columns must have the same
// length and distinct names.
func New(cols ...*Column) (*Table, error) {
	if len(cols) == 0 {
		return &Table{}, nil
	}
	n := cols[0].Len()
	seen := make(map[string]bool, len(cols))
	for _, c := range cols {
		if c.Len() != n {
			return nil, fmt.Errorf("table: column %q has %d rows, want %d", c.Name(), c.Len(), n)
		}
		if seen[c.Name()] {
			return nil, fmt.Errorf("table: duplicate column %q", c.Name())
		}
		seen[c.Name()] = true
	}
	return &Table{cols: cols, n: n}, nil
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.n }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in schema order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name()
	}
	return names
}

// Schema returns the column names and kinds in schema order.
func (t *Table) Schema() []Field {
	fields := make([]Field, len(t.cols))
	for i, c := range t.cols {
		fields[i] = Field{Name: c.Name(), Kind: c.Kind()}
	}
	return fields
}

// Column returns the named column, or false if it does not exist.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.cols {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnAt returns the column at schema position i.
func (t *Table) ColumnAt(i int) *Column { return t.cols[i] }

// HasColumn reports whether the table has the named column.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.Column(name)
	return ok
}

// Row is a cursor over one row of a table, used by ad-hoc predicate and
// derivation functions.
type Row struct {
	t *Table
	i int
}

// Row returns a cursor for row i.
func (t *Table) Row(i int) Row { return Row{t: t, i: i} }

// Index returns the row's position in its table.
func (r Row) Index() int { return r.i }

// Value returns the named cell as string, int64 or float64, or nil for
// an unknown column.
func (r Row) Value(name string) any {
	c, ok := r.t.Column(name)
	if !ok {
		return nil
	}
	return c.Value(r.i)
}

// String returns the named cell for string and factor columns, and ""
// otherwise.
func (r Row) String(name string) string {
	c, ok := r.t.Column(name)
	if !ok {
		return ""
	}
	s, _ := c.Str(r.i)
	return s
}

// Int returns the named cell for integer columns, and 0 otherwise.
func (r Row) Int(name string) int64 {
	c, ok := r.t.Column(name)
	if !ok {
		return 0
	}
	v, _ := c.Int64(r.i)
	return v
}

// Float returns the named cell as float64, widening integer columns,
// and 0 otherwise.
func (r Row) Float(name string) float64 {
	c, ok := r.t.Column(name)
	if !ok {
		return 0
	}
	v, _ := c.num(r.i)
	return v
}

// take builds a new table holding the rows listed in idx, in order.
func (t *Table) take(idx []int) *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.take(idx)
	}
	return &Table{cols: cols, n: len(idx)}
}

// Select returns a table with only the named columns, in the given
// order. An unknown name is a SchemaError.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]*Column, 0, len(names))
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, &SchemaError{Op: "select", Field: name}
		}
		cols = append(cols, c)
	}
	return &Table{cols: cols, n: t.n}, nil
}

// Drop returns a table without the named columns. An unknown name is a
// SchemaError.
func (t *Table) Drop(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if !t.HasColumn(name) {
			return nil, &SchemaError{Op: "drop", Field: name}
		}
		drop[name] = true
	}
	cols := make([]*Column, 0, len(t.cols))
	for _, c := range t.cols {
		if !drop[c.Name()] {
			cols = append(cols, c)
		}
	}
	return &Table{cols: cols, n: t.n}, nil
}

// Rename returns a table with column old renamed to new. Renaming onto
// an existing column name is rejected.
func (t *Table) Rename(old, new string) (*Table, error) {
	if !t.HasColumn(old) {
		return nil, &SchemaError{Op: "rename", Field: old}
	}
	if old != new && t.HasColumn(new) {
		return nil, fmt.Errorf("table: rename: column %q already exists", new)
	}
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		if c.Name() == old {
			cols[i] = c.withName(new)
		} else {
			cols[i] = c
		}
	}
	return &Table{cols: cols, n: t.n}, nil
}

// Head returns the first n rows, or the whole table if it has fewer.
func (t *Table) Head(n int) *Table {
	if n >= t.n {
		return t
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.take(idx)
}

// Distinct returns the rows with the first occurrence of each distinct
// combination of the named fields, preserving input order. With no
// fields it deduplicates over the full schema.
func (t *Table) Distinct(fields ...string) (*Table, error) {
	if len(fields) == 0 {
		fields = t.Names()
	}
	cols := make([]*Column, 0, len(fields))
	for _, f := range fields {
		c, ok := t.Column(f)
		if !ok {
			return nil, &SchemaError{Op: "distinct", Field: f}
		}
		cols = append(cols, c)
	}
	seen := make(map[string]bool)
	var idx []int
	for i := 0; i < t.n; i++ {
		key := compositeKey(cols, i)
		if !seen[key] {
			seen[key] = true
			idx = append(idx, i)
		}
	}
	return t.take(idx), nil
}

// compositeKey joins the labels of one row across key columns. The unit
// separator keeps distinct tuples from colliding.
func compositeKey(cols []*Column, i int) string {
	if len(cols) == 1 {
		return cols[0].label(i)
	}
	key := ""
	for k, c := range cols {
		if k > 0 {
			key += "\x1f"
		}
		key += c.label(i)
	}
	return key
}
