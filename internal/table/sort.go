package table

import (
	"fmt"
	"sort"
)

// Sort returns a table ordered by one field. The sort is stable: rows
// with equal keys keep their input order, so sorting ascending and then
// descending are exact reverses of each other only when keys are
// distinct.
func (t *Table) Sort(field string, ascending bool) (*Table, error) {
	return t.SortBy([]string{field}, []bool{ascending})
}

// SortBy returns a table ordered by several fields, earlier fields
// taking precedence. ascending must either match fields in length or be
// nil, which sorts everything ascending. The sort is stable.
func (t *Table) SortBy(fields []string, ascending []bool) (*Table, error) {
	if ascending == nil {
		ascending = make([]bool, len(fields))
		for i := range ascending {
			ascending[i] = true
		}
	}
	if len(fields) != len(ascending) {
		return nil, fmt.Errorf("table: sort: %d fields but %d direction flags", len(fields), len(ascending))
	}
	cols := make([]*Column, len(fields))
	for i, f := range fields {
		c, ok := t.Column(f)
		if !ok {
			return nil, &SchemaError{Op: "sort", Field: f}
		}
		cols[i] = c
	}

	idx := make([]int, t.n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		for k, c := range cols {
			cmp := c.compare(idx[a], idx[b])
			if cmp == 0 {
				continue
			}
			if ascending[k] {
				return cmp < 0
			}
			return cmp > 0
		}
		return false
	})
	return t.take(idx), nil
}
