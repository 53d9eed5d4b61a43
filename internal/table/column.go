package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the storage type of a column.
type Kind uint8

const (
	KindString Kind = iota
	KindFactor // dictionary-encoded string with a fixed set of levels
	KindInt
	KindFloat
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindFactor:
		return "factor"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalJSON encodes the kind by name, so schemas read as
// {"name": "year", "kind": "int"} on the wire.
func (k Kind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON decodes a kind name.
func (k *Kind) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"string"`:
		*k = KindString
	case `"factor"`:
		*k = KindFactor
	case `"int"`:
		*k = KindInt
	case `"float"`:
		*k = KindFloat
	default:
		return fmt.Errorf("table: unknown kind %s", data)
	}
	return nil
}

// Column is a single named, typed column. Columns are immutable once
// built; verbs that reshape a table construct new columns and may share
// backing storage (factor levels in particular) with their inputs.
type Column struct {
	name string
	kind Kind

	strs   []string  // KindString
	codes  []int32   // KindFactor, index into levels
	levels []string  // KindFactor dictionary
	ints   []int64   // KindInt
	floats []float64 // KindFloat
}

// NewString builds a plain string column.
func NewString(name string, values []string) *Column {
	return &Column{name: name, kind: KindString, strs: values}
}

// NewFactor builds a dictionary-encoded string column. Levels are
// assigned in order of first appearance.
func NewFactor(name string, values []string) *Column {
	codes := make([]int32, len(values))
	var levels []string
	index := make(map[string]int32)
	for i, v := range values {
		id, ok := index[v]
		if !ok {
			id = int32(len(levels))
			levels = append(levels, v)
			index[v] = id
		}
		codes[i] = id
	}
	return &Column{name: name, kind: KindFactor, codes: codes, levels: levels}
}

// NewInt builds an integer column.
func NewInt(name string, values []int64) *Column {
	return &Column{name: name, kind: KindInt, ints: values}
}

// NewFloat builds a float column.
func NewFloat(name string, values []float64) *Column {
	return &Column{name: name, kind: KindFloat, floats: values}
}

func (c *Column) Name() string { return c.name }
func (c *Column) Kind() Kind   { return c.kind }

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.kind {
	case KindString:
		return len(c.strs)
	case KindFactor:
		return len(c.codes)
	case KindInt:
		return len(c.ints)
	default:
		return len(c.floats)
	}
}

// IsNumeric reports whether the column can feed numeric expressions and
// aggregations.
func (c *Column) IsNumeric() bool { return c.kind == KindInt || c.kind == KindFloat }

// Levels returns the factor dictionary in code order, or nil for
// non-factor columns. Callers must not modify the returned slice.
func (c *Column) Levels() []string {
	if c.kind != KindFactor {
		return nil
	}
	return c.levels
}

// Value returns the cell at row i as string, int64 or float64.
func (c *Column) Value(i int) any {
	switch c.kind {
	case KindString:
		return c.strs[i]
	case KindFactor:
		return c.levels[c.codes[i]]
	case KindInt:
		return c.ints[i]
	default:
		return c.floats[i]
	}
}

// Str returns the cell at row i for string and factor columns.
func (c *Column) Str(i int) (string, bool) {
	switch c.kind {
	case KindString:
		return c.strs[i], true
	case KindFactor:
		return c.levels[c.codes[i]], true
	}
	return "", false
}

// Int64 returns the cell at row i for integer columns.
func (c *Column) Int64(i int) (int64, bool) {
	if c.kind != KindInt {
		return 0, false
	}
	return c.ints[i], true
}

// Float64 returns the cell at row i for float columns.
func (c *Column) Float64(i int) (float64, bool) {
	if c.kind != KindFloat {
		return 0, false
	}
	return c.floats[i], true
}

// num coerces the cell at row i to float64. Integer cells widen;
// string and factor cells do not coerce.
func (c *Column) num(i int) (float64, bool) {
	switch c.kind {
	case KindInt:
		return float64(c.ints[i]), true
	case KindFloat:
		return c.floats[i], true
	}
	return 0, false
}

// label renders the cell at row i as a string, used for group keys and
// text output.
func (c *Column) label(i int) string {
	switch c.kind {
	case KindString:
		return c.strs[i]
	case KindFactor:
		return c.levels[c.codes[i]]
	case KindInt:
		return strconv.FormatInt(c.ints[i], 10)
	default:
		return strconv.FormatFloat(c.floats[i], 'g', -1, 64)
	}
}

// compare orders rows i and j of the same column: -1, 0 or 1. Factors
// compare by level text, not by code, so sort order matches the visible
// values.
func (c *Column) compare(i, j int) int {
	switch c.kind {
	case KindString:
		return strings.Compare(c.strs[i], c.strs[j])
	case KindFactor:
		return strings.Compare(c.levels[c.codes[i]], c.levels[c.codes[j]])
	case KindInt:
		a, b := c.ints[i], c.ints[j]
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	default:
		a, b := c.floats[i], c.floats[j]
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		}
		return 0
	}
}

// take builds a new column holding the rows listed in idx, in order.
// Factor columns keep their dictionary.
func (c *Column) take(idx []int) *Column {
	out := &Column{name: c.name, kind: c.kind}
	switch c.kind {
	case KindString:
		out.strs = make([]string, len(idx))
		for k, i := range idx {
			out.strs[k] = c.strs[i]
		}
	case KindFactor:
		out.levels = c.levels
		out.codes = make([]int32, len(idx))
		for k, i := range idx {
			out.codes[k] = c.codes[i]
		}
	case KindInt:
		out.ints = make([]int64, len(idx))
		for k, i := range idx {
			out.ints[k] = c.ints[i]
		}
	default:
		out.floats = make([]float64, len(idx))
		for k, i := range idx {
			out.floats[k] = c.floats[i]
		}
	}
	return out
}

// withName returns a copy of the column under a new name, sharing storage.
func (c *Column) withName(name string) *Column {
	out := *c
	out.name = name
	return &out
}
