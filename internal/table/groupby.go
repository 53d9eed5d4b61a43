package table

import (
	"fmt"
	"sort"
)

// Grouped is a table with grouping keys attached, produced by GroupBy
// and consumed by Aggregate. It holds no computed state of its own.
type Grouped struct {
	t    *Table
	keys []string
}

// GroupBy attaches grouping keys to the table. Key validation happens
// in Aggregate, which is the only operation a Grouped supports.
func (t *Table) GroupBy(keys ...string) *Grouped {
	return &Grouped{t: t, keys: keys}
}

type aggOp uint8

const (
	aggSum aggOp = iota
	aggMean
	aggMedian
	aggMin
	aggMax
	aggCount
	aggFirst
)

func (op aggOp) String() string {
	return [...]string{"sum", "mean", "median", "min", "max", "count", "first"}[op]
}

// Aggregation is one named reduction over a group's rows. The zero
// value is not useful; build aggregations with Sum, Mean, Median, Min,
// Max, Count and First, and rename the output column with As. Without
// As the output column is named op_field, such as max_population.
type Aggregation struct {
	op    aggOp
	field string
	name  string
}

// Sum totals a numeric field per group. Integer fields stay integer.
func Sum(field string) Aggregation { return Aggregation{op: aggSum, field: field} }

// Mean averages a numeric field per group.
func Mean(field string) Aggregation { return Aggregation{op: aggMean, field: field} }

// Median takes the middle value of a numeric field per group, averaging
// the two middle values for even-sized groups.
func Median(field string) Aggregation { return Aggregation{op: aggMedian, field: field} }

// Min takes the smallest value of a numeric field per group.
func Min(field string) Aggregation { return Aggregation{op: aggMin, field: field} }

// Max takes the largest value of a numeric field per group.
func Max(field string) Aggregation { return Aggregation{op: aggMax, field: field} }

// Count counts the rows in each group. Its default output name is "n".
func Count() Aggregation { return Aggregation{op: aggCount, name: "n"} }

// First carries the field's value from each group's first input row,
// keeping the field's kind. Useful for fields that are constant within
// a group, like continent grouped by country.
func First(field string) Aggregation { return Aggregation{op: aggFirst, field: field} }

// As names the aggregation's output column.
func (a Aggregation) As(name string) Aggregation {
	a.name = name
	return a
}

// OutputName returns the column name the aggregation will produce.
func (a Aggregation) OutputName() string {
	if a.name != "" {
		return a.name
	}
	return a.op.String() + "_" + a.field
}

// Aggregate partitions the rows by the grouping keys and reduces each
// group to one output row: the key fields first, then one column per
// aggregation. Groups are ordered by their key values ascending, so the
// output is deterministic regardless of input order. An unknown key or
// aggregation field is a SchemaError; aggregating a non-numeric field
// with anything but Count or First is a ComputationError.
func (g *Grouped) Aggregate(aggs ...Aggregation) (*Table, error) {
	t := g.t
	keyCols := make([]*Column, len(g.keys))
	for i, k := range g.keys {
		c, ok := t.Column(k)
		if !ok {
			return nil, &SchemaError{Op: "groupBy", Field: k}
		}
		keyCols[i] = c
	}
	for _, a := range aggs {
		if a.op == aggCount {
			continue
		}
		c, ok := t.Column(a.field)
		if !ok {
			return nil, &SchemaError{Op: "aggregate", Field: a.field}
		}
		if a.op != aggFirst && !c.IsNumeric() {
			return nil, &ComputationError{
				Op:  "aggregate",
				Col: a.field,
				Row: -1,
				Err: fmt.Errorf("%s over non-numeric field %q", a.op, a.field),
			}
		}
	}
	if err := checkOutputNames(g.keys, aggs); err != nil {
		return nil, err
	}

	// Partition rows, remembering each group's first row as its
	// representative for ordering and First.
	slot := make(map[string]int)
	var groups [][]int
	var reps []int
	for i := 0; i < t.n; i++ {
		key := compositeKey(keyCols, i)
		gi, ok := slot[key]
		if !ok {
			gi = len(groups)
			slot[key] = gi
			groups = append(groups, nil)
			reps = append(reps, i)
		}
		groups[gi] = append(groups[gi], i)
	}

	// Order groups by key values so equal inputs always aggregate to
	// equal outputs.
	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := reps[order[a]], reps[order[b]]
		for _, c := range keyCols {
			if cmp := c.compare(ra, rb); cmp != 0 {
				return cmp < 0
			}
		}
		return false
	})

	orderedReps := make([]int, len(order))
	for k, gi := range order {
		orderedReps[k] = reps[gi]
	}

	cols := make([]*Column, 0, len(keyCols)+len(aggs))
	for _, c := range keyCols {
		cols = append(cols, c.take(orderedReps))
	}
	for _, a := range aggs {
		col, err := a.reduce(t, groups, order, orderedReps)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}
	return &Table{cols: cols, n: len(order)}, nil
}

func checkOutputNames(keys []string, aggs []Aggregation) error {
	seen := make(map[string]bool, len(keys)+len(aggs))
	for _, k := range keys {
		seen[k] = true
	}
	for _, a := range aggs {
		name := a.OutputName()
		if seen[name] {
			return fmt.Errorf("table: aggregate: duplicate output column %q", name)
		}
		seen[name] = true
	}
	return nil
}

// reduce computes one output column across all groups in output order.
func (a Aggregation) reduce(t *Table, groups [][]int, order, orderedReps []int) (*Column, error) {
	name := a.OutputName()

	if a.op == aggCount {
		counts := make([]int64, len(order))
		for k, gi := range order {
			counts[k] = int64(len(groups[gi]))
		}
		return NewInt(name, counts), nil
	}

	src, _ := t.Column(a.field)

	if a.op == aggFirst {
		return src.take(orderedReps).withName(name), nil
	}

	// Sum, min and max keep integer fields integer; mean and median
	// always produce floats.
	if src.Kind() == KindInt && (a.op == aggSum || a.op == aggMin || a.op == aggMax) {
		vals := make([]int64, len(order))
		for k, gi := range order {
			vals[k] = reduceInts(a.op, src, groups[gi])
		}
		return NewInt(name, vals), nil
	}

	vals := make([]float64, len(order))
	for k, gi := range order {
		vals[k] = reduceFloats(a.op, src, groups[gi])
	}
	return NewFloat(name, vals), nil
}

func reduceInts(op aggOp, c *Column, rows []int) int64 {
	acc := c.ints[rows[0]]
	for _, i := range rows[1:] {
		v := c.ints[i]
		switch op {
		case aggSum:
			acc += v
		case aggMin:
			if v < acc {
				acc = v
			}
		default: // aggMax
			if v > acc {
				acc = v
			}
		}
	}
	return acc
}

func reduceFloats(op aggOp, c *Column, rows []int) float64 {
	switch op {
	case aggMedian:
		vals := make([]float64, len(rows))
		for k, i := range rows {
			vals[k], _ = c.num(i)
		}
		sort.Float64s(vals)
		n := len(vals)
		if n%2 == 1 {
			return vals[n/2]
		}
		return (vals[n/2-1] + vals[n/2]) / 2
	case aggMean:
		var total float64
		for _, i := range rows {
			v, _ := c.num(i)
			total += v
		}
		return total / float64(len(rows))
	default:
		acc, _ := c.num(rows[0])
		for _, i := range rows[1:] {
			v, _ := c.num(i)
			switch op {
			case aggSum:
				acc += v
			case aggMin:
				if v < acc {
					acc = v
				}
			default: // aggMax
				if v > acc {
					acc = v
				}
			}
		}
		return acc
	}
}
