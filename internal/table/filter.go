package table

import (
	"fmt"
	"strings"
)

// Predicate decides row membership for Filter. Predicates declare the
// fields they read up front so Filter can reject unknown names before
// scanning a single row. Build them with Eq, Lt, In and friends and
// combine with And, Or and Not; Where covers anything the constructors
// cannot express.
type Predicate interface {
	// Fields lists every column the predicate reads.
	Fields() []string

	eval(t *Table, i int) (bool, error)
}

// Filter returns the rows for which p holds, preserving order. A
// predicate that matches nothing yields an empty table, not an error.
// Referencing an unknown field is a SchemaError; a row-level evaluation
// failure (such as comparing a string column against a number) is a
// ComputationError.
func (t *Table) Filter(p Predicate) (*Table, error) {
	for _, f := range p.Fields() {
		if !t.HasColumn(f) {
			return nil, &SchemaError{Op: "filter", Field: f}
		}
	}
	var idx []int
	for i := 0; i < t.n; i++ {
		ok, err := p.eval(t, i)
		if err != nil {
			return nil, &ComputationError{Op: "filter", Row: i, Err: err}
		}
		if ok {
			idx = append(idx, i)
		}
	}
	return t.take(idx), nil
}

type compareOp uint8

const (
	opEq compareOp = iota
	opNe
	opLt
	opLe
	opGt
	opGe
)

func (op compareOp) String() string {
	return [...]string{"==", "!=", "<", "<=", ">", ">="}[op]
}

type comparison struct {
	field string
	op    compareOp
	value any
}

// Eq matches rows where field equals value.
func Eq(field string, value any) Predicate { return &comparison{field, opEq, value} }

// Ne matches rows where field differs from value.
func Ne(field string, value any) Predicate { return &comparison{field, opNe, value} }

// Lt matches rows where field is less than value.
func Lt(field string, value any) Predicate { return &comparison{field, opLt, value} }

// Le matches rows where field is at most value.
func Le(field string, value any) Predicate { return &comparison{field, opLe, value} }

// Gt matches rows where field is greater than value.
func Gt(field string, value any) Predicate { return &comparison{field, opGt, value} }

// Ge matches rows where field is at least value.
func Ge(field string, value any) Predicate { return &comparison{field, opGe, value} }

func (p *comparison) Fields() []string { return []string{p.field} }

func (p *comparison) eval(t *Table, i int) (bool, error) {
	c, _ := t.Column(p.field)
	cmp, err := compareCell(c, i, p.op, p.value)
	if err != nil {
		return false, err
	}
	switch p.op {
	case opEq:
		return cmp == 0, nil
	case opNe:
		return cmp != 0, nil
	case opLt:
		return cmp < 0, nil
	case opLe:
		return cmp <= 0, nil
	case opGt:
		return cmp > 0, nil
	default:
		return cmp >= 0, nil
	}
}

// compareCell orders the cell at row i against a literal.
func compareCell(c *Column, i int, op compareOp, value any) (int, error) {
	switch c.kind {
	case KindString, KindFactor:
		want, ok := value.(string)
		if !ok {
			return 0, fmt.Errorf("cannot compare %s field %q %s %T", c.kind, c.name, op, value)
		}
		got, _ := c.Str(i)
		return strings.Compare(got, want), nil
	default:
		want, ok := numLiteral(value)
		if !ok {
			return 0, fmt.Errorf("cannot compare %s field %q %s %T", c.kind, c.name, op, value)
		}
		got, _ := c.num(i)
		switch {
		case got < want:
			return -1, nil
		case got > want:
			return 1, nil
		}
		return 0, nil
	}
}

// numLiteral widens a numeric literal of any common Go type to float64.
func numLiteral(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

type inSet struct {
	field  string
	values []any
}

// In matches rows where field equals any of the given values.
func In(field string, values ...any) Predicate { return &inSet{field: field, values: values} }

func (p *inSet) Fields() []string { return []string{p.field} }

func (p *inSet) eval(t *Table, i int) (bool, error) {
	c, _ := t.Column(p.field)
	for _, v := range p.values {
		cmp, err := compareCell(c, i, opEq, v)
		if err != nil {
			return false, err
		}
		if cmp == 0 {
			return true, nil
		}
	}
	return false, nil
}

type conjunction struct{ ps []Predicate }

// And matches rows satisfying every given predicate.
func And(ps ...Predicate) Predicate { return &conjunction{ps: ps} }

func (p *conjunction) Fields() []string { return unionFields(p.ps) }

func (p *conjunction) eval(t *Table, i int) (bool, error) {
	for _, sub := range p.ps {
		ok, err := sub.eval(t, i)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

type disjunction struct{ ps []Predicate }

// Or matches rows satisfying at least one of the given predicates.
func Or(ps ...Predicate) Predicate { return &disjunction{ps: ps} }

func (p *disjunction) Fields() []string { return unionFields(p.ps) }

func (p *disjunction) eval(t *Table, i int) (bool, error) {
	for _, sub := range p.ps {
		ok, err := sub.eval(t, i)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

type negation struct{ p Predicate }

// Not matches exactly the rows its argument rejects, so Filter(p) and
// Filter(Not(p)) partition a table between them.
func Not(p Predicate) Predicate { return &negation{p: p} }

func (p *negation) Fields() []string { return p.p.Fields() }

func (p *negation) eval(t *Table, i int) (bool, error) {
	ok, err := p.p.eval(t, i)
	return !ok, err
}

type adhoc struct {
	fields []string
	fn     func(Row) (bool, error)
}

// Where wraps an arbitrary row function as a predicate. fields must
// list every column the function reads; Filter validates them like any
// other predicate.
func Where(fields []string, fn func(Row) (bool, error)) Predicate {
	return &adhoc{fields: fields, fn: fn}
}

func (p *adhoc) Fields() []string { return p.fields }

func (p *adhoc) eval(t *Table, i int) (bool, error) { return p.fn(t.Row(i)) }

func unionFields(ps []Predicate) []string {
	seen := make(map[string]bool)
	var fields []string
	for _, p := range ps {
		for _, f := range p.Fields() {
			if !seen[f] {
				seen[f] = true
				fields = append(fields, f)
			}
		}
	}
	return fields
}
