package table

import "fmt"

// Expr is a numeric expression over a table's fields, used to derive
// new columns. Build leaf expressions with Col and Lit, combine them
// with Add, Sub, Mul and Div, and use Apply for derivations the
// arithmetic tree cannot express. Integer fields widen to float64
// inside an expression; the derived column is always a float column.
type Expr struct {
	kind   exprKind
	field  string
	lit    float64
	op     byte
	left   *Expr
	right  *Expr
	fields []string
	fn     func(Row) (float64, error)
}

type exprKind uint8

const (
	exprCol exprKind = iota
	exprLit
	exprBinary
	exprApply
)

// Col references the named numeric field.
func Col(name string) Expr { return Expr{kind: exprCol, field: name} }

// Lit is a constant.
func Lit(v float64) Expr { return Expr{kind: exprLit, lit: v} }

// Apply wraps an arbitrary row function as an expression. fields must
// list every column the function reads.
func Apply(fields []string, fn func(Row) (float64, error)) Expr {
	return Expr{kind: exprApply, fields: fields, fn: fn}
}

// Add returns e + o.
func (e Expr) Add(o Expr) Expr { return binary('+', e, o) }

// Sub returns e - o.
func (e Expr) Sub(o Expr) Expr { return binary('-', e, o) }

// Mul returns e * o.
func (e Expr) Mul(o Expr) Expr { return binary('*', e, o) }

// Div returns e / o. Dividing by zero is an evaluation failure, not an
// infinity; WithColumn reports it as a ComputationError.
func (e Expr) Div(o Expr) Expr { return binary('/', e, o) }

func binary(op byte, l, r Expr) Expr {
	return Expr{kind: exprBinary, op: op, left: &l, right: &r}
}

// Fields lists every column the expression reads.
func (e Expr) Fields() []string {
	seen := make(map[string]bool)
	var fields []string
	e.collectFields(seen, &fields)
	return fields
}

func (e Expr) collectFields(seen map[string]bool, fields *[]string) {
	switch e.kind {
	case exprCol:
		if !seen[e.field] {
			seen[e.field] = true
			*fields = append(*fields, e.field)
		}
	case exprBinary:
		e.left.collectFields(seen, fields)
		e.right.collectFields(seen, fields)
	case exprApply:
		for _, f := range e.fields {
			if !seen[f] {
				seen[f] = true
				*fields = append(*fields, f)
			}
		}
	}
}

func (e *Expr) eval(t *Table, i int) (float64, error) {
	switch e.kind {
	case exprCol:
		c, _ := t.Column(e.field)
		v, ok := c.num(i)
		if !ok {
			return 0, fmt.Errorf("field %q is not numeric", e.field)
		}
		return v, nil
	case exprLit:
		return e.lit, nil
	case exprApply:
		return e.fn(t.Row(i))
	default:
		l, err := e.left.eval(t, i)
		if err != nil {
			return 0, err
		}
		r, err := e.right.eval(t, i)
		if err != nil {
			return 0, err
		}
		switch e.op {
		case '+':
			return l + r, nil
		case '-':
			return l - r, nil
		case '*':
			return l * r, nil
		default:
			if r == 0 {
				return 0, fmt.Errorf("division by zero")
			}
			return l / r, nil
		}
	}
}

// WithColumn returns a table with a float column name computed from e
// for every row. An existing column of that name is replaced in its
// schema position, otherwise the new column is appended. Referencing an
// unknown field is a SchemaError. If evaluation fails for any row the
// whole verb fails with a ComputationError and no partial column is
// produced.
func (t *Table) WithColumn(name string, e Expr) (*Table, error) {
	for _, f := range e.Fields() {
		if !t.HasColumn(f) {
			return nil, &SchemaError{Op: "withColumn", Field: f}
		}
	}
	vals := make([]float64, t.n)
	for i := 0; i < t.n; i++ {
		v, err := e.eval(t, i)
		if err != nil {
			return nil, &ComputationError{Op: "withColumn", Col: name, Row: i, Err: err}
		}
		vals[i] = v
	}
	derived := NewFloat(name, vals)

	cols := make([]*Column, 0, len(t.cols)+1)
	replaced := false
	for _, c := range t.cols {
		if c.Name() == name {
			cols = append(cols, derived)
			replaced = true
		} else {
			cols = append(cols, c)
		}
	}
	if !replaced {
		cols = append(cols, derived)
	}
	return &Table{cols: cols, n: t.n}, nil
}
