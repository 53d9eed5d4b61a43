package table

import "fmt"

// SchemaError reports a reference to a field that does not exist in a
// table's schema. Op names the operation that made the reference.
type SchemaError struct {
	Op    string
	Field string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table: %s: unknown field %q", e.Op, e.Field)
}

// ComputationError reports a row-level evaluation failure inside a verb,
// such as a derived column dividing by zero or an aggregation applied to
// a non-numeric field. The verb discards any partial output before
// returning it.
type ComputationError struct {
	Op  string
	Col string // output or source column involved, empty if not applicable
	Row int    // row index where evaluation failed, -1 if not row-specific
	Err error
}

func (e *ComputationError) Error() string {
	msg := "table: " + e.Op
	if e.Col != "" {
		msg += " " + fmt.Sprintf("%q", e.Col)
	}
	if e.Row >= 0 {
		msg += fmt.Sprintf(": row %d", e.Row)
	}
	return msg + ": " + e.Err.Error()
}

func (e *ComputationError) Unwrap() error { return e.Err }
