package validate

import (
	"time"

	"streamlake/internal/schema"
)

// Value is a single typed cell. Exactly one of the payload fields is
// meaningful, selected by Kind. Present is false only for optional values
// that were absent in the source (an empty end_date); every other value has
// Present true.
type Value struct {
	Kind    schema.Kind
	Present bool

	Text string
	Int  int64
	Real float64
	Time time.Time
	Bool bool
}

// TypedRow is a fully parsed data row. It only exists if every typed column
// parsed successfully; pass-through columns keep their original text. Line is
// the 1-based line number in the source file.
type TypedRow struct {
	Line   int
	values map[string]Value
}

// NewTypedRow builds a typed row from already-parsed values, keyed by column
// name. Validation constructs rows itself; this is for callers that assemble
// rows programmatically.
func NewTypedRow(line int, values map[string]Value) TypedRow {
	return TypedRow{Line: line, values: values}
}

// Value returns the typed value for a column.
// Returns false if the column is not part of the row.
func (r TypedRow) Value(col string) (Value, bool) {
	v, ok := r.values[col]
	return v, ok
}

// Int returns the integer value of a column, or zero if the column is absent
// or not an integer.
func (r TypedRow) Int(col string) int64 {
	return r.values[col].Int
}

// Real returns the floating-point value of a column.
func (r TypedRow) Real(col string) float64 {
	return r.values[col].Real
}

// Text returns the raw text of a pass-through column.
func (r TypedRow) Text(col string) string {
	return r.values[col].Text
}

// Bool returns the boolean value of a column.
func (r TypedRow) Bool(col string) bool {
	return r.values[col].Bool
}

// Time returns the date or timestamp value of a column. The second return is
// false when the value was absent (optional date left empty).
func (r TypedRow) Time(col string) (time.Time, bool) {
	v := r.values[col]
	return v.Time, v.Present
}
