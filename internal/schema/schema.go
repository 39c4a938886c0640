// Package schema declares the expected shape of every raw dataset the
// pipeline consumes. Definitions are plain values with no behavior beyond
// lookup, so the validator, generator, and loader all share one source of
// truth for column names, order, and types.
package schema

// Kind is the expected data type of a CSV column. Columns with KindText are
// pass-through: their raw value is kept as-is and never fails parsing.
type Kind int

const (
	KindText Kind = iota
	KindInt
	KindReal
	KindDate
	KindOptionalDate
	KindDateTime
	KindBool
)

// String returns a human-readable name for the kind, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindReal:
		return "real"
	case KindDate:
		return "date"
	case KindOptionalDate:
		return "optional date"
	case KindDateTime:
		return "datetime"
	case KindBool:
		return "bool"
	default:
		return "text"
	}
}

// ColumnSpec describes a single CSV column: its header name and the type its
// values must parse to.
type ColumnSpec struct {
	Name string
	Kind Kind
}

// Dataset describes one raw CSV dataset.
type Dataset struct {
	Name    string       // dataset key: "customers", "plans", ...
	File    string       // source file name inside the raw data directory
	Columns []ColumnSpec // expected columns, order-sensitive
}

// Header returns the declared column names in order. A source file's header
// row must equal this exactly.
func (d Dataset) Header() []string {
	header := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		header[i] = col.Name
	}
	return header
}

// Registry is an immutable set of dataset definitions, constructed once per
// run and passed explicitly into each stage. Iteration order is dependency
// order: datasets used as referential sources come before their dependents.
type Registry struct {
	datasets []Dataset
	byName   map[string]Dataset
}

// NewRegistry builds a registry from dataset definitions. The given order is
// preserved and used as the validation order.
func NewRegistry(datasets ...Dataset) Registry {
	byName := make(map[string]Dataset, len(datasets))
	for _, ds := range datasets {
		byName[ds.Name] = ds
	}
	return Registry{datasets: datasets, byName: byName}
}

// Dataset returns the definition for a dataset name.
// Returns false if the name is not registered.
func (r Registry) Dataset(name string) (Dataset, bool) {
	ds, ok := r.byName[name]
	return ds, ok
}

// All returns every dataset definition in dependency order.
func (r Registry) All() []Dataset {
	out := make([]Dataset, len(r.datasets))
	copy(out, r.datasets)
	return out
}

// Len returns the number of registered datasets.
func (r Registry) Len() int {
	return len(r.datasets)
}
