package validate

import (
	"fmt"
	"strings"
)

// Fatal, dataset-scoped error kinds. Row-level failures are never surfaced as
// errors; they are absorbed into the Recorder and the invalid counters.

// SourceMissingError reports a required dataset file that does not exist.
// It aborts the whole run.
type SourceMissingError struct {
	Dataset string
	Path    string
}

func (e *SourceMissingError) Error() string {
	return fmt.Sprintf("required dataset missing: %s -> %s", e.Dataset, e.Path)
}

// MissingHeaderError reports a source file with no header row.
type MissingHeaderError struct {
	Dataset string
}

func (e *MissingHeaderError) Error() string {
	return fmt.Sprintf("%s has no header row", e.Dataset)
}

// SchemaMismatchError reports a header whose column sequence does not equal
// the declared schema. The check is order-sensitive: the same columns in a
// different order are a mismatch.
type SchemaMismatchError struct {
	Dataset string
	Want    []string
	Got     []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s column mismatch: expected [%s], got [%s]",
		e.Dataset, strings.Join(e.Want, ", "), strings.Join(e.Got, ", "))
}
