// Package validate implements the dataset validation engine: per-column type
// parsing against the declared schema, referential checks across datasets,
// and business-rule enforcement. Rows either survive every applicable stage
// and come out typed, or are dropped with a line-tagged diagnostic.
package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"streamlake/internal/csvio"
	"streamlake/internal/schema"
)

// Validator performs schema-level validation of raw dataset files.
type Validator struct {
	rawDir string
	rec    *Recorder
	logger *slog.Logger
}

// NewValidator creates a validator reading source files from rawDir and
// reporting rejected rows to rec.
func NewValidator(rawDir string, rec *Recorder, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{rawDir: rawDir, rec: rec, logger: logger}
}

// Dataset validates one dataset file against its schema and returns the rows
// that parsed cleanly plus the count of rows that did not.
//
// A missing file, a missing header, or a header that deviates from the
// declared column sequence is fatal for the dataset and returned as an error.
// Row-level parse failures are not: the row is dropped, a diagnostic is
// recorded, and validation continues with the next row.
func (v *Validator) Dataset(ds schema.Dataset) ([]TypedRow, int, error) {
	path := filepath.Join(v.rawDir, ds.File)
	header, rows, err := csvio.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, &SourceMissingError{Dataset: ds.Name, Path: path}
		}
		return nil, 0, fmt.Errorf("%s: %w", ds.Name, err)
	}
	if header == nil {
		return nil, 0, &MissingHeaderError{Dataset: ds.Name}
	}
	if !headerMatches(header, ds.Columns) {
		return nil, 0, &SchemaMismatchError{Dataset: ds.Name, Want: ds.Header(), Got: header}
	}

	valid := make([]TypedRow, 0, len(rows))
	invalid := 0
	for _, row := range rows {
		typed, ok := v.typeRow(ds, row)
		if !ok {
			invalid++
			continue
		}
		valid = append(valid, typed)
	}

	v.logger.Info("schema validation complete",
		"dataset", ds.Name,
		"valid", len(valid),
		"invalid", invalid,
	)
	return valid, invalid, nil
}

// typeRow parses every column of one raw row in declared order. The first
// failure rejects the row; columns after it are not inspected.
func (v *Validator) typeRow(ds schema.Dataset, row csvio.Row) (TypedRow, bool) {
	if len(row.Fields) != len(ds.Columns) {
		v.rec.RowError(ds.Name, row.Line,
			fmt.Sprintf("row has %d fields, expected %d", len(row.Fields), len(ds.Columns)))
		return TypedRow{}, false
	}

	values := make(map[string]Value, len(ds.Columns))
	for i, col := range ds.Columns {
		val, err := Parse(col.Kind, row.Fields[i])
		if err != nil {
			v.rec.RowError(ds.Name, row.Line, fmt.Sprintf("%s: %v", col.Name, err))
			return TypedRow{}, false
		}
		values[col.Name] = val
	}
	return TypedRow{Line: row.Line, values: values}, true
}

// headerMatches reports whether the file header equals the declared column
// sequence exactly: same names, same order, same count.
func headerMatches(header []string, cols []schema.ColumnSpec) bool {
	if len(header) != len(cols) {
		return false
	}
	for i, col := range cols {
		if header[i] != col.Name {
			return false
		}
	}
	return true
}
