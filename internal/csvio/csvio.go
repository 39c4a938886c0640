// Package csvio reads and writes the pipeline's flat CSV files.
//
// Readers keep track of 1-based source line numbers (the header is line 1,
// the first data row is line 2) so validation diagnostics can point at the
// offending line in the original file.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Row is a raw data row together with its source line number.
type Row struct {
	Line   int
	Fields []string
}

// ReadFile loads an entire CSV file into memory and returns the header row
// plus all data rows. A file containing only a header returns an empty row
// slice. A completely empty file returns a nil header.
//
// Rows are allowed to have a field count different from the header; deciding
// what to do with such rows is the caller's concern.
func ReadFile(path string) ([]string, []Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	header, rows, err := readAll(f)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return header, rows, nil
}

func readAll(r io.Reader) ([]string, []Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		rows = append(rows, Row{Line: line, Fields: record})
	}
	return header, rows, nil
}

// WriteFile writes a header and data rows to path, creating parent
// directories as needed. Existing files are truncated.
func WriteFile(path string, header []string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", filepath.Base(path), err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header to %s: %w", filepath.Base(path), err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing row to %s: %w", filepath.Base(path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
