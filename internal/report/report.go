// Package report compiles analytics views over the loaded tables and exports
// their contents as CSV reports.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"streamlake/internal/csvio"
)

// DB is the subset of pgx operations the exporter needs.
// Satisfied by *pgxpool.Pool.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Exporter compiles views and writes their contents to the processed data
// directory.
type Exporter struct {
	db           DB
	processedDir string
	logger       *slog.Logger
}

// New creates an exporter writing reports into processedDir.
func New(db DB, processedDir string, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{db: db, processedDir: processedDir, logger: logger}
}

// Run compiles every view and exports it. The first view error aborts the
// run; reports are independent of each other but a broken view definition
// should not go unnoticed.
func (e *Exporter) Run(ctx context.Context) error {
	for _, view := range Views {
		if err := e.export(ctx, view); err != nil {
			return fmt.Errorf("view %s: %w", view.Name, err)
		}
	}
	return nil
}

func (e *Exporter) export(ctx context.Context, view View) error {
	if _, err := e.db.Exec(ctx, view.SQL); err != nil {
		return fmt.Errorf("compiling: %w", err)
	}

	rows, err := e.db.Query(ctx, "SELECT * FROM "+view.Name)
	if err != nil {
		return fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	columns := make([]string, 0, len(rows.FieldDescriptions()))
	for _, fd := range rows.FieldDescriptions() {
		columns = append(columns, fd.Name)
	}

	var records [][]string
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return fmt.Errorf("scanning: %w", err)
		}
		record := make([]string, len(values))
		for i, v := range values {
			record[i] = formatCell(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("reading: %w", err)
	}

	out := filepath.Join(e.processedDir, view.OutFile)
	if err := csvio.WriteFile(out, columns, records); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}

	e.logger.Info("report exported",
		"view", view.Name,
		"rows", len(records),
		"output", out,
	)
	for i, record := range records {
		if i == previewRows {
			break
		}
		e.logger.Debug("report preview", "view", view.Name, "row", record)
	}
	return nil
}

// previewRows bounds how many exported rows are echoed to the debug log.
const previewRows = 5

// formatCell renders a scanned value for CSV output. NULLs become empty
// cells.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprint(val)
	}
}
