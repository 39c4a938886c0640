// Package load bulk-copies validated rows into PostgreSQL. It only ever
// receives rows that survived every validation stage for their dataset;
// structurally suspect data never reaches the database.
package load

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"streamlake/internal/schema"
	"streamlake/internal/validate"
)

// DB is the subset of pgx operations the loader needs.
// Satisfied by *pgxpool.Pool and pgx.Tx.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// Tables are created with the dataset name as table name and the CSV header
// names as column names, so the schema registry drives the DDL consumers see.
var ddlStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		customer_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		signup_date DATE NOT NULL,
		device_type TEXT NOT NULL,
		country TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS plans (
		plan_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		price DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS content (
		content_id BIGINT PRIMARY KEY,
		title TEXT NOT NULL,
		genre TEXT NOT NULL,
		duration_minutes BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS subscriptions (
		subscription_id BIGINT PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(customer_id),
		plan_id BIGINT NOT NULL REFERENCES plans(plan_id),
		start_date DATE NOT NULL,
		end_date DATE,
		auto_renew BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS usage_logs (
		usage_id BIGINT PRIMARY KEY,
		customer_id BIGINT NOT NULL REFERENCES customers(customer_id),
		content_id BIGINT NOT NULL REFERENCES content(content_id),
		"timestamp" TIMESTAMPTZ NOT NULL,
		duration_watched BIGINT NOT NULL,
		completion_rate DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS load_runs (
		load_id UUID NOT NULL,
		dataset TEXT NOT NULL,
		row_count BIGINT NOT NULL,
		loaded_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (load_id, dataset)
	)`,
}

// Loader replaces table contents with validated rows.
type Loader struct {
	db     DB
	logger *slog.Logger
}

// New creates a loader over db.
func New(db DB, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{db: db, logger: logger}
}

// EnsureSchema creates the destination tables if they do not exist.
func (l *Loader) EnsureSchema(ctx context.Context) error {
	for _, stmt := range ddlStatements {
		if _, err := l.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("creating tables: %w", err)
		}
	}
	return nil
}

// LoadResult replaces every dataset table with the surviving rows of a
// validation run. Deletes run in reverse dependency order so foreign keys
// hold, inserts in dependency order. Each dataset's row count is recorded in
// load_runs under one load ID.
func (l *Loader) LoadResult(ctx context.Context, reg schema.Registry, res *validate.Result) (uuid.UUID, error) {
	loadID := uuid.New()
	datasets := reg.All()

	for i := len(datasets) - 1; i >= 0; i-- {
		if _, err := l.db.Exec(ctx, "DELETE FROM "+datasets[i].Name); err != nil {
			return loadID, fmt.Errorf("clearing %s: %w", datasets[i].Name, err)
		}
	}

	for _, ds := range datasets {
		rows := res.Rows(ds.Name)
		inserted, err := l.copyDataset(ctx, ds, rows)
		if err != nil {
			return loadID, fmt.Errorf("loading %s: %w", ds.Name, err)
		}

		if _, err := l.db.Exec(ctx,
			"INSERT INTO load_runs (load_id, dataset, row_count) VALUES ($1, $2, $3)",
			loadID, ds.Name, inserted,
		); err != nil {
			return loadID, fmt.Errorf("recording load run for %s: %w", ds.Name, err)
		}

		l.logger.Info("dataset loaded",
			"load_id", loadID.String(),
			"dataset", ds.Name,
			"rows", inserted,
		)
	}
	return loadID, nil
}

// copyDataset bulk-inserts typed rows with the COPY protocol.
func (l *Loader) copyDataset(ctx context.Context, ds schema.Dataset, rows []validate.TypedRow) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	copyRows := make([][]any, len(rows))
	for i, row := range rows {
		copyRows[i] = copyRow(ds, row)
	}

	return l.db.CopyFrom(ctx, pgx.Identifier{ds.Name}, ds.Header(), pgx.CopyFromRows(copyRows))
}
