// Command streamlake runs the streaming-service data pipeline: synthetic
// dataset generation, validation, bulk loading into PostgreSQL, and report
// export.
//
// Usage:
//
//	streamlake generate [flags]   write synthetic raw CSVs
//	streamlake validate [flags]   validate raw CSVs and print a summary
//	streamlake load     [flags]   validate, then load surviving rows into Postgres
//	streamlake report   [flags]   compile analytics views and export CSV reports
//	streamlake pipeline [flags]   run all stages in order
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"streamlake/internal/config"
	"streamlake/internal/generate"
	"streamlake/internal/load"
	"streamlake/internal/logging"
	"streamlake/internal/report"
	"streamlake/internal/schema"
	"streamlake/internal/validate"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	if err := run(os.Args[1], os.Args[2:]); err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

func run(command string, args []string) error {
	// Load .env if present so local runs can keep their settings out of the
	// shell environment.
	if err := godotenv.Overload(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(command, args, cfg); err != nil {
		return err
	}

	closer, err := logging.Setup(cfg.Logging.Level, cfg.Logging.Format, cfg.Data.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command {
	case "generate":
		return runGenerate(cfg)
	case "validate":
		_, err := runValidate(cfg)
		return err
	case "load":
		return runLoad(ctx, cfg)
	case "report":
		return runReport(ctx, cfg)
	case "pipeline":
		return runPipeline(ctx, cfg)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
}

// applyFlags lets command-line flags override environment configuration.
func applyFlags(command string, args []string, cfg *config.Config) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.StringVar(&cfg.Data.RawDir, "raw-dir", cfg.Data.RawDir, "directory holding the raw CSV extracts")
	fs.StringVar(&cfg.Data.ProcessedDir, "processed-dir", cfg.Data.ProcessedDir, "directory for exported reports")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "minimum log level (debug, info, warn, error)")

	if command == "generate" || command == "pipeline" {
		fs.Int64Var(&cfg.Generate.Seed, "seed", cfg.Generate.Seed, "random seed for synthetic data")
		fs.IntVar(&cfg.Generate.Customers, "customers", cfg.Generate.Customers, "number of customers to generate")
		fs.IntVar(&cfg.Generate.ContentItems, "content-items", cfg.Generate.ContentItems, "number of catalog items to generate")
		fs.IntVar(&cfg.Generate.Subscriptions, "subscriptions", cfg.Generate.Subscriptions, "number of subscriptions to generate")
		fs.IntVar(&cfg.Generate.UsageLogs, "usage-logs", cfg.Generate.UsageLogs, "number of usage events to generate")
	}
	if command == "load" || command == "report" || command == "pipeline" {
		fs.StringVar(&cfg.Database.URL, "database-url", cfg.Database.URL, "PostgreSQL connection string")
	}

	return fs.Parse(args)
}

func runGenerate(cfg *config.Config) error {
	gen := generate.New(cfg.Generate, cfg.Data.RawDir, slog.Default())
	return gen.All()
}

// runValidate validates every dataset and returns the run result. The error
// is non-nil for fatal outcomes only: a missing source, or one or more
// datasets aborting on schema problems. Row-level rejections are reported in
// the summary and diagnostics, not as errors.
func runValidate(cfg *config.Config) (*validate.Result, error) {
	rec := validate.NewRecorder(slog.Default())
	runner := validate.NewRunner(schema.Default(), cfg.Data.RawDir, rec, slog.Default())

	res, err := runner.Run()
	if err != nil {
		return nil, err
	}
	if res.Failed() {
		return res, fmt.Errorf("validation failed: %d dataset(s) aborted", len(res.Fatal))
	}
	return res, nil
}

func runLoad(ctx context.Context, cfg *config.Config) error {
	res, err := runValidate(cfg)
	if err != nil {
		return err
	}

	pool, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	loadCtx, cancel := context.WithTimeout(ctx, cfg.Load.Timeout)
	defer cancel()

	loader := load.New(pool, slog.Default())
	if err := loader.EnsureSchema(loadCtx); err != nil {
		return err
	}
	_, err = loader.LoadResult(loadCtx, schema.Default(), res)
	return err
}

func runReport(ctx context.Context, cfg *config.Config) error {
	pool, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	return report.New(pool, cfg.Data.ProcessedDir, slog.Default()).Run(ctx)
}

func runPipeline(ctx context.Context, cfg *config.Config) error {
	if err := runGenerate(cfg); err != nil {
		return err
	}
	if err := runLoad(ctx, cfg); err != nil {
		return err
	}
	return runReport(ctx, cfg)
}

func connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required for this command")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Database.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `usage: streamlake <command> [flags]

commands:
  generate   write synthetic raw CSV datasets
  validate   validate raw datasets and print a summary
  load       validate, then bulk-load surviving rows into PostgreSQL
  report     compile analytics views and export CSV reports
  pipeline   run generate, validate, load, and report in order`)
}
