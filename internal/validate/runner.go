package validate

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"streamlake/internal/schema"
)

// Stats is the per-dataset outcome of a run.
type Stats struct {
	Valid   int
	Invalid int
}

// Result is the outcome of a full validation run. Rows holds, per dataset,
// only the typed rows that survived every stage applicable to that dataset;
// this is the hand-off contract for the loader.
type Result struct {
	RunID uuid.UUID
	Stats map[string]Stats
	Fatal map[string]error // datasets whose validation aborted entirely

	rows map[string][]TypedRow
}

// Rows returns the surviving typed rows for a dataset. Datasets that aborted
// have no rows.
func (r *Result) Rows(dataset string) []TypedRow {
	return r.rows[dataset]
}

// Failed reports whether any dataset aborted validation.
func (r *Result) Failed() bool {
	return len(r.Fatal) > 0
}

// Runner sequences validation across all datasets in dependency order:
// customers, plans, and content first, then subscriptions with its logical
// rules, then usage_logs with referential checks against the customers and
// content rows that just validated.
type Runner struct {
	reg       schema.Registry
	validator *Validator
	rec       *Recorder
	logger    *slog.Logger
}

// NewRunner creates a runner over the given registry, reading raw files from
// rawDir and recording diagnostics to rec.
func NewRunner(reg schema.Registry, rawDir string, rec *Recorder, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		reg:       reg,
		validator: NewValidator(rawDir, rec, logger),
		rec:       rec,
		logger:    logger,
	}
}

// Run validates every registered dataset and returns the aggregated result.
//
// A missing source file aborts the run with an error. A schema mismatch or
// missing header aborts only that dataset (and blocks datasets that depend on
// it referentially); independent datasets still validate, and the summary is
// emitted either way.
func (r *Runner) Run() (*Result, error) {
	res := &Result{
		RunID: uuid.New(),
		Stats: make(map[string]Stats),
		Fatal: make(map[string]error),
		rows:  make(map[string][]TypedRow),
	}
	logger := r.logger.With("run_id", res.RunID.String())
	logger.Info("validation run started")

	schemaRows := make(map[string][]TypedRow)
	schemaInvalid := make(map[string]int)

	for _, ds := range r.reg.All() {
		rows, invalid, err := r.validator.Dataset(ds)
		if err != nil {
			var missing *SourceMissingError
			if errors.As(err, &missing) {
				return nil, err
			}
			logger.Error("dataset validation aborted", "dataset", ds.Name, "error", err)
			res.Fatal[ds.Name] = err
			continue
		}
		schemaRows[ds.Name] = rows
		schemaInvalid[ds.Name] = invalid
	}

	// Independent datasets: schema validation is their only stage.
	for _, name := range []string{"customers", "plans", "content"} {
		if _, aborted := res.Fatal[name]; aborted {
			continue
		}
		res.rows[name] = schemaRows[name]
		res.Stats[name] = Stats{Valid: len(schemaRows[name]), Invalid: schemaInvalid[name]}
	}

	if _, aborted := res.Fatal["subscriptions"]; !aborted {
		subs, logicInvalid := SubscriptionRules(schemaRows["subscriptions"], r.rec)
		res.rows["subscriptions"] = subs
		res.Stats["subscriptions"] = Stats{
			Valid:   len(subs),
			Invalid: schemaInvalid["subscriptions"] + logicInvalid,
		}
	}

	if _, aborted := res.Fatal["usage_logs"]; !aborted {
		if blocked := r.usageBlockedBy(res); blocked != "" {
			err := fmt.Errorf("usage_logs referential checks blocked: %s failed validation", blocked)
			logger.Error("dataset validation aborted", "dataset", "usage_logs", "error", err)
			res.Fatal["usage_logs"] = err
		} else {
			customerIDs := make(map[int64]struct{}, len(res.rows["customers"]))
			for _, row := range res.rows["customers"] {
				customerIDs[row.Int("customer_id")] = struct{}{}
			}
			contentDuration := make(map[int64]int64, len(res.rows["content"]))
			for _, row := range res.rows["content"] {
				contentDuration[row.Int("content_id")] = row.Int("duration_minutes")
			}

			usage, refInvalid := UsageRules(schemaRows["usage_logs"], customerIDs, contentDuration, r.rec)
			res.rows["usage_logs"] = usage
			res.Stats["usage_logs"] = Stats{
				Valid:   len(usage),
				Invalid: schemaInvalid["usage_logs"] + refInvalid,
			}
		}
	}

	logger.Info("validation summary")
	for _, ds := range r.reg.All() {
		if err, aborted := res.Fatal[ds.Name]; aborted {
			logger.Error("dataset aborted", "dataset", ds.Name, "error", err)
			continue
		}
		stats := res.Stats[ds.Name]
		logger.Info("dataset summary",
			"dataset", ds.Name,
			"valid", stats.Valid,
			"invalid", stats.Invalid,
		)
	}
	logger.Info("validation run completed", "diagnostics", r.rec.Len())

	return res, nil
}

// usageBlockedBy names the referential source dataset that prevents usage_logs
// checks from running, or returns "" when both sources completed.
func (r *Runner) usageBlockedBy(res *Result) string {
	for _, name := range []string{"customers", "content"} {
		if _, aborted := res.Fatal[name]; aborted {
			return name
		}
	}
	return ""
}
