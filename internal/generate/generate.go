// Package generate produces the synthetic raw CSV extracts the validation
// engine consumes. Generation is deterministic for a given seed, and every
// writer emits exactly the column layout the schema package declares.
package generate

import (
	"log/slog"
	"math/rand"
	"time"

	"streamlake/internal/config"
)

// Per-stage seed offsets so each dataset draws from an independent stream
// while the whole run stays reproducible from one configured seed.
const (
	seedCustomers     = 0
	seedContent       = 1
	seedSubscriptions = 3
	seedUsage         = 4
)

// Generator produces all five raw datasets.
type Generator struct {
	cfg    config.GenerateConfig
	rawDir string
	logger *slog.Logger
	now    time.Time
}

// New creates a generator writing CSVs into rawDir.
func New(cfg config.GenerateConfig, rawDir string, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		cfg:    cfg,
		rawDir: rawDir,
		logger: logger,
		now:    time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// All generates every dataset in dependency order: plans and customers first,
// then content, then subscriptions (which draw on customers and plans), then
// usage logs (which draw on everything else).
func (g *Generator) All() error {
	plans := DefaultPlans()
	if err := g.writePlans(plans); err != nil {
		return err
	}

	customers := g.Customers()
	if err := g.writeCustomers(customers); err != nil {
		return err
	}

	content := g.Content()
	if err := g.writeContent(content); err != nil {
		return err
	}

	subs := g.Subscriptions(customers)
	if err := g.writeSubscriptions(subs); err != nil {
		return err
	}

	usage := g.UsageLogs(subs, plans, content)
	return g.writeUsageLogs(usage)
}

func (g *Generator) rng(offset int64) *rand.Rand {
	return rand.New(rand.NewSource(g.cfg.Seed + offset))
}

// daysAgo returns midnight UTC n days before the generator's reference day.
func (g *Generator) daysAgo(n int) time.Time {
	return g.now.AddDate(0, 0, -n)
}
