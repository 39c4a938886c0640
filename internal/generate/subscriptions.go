package generate

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"time"

	"streamlake/internal/csvio"
	"streamlake/internal/schema"
)

const (
	// subscriptionLookbackDays bounds start dates to roughly 18 months back.
	subscriptionLookbackDays = 548

	// openEndedRate is the share of subscriptions with no end date.
	openEndedRate = 0.3

	// autoRenewRate is the share of subscriptions with auto-renew on.
	autoRenewRate = 0.7
)

// Plan take-up weights by plan ID (Basic, Standard, Premium).
var planWeights = map[int]float64{1: 0.4, 2: 0.35, 3: 0.25}

// Subscription is a generated subscription record. HasEnd is false for
// open-ended subscriptions, which serialize with an empty end_date.
type Subscription struct {
	ID         int
	CustomerID int
	PlanID     int
	Start      time.Time
	End        time.Time
	HasEnd     bool
	AutoRenew  bool
}

// Subscriptions generates the configured number of subscriptions against the
// given customers. Start dates never precede the customer's signup and end
// dates never land in the future.
func (g *Generator) Subscriptions(customers []Customer) []Subscription {
	rng := g.rng(seedSubscriptions)

	subs := make([]Subscription, 0, g.cfg.Subscriptions)
	for id := 1; id <= g.cfg.Subscriptions; id++ {
		customer := customers[rng.Intn(len(customers))]
		start := g.subscriptionStart(rng, customer.Signup)
		end, hasEnd := g.subscriptionEnd(rng, start)
		subs = append(subs, Subscription{
			ID:         id,
			CustomerID: customer.ID,
			PlanID:     weightedPlan(rng),
			Start:      start,
			End:        end,
			HasEnd:     hasEnd,
			AutoRenew:  rng.Float64() < autoRenewRate,
		})
	}
	return subs
}

func (g *Generator) subscriptionStart(rng *rand.Rand, signup time.Time) time.Time {
	earliest := g.daysAgo(subscriptionLookbackDays)
	if signup.After(earliest) {
		earliest = signup
	}
	if !earliest.Before(g.now) {
		return g.now
	}
	span := int(g.now.Sub(earliest).Hours() / 24)
	return earliest.AddDate(0, 0, rng.Intn(span+1))
}

// subscriptionEnd picks an end 30-365 days after start, discarding ends that
// would land in the future; those subscriptions stay open.
func (g *Generator) subscriptionEnd(rng *rand.Rand, start time.Time) (time.Time, bool) {
	if rng.Float64() < openEndedRate {
		return time.Time{}, false
	}
	end := start.AddDate(0, 0, 30+rng.Intn(336))
	if end.After(g.now) {
		return time.Time{}, false
	}
	return end, true
}

func weightedPlan(rng *rand.Rand) int {
	roll := rng.Float64()
	acc := 0.0
	for id := 1; id <= len(planWeights); id++ {
		acc += planWeights[id]
		if roll < acc {
			return id
		}
	}
	return len(planWeights)
}

func (g *Generator) writeSubscriptions(subs []Subscription) error {
	rows := make([][]string, len(subs))
	for i, s := range subs {
		end := ""
		if s.HasEnd {
			end = s.End.Format("2006-01-02")
		}
		rows[i] = []string{
			strconv.Itoa(s.ID),
			strconv.Itoa(s.CustomerID),
			strconv.Itoa(s.PlanID),
			s.Start.Format("2006-01-02"),
			end,
			strconv.FormatBool(s.AutoRenew),
		}
	}

	path := filepath.Join(g.rawDir, schema.Subscriptions.File)
	if err := csvio.WriteFile(path, schema.Subscriptions.Header(), rows); err != nil {
		return fmt.Errorf("writing subscriptions: %w", err)
	}
	g.logger.Info("dataset generated", "dataset", "subscriptions", "rows", len(rows))
	return nil
}
