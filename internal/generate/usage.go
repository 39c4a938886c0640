package generate

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"streamlake/internal/csvio"
	"streamlake/internal/schema"
)

const (
	// usageLookbackDays is the event window for playback activity.
	usageLookbackDays = 60

	// weekendBias is the target share of weekend events; above 2/7 to
	// reflect higher weekend activity.
	weekendBias = 0.45
)

// Activity weights and completion bounds per plan name. Premium subscribers
// watch more and finish more of what they start.
var (
	planActivityWeights = map[string]float64{
		"Basic":    1.0,
		"Standard": 1.2,
		"Premium":  1.5,
	}

	planCompletionBounds = map[string][2]float64{
		"Basic":    {0.25, 0.8},
		"Standard": {0.35, 0.9},
		"Premium":  {0.5, 1.0},
	}

	genreWatchWeights = map[string]float64{
		"movie":   0.5,
		"music":   0.3,
		"podcast": 0.2,
	}
)

// UsageLog is a generated playback event.
type UsageLog struct {
	ID         int
	CustomerID int
	ContentID  int
	At         time.Time
	Watched    int
	Completion float64
}

// UsageLogs generates playback events for customers holding a recent
// subscription. Customers on pricier plans are proportionally more active,
// weekends see more traffic, and watch time never exceeds the content's
// runtime.
func (g *Generator) UsageLogs(subs []Subscription, plans []Plan, content []ContentItem) []UsageLog {
	rng := g.rng(seedUsage)

	planNames := make(map[int]string, len(plans))
	for _, p := range plans {
		planNames[p.ID] = p.Name
	}

	planByCustomer := activePlans(subs, planNames, g.daysAgo(usageLookbackDays), g.now)
	customerIDs, weights := weightedCustomers(planByCustomer)
	if len(customerIDs) == 0 {
		return nil
	}
	byGenre := groupByGenre(content)

	logs := make([]UsageLog, 0, g.cfg.UsageLogs)
	for id := 1; id <= g.cfg.UsageLogs; id++ {
		customerID := customerIDs[weightedIndex(rng, weights)]
		item := chooseContent(rng, byGenre)
		at := g.biasedTimestamp(rng)
		watched, completion := watchedAndCompletion(rng, planByCustomer[customerID], item.Duration, isWeekend(at))
		logs = append(logs, UsageLog{
			ID:         id,
			CustomerID: customerID,
			ContentID:  item.ID,
			At:         at,
			Watched:    watched,
			Completion: completion,
		})
	}
	return logs
}

// activePlans returns the latest plan per customer among subscriptions that
// have started and either have no end date or ended after the cutoff.
func activePlans(subs []Subscription, planNames map[int]string, cutoff, today time.Time) map[int]string {
	type latest struct {
		start time.Time
		plan  string
	}
	latestByCustomer := make(map[int]latest)
	for _, s := range subs {
		if s.HasEnd && s.End.Before(cutoff) {
			continue
		}
		if s.Start.After(today) {
			continue
		}
		cur, ok := latestByCustomer[s.CustomerID]
		if !ok || s.Start.After(cur.start) {
			latestByCustomer[s.CustomerID] = latest{start: s.Start, plan: planNames[s.PlanID]}
		}
	}

	out := make(map[int]string, len(latestByCustomer))
	for id, l := range latestByCustomer {
		out[id] = l.plan
	}
	return out
}

func weightedCustomers(planByCustomer map[int]string) ([]int, []float64) {
	ids := make([]int, 0, len(planByCustomer))
	for id := range planByCustomer {
		ids = append(ids, id)
	}
	// map iteration order is random; sort for determinism
	sort.Ints(ids)

	weights := make([]float64, len(ids))
	for i, id := range ids {
		w, ok := planActivityWeights[planByCustomer[id]]
		if !ok {
			w = 1.0
		}
		weights[i] = w
	}
	return ids, weights
}

func weightedIndex(rng *rand.Rand, weights []float64) int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	roll := rng.Float64() * total
	for i, w := range weights {
		roll -= w
		if roll < 0 {
			return i
		}
	}
	return len(weights) - 1
}

func groupByGenre(content []ContentItem) map[string][]ContentItem {
	byGenre := make(map[string][]ContentItem)
	for _, c := range content {
		byGenre[c.Genre] = append(byGenre[c.Genre], c)
	}
	return byGenre
}

func chooseContent(rng *rand.Rand, byGenre map[string][]ContentItem) ContentItem {
	genres := []string{"movie", "music", "podcast"}
	weights := make([]float64, len(genres))
	for i, genre := range genres {
		if len(byGenre[genre]) > 0 {
			weights[i] = genreWatchWeights[genre]
		}
	}
	genre := genres[weightedIndex(rng, weights)]
	pool := byGenre[genre]
	if len(pool) == 0 {
		for _, items := range byGenre {
			if len(items) > 0 {
				pool = items
				break
			}
		}
	}
	return pool[rng.Intn(len(pool))]
}

// biasedTimestamp picks a time in the lookback window, retrying a few times
// to land on a weekend (or weekday) according to the bias.
func (g *Generator) biasedTimestamp(rng *rand.Rand) time.Time {
	wantWeekend := rng.Float64() < weekendBias
	var candidate time.Time
	for attempt := 0; attempt < 5; attempt++ {
		candidate = g.daysAgo(rng.Intn(usageLookbackDays))
		if isWeekend(candidate) == wantWeekend {
			break
		}
	}
	return time.Date(
		candidate.Year(), candidate.Month(), candidate.Day(),
		6+rng.Intn(18), rng.Intn(60), rng.Intn(60), 0, time.UTC,
	)
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// watchedAndCompletion draws a completion ratio from the plan's bounds,
// nudges it up on weekends, clamps watch time to the runtime, and adds a
// little reporting noise to the completion rate.
func watchedAndCompletion(rng *rand.Rand, plan string, runtime int, weekend bool) (int, float64) {
	bounds, ok := planCompletionBounds[plan]
	if !ok {
		bounds = [2]float64{0.25, 1.0}
	}
	ratio := bounds[0] + rng.Float64()*(bounds[1]-bounds[0])
	if weekend {
		ratio = min(1.0, ratio*1.1)
	}

	watched := int(float64(runtime) * ratio)
	if watched < 1 {
		watched = 1
	}
	if watched > runtime {
		watched = runtime
	}

	completion := float64(watched)/float64(runtime) + (rng.Float64()*0.1 - 0.05)
	completion = max(0.05, min(1.0, completion))
	return watched, float64(int(completion*100+0.5)) / 100
}

func (g *Generator) writeUsageLogs(logs []UsageLog) error {
	rows := make([][]string, len(logs))
	for i, l := range logs {
		rows[i] = []string{
			strconv.Itoa(l.ID),
			strconv.Itoa(l.CustomerID),
			strconv.Itoa(l.ContentID),
			l.At.Format(time.RFC3339),
			strconv.Itoa(l.Watched),
			strconv.FormatFloat(l.Completion, 'f', 2, 64),
		}
	}

	path := filepath.Join(g.rawDir, schema.UsageLogs.File)
	if err := csvio.WriteFile(path, schema.UsageLogs.Header(), rows); err != nil {
		return fmt.Errorf("writing usage logs: %w", err)
	}
	g.logger.Info("dataset generated", "dataset", "usage_logs", "rows", len(rows))
	return nil
}
