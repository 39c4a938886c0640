package validate

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamlake/internal/schema"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	require.NoError(t, err)
	return d
}

func subRow(t *testing.T, line int, start, end string) TypedRow {
	t.Helper()
	values := map[string]Value{
		"subscription_id": {Kind: schema.KindInt, Present: true, Int: int64(line)},
		"customer_id":     {Kind: schema.KindInt, Present: true, Int: 1},
		"plan_id":         {Kind: schema.KindInt, Present: true, Int: 1},
		"start_date":      {Kind: schema.KindDate, Present: true, Time: date(t, start)},
		"auto_renew":      {Kind: schema.KindBool, Present: true, Bool: true},
	}
	if end == "" {
		values["end_date"] = Value{Kind: schema.KindOptionalDate}
	} else {
		values["end_date"] = Value{Kind: schema.KindOptionalDate, Present: true, Time: date(t, end)}
	}
	return NewTypedRow(line, values)
}

func usageRow(line int, customerID, contentID, watched int64, rate float64) TypedRow {
	return NewTypedRow(line, map[string]Value{
		"usage_id":         {Kind: schema.KindInt, Present: true, Int: int64(line)},
		"customer_id":      {Kind: schema.KindInt, Present: true, Int: customerID},
		"content_id":       {Kind: schema.KindInt, Present: true, Int: contentID},
		"timestamp":        {Kind: schema.KindDateTime, Present: true, Time: time.Now()},
		"duration_watched": {Kind: schema.KindInt, Present: true, Int: watched},
		"completion_rate":  {Kind: schema.KindReal, Present: true, Real: rate},
	})
}

func TestSubscriptionRules(t *testing.T) {
	rec := NewRecorder(nil)
	rows := []TypedRow{
		subRow(t, 2, "2024-01-01", "2024-06-01"), // ordered
		subRow(t, 3, "2024-06-01", "2024-01-01"), // inverted
		subRow(t, 4, "2024-06-01", ""),           // open-ended
		subRow(t, 5, "2024-06-01", "2024-06-01"), // same day
	}

	valid, invalid := SubscriptionRules(rows, rec)
	assert.Equal(t, 1, invalid)
	require.Len(t, valid, 3)
	assert.Equal(t, []int{2, 4, 5}, []int{valid[0].Line, valid[1].Line, valid[2].Line})

	diags := rec.Entries()
	require.Len(t, diags, 1)
	assert.Equal(t, "subscriptions", diags[0].Dataset)
	assert.Equal(t, 3, diags[0].Line)
	assert.Contains(t, diags[0].Message, "start_date 2024-06-01 after end_date 2024-01-01")
}

func TestUsageRules(t *testing.T) {
	customers := map[int64]struct{}{1: {}, 2: {}}
	content := map[int64]int64{10: 120}

	rec := NewRecorder(nil)
	rows := []TypedRow{
		usageRow(2, 1, 10, 60, 0.5),  // clean
		usageRow(3, 99, 10, 60, 0.5), // unknown customer
		usageRow(4, 1, 77, 60, 0.5),  // unknown content
		usageRow(5, 1, 10, 150, 0.5), // watched beyond runtime
		usageRow(6, 1, 10, 60, 1.5),  // completion above 1
		usageRow(7, 1, 10, 120, 1.0), // boundary values pass
		usageRow(8, 1, 10, 60, 0),    // zero completion passes
	}

	valid, invalid := UsageRules(rows, customers, content, rec)
	assert.Equal(t, 4, invalid)
	require.Len(t, valid, 3)
	assert.Equal(t, []int{2, 7, 8}, []int{valid[0].Line, valid[1].Line, valid[2].Line})

	diags := rec.Entries()
	require.Len(t, diags, 4)
	assert.Contains(t, diags[0].Message, "unknown customer_id 99")
	assert.Contains(t, diags[1].Message, "unknown content_id 77")
	assert.Contains(t, diags[2].Message, "duration_watched 150 exceeds content duration 120")
	assert.Contains(t, diags[3].Message, "completion_rate 1.5 outside 0-1 range")
}

func TestUsageRulesReportsEveryViolation(t *testing.T) {
	// One row breaking three rules at once: every violation is recorded, but
	// the row counts as a single invalid.
	rec := NewRecorder(nil)
	rows := []TypedRow{usageRow(2, 99, 77, 60, -0.2)}

	valid, invalid := UsageRules(rows, map[int64]struct{}{}, map[int64]int64{}, rec)
	assert.Empty(t, valid)
	assert.Equal(t, 1, invalid)

	diags := rec.Entries()
	require.Len(t, diags, 3)
	for _, d := range diags {
		assert.Equal(t, "usage_logs", d.Dataset)
		assert.Equal(t, 2, d.Line)
	}
	assert.Contains(t, diags[0].Message, "unknown customer_id 99")
	assert.Contains(t, diags[1].Message, "unknown content_id 77")
	assert.Contains(t, diags[2].Message, "completion_rate -0.2 outside 0-1 range")
}

func TestUsageRulesRejectsNonFiniteCompletion(t *testing.T) {
	// ParseFloat admits NaN and infinities, so the range rule has to reject
	// them; a plain < / > comparison lets NaN through.
	customers := map[int64]struct{}{1: {}}
	content := map[int64]int64{10: 120}

	for _, rate := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		rec := NewRecorder(nil)
		rows := []TypedRow{usageRow(2, 1, 10, 60, rate)}

		valid, invalid := UsageRules(rows, customers, content, rec)
		assert.Empty(t, valid, "rate %v", rate)
		assert.Equal(t, 1, invalid, "rate %v", rate)

		diags := rec.Entries()
		require.Len(t, diags, 1, "rate %v", rate)
		assert.Contains(t, diags[0].Message, "completion_rate")
		assert.Contains(t, diags[0].Message, "outside 0-1 range")
	}
}

func TestUsageRulesSkipsDurationCheckForUnknownContent(t *testing.T) {
	// Without a known runtime there is nothing to compare duration_watched
	// against; only the unknown-content violation is reported.
	rec := NewRecorder(nil)
	rows := []TypedRow{usageRow(2, 1, 77, 100000, 0.5)}

	_, invalid := UsageRules(rows, map[int64]struct{}{1: {}}, map[int64]int64{}, rec)
	assert.Equal(t, 1, invalid)

	diags := rec.Entries()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "unknown content_id 77")
}
