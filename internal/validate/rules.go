package validate

import "fmt"

// rules.go enforces invariants beyond plain typing: date ordering on
// subscriptions, and cross-dataset referential checks plus bounded ranges on
// usage logs. Both operate on rows that already passed schema validation.

// SubscriptionRules drops subscription rows whose start_date falls after a
// present end_date. An absent end_date always passes.
func SubscriptionRules(rows []TypedRow, rec *Recorder) ([]TypedRow, int) {
	valid := make([]TypedRow, 0, len(rows))
	invalid := 0
	for _, row := range rows {
		start, _ := row.Time("start_date")
		end, present := row.Time("end_date")
		if present && start.After(end) {
			invalid++
			rec.RowError("subscriptions", row.Line,
				fmt.Sprintf("start_date %s after end_date %s",
					start.Format(dateLayout), end.Format(dateLayout)))
			continue
		}
		valid = append(valid, row)
	}
	return valid, invalid
}

// UsageRules checks usage_logs rows against the validated customers and
// content datasets. All rules are evaluated for every row, with no
// short-circuit, so the diagnostics name every violation; the invalid count
// still increments by exactly one per rejected row.
func UsageRules(
	rows []TypedRow,
	customerIDs map[int64]struct{},
	contentDuration map[int64]int64,
	rec *Recorder,
) ([]TypedRow, int) {
	valid := make([]TypedRow, 0, len(rows))
	invalid := 0
	for _, row := range rows {
		var violations []string

		customerID := row.Int("customer_id")
		if _, ok := customerIDs[customerID]; !ok {
			violations = append(violations, fmt.Sprintf("unknown customer_id %d", customerID))
		}

		contentID := row.Int("content_id")
		duration, known := contentDuration[contentID]
		if !known {
			violations = append(violations, fmt.Sprintf("unknown content_id %d", contentID))
		} else if watched := row.Int("duration_watched"); watched > duration {
			violations = append(violations,
				fmt.Sprintf("duration_watched %d exceeds content duration %d", watched, duration))
		}

		// Written as a negated conjunction so NaN fails the check too.
		if rate := row.Real("completion_rate"); !(rate >= 0 && rate <= 1) {
			violations = append(violations,
				fmt.Sprintf("completion_rate %g outside 0-1 range", rate))
		}

		if len(violations) > 0 {
			invalid++
			for _, msg := range violations {
				rec.RowError("usage_logs", row.Line, msg)
			}
			continue
		}
		valid = append(valid, row)
	}
	return valid, invalid
}
