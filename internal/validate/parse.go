package validate

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"streamlake/internal/schema"
)

// parse.go converts raw CSV text into typed values, one closed parse kind per
// schema column type. Every parser has the same contract: text in, typed
// Value or an error describing why the text is inadmissible.

const dateLayout = "2006-01-02"

// Timestamps are written by the generator in RFC 3339 form, but extracts from
// other tooling drop the zone or use a space separator.
var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Parse converts raw text to a typed value according to kind.
// KindText never fails; all other kinds reject text that does not parse.
func Parse(kind schema.Kind, raw string) (Value, error) {
	switch kind {
	case schema.KindInt:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer %q", raw)
		}
		return Value{Kind: kind, Present: true, Int: n}, nil

	case schema.KindReal:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q", raw)
		}
		return Value{Kind: kind, Present: true, Real: f}, nil

	case schema.KindDate:
		t, err := parseDate(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: kind, Present: true, Time: t}, nil

	case schema.KindOptionalDate:
		if raw == "" {
			return Value{Kind: kind, Present: false}, nil
		}
		t, err := parseDate(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: kind, Present: true, Time: t}, nil

	case schema.KindDateTime:
		if raw == "" {
			return Value{}, fmt.Errorf("expected datetime, got empty value")
		}
		for _, layout := range dateTimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return Value{Kind: kind, Present: true, Time: t}, nil
			}
		}
		return Value{}, fmt.Errorf("invalid datetime %q", raw)

	case schema.KindBool:
		b, err := parseBool(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: kind, Present: true, Bool: b}, nil

	default:
		return Value{Kind: schema.KindText, Present: true, Text: raw}, nil
	}
}

// parseDate accepts a bare calendar date, or a full timestamp truncated to
// its calendar day. Extracts from other tooling sometimes carry midnight
// timestamps in date columns.
func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("expected date, got empty value")
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", raw)
}

// parseBool accepts the literal sets true/1/yes and false/0/no,
// case-insensitively. Anything else is rejected.
func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, nil
	case "false", "0", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean %q", raw)
	}
}
