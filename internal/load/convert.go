package load

import (
	"github.com/jackc/pgx/v5/pgtype"

	"streamlake/internal/schema"
	"streamlake/internal/validate"
)

// copyRow converts a typed row to COPY values in the dataset's declared
// column order. Dates and timestamps go through pgtype so an absent optional
// date lands as NULL.
func copyRow(ds schema.Dataset, row validate.TypedRow) []any {
	out := make([]any, len(ds.Columns))
	for i, col := range ds.Columns {
		val, _ := row.Value(col.Name)
		out[i] = pgValue(col.Kind, val)
	}
	return out
}

func pgValue(kind schema.Kind, val validate.Value) any {
	switch kind {
	case schema.KindInt:
		return val.Int
	case schema.KindReal:
		return val.Real
	case schema.KindDate:
		return pgtype.Date{Time: val.Time, Valid: true}
	case schema.KindOptionalDate:
		return pgtype.Date{Time: val.Time, Valid: val.Present}
	case schema.KindDateTime:
		return pgtype.Timestamptz{Time: val.Time, Valid: true}
	case schema.KindBool:
		return val.Bool
	default:
		return val.Text
	}
}
