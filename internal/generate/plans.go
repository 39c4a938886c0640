package generate

import (
	"fmt"
	"path/filepath"
	"strconv"

	"streamlake/internal/csvio"
	"streamlake/internal/schema"
)

// Plan is a subscription plan record. The catalog is fixed rather than
// randomized.
type Plan struct {
	ID    int
	Name  string
	Price float64
}

// DefaultPlans returns the fixed three-tier plan catalog.
func DefaultPlans() []Plan {
	return []Plan{
		{ID: 1, Name: "Basic", Price: 8.99},
		{ID: 2, Name: "Standard", Price: 13.99},
		{ID: 3, Name: "Premium", Price: 18.99},
	}
}

func (g *Generator) writePlans(plans []Plan) error {
	rows := make([][]string, len(plans))
	for i, p := range plans {
		rows[i] = []string{
			strconv.Itoa(p.ID),
			p.Name,
			strconv.FormatFloat(p.Price, 'f', 2, 64),
		}
	}

	path := filepath.Join(g.rawDir, schema.Plans.File)
	if err := csvio.WriteFile(path, schema.Plans.Header(), rows); err != nil {
		return fmt.Errorf("writing plans: %w", err)
	}
	g.logger.Info("dataset generated", "dataset", "plans", "rows", len(rows))
	return nil
}
