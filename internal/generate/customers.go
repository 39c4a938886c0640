package generate

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"streamlake/internal/csvio"
	"streamlake/internal/schema"
)

// signupLookbackDays bounds signup dates to the last two years.
const signupLookbackDays = 730

// Customer is a generated subscriber record.
type Customer struct {
	ID      int
	Name    string
	Email   string
	Signup  time.Time
	Device  string
	Country string
}

// Customers generates the configured number of customer records.
func (g *Generator) Customers() []Customer {
	rng := g.rng(seedCustomers)

	customers := make([]Customer, 0, g.cfg.Customers)
	for id := 1; id <= g.cfg.Customers; id++ {
		name := pick(rng, firstNames) + " " + pick(rng, lastNames)
		customers = append(customers, Customer{
			ID:      id,
			Name:    name,
			Email:   emailFor(name, id),
			Signup:  g.daysAgo(rng.Intn(signupLookbackDays + 1)),
			Device:  pick(rng, deviceTypes),
			Country: pick(rng, countries),
		})
	}
	return customers
}

func (g *Generator) writeCustomers(customers []Customer) error {
	rows := make([][]string, len(customers))
	for i, c := range customers {
		rows[i] = []string{
			strconv.Itoa(c.ID),
			c.Name,
			c.Email,
			c.Signup.Format("2006-01-02"),
			c.Device,
			c.Country,
		}
	}

	path := filepath.Join(g.rawDir, schema.Customers.File)
	if err := csvio.WriteFile(path, schema.Customers.Header(), rows); err != nil {
		return fmt.Errorf("writing customers: %w", err)
	}
	g.logger.Info("dataset generated", "dataset", "customers", "rows", len(rows))
	return nil
}

func emailFor(name string, id int) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s.%d@example.com", local, id)
}

func pick(rng *rand.Rand, pool []string) string {
	return pool[rng.Intn(len(pool))]
}
