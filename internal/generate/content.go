package generate

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strconv"
	"strings"

	"streamlake/internal/csvio"
	"streamlake/internal/schema"
)

// Genre mix and per-genre duration ranges (minutes).
var (
	genreRatios = []struct {
		Genre string
		Ratio float64
	}{
		{"movie", 0.5},
		{"music", 0.3},
		{"podcast", 0.2},
	}

	durationRules = map[string][2]int{
		"movie":   {80, 160},
		"music":   {3, 8},
		"podcast": {15, 90},
	}
)

// ContentItem is a generated catalog entry.
type ContentItem struct {
	ID       int
	Title    string
	Genre    string
	Duration int
}

// Content generates the configured number of catalog items with the declared
// genre mix.
func (g *Generator) Content() []ContentItem {
	rng := g.rng(seedContent)
	genres := g.genreAllocation(rng)

	items := make([]ContentItem, 0, len(genres))
	for i, genre := range genres {
		bounds := durationRules[genre]
		items = append(items, ContentItem{
			ID:       i + 1,
			Title:    titleFor(rng),
			Genre:    genre,
			Duration: bounds[0] + rng.Intn(bounds[1]-bounds[0]+1),
		})
	}
	return items
}

// genreAllocation builds a shuffled genre assignment honoring the ratios;
// rounding leftovers are filled with random genres.
func (g *Generator) genreAllocation(rng *rand.Rand) []string {
	genres := make([]string, 0, g.cfg.ContentItems)
	for _, gr := range genreRatios {
		count := int(float64(g.cfg.ContentItems) * gr.Ratio)
		for i := 0; i < count; i++ {
			genres = append(genres, gr.Genre)
		}
	}
	for len(genres) < g.cfg.ContentItems {
		genres = append(genres, genreRatios[rng.Intn(len(genreRatios))].Genre)
	}
	rng.Shuffle(len(genres), func(i, j int) {
		genres[i], genres[j] = genres[j], genres[i]
	})
	return genres
}

func titleFor(rng *rand.Rand) string {
	words := make([]string, 3)
	for i := range words {
		words[i] = pick(rng, titleWords)
	}
	title := strings.Join(words, " ")
	return strings.ToUpper(title[:1]) + title[1:]
}

func (g *Generator) writeContent(items []ContentItem) error {
	rows := make([][]string, len(items))
	for i, c := range items {
		rows[i] = []string{
			strconv.Itoa(c.ID),
			c.Title,
			c.Genre,
			strconv.Itoa(c.Duration),
		}
	}

	path := filepath.Join(g.rawDir, schema.Content.File)
	if err := csvio.WriteFile(path, schema.Content.Header(), rows); err != nil {
		return fmt.Errorf("writing content: %w", err)
	}
	g.logger.Info("dataset generated", "dataset", "content", "rows", len(rows))
	return nil
}
