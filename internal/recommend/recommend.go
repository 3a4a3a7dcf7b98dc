// Package recommend maps aggregate collection statistics to suggestions
// from a fixed lookup table.
package recommend

import (
	"fmt"
	"math/rand"

	"github.com/collectarr/collectarr/internal/models"
)

// maxRecommendations caps the combined result
const maxRecommendations = 6

// Recommendation is a single suggested title. Confidence is a display-only
// stub, not a real ranking signal.
type Recommendation struct {
	Title      string           `json:"title"`
	Type       models.MediaType `json:"type"`
	Genre      string           `json:"genre"`
	Reason     string           `json:"reason"`
	Confidence int              `json:"confidence"`
}

// Generator produces recommendations from a collection. The random source
// only feeds the confidence stub; inject a seeded one in tests.
type Generator struct {
	rng *rand.Rand
}

// New creates a generator backed by the given random source
func New(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate derives the collection's favorite genre and looks up canned
// suggestions per media type: up to two movies, one album, one game, capped
// at six entries in movie, music, game order. The favorite genre is
// aggregated globally across the whole collection rather than per type.
// An empty collection yields no recommendations.
func (g *Generator) Generate(records []*models.MediaRecord) []Recommendation {
	if len(records) == 0 {
		return []Recommendation{}
	}

	genre := models.FavoriteGenre(records)

	recs := make([]Recommendation, 0, maxRecommendations)
	recs = append(recs, g.forType(models.MediaTypeMovie, genre, movieSuggestions, 2, 85, 10,
		"Based on your love for %s movies")...)
	recs = append(recs, g.forType(models.MediaTypeMusic, genre, musicSuggestions, 1, 80, 15,
		"Matches your %s preferences")...)
	recs = append(recs, g.forType(models.MediaTypeGame, genre, gameSuggestions, 1, 88, 10,
		"Perfect for %s fans")...)

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

func (g *Generator) forType(mediaType models.MediaType, genre string, table map[string][]string, take, confBase, confSpread int, reasonFormat string) []Recommendation {
	titles, ok := table[genre]
	if !ok || genre == "None" {
		return []Recommendation{fallbacks[mediaType]}
	}
	if take > len(titles) {
		take = len(titles)
	}

	recs := make([]Recommendation, 0, take)
	for _, title := range titles[:take] {
		recs = append(recs, Recommendation{
			Title:      title,
			Type:       mediaType,
			Genre:      genre,
			Reason:     fmt.Sprintf(reasonFormat, genre),
			Confidence: confBase + g.rng.Intn(confSpread),
		})
	}
	return recs
}
