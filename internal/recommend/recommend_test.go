package recommend

import (
	"math/rand"
	"testing"

	"github.com/collectarr/collectarr/internal/models"
)

func newTestGenerator() *Generator {
	return New(rand.New(rand.NewSource(1)))
}

func recordsWithGenre(genre string, count int) []*models.MediaRecord {
	records := make([]*models.MediaRecord, count)
	for i := range records {
		records[i] = &models.MediaRecord{Title: "Item", Creator: "Creator", Type: models.MediaTypeMovie, Genre: genre}
	}
	return records
}

func TestGenerateEmptyCollection(t *testing.T) {
	recs := newTestGenerator().Generate(nil)
	if len(recs) != 0 {
		t.Errorf("expected no recommendations for an empty collection, got %d", len(recs))
	}
}

func TestGenerateUsesDominantGenreTables(t *testing.T) {
	records := recordsWithGenre("Action", 3)
	recs := newTestGenerator().Generate(records)

	// Action exists in every table: two movies, one album, one game.
	if len(recs) != 4 {
		t.Fatalf("expected 4 recommendations, got %d", len(recs))
	}

	if recs[0].Type != models.MediaTypeMovie || recs[1].Type != models.MediaTypeMovie {
		t.Errorf("expected movies first, got %v then %v", recs[0].Type, recs[1].Type)
	}
	if recs[2].Type != models.MediaTypeMusic {
		t.Errorf("expected music third, got %v", recs[2].Type)
	}
	if recs[3].Type != models.MediaTypeGame {
		t.Errorf("expected game last, got %v", recs[3].Type)
	}

	for _, rec := range recs[:2] {
		if rec.Genre != "Action" {
			t.Errorf("expected Action genre, got %q", rec.Genre)
		}
		if rec.Confidence < 85 || rec.Confidence > 94 {
			t.Errorf("movie confidence %d outside 85-94", rec.Confidence)
		}
	}
	// Music has no Action entry, so the third slot is the fixed fallback.
	if recs[2].Title != "Billie Eilish - Happier Than Ever" || recs[2].Confidence != 85 {
		t.Errorf("expected music fallback, got %+v", recs[2])
	}
	if recs[3].Genre != "Action" {
		t.Errorf("expected Action game suggestion, got %+v", recs[3])
	}
	if recs[3].Confidence < 88 || recs[3].Confidence > 97 {
		t.Errorf("game confidence %d outside 88-97", recs[3].Confidence)
	}
}

func TestGenerateFallsBackForUnknownGenre(t *testing.T) {
	records := recordsWithGenre("Obscure Microgenre", 2)
	recs := newTestGenerator().Generate(records)

	if len(recs) != 3 {
		t.Fatalf("expected one fallback per type, got %d", len(recs))
	}
	if recs[0].Title != "Everything Everywhere All at Once" || recs[0].Confidence != 90 {
		t.Errorf("unexpected movie fallback: %+v", recs[0])
	}
	if recs[2].Title != "Elden Ring" || recs[2].Confidence != 95 {
		t.Errorf("unexpected game fallback: %+v", recs[2])
	}
}

func TestGenerateNoGenreDataFallsBack(t *testing.T) {
	records := recordsWithGenre("", 3)
	recs := newTestGenerator().Generate(records)

	if len(recs) != 3 {
		t.Fatalf("expected the three fallbacks, got %d", len(recs))
	}
}

func TestGenerateCapsAtSix(t *testing.T) {
	recs := newTestGenerator().Generate(recordsWithGenre("Action", 10))
	if len(recs) > 6 {
		t.Errorf("expected at most 6 recommendations, got %d", len(recs))
	}
}

func TestGenerateAggregatesGenreGlobally(t *testing.T) {
	// Sci-Fi dominates across types even though no single type has it twice.
	records := []*models.MediaRecord{
		{Title: "m", Creator: "c", Type: models.MediaTypeMovie, Genre: "Sci-Fi"},
		{Title: "g", Creator: "c", Type: models.MediaTypeGame, Genre: "Sci-Fi"},
		{Title: "a", Creator: "c", Type: models.MediaTypeMusic, Genre: "Rock"},
	}

	recs := newTestGenerator().Generate(records)
	if recs[0].Genre != "Sci-Fi" {
		t.Errorf("expected globally dominant Sci-Fi to drive movie suggestions, got %q", recs[0].Genre)
	}
}
