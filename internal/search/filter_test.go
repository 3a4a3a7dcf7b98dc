package search

import (
	"testing"

	"github.com/collectarr/collectarr/internal/models"
)

func sampleRecords() []*models.MediaRecord {
	return []*models.MediaRecord{
		{ID: 1, Title: "Dune", Creator: "Denis Villeneuve", Type: models.MediaTypeMovie, Genre: "Sci-Fi", Status: models.StatusOwned},
		{ID: 2, Title: "Dune: Part Two", Creator: "Denis Villeneuve", Type: models.MediaTypeMovie, Genre: "Sci-Fi", Status: models.StatusWishlist},
		{ID: 3, Title: "Random Access Memories", Creator: "Daft Punk", Type: models.MediaTypeMusic, Genre: "Electronic", Status: models.StatusCompleted},
		{ID: 4, Title: "Dune: Spice Wars", Creator: "Shiro Games", Type: models.MediaTypeGame, Genre: "Strategy", Status: models.StatusCurrentlyUsing},
		{ID: 5, Title: "Oppenheimer", Creator: "Christopher Nolan", Type: models.MediaTypeMovie, Genre: "Drama", Status: models.StatusCompleted},
	}
}

func ids(records []*models.MediaRecord) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestFilterQueryMatchesTitleCreatorGenre(t *testing.T) {
	records := sampleRecords()

	tests := []struct {
		name   string
		params Params
		want   []int64
	}{
		{"empty params keep everything", Params{}, []int64{1, 2, 3, 4, 5}},
		{"query matches title case-insensitively", Params{Query: "dune"}, []int64{1, 2, 4}},
		{"query matches creator", Params{Query: "daft"}, []int64{3}},
		{"query matches genre", Params{Query: "sci"}, []int64{1, 2}},
		{"type filter is exact", Params{Type: models.MediaTypeMovie}, []int64{1, 2, 5}},
		{"status filter is exact", Params{Status: models.StatusCompleted}, []int64{3, 5}},
		{"query and type combine with AND", Params{Query: "dune", Type: models.MediaTypeMovie}, []int64{1, 2}},
		{"no match is empty, not an error", Params{Query: "zelda"}, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(Filter(records, tt.params))
			if len(got) != len(tt.want) {
				t.Fatalf("expected ids %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("expected ids %v, got %v", tt.want, got)
				}
			}
		})
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	records := sampleRecords()
	params := Params{Query: "dune", Type: models.MediaTypeMovie}

	once := Filter(records, params)
	twice := Filter(once, params)

	if len(once) != len(twice) {
		t.Fatalf("expected %d records after second pass, got %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Errorf("record %d changed between passes", i)
		}
	}
}

func TestFilterPreservesRelativeOrder(t *testing.T) {
	records := sampleRecords()
	filtered := Filter(records, Params{Type: models.MediaTypeMovie})

	var last int64
	for _, r := range filtered {
		if r.ID < last {
			t.Fatalf("relative order not preserved: %v", ids(filtered))
		}
		last = r.ID
	}
}

func TestFilterOutputIsSubset(t *testing.T) {
	records := sampleRecords()
	filtered := Filter(records, Params{Query: "e"})

	members := make(map[int64]bool)
	for _, r := range records {
		members[r.ID] = true
	}
	for _, r := range filtered {
		if !members[r.ID] {
			t.Errorf("record %d not in the input set", r.ID)
		}
	}
}
