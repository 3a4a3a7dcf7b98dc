package models

import (
	"errors"
	"testing"
)

func validRecord() *MediaRecord {
	return &MediaRecord{
		Title:   "Dune",
		Creator: "Denis Villeneuve",
		Type:    MediaTypeMovie,
		Status:  StatusWishlist,
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*MediaRecord)
	}{
		{"missing title", func(m *MediaRecord) { m.Title = "" }},
		{"missing creator", func(m *MediaRecord) { m.Creator = "" }},
		{"invalid type", func(m *MediaRecord) { m.Type = "podcast" }},
		{"invalid status", func(m *MediaRecord) { m.Status = "lost" }},
		{"rating above range", func(m *MediaRecord) { r := 10.5; m.Rating = &r }},
		{"rating below range", func(m *MediaRecord) { r := -1.0; m.Rating = &r }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(rec)
			if err := rec.Validate(); !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}

	if err := validRecord().Validate(); err != nil {
		t.Errorf("expected valid record to pass, got %v", err)
	}
}

func TestPatchApplyLeavesUnsetFieldsAlone(t *testing.T) {
	rec := validRecord()
	rec.Genre = "Sci-Fi"
	rec.Notes = "rewatch"

	status := StatusCompleted
	if err := (RecordPatch{Status: &status}).Apply(rec); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if rec.Status != StatusCompleted {
		t.Errorf("expected status completed, got %q", rec.Status)
	}
	if rec.Genre != "Sci-Fi" || rec.Notes != "rewatch" || rec.Title != "Dune" {
		t.Errorf("untouched fields changed: %+v", rec)
	}
}

func TestPatchApplyValidates(t *testing.T) {
	rec := validRecord()
	empty := ""
	if err := (RecordPatch{Title: &empty}).Apply(rec); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for empty title, got %v", err)
	}
}
