package models

import (
	"fmt"
	"time"
)

// MediaRecord represents a single item in a profile's collection
type MediaRecord struct {
	ID        int64  `boltholdKey:"ID" json:"id"`
	ProfileID string `boltholdIndex:"ProfileID" json:"-"`

	Title   string    `json:"title"`
	Creator string    `json:"creator"` // director, artist or developer
	Type    MediaType `json:"type"`

	Genre       string   `json:"genre"` // free text, may be a comma-joined list
	ReleaseDate string   `json:"releaseDate,omitempty"`
	Status      Status   `json:"status"`
	Rating      *float64 `json:"rating"` // 0-10, nil when unrated
	Notes       string   `json:"notes"`

	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the required fields and value ranges of a record
func (m *MediaRecord) Validate() error {
	if m.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if m.Creator == "" {
		return fmt.Errorf("%w: creator is required", ErrValidation)
	}
	if !m.Type.IsValid() {
		return fmt.Errorf("%w: invalid media type %q", ErrValidation, m.Type)
	}
	if m.Status != "" && !m.Status.IsValid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, m.Status)
	}
	if m.Rating != nil && (*m.Rating < 0 || *m.Rating > 10) {
		return fmt.Errorf("%w: rating must be between 0 and 10", ErrValidation)
	}
	return nil
}

// RecordPatch carries a partial update to a record. Nil fields are left
// untouched by Apply.
type RecordPatch struct {
	Title       *string    `json:"title"`
	Creator     *string    `json:"creator"`
	Type        *MediaType `json:"type"`
	Genre       *string    `json:"genre"`
	ReleaseDate *string    `json:"releaseDate"`
	Status      *Status    `json:"status"`
	Rating      *float64   `json:"rating"`
	Notes       *string    `json:"notes"`
}

// Apply merges the patch into the record. ID, ProfileID and CreatedAt are
// never touched.
func (p RecordPatch) Apply(m *MediaRecord) error {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Creator != nil {
		m.Creator = *p.Creator
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Genre != nil {
		m.Genre = *p.Genre
	}
	if p.ReleaseDate != nil {
		m.ReleaseDate = *p.ReleaseDate
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	if p.Rating != nil {
		m.Rating = p.Rating
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	return m.Validate()
}
