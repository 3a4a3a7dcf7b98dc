package models

import (
	"fmt"
	"time"
)

// Profile identifies whose record set is active
type Profile struct {
	ID     string `boltholdKey:"ID" json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar"`

	CreatedAt time.Time `json:"createdAt"`
	LastLogin time.Time `json:"lastLogin"`

	Stats   ProfileStats `json:"stats"`
	IsGuest bool         `json:"isGuest,omitempty"`
}

// ProfileStats is derived from the profile's current record set
type ProfileStats struct {
	TotalItems     int    `json:"totalItems"`
	CompletedItems int    `json:"completedItems"`
	FavoriteGenre  string `json:"favoriteGenre"`
}

// Validate checks required profile fields
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if p.Avatar != "" && !ValidAvatar(p.Avatar) {
		return fmt.Errorf("%w: avatar %q is not in the palette", ErrValidation, p.Avatar)
	}
	return nil
}

// ComputeStats aggregates a record list into profile stats
func ComputeStats(records []*MediaRecord) ProfileStats {
	stats := ProfileStats{
		TotalItems:    len(records),
		FavoriteGenre: FavoriteGenre(records),
	}
	for _, r := range records {
		if r.Status == StatusCompleted {
			stats.CompletedItems++
		}
	}
	return stats
}

// FavoriteGenre returns the most frequent non-empty genre string across the
// records. Ties go to the genre seen first; "None" when no record has genre
// data.
func FavoriteGenre(records []*MediaRecord) string {
	counts := make(map[string]int)
	var order []string

	for _, r := range records {
		if r.Genre == "" {
			continue
		}
		if _, seen := counts[r.Genre]; !seen {
			order = append(order, r.Genre)
		}
		counts[r.Genre]++
	}

	favorite := "None"
	best := 0
	for _, genre := range order {
		if counts[genre] > best {
			favorite = genre
			best = counts[genre]
		}
	}
	return favorite
}
