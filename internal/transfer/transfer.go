// Package transfer implements collection import and export.
package transfer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/collectarr/collectarr/internal/store"
)

// Version identifies the export file format
const Version = "2.0.0"

// Policy selects how imported records combine with the destination set
type Policy string

const (
	// PolicyReplace overwrites the destination set
	PolicyReplace Policy = "replace"
	// PolicyMerge appends records whose (title, creator) pair is new
	PolicyMerge Policy = "merge"
)

// ParsePolicy validates a policy string
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicyReplace, PolicyMerge:
		return Policy(s), nil
	}
	return "", fmt.Errorf("%w: unknown import policy %q", models.ErrValidation, s)
}

// Envelope is the import/export file format
type Envelope struct {
	Profile    *models.Profile       `json:"profile"`
	MediaItems []*models.MediaRecord `json:"mediaItems"`
	ExportDate time.Time             `json:"exportDate"`
	Version    string                `json:"version"`
}

// Export builds an envelope for the profile's current record set
func Export(profile *models.Profile, records []*models.MediaRecord) *Envelope {
	return &Envelope{
		Profile:    profile,
		MediaItems: records,
		ExportDate: time.Now(),
		Version:    Version,
	}
}

// Decode parses and validates an import payload. Every record must satisfy
// the same field constraints the create path enforces.
func Decode(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: malformed import file: %v", models.ErrValidation, err)
	}
	if env.MediaItems == nil {
		return nil, fmt.Errorf("%w: import file has no mediaItems array", models.ErrValidation)
	}
	for _, item := range env.MediaItems {
		if err := item.Validate(); err != nil {
			return nil, fmt.Errorf("invalid imported record: %w", err)
		}
	}
	return &env, nil
}

// Import applies the envelope to the profile's record set and returns the
// number of records added. Replace overwrites the whole set; merge appends
// only records whose case-insensitive (title, creator) pair is absent from
// the destination. Imported records never keep the ids they arrived with:
// they are zeroed here and the store mints fresh ones, so an envelope
// exported from one profile can be imported into any other.
func Import(records store.RecordStore, profileID string, env *Envelope, policy Policy) (int, error) {
	switch policy {
	case PolicyReplace:
		for _, item := range env.MediaItems {
			prepareImported(item)
		}
		if err := records.Replace(profileID, env.MediaItems); err != nil {
			return 0, err
		}
		return len(env.MediaItems), nil

	case PolicyMerge:
		existing, err := records.List(profileID)
		if err != nil {
			return 0, err
		}

		seen := make(map[string]bool, len(existing))
		for _, item := range existing {
			seen[dedupeKey(item)] = true
		}

		merged := existing
		added := 0
		for _, item := range env.MediaItems {
			key := dedupeKey(item)
			if seen[key] {
				continue
			}
			seen[key] = true

			prepareImported(item)
			merged = append(merged, item)
			added++
		}

		if err := records.Replace(profileID, merged); err != nil {
			return 0, err
		}
		return added, nil
	}

	return 0, fmt.Errorf("%w: unknown import policy %q", models.ErrValidation, policy)
}

// prepareImported clears the envelope-supplied id so the store mints a fresh
// one, and defaults a missing status the way the create path does.
func prepareImported(item *models.MediaRecord) {
	item.ID = 0
	if item.Status == "" {
		item.Status = models.StatusWishlist
	}
}

func dedupeKey(rec *models.MediaRecord) string {
	return strings.ToLower(rec.Title) + "\x00" + strings.ToLower(rec.Creator)
}
