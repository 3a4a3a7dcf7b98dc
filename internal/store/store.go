// Package store provides persistence for media records and profiles.
//
// Records are partitioned by profile id. Two interchangeable backends exist:
// a JSON file per profile rewritten as a whole snapshot on every mutation,
// and a bolthold database. Both are selected at construction time and expose
// the same RecordStore interface.
package store

import (
	"sync"
	"time"

	"github.com/collectarr/collectarr/internal/models"
)

// RecordStore is durable CRUD for one profile-partitioned set of media
// records. All methods take the owning profile id as the scope.
type RecordStore interface {
	// List returns the profile's records in creation order.
	List(profileID string) ([]*models.MediaRecord, error)
	// Get returns a single record or ErrNotFound.
	Get(profileID string, id int64) (*models.MediaRecord, error)
	// Create assigns an id, stamps CreatedAt, defaults status to wishlist
	// and persists the record.
	Create(profileID string, rec *models.MediaRecord) (*models.MediaRecord, error)
	// Update merges the patch into an existing record, preserving id and
	// CreatedAt and stamping UpdatedAt.
	Update(profileID string, id int64, patch models.RecordPatch) (*models.MediaRecord, error)
	// Delete removes a record or returns ErrNotFound.
	Delete(profileID string, id int64) error
	// Replace swaps the profile's entire record set. Records carrying no id
	// are minted a fresh one from the store's sequence.
	Replace(profileID string, records []*models.MediaRecord) error
	// DeleteAll drops the profile's entire record set.
	DeleteAll(profileID string) error

	Close() error
}

// idSequence issues millisecond-clock record ids. Two creates landing in the
// same millisecond get strictly increasing ids by bumping past the last
// issued value.
type idSequence struct {
	mu   sync.Mutex
	last int64
}

func (s *idSequence) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := time.Now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// observe advances the sequence past an externally seen id so freshly issued
// ids never collide with records loaded from disk.
func (s *idSequence) observe(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id > s.last {
		s.last = id
	}
}

// applyPatch merges a patch into a record and stamps UpdatedAt.
func applyPatch(rec *models.MediaRecord, patch models.RecordPatch) error {
	if err := patch.Apply(rec); err != nil {
		return err
	}
	now := time.Now()
	rec.UpdatedAt = &now
	return nil
}

// prepareCreate applies creation-time defaults and validates the record.
func prepareCreate(profileID string, rec *models.MediaRecord, id int64) error {
	rec.ID = id
	rec.ProfileID = profileID
	if rec.Status == "" {
		rec.Status = models.StatusWishlist
	}
	rec.CreatedAt = time.Now()
	rec.UpdatedAt = nil
	return rec.Validate()
}
