package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// BoltStore keeps all record sets in a single bolthold database, indexed by
// profile id.
type BoltStore struct {
	store  *bolthold.Store
	seq    idSequence
	logger *logrus.Logger
}

// NewBoltStore opens the bolthold-backed record store
func NewBoltStore(path string, logger *logrus.Logger) (*BoltStore, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open media database: %w", err)
	}

	s := &BoltStore{store: store, logger: logger}
	if err := s.seedSequence(); err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

// seedSequence advances the id sequence past every stored record id
func (s *BoltStore) seedSequence() error {
	var records []*models.MediaRecord
	if err := s.store.Find(&records, nil); err != nil {
		return fmt.Errorf("failed to scan media database: %w", err)
	}
	for _, r := range records {
		s.seq.observe(r.ID)
	}
	return nil
}

// List returns the profile's records in creation order
func (s *BoltStore) List(profileID string) ([]*models.MediaRecord, error) {
	var records []*models.MediaRecord
	err := s.store.Find(&records, bolthold.Where("ProfileID").Eq(profileID).Index("ProfileID").SortBy("ID"))
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	if records == nil {
		records = []*models.MediaRecord{}
	}
	return records, nil
}

// Get returns a single record by id
func (s *BoltStore) Get(profileID string, id int64) (*models.MediaRecord, error) {
	var rec models.MediaRecord
	err := s.store.Get(id, &rec)
	if errors.Is(err, bolthold.ErrNotFound) || (err == nil && rec.ProfileID != profileID) {
		return nil, fmt.Errorf("record %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return &rec, nil
}

// Create persists a new record
func (s *BoltStore) Create(profileID string, rec *models.MediaRecord) (*models.MediaRecord, error) {
	if err := prepareCreate(profileID, rec, s.seq.next()); err != nil {
		return nil, err
	}
	if err := s.store.Insert(rec.ID, rec); err != nil {
		return nil, fmt.Errorf("failed to insert record: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"profile_id": profileID,
		"record_id":  rec.ID,
		"title":      rec.Title,
	}).Debug("Record created")
	return rec, nil
}

// Update merges a patch into an existing record
func (s *BoltStore) Update(profileID string, id int64, patch models.RecordPatch) (*models.MediaRecord, error) {
	rec, err := s.Get(profileID, id)
	if err != nil {
		return nil, err
	}
	if err := applyPatch(rec, patch); err != nil {
		return nil, err
	}
	if err := s.store.Update(id, rec); err != nil {
		return nil, fmt.Errorf("failed to update record: %w", err)
	}
	return rec, nil
}

// Delete removes a record by id
func (s *BoltStore) Delete(profileID string, id int64) error {
	if _, err := s.Get(profileID, id); err != nil {
		return err
	}
	if err := s.store.Delete(id, &models.MediaRecord{}); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Replace swaps the profile's whole record set in a single transaction,
// minting fresh ids for records that do not carry one. Ids are bolthold keys
// shared across profiles, so minting through the sequence keeps a swapped-in
// set from colliding with another profile's records.
func (s *BoltStore) Replace(profileID string, records []*models.MediaRecord) error {
	err := s.store.Bolt().Update(func(tx *bbolt.Tx) error {
		err := s.store.TxDeleteMatching(tx, &models.MediaRecord{}, bolthold.Where("ProfileID").Eq(profileID).Index("ProfileID"))
		if err != nil {
			return err
		}
		for _, r := range records {
			r.ProfileID = profileID
			if r.ID == 0 {
				r.ID = s.seq.next()
			} else {
				s.seq.observe(r.ID)
			}
			if err := s.store.TxInsert(tx, r.ID, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to replace records: %w", err)
	}
	return nil
}

// DeleteAll drops the profile's whole record set
func (s *BoltStore) DeleteAll(profileID string) error {
	err := s.store.DeleteMatching(&models.MediaRecord{}, bolthold.Where("ProfileID").Eq(profileID).Index("ProfileID"))
	if err != nil {
		return fmt.Errorf("failed to delete records: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (s *BoltStore) Close() error {
	return s.store.Close()
}
