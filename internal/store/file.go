package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/sirupsen/logrus"
)

// FileStore keeps each profile's record set as a single JSON array file
// under a data directory. Every mutation reads the file, applies the change
// in memory and rewrites the whole snapshot. Record sets are personal
// collections, so the snapshot stays small.
type FileStore struct {
	dir    string
	seq    idSequence
	mu     sync.Mutex
	logger *logrus.Logger
}

// NewFileStore creates a file-backed record store rooted at dir
func NewFileStore(dir string, logger *logrus.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create record store directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

func (s *FileStore) path(profileID string) string {
	// Profile ids are uuids or guest_<ms>; strip separators anyway so the
	// id can never escape the data directory.
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '.':
			return '_'
		}
		return r
	}, profileID)
	return filepath.Join(s.dir, "media_"+safe+".json")
}

// read loads the profile's snapshot. A missing file is an empty set.
func (s *FileStore) read(profileID string) ([]*models.MediaRecord, error) {
	data, err := os.ReadFile(s.path(profileID))
	if err != nil {
		if os.IsNotExist(err) {
			return []*models.MediaRecord{}, nil
		}
		return nil, fmt.Errorf("failed to read record file: %w", err)
	}

	var records []*models.MediaRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse record file: %w", err)
	}
	for _, r := range records {
		r.ProfileID = profileID
		s.seq.observe(r.ID)
	}
	return records, nil
}

// write rewrites the profile's whole snapshot
func (s *FileStore) write(profileID string, records []*models.MediaRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := os.WriteFile(s.path(profileID), data, 0644); err != nil {
		return fmt.Errorf("failed to write record file: %w", err)
	}
	return nil
}

// List returns the profile's records in stored order
func (s *FileStore) List(profileID string) ([]*models.MediaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(profileID)
}

// Get returns a single record by id
func (s *FileStore) Get(profileID string, id int64) (*models.MediaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(profileID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("record %d: %w", id, models.ErrNotFound)
}

// Create appends a new record and rewrites the snapshot
func (s *FileStore) Create(profileID string, rec *models.MediaRecord) (*models.MediaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(profileID)
	if err != nil {
		return nil, err
	}
	if err := prepareCreate(profileID, rec, s.seq.next()); err != nil {
		return nil, err
	}

	records = append(records, rec)
	if err := s.write(profileID, records); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"profile_id": profileID,
		"record_id":  rec.ID,
		"title":      rec.Title,
	}).Debug("Record created")
	return rec, nil
}

// Update merges a patch into an existing record and rewrites the snapshot
func (s *FileStore) Update(profileID string, id int64, patch models.RecordPatch) (*models.MediaRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(profileID)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		if r.ID != id {
			continue
		}
		if err := applyPatch(r, patch); err != nil {
			return nil, err
		}
		if err := s.write(profileID, records); err != nil {
			return nil, err
		}
		return r, nil
	}
	return nil, fmt.Errorf("record %d: %w", id, models.ErrNotFound)
}

// Delete removes a record and rewrites the snapshot
func (s *FileStore) Delete(profileID string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.read(profileID)
	if err != nil {
		return err
	}
	for i, r := range records {
		if r.ID == id {
			records = append(records[:i], records[i+1:]...)
			return s.write(profileID, records)
		}
	}
	return fmt.Errorf("record %d: %w", id, models.ErrNotFound)
}

// Replace swaps the profile's whole record set, minting fresh ids for
// records that do not carry one
func (s *FileStore) Replace(profileID string, records []*models.MediaRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		r.ProfileID = profileID
		if r.ID == 0 {
			r.ID = s.seq.next()
		} else {
			s.seq.observe(r.ID)
		}
	}
	return s.write(profileID, records)
}

// DeleteAll drops the profile's record file
func (s *FileStore) DeleteAll(profileID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(profileID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete record file: %w", err)
	}
	return nil
}

// Close implements RecordStore; the file backend holds no open handles
func (s *FileStore) Close() error {
	return nil
}
