package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
	"go.etcd.io/bbolt"
)

// DefaultProfileName is auto-created when no profile is active
const DefaultProfileName = "Default User"

// activePointer is the single record holding which profile is active
type activePointer struct {
	Key       string `boltholdKey:"Key"`
	ProfileID string
}

const activePointerKey = "active"

// Profiles is the directory of profiles plus the active-profile pointer. It
// is the single source of truth for which record-set scope is current, and
// cascades profile deletion into the record store.
type Profiles struct {
	store   *bolthold.Store
	records RecordStore
	logger  *logrus.Logger
}

// OpenProfiles opens the profile database
func OpenProfiles(path string, records RecordStore, logger *logrus.Logger) (*Profiles, error) {
	store, err := bolthold.Open(path, 0600, &bolthold.Options{
		Options: &bbolt.Options{
			Timeout: 1 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open profile database: %w", err)
	}
	return &Profiles{store: store, records: records, logger: logger}, nil
}

// Close closes the profile database
func (p *Profiles) Close() error {
	return p.store.Close()
}

// All returns every stored profile
func (p *Profiles) All() ([]*models.Profile, error) {
	var profiles []*models.Profile
	if err := p.store.Find(&profiles, nil); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	return profiles, nil
}

// Get returns a profile by id
func (p *Profiles) Get(id string) (*models.Profile, error) {
	var profile models.Profile
	err := p.store.Get(id, &profile)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil, fmt.Errorf("profile %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return &profile, nil
}

// Create adds a new profile. Names must be unique case-insensitively.
func (p *Profiles) Create(name, email, avatar string) (*models.Profile, error) {
	if avatar == "" {
		avatar = models.DefaultAvatar
	}

	profile := &models.Profile{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Avatar:    avatar,
		CreatedAt: time.Now(),
		LastLogin: time.Now(),
		Stats:     models.ProfileStats{FavoriteGenre: "None"},
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	existing, err := p.All()
	if err != nil {
		return nil, err
	}
	for _, other := range existing {
		if strings.EqualFold(other.Name, profile.Name) {
			return nil, fmt.Errorf("profile %q: %w", profile.Name, models.ErrDuplicateName)
		}
	}

	if err := p.store.Insert(profile.ID, profile); err != nil {
		return nil, fmt.Errorf("failed to insert profile: %w", err)
	}

	p.logger.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"name":       profile.Name,
	}).Info("Profile created")
	return profile, nil
}

// CreateGuest adds an ephemeral guest profile and activates it. Guest data
// is dropped on logout.
func (p *Profiles) CreateGuest() (*models.Profile, error) {
	profile := &models.Profile{
		ID:        fmt.Sprintf("guest_%d", time.Now().UnixMilli()),
		Name:      "Guest User",
		Avatar:    models.DefaultAvatar,
		CreatedAt: time.Now(),
		LastLogin: time.Now(),
		Stats:     models.ProfileStats{FavoriteGenre: "None"},
		IsGuest:   true,
	}
	if err := p.store.Insert(profile.ID, profile); err != nil {
		return nil, fmt.Errorf("failed to insert guest profile: %w", err)
	}
	if err := p.setActive(profile.ID); err != nil {
		return nil, err
	}
	return profile, nil
}

// Current returns the active profile. When none is active a default profile
// is created and activated; auto-creation is a documented side effect, not
// an error path.
func (p *Profiles) Current() (*models.Profile, error) {
	var ptr activePointer
	err := p.store.Get(activePointerKey, &ptr)
	if err == nil {
		profile, getErr := p.Get(ptr.ProfileID)
		if getErr == nil {
			return profile, nil
		}
		if !errors.Is(getErr, models.ErrNotFound) {
			return nil, getErr
		}
		// Pointer refers to a deleted profile; fall through to auto-create.
	} else if !errors.Is(err, bolthold.ErrNotFound) {
		return nil, fmt.Errorf("failed to read active profile pointer: %w", err)
	}

	profile, err := p.Create(DefaultProfileName, "", models.DefaultAvatar)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateName) {
			// A previous default profile exists but was deactivated by
			// logout; reactivate it.
			return p.findAndActivate(DefaultProfileName)
		}
		return nil, err
	}
	if err := p.setActive(profile.ID); err != nil {
		return nil, err
	}

	p.logger.WithField("profile_id", profile.ID).Info("Default profile auto-created")
	return profile, nil
}

func (p *Profiles) findAndActivate(name string) (*models.Profile, error) {
	all, err := p.All()
	if err != nil {
		return nil, err
	}
	for _, profile := range all {
		if strings.EqualFold(profile.Name, name) {
			if err := p.setActive(profile.ID); err != nil {
				return nil, err
			}
			return profile, nil
		}
	}
	return nil, fmt.Errorf("profile %q: %w", name, models.ErrNotFound)
}

// Switch activates another profile and stamps its LastLogin
func (p *Profiles) Switch(id string) (*models.Profile, error) {
	profile, err := p.Get(id)
	if err != nil {
		return nil, err
	}

	profile.LastLogin = time.Now()
	if err := p.store.Update(profile.ID, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	if err := p.setActive(profile.ID); err != nil {
		return nil, err
	}

	p.logger.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"name":       profile.Name,
	}).Info("Switched active profile")
	return profile, nil
}

// Logout clears the active-profile pointer but keeps stored data. Guest
// profiles are ephemeral and removed together with their records.
func (p *Profiles) Logout() error {
	var ptr activePointer
	err := p.store.Get(activePointerKey, &ptr)
	if errors.Is(err, bolthold.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read active profile pointer: %w", err)
	}

	if profile, getErr := p.Get(ptr.ProfileID); getErr == nil && profile.IsGuest {
		if err := p.Delete(profile.ID); err != nil {
			return err
		}
		return nil
	}

	if err := p.store.Delete(activePointerKey, &activePointer{}); err != nil {
		return fmt.Errorf("failed to clear active profile pointer: %w", err)
	}
	return nil
}

// Delete removes a profile and cascades to its entire record set. Deleting
// the active profile falls back to the no-active-profile state.
func (p *Profiles) Delete(id string) error {
	if _, err := p.Get(id); err != nil {
		return err
	}

	if err := p.records.DeleteAll(id); err != nil {
		return err
	}
	if err := p.store.Delete(id, &models.Profile{}); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	var ptr activePointer
	if err := p.store.Get(activePointerKey, &ptr); err == nil && ptr.ProfileID == id {
		if err := p.store.Delete(activePointerKey, &activePointer{}); err != nil {
			return fmt.Errorf("failed to clear active profile pointer: %w", err)
		}
	}

	p.logger.WithField("profile_id", id).Info("Profile deleted")
	return nil
}

// RecomputeStats refreshes the profile's derived stats from its current
// record list and persists them.
func (p *Profiles) RecomputeStats(profile *models.Profile, records []*models.MediaRecord) error {
	profile.Stats = models.ComputeStats(records)
	if err := p.store.Update(profile.ID, profile); err != nil {
		return fmt.Errorf("failed to update profile stats: %w", err)
	}
	return nil
}

func (p *Profiles) setActive(id string) error {
	err := p.store.Upsert(activePointerKey, &activePointer{Key: activePointerKey, ProfileID: id})
	if err != nil {
		return fmt.Errorf("failed to set active profile pointer: %w", err)
	}
	return nil
}
