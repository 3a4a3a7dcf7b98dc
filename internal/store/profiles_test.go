package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/collectarr/collectarr/internal/models"
)

func openProfiles(t *testing.T) (*Profiles, RecordStore) {
	t.Helper()

	records, err := NewFileStore(t.TempDir(), testLogger())
	if err != nil {
		t.Fatalf("failed to open record store: %v", err)
	}

	profiles, err := OpenProfiles(filepath.Join(t.TempDir(), "profiles.db"), records, testLogger())
	if err != nil {
		t.Fatalf("failed to open profile store: %v", err)
	}
	t.Cleanup(func() { profiles.Close() })

	return profiles, records
}

func TestCurrentAutoCreatesDefaultProfile(t *testing.T) {
	profiles, _ := openProfiles(t)

	profile, err := profiles.Current()
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if profile.Name != DefaultProfileName {
		t.Errorf("expected %q, got %q", DefaultProfileName, profile.Name)
	}
	if profile.Avatar != models.DefaultAvatar {
		t.Errorf("expected default avatar, got %q", profile.Avatar)
	}

	// A second call returns the same profile, not another auto-created one.
	again, err := profiles.Current()
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if again.ID != profile.ID {
		t.Errorf("expected stable active profile, got %s then %s", profile.ID, again.ID)
	}
}

func TestCreateRejectsDuplicateNameCaseInsensitive(t *testing.T) {
	profiles, _ := openProfiles(t)

	if _, err := profiles.Create("Ann", "", "👤"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := profiles.Create("ann", "", "🤖")
	if !errors.Is(err, models.ErrDuplicateName) {
		t.Errorf("expected duplicate name error, got %v", err)
	}
}

func TestCreateValidatesAvatarPalette(t *testing.T) {
	profiles, _ := openProfiles(t)

	if _, err := profiles.Create("Zed", "", "🦖"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("expected validation error for off-palette avatar, got %v", err)
	}

	profile, err := profiles.Create("Empty", "", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if profile.Avatar != models.DefaultAvatar {
		t.Errorf("expected empty avatar to default, got %q", profile.Avatar)
	}
}

func TestSwitchActivatesProfile(t *testing.T) {
	profiles, _ := openProfiles(t)

	ann, err := profiles.Create("Ann", "", "👩")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := profiles.Switch(ann.ID); err != nil {
		t.Fatalf("switch failed: %v", err)
	}

	current, err := profiles.Current()
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if current.ID != ann.ID {
		t.Errorf("expected %s active, got %s", ann.ID, current.ID)
	}

	if _, err := profiles.Switch("nope"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected not found for unknown profile, got %v", err)
	}
}

func TestDeleteCascadesToRecordSet(t *testing.T) {
	profiles, records := openProfiles(t)

	ann, err := profiles.Create("Ann", "", "👩")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := records.Create(ann.ID, newRecord("Dune", "Denis Villeneuve")); err != nil {
		t.Fatalf("record create failed: %v", err)
	}

	if err := profiles.Delete(ann.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := profiles.Get(ann.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected profile gone, got %v", err)
	}
	remaining, err := records.List(ann.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected cascaded record delete, %d records remain", len(remaining))
	}
}

func TestDeleteActiveProfileClearsPointer(t *testing.T) {
	profiles, _ := openProfiles(t)

	ann, err := profiles.Create("Ann", "", "👩")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := profiles.Switch(ann.ID); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if err := profiles.Delete(ann.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// Next access falls back to the welcome/auto-create flow.
	current, err := profiles.Current()
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if current.ID == ann.ID {
		t.Error("deleted profile still active")
	}
	if current.Name != DefaultProfileName {
		t.Errorf("expected auto-created default profile, got %q", current.Name)
	}
}

func TestLogoutKeepsStoredData(t *testing.T) {
	profiles, _ := openProfiles(t)

	ann, err := profiles.Create("Ann", "", "👩")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := profiles.Switch(ann.ID); err != nil {
		t.Fatalf("switch failed: %v", err)
	}
	if err := profiles.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	// The profile itself survives logout.
	if _, err := profiles.Get(ann.ID); err != nil {
		t.Errorf("expected profile to survive logout, got %v", err)
	}
}

func TestGuestIsDroppedOnLogout(t *testing.T) {
	profiles, records := openProfiles(t)

	guest, err := profiles.CreateGuest()
	if err != nil {
		t.Fatalf("guest create failed: %v", err)
	}
	if !guest.IsGuest {
		t.Error("expected IsGuest flag")
	}
	if _, err := records.Create(guest.ID, newRecord("Dune", "Denis Villeneuve")); err != nil {
		t.Fatalf("record create failed: %v", err)
	}

	if err := profiles.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if _, err := profiles.Get(guest.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected guest profile gone after logout, got %v", err)
	}
	remaining, err := records.List(guest.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("expected guest records gone, %d remain", len(remaining))
	}
}

func TestRecomputeStats(t *testing.T) {
	profiles, _ := openProfiles(t)

	profile, err := profiles.Create("Ann", "", "👩")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	recs := []*models.MediaRecord{
		{Title: "A", Creator: "a", Type: models.MediaTypeMovie, Status: models.StatusCompleted, Genre: "Sci-Fi"},
		{Title: "B", Creator: "b", Type: models.MediaTypeMovie, Status: models.StatusOwned, Genre: "Sci-Fi"},
		{Title: "C", Creator: "c", Type: models.MediaTypeGame, Status: models.StatusCompleted, Genre: "RPG"},
	}
	if err := profiles.RecomputeStats(profile, recs); err != nil {
		t.Fatalf("recompute failed: %v", err)
	}

	stored, err := profiles.Get(profile.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Stats.TotalItems != 3 || stored.Stats.CompletedItems != 2 {
		t.Errorf("unexpected stats: %+v", stored.Stats)
	}
	if stored.Stats.FavoriteGenre != "Sci-Fi" {
		t.Errorf("expected favorite genre Sci-Fi, got %q", stored.Stats.FavoriteGenre)
	}
}
