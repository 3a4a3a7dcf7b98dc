package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/collectarr/collectarr/internal/search"
	"github.com/collectarr/collectarr/internal/store"
	"github.com/sirupsen/logrus"
)

// MediaHandler serves CRUD and search over the active profile's record set
type MediaHandler struct {
	records  store.RecordStore
	profiles *store.Profiles
	logger   *logrus.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(records store.RecordStore, profiles *store.Profiles, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{
		records:  records,
		profiles: profiles,
		logger:   logger,
	}
}

// scope resolves the active profile id, auto-creating the default profile
// when none is active
func (h *MediaHandler) scope(w http.ResponseWriter) (string, bool) {
	profile, err := h.profiles.Current()
	if err != nil {
		h.logger.WithError(err).Error("Failed to resolve active profile")
		writeDomainError(w, err)
		return "", false
	}
	return profile.ID, true
}

func parseID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

// List handles GET /api/media
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.scope(w)
	if !ok {
		return
	}

	records, err := h.records.List(profileID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list records")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /api/media/{id}
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.scope(w)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "media item not found")
		return
	}

	record, err := h.records.Get(profileID, id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// Create handles POST /api/media
func (h *MediaHandler) Create(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.scope(w)
	if !ok {
		return
	}

	var record models.MediaRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.records.Create(profileID, &record)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/media/{id}
func (h *MediaHandler) Update(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.scope(w)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "media item not found")
		return
	}

	var patch models.RecordPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.records.Update(profileID, id, patch)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/media/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.scope(w)
	if !ok {
		return
	}
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "media item not found")
		return
	}

	if err := h.records.Delete(profileID, id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "media item deleted successfully"})
}

// Search handles GET /api/search?q=&type=&status=
func (h *MediaHandler) Search(w http.ResponseWriter, r *http.Request) {
	profileID, ok := h.scope(w)
	if !ok {
		return
	}

	records, err := h.records.List(profileID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list records")
		writeDomainError(w, err)
		return
	}

	filtered := search.Filter(records, search.Params{
		Query:  r.URL.Query().Get("q"),
		Type:   models.MediaType(r.URL.Query().Get("type")),
		Status: models.Status(r.URL.Query().Get("status")),
	})
	writeJSON(w, http.StatusOK, filtered)
}
