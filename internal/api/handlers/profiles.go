package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/collectarr/collectarr/internal/store"
	"github.com/sirupsen/logrus"
)

// ProfileHandler serves the profile directory and active-profile lifecycle
type ProfileHandler struct {
	records  store.RecordStore
	profiles *store.Profiles
	logger   *logrus.Logger
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(records store.RecordStore, profiles *store.Profiles, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		records:  records,
		profiles: profiles,
		logger:   logger,
	}
}

// List handles GET /api/profiles
func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.All()
	if err != nil {
		h.logger.WithError(err).Error("Failed to list profiles")
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profiles)
}

// Create handles POST /api/profiles
func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name   string `json:"name"`
		Email  string `json:"email"`
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.profiles.Create(req.Name, req.Email, req.Avatar)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

// Current handles GET /api/profiles/current. Stats are recomputed from the
// live record list on every load.
func (h *ProfileHandler) Current(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Current()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	records, err := h.records.List(profile.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list records for stats")
		writeDomainError(w, err)
		return
	}
	if err := h.profiles.RecomputeStats(profile, records); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Activate handles POST /api/profiles/{id}/activate
func (h *ProfileHandler) Activate(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Switch(r.PathValue("id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Delete handles DELETE /api/profiles/{id}
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Delete(r.PathValue("id")); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "profile deleted successfully"})
}

// Logout handles POST /api/logout
func (h *ProfileHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.profiles.Logout(); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Guest handles POST /api/guest
func (h *ProfileHandler) Guest(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.CreateGuest()
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}
