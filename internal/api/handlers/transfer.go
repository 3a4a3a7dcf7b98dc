package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/collectarr/collectarr/internal/store"
	"github.com/collectarr/collectarr/internal/transfer"
	"github.com/sirupsen/logrus"
)

// TransferHandler serves collection export and import for the active
// profile
type TransferHandler struct {
	records  store.RecordStore
	profiles *store.Profiles
	logger   *logrus.Logger
}

// NewTransferHandler creates a new transfer handler
func NewTransferHandler(records store.RecordStore, profiles *store.Profiles, logger *logrus.Logger) *TransferHandler {
	return &TransferHandler{
		records:  records,
		profiles: profiles,
		logger:   logger,
	}
}

// Export handles GET /api/export
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Current()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	records, err := h.records.List(profile.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list records for export")
		writeDomainError(w, err)
		return
	}

	filename := fmt.Sprintf("media-collection-%s.json", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	writeJSON(w, http.StatusOK, transfer.Export(profile, records))
}

// Import handles POST /api/import?policy=replace|merge
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	policy, err := transfer.ParsePolicy(r.URL.Query().Get("policy"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	profile, err := h.profiles.Current()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	env, err := transfer.Decode(r.Body)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	added, err := transfer.Import(h.records, profile.ID, env, policy)
	if err != nil {
		h.logger.WithError(err).Error("Import failed")
		writeDomainError(w, err)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"profile_id": profile.ID,
		"policy":     policy,
		"added":      added,
	}).Info("Collection imported")
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("imported %d items", added),
	})
}
