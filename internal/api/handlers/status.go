package handlers

import (
	"net/http"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/collectarr/collectarr/internal/store"
	"github.com/sirupsen/logrus"
)

// StatusHandler reports collection counts for the active profile
type StatusHandler struct {
	records  store.RecordStore
	profiles *store.Profiles
	logger   *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(records store.RecordStore, profiles *store.Profiles, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		records:  records,
		profiles: profiles,
		logger:   logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	Profile        string         `json:"profile"`
	TotalItems     int            `json:"total_items"`
	Wishlist       int            `json:"wishlist"`
	Owned          int            `json:"owned"`
	CurrentlyUsing int            `json:"currently_using"`
	Completed      int            `json:"completed"`
	ItemsByType    map[string]int `json:"items_by_type"`
	FavoriteGenre  string         `json:"favorite_genre"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Current()
	if err != nil {
		writeDomainError(w, err)
		return
	}

	records, err := h.records.List(profile.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to list records")
		writeDomainError(w, err)
		return
	}

	response := StatusResponse{
		Profile:       profile.Name,
		TotalItems:    len(records),
		ItemsByType:   make(map[string]int),
		FavoriteGenre: models.FavoriteGenre(records),
	}

	for _, record := range records {
		switch record.Status {
		case models.StatusWishlist:
			response.Wishlist++
		case models.StatusOwned:
			response.Owned++
		case models.StatusCurrentlyUsing:
			response.CurrentlyUsing++
		case models.StatusCompleted:
			response.Completed++
		}
		response.ItemsByType[string(record.Type)]++
	}

	writeJSON(w, http.StatusOK, response)
}
