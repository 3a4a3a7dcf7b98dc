package handlers

import (
	"net/http"

	"github.com/collectarr/collectarr/internal/recommend"
	"github.com/collectarr/collectarr/internal/store"
	"github.com/sirupsen/logrus"
)

// RecommendationHandler serves suggestions for the active profile's
// collection
type RecommendationHandler struct {
	records   store.RecordStore
	profiles  *store.Profiles
	generator *recommend.Generator
	logger    *logrus.Logger
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(records store.RecordStore, profiles *store.Profiles, generator *recommend.Generator, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		records:   records,
		profiles:  profiles,
		generator: generator,
		logger:    logger,
	}
}

// Generate handles GET /api/recommendations
func (h *RecommendationHandler) Generate(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, h.generator.Generate(records))
}
