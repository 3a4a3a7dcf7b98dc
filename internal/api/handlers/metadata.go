package handlers

import (
	"net/http"

	"github.com/collectarr/collectarr/internal/models"
	"github.com/collectarr/collectarr/internal/services/metadata"
	"github.com/sirupsen/logrus"
)

// MetadataHandler serves catalog lookups used to pre-fill the add/edit form
type MetadataHandler struct {
	client    *metadata.Client
	debouncer *metadata.Debouncer
	logger    *logrus.Logger
}

// NewMetadataHandler creates a new metadata handler
func NewMetadataHandler(client *metadata.Client, debouncer *metadata.Debouncer, logger *logrus.Logger) *MetadataHandler {
	return &MetadataHandler{client: client, debouncer: debouncer, logger: logger}
}

// Search handles GET /api/metadata/search?q=&type=. Responses are served
// from the bounded cache when possible; lookup failures degrade to an empty
// array rather than an error, since metadata assistance is optional.
func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(r.URL.Query().Get("type"))
	if !mediaType.IsValid() {
		writeError(w, http.StatusBadRequest, "type must be movie, music or game")
		return
	}

	results, err := h.client.Search(r.Context(), r.URL.Query().Get("q"), mediaType)
	if err != nil {
		// Only context cancellation reaches here; the client is gone.
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// Suggest handles GET /api/metadata/suggest?q=&type=, the keystroke-driven
// variant of Search. Lookups are debounced per media type with latest-wins
// supersession: a call superseded by a newer one for the same type is never
// answered, so a typeahead caller that aborts its stale request sees exactly
// one response per burst of keystrokes.
func (h *MetadataHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	mediaType := models.MediaType(r.URL.Query().Get("type"))
	if !mediaType.IsValid() {
		writeError(w, http.StatusBadRequest, "type must be movie, music or game")
		return
	}

	delivered := make(chan []metadata.Result, 1)
	h.debouncer.Search(r.Context(), r.URL.Query().Get("q"), mediaType, func(results []metadata.Result) {
		delivered <- results
	})

	select {
	case results := <-delivered:
		writeJSON(w, http.StatusOK, results)
	case <-r.Context().Done():
	}
}
