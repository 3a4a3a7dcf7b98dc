// Package search computes the visible subset of a record list.
package search

import (
	"strings"

	"github.com/collectarr/collectarr/internal/models"
)

// Params are the filter predicates. Empty fields match everything;
// predicates combine with AND.
type Params struct {
	Query  string
	Type   models.MediaType
	Status models.Status
}

// Filter returns the records matching the params, preserving relative
// order. The query matches title, creator or genre case-insensitively as a
// substring; type and status match exactly.
func Filter(records []*models.MediaRecord, params Params) []*models.MediaRecord {
	query := strings.ToLower(strings.TrimSpace(params.Query))

	filtered := make([]*models.MediaRecord, 0, len(records))
	for _, r := range records {
		if query != "" && !matchesQuery(r, query) {
			continue
		}
		if params.Type != "" && r.Type != params.Type {
			continue
		}
		if params.Status != "" && r.Status != params.Status {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func matchesQuery(r *models.MediaRecord, query string) bool {
	return strings.Contains(strings.ToLower(r.Title), query) ||
		strings.Contains(strings.ToLower(r.Creator), query) ||
		strings.Contains(strings.ToLower(r.Genre), query)
}
