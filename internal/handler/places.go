package handler

import (
	"net/http"
	"strings"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// PlaceList is the body of GET /api/places.
type PlaceList struct {
	Data []domain.Place `json:"data"`
}

// SearchPlaces handles GET /api/places?q=. Queries shorter than three
// characters, and failed lookups, return an empty list.
func (s *Server) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		unavailable(w, "place lookup")
		return
	}
	places := s.places.Search(r.Context(), r.URL.Query().Get("q"))
	if places == nil {
		places = []domain.Place{}
	}
	writeJSON(w, http.StatusOK, PlaceList{Data: places})
}

// GetWikiSummary handles GET /api/wiki?title=.
func (s *Server) GetWikiSummary(w http.ResponseWriter, r *http.Request) {
	if s.places == nil {
		unavailable(w, "place lookup")
		return
	}
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		writeJSON(w, http.StatusBadRequest, requestBody("title is required"))
		return
	}
	summary := s.places.WikiSummary(r.Context(), title)
	if summary == nil {
		writeJSON(w, http.StatusNotFound, notFoundBody("no summary for "+title))
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
