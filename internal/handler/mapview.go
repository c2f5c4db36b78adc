package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-journal/backend/internal/mapview"
)

// GetTripMap handles GET /api/trips/{tripId}/map.
// The trip is rendered as a GeoJSON FeatureCollection.
func (s *Server) GetTripMap(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	trip, err := s.journal.GetTrip(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	fc := mapview.GeoJSON(mapview.Render(&trip))
	b, err := fc.MarshalJSON()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(b)
}
