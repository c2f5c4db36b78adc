package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-journal/backend/internal/format"
)

// DecodeShareRequest is the body of POST /api/share/decode.
type DecodeShareRequest struct {
	Payload string `json:"payload"`
}

// GetShareLink handles GET /api/trips/{tripId}/share.
func (s *Server) GetShareLink(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	link, err := s.journal.ShareLink(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, link)
}

// DecodeShare handles POST /api/share/decode and returns the shared trip.
// It is read-only; the trip is not added to the journal.
func (s *Server) DecodeShare(w http.ResponseWriter, r *http.Request) {
	var body DecodeShareRequest
	if !decodeBody(w, r, &body) {
		return
	}
	trip, err := format.DecodeShare(body.Payload)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, validationBody(err))
		return
	}
	writeJSON(w, http.StatusOK, trip)
}
