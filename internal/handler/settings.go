package handler

import (
	"net/http"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// UpdateSettingsRequest is the body of PUT /api/settings.
type UpdateSettingsRequest struct {
	Units *string `json:"units"`
}

// GetSettings handles GET /api/settings.
func (s *Server) GetSettings(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	writeJSON(w, http.StatusOK, s.journal.Settings(r.Context()))
}

// UpdateSettings handles PUT /api/settings.
func (s *Server) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	var body UpdateSettingsRequest
	if !decodeBody(w, r, &body) {
		return
	}
	out, err := s.journal.UpdateSettings(r.Context(), domain.SettingsPatch{Units: body.Units})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
