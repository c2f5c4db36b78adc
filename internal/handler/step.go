package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// AddStepRequest is the body of POST /api/trips/{tripId}/steps.
// Place must be a resolved search result or a device location.
type AddStepRequest struct {
	Place         *domain.Place  `json:"place"`
	ArrivalDate   string         `json:"arrivalDate"`
	DepartureDate string         `json:"departureDate"`
	Notes         string         `json:"notes"`
	Photos        []domain.Photo `json:"photos"`
}

// UpdateStepRequest is the body of PATCH /api/trips/{tripId}/steps/{stepId}.
type UpdateStepRequest struct {
	Title         *string        `json:"title"`
	Place         *domain.Place  `json:"place"`
	ArrivalDate   *string        `json:"arrivalDate"`
	DepartureDate *string        `json:"departureDate"`
	Notes         *string        `json:"notes"`
	Photos        []domain.Photo `json:"photos"`
}

// AddStep handles POST /api/trips/{tripId}/steps.
func (s *Server) AddStep(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	var body AddStepRequest
	if !decodeBody(w, r, &body) {
		return
	}

	step, err := s.journal.AddStep(r.Context(), chi.URLParam(r, "tripId"), domain.NewStep{
		Place:         body.Place,
		ArrivalDate:   body.ArrivalDate,
		DepartureDate: body.DepartureDate,
		Notes:         body.Notes,
		Photos:        body.Photos,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, step)
}

// UpdateStep handles PATCH /api/trips/{tripId}/steps/{stepId}.
func (s *Server) UpdateStep(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	var body UpdateStepRequest
	if !decodeBody(w, r, &body) {
		return
	}

	step, err := s.journal.UpdateStep(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "stepId"), domain.StepPatch{
		Title:         body.Title,
		Place:         body.Place,
		ArrivalDate:   body.ArrivalDate,
		DepartureDate: body.DepartureDate,
		Notes:         body.Notes,
		Photos:        body.Photos,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

// DeleteStep handles DELETE /api/trips/{tripId}/steps/{stepId}.
func (s *Server) DeleteStep(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	if err := s.journal.DeleteStep(r.Context(), chi.URLParam(r, "tripId"), chi.URLParam(r, "stepId")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
