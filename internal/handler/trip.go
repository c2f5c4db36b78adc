package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// CreateTripRequest is the body of POST /api/trips.
type CreateTripRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// UpdateTripRequest is the body of PUT /api/trips/{tripId}. Absent fields are kept.
type UpdateTripRequest struct {
	Title      *string            `json:"title"`
	StartDate  *string            `json:"startDate"`
	EndDate    *string            `json:"endDate"`
	Visibility *domain.Visibility `json:"visibility"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// TripList is the body of GET /api/trips.
type TripList struct {
	Data       []domain.Trip `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	var body CreateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	created, err := s.journal.CreateTrip(r.Context(), domain.TripFields{
		Title:     body.Title,
		StartDate: body.StartDate,
		EndDate:   body.EndDate,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	var page, limit *int
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", q, &page); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	trips, total, err := s.journal.ListTrips(r.Context(), params)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, TripList{
		Data: trips,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetTrip handles GET /api/trips/{tripId}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	trip, err := s.journal.GetTrip(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trips/{tripId}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	var body UpdateTripRequest
	if !decodeBody(w, r, &body) {
		return
	}

	updated, err := s.journal.UpdateTrip(r.Context(), chi.URLParam(r, "tripId"), domain.TripPatch{
		Title:      body.Title,
		StartDate:  body.StartDate,
		EndDate:    body.EndDate,
		Visibility: body.Visibility,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{tripId}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	if err := s.journal.DeleteTrip(r.Context(), chi.URLParam(r, "tripId")); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
