package handler

import (
	"errors"
	"net/http"

	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-journal/backend/internal/flights"
)

// FlightSearchResponse is the body of a successful flight search.
type FlightSearchResponse struct {
	Offers []flights.Offer `json:"offers"`
}

// FlightError is the error body of the flight search endpoint. Details is
// set only for provider failures, where it carries the raw provider body and
// is always sent, even when empty.
type FlightError struct {
	Error   string  `json:"error"`
	Details *string `json:"details,omitempty"`
}

// SearchFlights handles GET /api/flights/search.
func (s *Server) SearchFlights(w http.ResponseWriter, r *http.Request) {
	if s.flights == nil {
		writeJSON(w, http.StatusInternalServerError, FlightError{Error: flights.ErrMissingCredentials.Error()})
		return
	}

	var (
		origin, destination, departureDate *string
		returnDate, currencyCode           *string
		adults, limit                      *int
		nonStop                            *bool
	)
	q := r.URL.Query()
	for _, b := range []struct {
		name string
		dest any
	}{
		{"origin", &origin},
		{"destination", &destination},
		{"departureDate", &departureDate},
		{"returnDate", &returnDate},
		{"currencyCode", &currencyCode},
		{"adults", &adults},
		{"nonStop", &nonStop},
		{"max", &limit},
	} {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			writeJSON(w, http.StatusBadRequest, FlightError{Error: err.Error()})
			return
		}
	}
	p := flights.SearchParams{
		Origin:        deref(origin),
		Destination:   deref(destination),
		DepartureDate: deref(departureDate),
		ReturnDate:    deref(returnDate),
		CurrencyCode:  deref(currencyCode),
	}
	if adults != nil {
		p.Adults = *adults
	}
	if nonStop != nil {
		p.NonStop = *nonStop
	}
	if limit != nil {
		p.Max = *limit
	}

	offers, err := s.flights.Search(r.Context(), p)
	if err != nil {
		var up *flights.UpstreamError
		switch {
		case errors.Is(err, flights.ErrMissingParams):
			writeJSON(w, http.StatusBadRequest, FlightError{Error: err.Error()})
		case errors.As(err, &up):
			writeJSON(w, up.StatusCode, FlightError{Error: up.Error(), Details: &up.Body})
		default:
			s.log.ErrorContext(r.Context(), "flight search failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, FlightError{Error: err.Error()})
		}
		return
	}
	writeJSON(w, http.StatusOK, FlightSearchResponse{Offers: offers})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
