package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_title", "trip_start_date", "trip_end_date",
	"step_title", "place_label", "lat", "lng",
	"arrival_date", "departure_date", "notes", "photo_count",
}

// ExportRow is one row of the JSON export.
// Fields that are empty strings are omitted.
type ExportRow struct {
	TripID        string   `json:"tripId"`
	TripTitle     string   `json:"tripTitle"`
	TripStartDate string   `json:"tripStartDate,omitempty"`
	TripEndDate   string   `json:"tripEndDate,omitempty"`
	StepTitle     string   `json:"stepTitle,omitempty"`
	PlaceLabel    string   `json:"placeLabel,omitempty"`
	Lat           *float64 `json:"lat,omitempty"`
	Lng           *float64 `json:"lng,omitempty"`
	ArrivalDate   string   `json:"arrivalDate,omitempty"`
	DepartureDate string   `json:"departureDate,omitempty"`
	Notes         string   `json:"notes,omitempty"`
	PhotoCount    int      `json:"photoCount"`
}

// ExportTrip handles GET /api/trips/{tripId}/export.
// It returns one flat row per step. Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	exportFormat, ok := bindExportFormat(w, r)
	if !ok {
		return
	}
	rows, err := s.journal.Export(r.Context(), chi.URLParam(r, "tripId"))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeExport(w, exportFormat, rows)
}

// ExportAll handles GET /api/export: every step of every trip, newest trip first.
func (s *Server) ExportAll(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		unavailable(w, "journal")
		return
	}
	exportFormat, ok := bindExportFormat(w, r)
	if !ok {
		return
	}
	writeExport(w, exportFormat, s.journal.ExportAll(r.Context()))
}

// bindExportFormat reads ?format. It writes a 400 and reports false when the
// value is not csv or json.
func bindExportFormat(w http.ResponseWriter, r *http.Request) (string, bool) {
	var exportFormat *string
	if err := runtime.BindQueryParameter("form", true, false, "format", r.URL.Query(), &exportFormat); err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody(err.Error()))
		return "", false
	}
	if exportFormat == nil {
		return "json", true
	}
	if *exportFormat != "csv" && *exportFormat != "json" {
		writeJSON(w, http.StatusBadRequest, requestBody("format must be csv or json"))
		return "", false
	}
	return *exportFormat, true
}

func writeExport(w http.ResponseWriter, exportFormat string, rows []domain.ExportRow) {
	if exportFormat == "csv" {
		b := buildCSV(rows)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Length", strconv.Itoa(len(b)))
		_, _ = w.Write(b)
		return
	}
	writeJSON(w, http.StatusOK, buildJSONRows(rows))
}

// buildJSONRows converts domain rows to the JSON response rows.
func buildJSONRows(rows []domain.ExportRow) []ExportRow {
	out := make([]ExportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, ExportRow(r))
	}
	return out
}

// buildCSV encodes domain rows as CSV with a header line.
func buildCSV(rows []domain.ExportRow) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	// Writes into a bytes.Buffer cannot fail.
	_ = w.Write(csvHeaders)
	for _, r := range rows {
		_ = w.Write(domainRowToCSVRecord(r))
	}
	w.Flush()
	return buf.Bytes()
}

// domainRowToCSVRecord encodes a domain.ExportRow as a flat string slice.
// Unknown coordinates are encoded as empty strings.
func domainRowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		r.TripID,
		r.TripTitle,
		r.TripStartDate,
		r.TripEndDate,
		r.StepTitle,
		r.PlaceLabel,
		formatCoord(r.Lat),
		formatCoord(r.Lng),
		r.ArrivalDate,
		r.DepartureDate,
		r.Notes,
		strconv.Itoa(r.PhotoCount),
	}
}

func formatCoord(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
