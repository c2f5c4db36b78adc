package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/handler"
)

func exportJournal(rows []domain.ExportRow) *mockJournal {
	return &mockJournal{export: func(context.Context, string) ([]domain.ExportRow, error) {
		return rows, nil
	}}
}

// exportRowFixture returns a fully-populated domain.ExportRow for testing.
func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		TripID:        "trip-1",
		TripTitle:     "Japan",
		TripStartDate: "2025-04-01",
		TripEndDate:   "2025-04-14",
		StepTitle:     "Kyoto",
		PlaceLabel:    "Kyoto, Japan",
		Lat:           ptr(35.0116),
		Lng:           ptr(135.7681),
		ArrivalDate:   "2025-04-02",
		DepartureDate: "2025-04-05",
		Notes:         "temples, gardens",
		PhotoCount:    2,
	}
}

func TestExportTrip_DefaultJSON(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Journal: exportJournal([]domain.ExportRow{exportRowFixture()})}),
		http.MethodGet, "/api/trips/trip-1/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var rows []handler.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Kyoto", rows[0].StepTitle)
	assert.Equal(t, 2, rows[0].PhotoCount)
}

func TestExportTrip_JSON_TripWithNoSteps_OmitsStepFields(t *testing.T) {
	row := domain.ExportRow{TripID: "trip-2", TripTitle: "Empty"}
	rec := do(t, newHTTPHandler(handler.Deps{Journal: exportJournal([]domain.ExportRow{row})}),
		http.MethodGet, "/api/trips/trip-2/export?format=json", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"tripId":"trip-2","tripTitle":"Empty","photoCount":0}]`, rec.Body.String())
}

func TestExportTrip_CSV(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Journal: exportJournal([]domain.ExportRow{exportRowFixture()})}),
		http.MethodGet, "/api/trips/trip-1/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "trip_id", records[0][0])
	assert.Equal(t, []string{
		"trip-1", "Japan", "2025-04-01", "2025-04-14",
		"Kyoto", "Kyoto, Japan", "35.0116", "135.7681",
		"2025-04-02", "2025-04-05", "temples, gardens", "2",
	}, records[1])
}

func TestExportTrip_CSV_EmptyCoordinates(t *testing.T) {
	row := domain.ExportRow{TripID: "trip-2", TripTitle: "Empty"}
	rec := do(t, newHTTPHandler(handler.Deps{Journal: exportJournal([]domain.ExportRow{row})}),
		http.MethodGet, "/api/trips/trip-2/export?format=csv", nil)

	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "", records[1][6])
	assert.Equal(t, "0", records[1][11])
}

func TestExportTrip_400_UnknownFormat(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Journal: exportJournal(nil)}),
		http.MethodGet, "/api/trips/trip-1/export?format=xml", nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportAll_CSV(t *testing.T) {
	rows := []domain.ExportRow{exportRowFixture(), {TripID: "trip-2", TripTitle: "Empty"}}
	rec := do(t, newHTTPHandler(handler.Deps{Journal: &mockJournal{
		exportAll: func(context.Context) []domain.ExportRow { return rows },
	}}), http.MethodGet, "/api/export?format=csv", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	records, err := csv.NewReader(strings.NewReader(rec.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "trip-2", records[2][0])
}

func TestExportAll_EmptyJournalIsEmptyArray(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{Journal: &mockJournal{
		exportAll: func(context.Context) []domain.ExportRow { return nil },
	}}), http.MethodGet, "/api/export", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
