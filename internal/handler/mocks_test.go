package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/flights"
	"github.com/pkordes/travel-journal/backend/internal/handler"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

// mockJournal is a test double for handler.JournalServicer.
// Set only the method fields your test needs.
type mockJournal struct {
	createTrip     func(ctx context.Context, f domain.TripFields) (domain.Trip, error)
	listTrips      func(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	getTrip        func(ctx context.Context, id string) (domain.Trip, error)
	updateTrip     func(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error)
	deleteTrip     func(ctx context.Context, id string) error
	addStep        func(ctx context.Context, tripID string, ns domain.NewStep) (domain.Step, error)
	updateStep     func(ctx context.Context, tripID, stepID string, patch domain.StepPatch) (domain.Step, error)
	deleteStep     func(ctx context.Context, tripID, stepID string) error
	settings       func(ctx context.Context) domain.Settings
	updateSettings func(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
	shareLink      func(ctx context.Context, tripID string) (service.ShareLink, error)
	export         func(ctx context.Context, tripID string) ([]domain.ExportRow, error)
	exportAll      func(ctx context.Context) []domain.ExportRow
}

func (m *mockJournal) CreateTrip(ctx context.Context, f domain.TripFields) (domain.Trip, error) {
	return m.createTrip(ctx, f)
}
func (m *mockJournal) ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	return m.listTrips(ctx, p)
}
func (m *mockJournal) GetTrip(ctx context.Context, id string) (domain.Trip, error) {
	return m.getTrip(ctx, id)
}
func (m *mockJournal) UpdateTrip(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error) {
	return m.updateTrip(ctx, id, patch)
}
func (m *mockJournal) DeleteTrip(ctx context.Context, id string) error {
	return m.deleteTrip(ctx, id)
}
func (m *mockJournal) AddStep(ctx context.Context, tripID string, ns domain.NewStep) (domain.Step, error) {
	return m.addStep(ctx, tripID, ns)
}
func (m *mockJournal) UpdateStep(ctx context.Context, tripID, stepID string, patch domain.StepPatch) (domain.Step, error) {
	return m.updateStep(ctx, tripID, stepID, patch)
}
func (m *mockJournal) DeleteStep(ctx context.Context, tripID, stepID string) error {
	return m.deleteStep(ctx, tripID, stepID)
}
func (m *mockJournal) Settings(ctx context.Context) domain.Settings {
	return m.settings(ctx)
}
func (m *mockJournal) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	return m.updateSettings(ctx, patch)
}
func (m *mockJournal) ShareLink(ctx context.Context, tripID string) (service.ShareLink, error) {
	return m.shareLink(ctx, tripID)
}
func (m *mockJournal) Export(ctx context.Context, tripID string) ([]domain.ExportRow, error) {
	return m.export(ctx, tripID)
}
func (m *mockJournal) ExportAll(ctx context.Context) []domain.ExportRow {
	return m.exportAll(ctx)
}

// compile-time check: mockJournal must satisfy handler.JournalServicer.
var _ handler.JournalServicer = (*mockJournal)(nil)

// The real services must satisfy the handler interfaces too.
var (
	_ handler.JournalServicer = (*service.Journal)(nil)
	_ handler.Assistant       = (*service.Assistant)(nil)
	_ handler.Guide           = (*ai.Pipeline)(nil)
	_ handler.ModelStatus     = (*ai.ResponsesClient)(nil)
	_ handler.FlightSearcher  = (*flights.Client)(nil)
)

type mockAssistant struct {
	ask func(ctx context.Context, tripID, stepID string, task ai.Task) (ai.Result, error)
}

func (m *mockAssistant) Ask(ctx context.Context, tripID, stepID string, task ai.Task) (ai.Result, error) {
	return m.ask(ctx, tripID, stepID, task)
}

var _ handler.Assistant = (*mockAssistant)(nil)

type mockGuide struct {
	run func(ctx context.Context, req ai.Request) (ai.Result, error)
}

func (m *mockGuide) Run(ctx context.Context, req ai.Request) (ai.Result, error) {
	return m.run(ctx, req)
}

var _ handler.Guide = (*mockGuide)(nil)

type mockFlights struct {
	search func(ctx context.Context, p flights.SearchParams) ([]flights.Offer, error)
}

func (m *mockFlights) Search(ctx context.Context, p flights.SearchParams) ([]flights.Offer, error) {
	return m.search(ctx, p)
}

var _ handler.FlightSearcher = (*mockFlights)(nil)

type mockPlaces struct {
	search func(ctx context.Context, q string) []domain.Place
	wiki   func(ctx context.Context, title string) *domain.ReferenceSummary
}

func (m *mockPlaces) Search(ctx context.Context, q string) []domain.Place {
	return m.search(ctx, q)
}
func (m *mockPlaces) WikiSummary(ctx context.Context, title string) *domain.ReferenceSummary {
	return m.wiki(ctx, title)
}

var _ handler.PlaceLookup = (*mockPlaces)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given deps into the real router,
// mirroring how cmd/api wires it in production.
func newHTTPHandler(d handler.Deps) http.Handler {
	return handler.NewServer(d).Routes()
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == nil {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, jsonBody(t, body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	if s, ok := v.(string); ok {
		return bytes.NewBufferString(s)
	}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func ptr[T any](v T) *T { return &v }

func tripFixture() domain.Trip {
	now := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	return domain.Trip{
		ID:         "trip-1",
		Title:      "Japan",
		StartDate:  "2025-04-01",
		EndDate:    "2025-04-14",
		Visibility: domain.VisibilityPrivate,
		Steps: []domain.Step{{
			ID:    "step-1",
			Title: "Kyoto",
			Place: domain.Place{Label: "Kyoto, Japan", Lat: ptr(35.0116), Lng: ptr(135.7681)},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
