package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/format"
	"github.com/pkordes/travel-journal/backend/internal/handler"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

func TestGetShareLink_200(t *testing.T) {
	svc := &mockJournal{shareLink: func(_ context.Context, tripID string) (service.ShareLink, error) {
		return service.ShareLink{URL: "https://journal.example/share#abc", Payload: "abc"}, nil
	}}

	rec := do(t, newHTTPHandler(handler.Deps{Journal: svc}), http.MethodGet, "/api/trips/trip-1/share", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"https://journal.example/share#abc","payload":"abc"}`, rec.Body.String())
}

func TestDecodeShare_200(t *testing.T) {
	payload, err := format.EncodeShare(tripFixture())
	require.NoError(t, err)

	rec := do(t, newHTTPHandler(handler.Deps{}), http.MethodPost, "/api/share/decode", map[string]string{"payload": "#" + payload})

	require.Equal(t, http.StatusOK, rec.Code)
	var trip domain.Trip
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&trip))
	assert.Equal(t, "Japan", trip.Title)
	require.Len(t, trip.Steps, 1)
}

func TestDecodeShare_400_Garbage(t *testing.T) {
	rec := do(t, newHTTPHandler(handler.Deps{}), http.MethodPost, "/api/share/decode", map[string]string{"payload": "%%%"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Code)
}

func TestGetTripMap_GeoJSON(t *testing.T) {
	svc := &mockJournal{getTrip: func(context.Context, string) (domain.Trip, error) {
		return tripFixture(), nil
	}}

	rec := do(t, newHTTPHandler(handler.Deps{Journal: svc}), http.MethodGet, "/api/trips/trip-1/map", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/geo+json", rec.Header().Get("Content-Type"))

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Type        string    `json:"type"`
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
		BBox []float64 `json:"bbox"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)
	assert.Equal(t, "Point", fc.Features[0].Geometry.Type)
	assert.Equal(t, []float64{135.7681, 35.0116}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "step-1", fc.Features[0].Properties["stepId"])
	assert.Len(t, fc.BBox, 4)
}

func TestSettings(t *testing.T) {
	var got domain.SettingsPatch
	svc := &mockJournal{
		settings: func(context.Context) domain.Settings { return domain.Settings{Units: "metric"} },
		updateSettings: func(_ context.Context, p domain.SettingsPatch) (domain.Settings, error) {
			got = p
			return domain.Settings{Units: *p.Units}, nil
		},
	}
	h := newHTTPHandler(handler.Deps{Journal: svc})

	rec := do(t, h, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"units":"metric"}`, rec.Body.String())

	rec = do(t, h, http.MethodPut, "/api/settings", map[string]string{"units": "imperial"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got.Units)
	assert.Equal(t, "imperial", *got.Units)
	assert.JSONEq(t, `{"units":"imperial"}`, rec.Body.String())
}

func TestSearchPlaces(t *testing.T) {
	var gotQuery string
	p := &mockPlaces{search: func(_ context.Context, q string) []domain.Place {
		gotQuery = q
		if q == "ky" {
			return nil
		}
		return []domain.Place{{Label: "Kyoto, Japan", Lat: ptr(35.0), Lng: ptr(135.7)}}
	}}
	h := newHTTPHandler(handler.Deps{Places: p})

	rec := do(t, h, http.MethodGet, "/api/places?q=kyoto", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "kyoto", gotQuery)
	assert.JSONEq(t, `{"data":[{"label":"Kyoto, Japan","lat":35,"lng":135.7}]}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/places?q=ky", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestGetWikiSummary(t *testing.T) {
	p := &mockPlaces{wiki: func(_ context.Context, title string) *domain.ReferenceSummary {
		if title != "Kyoto" {
			return nil
		}
		return &domain.ReferenceSummary{Title: "Kyoto", Extract: "Old capital."}
	}}
	h := newHTTPHandler(handler.Deps{Places: p})

	rec := do(t, h, http.MethodGet, "/api/wiki?title=Kyoto", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"title":"Kyoto","extract":"Old capital.","url":null}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/api/wiki?title=Atlantis", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/api/wiki", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
