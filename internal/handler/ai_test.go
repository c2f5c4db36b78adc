package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/handler"
)

func aiDeps(g handler.Guide) handler.Deps {
	return handler.Deps{Guide: g, Model: stubModel{hasKey: true, model: "gpt-5-mini"}}
}

func TestPostAI_200(t *testing.T) {
	var got ai.Request
	g := &mockGuide{run: func(_ context.Context, req ai.Request) (ai.Result, error) {
		got = req
		return ai.Result{Text: "Visit Fushimi Inari.", Links: []string{"https://en.wikipedia.org/wiki/Kyoto"}}, nil
	}}

	rec := do(t, newHTTPHandler(aiDeps(g)), http.MethodPost, "/api/ai", map[string]any{
		"task": "place_info",
		"trip": map[string]any{"title": "Japan", "startDate": "2025-04-01", "endDate": ""},
		"step": map[string]any{"title": "Kyoto", "label": "Kyoto, Japan", "lat": 35.01, "lng": 135.76},
		"sources": map[string]any{
			"wikipedia": map[string]any{"title": "Kyoto", "extract": "Old capital.", "url": "https://en.wikipedia.org/wiki/Kyoto"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text":"Visit Fushimi Inari.","links":["https://en.wikipedia.org/wiki/Kyoto"]}`, rec.Body.String())
	assert.Equal(t, ai.TaskPlaceInfo, got.Task)
	require.NotNil(t, got.Step)
	assert.Equal(t, "Kyoto, Japan", got.Step.Label)
	require.NotNil(t, got.Sources.Wikipedia)
	assert.Equal(t, "Old capital.", got.Sources.Wikipedia.Extract)
}

func TestPostAI_405_NonPost(t *testing.T) {
	rec := do(t, newHTTPHandler(aiDeps(&mockGuide{})), http.MethodGet, "/api/ai", nil)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", rec.Body.String())
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestPostAI_500_MissingKey(t *testing.T) {
	d := handler.Deps{Guide: &mockGuide{}, Model: stubModel{hasKey: false}}

	rec := do(t, newHTTPHandler(d), http.MethodPost, "/api/ai", map[string]any{"task": "plan_days"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Missing OPENAI_API_KEY", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestPostAI_UpstreamStatusAndBodyAreForwarded(t *testing.T) {
	g := &mockGuide{run: func(context.Context, ai.Request) (ai.Result, error) {
		return ai.Result{}, &ai.UpstreamError{StatusCode: http.StatusTooManyRequests, Body: `{"error":{"message":"rate limited"}}`}
	}}

	rec := do(t, newHTTPHandler(aiDeps(g)), http.MethodPost, "/api/ai", map[string]any{"task": "plan_days"})

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, `{"error":{"message":"rate limited"}}`, rec.Body.String())
}

func TestPostAI_400_MalformedJSON(t *testing.T) {
	rec := do(t, newHTTPHandler(aiDeps(&mockGuide{})), http.MethodPost, "/api/ai", "{")

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Code)
}

func TestPostAI_500_OtherFailure(t *testing.T) {
	g := &mockGuide{run: func(context.Context, ai.Request) (ai.Result, error) {
		return ai.Result{}, errors.New("connection reset")
	}}

	rec := do(t, newHTTPHandler(aiDeps(g)), http.MethodPost, "/api/ai", map[string]any{"task": "plan_days"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "connection reset", rec.Body.String())
}

// ---- POST /api/trips/{tripId}/guidance -------------------------------------

func TestAskGuidance_200(t *testing.T) {
	var gotTrip, gotStep string
	var gotTask ai.Task
	a := &mockAssistant{ask: func(_ context.Context, tripID, stepID string, task ai.Task) (ai.Result, error) {
		gotTrip, gotStep, gotTask = tripID, stepID, task
		return ai.Result{Text: "Day 1", Links: []string{ai.LinkBooking}}, nil
	}}

	rec := do(t, newHTTPHandler(handler.Deps{Assistant: a}), http.MethodPost, "/api/trips/trip-1/guidance", map[string]any{
		"task":   "plan_days",
		"stepId": "step-1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trip-1", gotTrip)
	assert.Equal(t, "step-1", gotStep)
	assert.Equal(t, ai.TaskPlanDays, gotTask)

	var res ai.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "Day 1", res.Text)
}

func TestAskGuidance_409_NoStep(t *testing.T) {
	a := &mockAssistant{ask: func(context.Context, string, string, ai.Task) (ai.Result, error) {
		return ai.Result{}, fmt.Errorf("service.Assistant.Ask: add a step first: %w", domain.ErrPrecondition)
	}}

	rec := do(t, newHTTPHandler(handler.Deps{Assistant: a}), http.MethodPost, "/api/trips/trip-1/guidance", map[string]any{"task": "plan_days"})

	require.Equal(t, http.StatusConflict, rec.Code)
	e := decodeError(t, rec)
	assert.Equal(t, "precondition_failed", e.Code)
	assert.Equal(t, "add a step first", e.Message)
}

func TestAskGuidance_MissingKeyIsPlainText(t *testing.T) {
	a := &mockAssistant{ask: func(context.Context, string, string, ai.Task) (ai.Result, error) {
		return ai.Result{}, fmt.Errorf("service.Assistant.Ask: %w", ai.ErrMissingAPIKey)
	}}

	rec := do(t, newHTTPHandler(handler.Deps{Assistant: a}), http.MethodPost, "/api/trips/trip-1/guidance", map[string]any{"task": "plan_days"})

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Missing OPENAI_API_KEY", rec.Body.String())
}
