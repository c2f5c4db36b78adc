package ai_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/ai"
)

func TestProxyClient_Run(t *testing.T) {
	var got ai.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/ai", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_, _ = w.Write([]byte(`{"text":"Overview","links":["https://www.booking.com"]}`))
	}))
	t.Cleanup(srv.Close)

	res, err := ai.NewProxyClient(srv.URL, nil).Run(context.Background(), kyotoRequest(ai.TaskPlaceInfo))

	require.NoError(t, err)
	assert.Equal(t, "Overview", res.Text)
	assert.Equal(t, []string{"https://www.booking.com"}, res.Links)
	assert.Equal(t, ai.TaskPlaceInfo, got.Task)
	assert.Equal(t, "Kyoto, Kyoto Prefecture, Japan", got.Step.Label)
}

func TestProxyClient_ErrorMessages(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"with body", http.StatusInternalServerError, "Missing OPENAI_API_KEY", "AI error (500): Missing OPENAI_API_KEY"},
		{"empty body", http.StatusBadGateway, "", "AI error (502): Request failed"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(srv.Close)

			_, err := ai.NewProxyClient(srv.URL, nil).Run(context.Background(), kyotoRequest(ai.TaskPlanDays))

			var reqErr *ai.RequestError
			require.True(t, errors.As(err, &reqErr))
			assert.Equal(t, tc.status, reqErr.Status)
			assert.EqualError(t, err, tc.want)
		})
	}
}
