package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pkordes/travel-journal/backend/internal/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestCORSHandler(t *testing.T) {
	const dev = "http://localhost:5173"
	h := middleware.NewCORSHandler([]string{dev, "https://journal.example.com"})(okHandler)

	tests := []struct {
		name        string
		method      string
		origin      string
		preflight   string
		wantOrigin  string
		wantMethods bool
	}{
		{name: "simple GET from dev server", method: http.MethodGet, origin: dev, wantOrigin: dev},
		{name: "second configured origin", method: http.MethodGet, origin: "https://journal.example.com", wantOrigin: "https://journal.example.com"},
		{name: "unknown origin gets no header", method: http.MethodGet, origin: "http://evil.example.com"},
		{name: "PATCH preflight for step edits", method: http.MethodOptions, origin: dev, preflight: http.MethodPatch, wantOrigin: dev, wantMethods: true},
		{name: "DELETE preflight", method: http.MethodOptions, origin: dev, preflight: http.MethodDelete, wantOrigin: dev, wantMethods: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/trips/trip-1/steps/step-1", nil)
			req.Header.Set("Origin", tt.origin)
			if tt.preflight != "" {
				req.Header.Set("Access-Control-Request-Method", tt.preflight)
				// Browsers send request header names lowercased.
				req.Header.Set("Access-Control-Request-Headers", "content-type")
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Less(t, rec.Code, 300)
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantMethods {
				assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Methods"))
			}
		})
	}
}

func TestCORSHandler_ExposesRequestID(t *testing.T) {
	h := middleware.NewCORSHandler([]string{"http://localhost:5173"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "X-Request-Id", rec.Header().Get("Access-Control-Expose-Headers"))
}
