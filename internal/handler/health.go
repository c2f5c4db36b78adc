package handler

import (
	"net/http"

	"github.com/pkordes/travel-journal/backend/internal/ai"
)

// HealthResponse is the body of GET /api/health.
type HealthResponse struct {
	OK     bool   `json:"ok"`
	HasKey bool   `json:"hasKey"`
	Model  string `json:"model"`
}

// GetHealth handles GET /healthz and GET /api/health.
// It reports whether a model key is configured and which model is used.
func (s *Server) GetHealth(w http.ResponseWriter, _ *http.Request) {
	resp := HealthResponse{OK: true, Model: ai.DefaultModel}
	if s.model != nil {
		resp.HasKey = s.model.HasKey()
		resp.Model = s.model.Model()
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetOpenAPI handles GET /openapi.yaml.
func (s *Server) GetOpenAPI(w http.ResponseWriter, r *http.Request) {
	if len(s.openAPI) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(s.openAPI)
}
