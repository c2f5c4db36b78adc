package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-journal/backend/internal/ai"
)

// PostAI handles /api/ai, the model proxy. Plain-text errors keep the
// contract of the browser client: it shows the response text verbatim.
func (s *Server) PostAI(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return
	}
	if s.guide == nil || (s.model != nil && !s.model.HasKey()) {
		writeText(w, http.StatusInternalServerError, "Missing OPENAI_API_KEY")
		return
	}

	var req ai.Request
	if !decodeBody(w, r, &req) {
		return
	}

	res, err := s.guide.Run(r.Context(), req)
	if err != nil {
		s.writeAIError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// GuidanceRequest is the body of POST /api/trips/{tripId}/guidance.
// StepID defaults to the last step of the trip.
type GuidanceRequest struct {
	Task   ai.Task `json:"task"`
	StepID string  `json:"stepId"`
}

// AskGuidance handles POST /api/trips/{tripId}/guidance: an AI action on a
// stored step, with the reference summary looked up server-side.
func (s *Server) AskGuidance(w http.ResponseWriter, r *http.Request) {
	if s.assistant == nil {
		unavailable(w, "assistant")
		return
	}
	var body GuidanceRequest
	if !decodeBody(w, r, &body) {
		return
	}

	res, err := s.assistant.Ask(r.Context(), chi.URLParam(r, "tripId"), body.StepID, body.Task)
	if err != nil {
		var up *ai.UpstreamError
		if errors.Is(err, ai.ErrMissingAPIKey) || errors.As(err, &up) {
			s.writeAIError(w, r, err)
			return
		}
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) writeAIError(w http.ResponseWriter, r *http.Request, err error) {
	var up *ai.UpstreamError
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		writeText(w, http.StatusInternalServerError, "Missing OPENAI_API_KEY")
	case errors.As(err, &up):
		s.log.WarnContext(r.Context(), "model endpoint error", "status", up.StatusCode)
		writeText(w, up.StatusCode, up.Body)
	default:
		s.log.ErrorContext(r.Context(), "ai request failed", "error", err)
		writeText(w, http.StatusInternalServerError, err.Error())
	}
}
