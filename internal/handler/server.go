// Package handler implements the HTTP handlers for the travel journal API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can access its dependencies. Routes wires them into a chi router.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/flights"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

// JournalServicer defines the journal operations the handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without a state store.
type JournalServicer interface {
	CreateTrip(ctx context.Context, f domain.TripFields) (domain.Trip, error)
	ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	UpdateTrip(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	AddStep(ctx context.Context, tripID string, ns domain.NewStep) (domain.Step, error)
	UpdateStep(ctx context.Context, tripID, stepID string, patch domain.StepPatch) (domain.Step, error)
	DeleteStep(ctx context.Context, tripID, stepID string) error
	Settings(ctx context.Context) domain.Settings
	UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error)
	ShareLink(ctx context.Context, tripID string) (service.ShareLink, error)
	Export(ctx context.Context, tripID string) ([]domain.ExportRow, error)
	ExportAll(ctx context.Context) []domain.ExportRow
}

// Assistant runs AI actions against stored steps.
type Assistant interface {
	Ask(ctx context.Context, tripID, stepID string, task ai.Task) (ai.Result, error)
}

// Guide answers a self-contained AI request (POST /api/ai).
type Guide interface {
	Run(ctx context.Context, req ai.Request) (ai.Result, error)
}

// ModelStatus reports the model configuration shown by the health endpoint.
type ModelStatus interface {
	HasKey() bool
	Model() string
}

// FlightSearcher looks up flight offers.
type FlightSearcher interface {
	Search(ctx context.Context, p flights.SearchParams) ([]flights.Offer, error)
}

// PlaceLookup resolves free-text places and reference summaries.
type PlaceLookup interface {
	Search(ctx context.Context, query string) []domain.Place
	WikiSummary(ctx context.Context, title string) *domain.ReferenceSummary
}

// Deps are the collaborators of a Server. Nil members disable the routes
// that need them (they answer 503).
type Deps struct {
	Journal   JournalServicer
	Assistant Assistant
	Guide     Guide
	Model     ModelStatus
	Flights   FlightSearcher
	Places    PlaceLookup
	// Events serves GET /api/events.
	Events http.Handler
	// OpenAPI is served verbatim at GET /openapi.yaml.
	OpenAPI []byte
	Logger  *slog.Logger
}

// Server implements every API endpoint.
type Server struct {
	journal   JournalServicer
	assistant Assistant
	guide     Guide
	model     ModelStatus
	flights   FlightSearcher
	places    PlaceLookup
	events    http.Handler
	openAPI   []byte
	log       *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		journal:   d.Journal,
		assistant: d.Assistant,
		guide:     d.Guide,
		model:     d.Model,
		flights:   d.Flights,
		places:    d.Places,
		events:    d.Events,
		openAPI:   d.OpenAPI,
		log:       log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Routes returns the API router. Cross-cutting middleware is applied by the caller.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.GetHealth)
		r.HandleFunc("/ai", s.PostAI)
		r.Get("/flights/search", s.SearchFlights)
		r.Get("/places", s.SearchPlaces)
		r.Get("/wiki", s.GetWikiSummary)
		r.Get("/settings", s.GetSettings)
		r.Put("/settings", s.UpdateSettings)
		r.Post("/share/decode", s.DecodeShare)
		r.Get("/export", s.ExportAll)
		if s.events != nil {
			r.Method(http.MethodGet, "/events", s.events)
		}

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", s.GetTrip)
				r.Put("/", s.UpdateTrip)
				r.Delete("/", s.DeleteTrip)
				r.Post("/steps", s.AddStep)
				r.Patch("/steps/{stepId}", s.UpdateStep)
				r.Delete("/steps/{stepId}", s.DeleteStep)
				r.Post("/guidance", s.AskGuidance)
				r.Get("/map", s.GetTripMap)
				r.Get("/share", s.GetShareLink)
				r.Get("/export", s.ExportTrip)
			})
		})
	})
	return r
}
