// Package mcpserver exposes the journal as Model Context Protocol tools so
// assistants can read and edit trips over stdio.
package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

// Journal is the subset of the journal service the tools use.
type Journal interface {
	ListTrips(ctx context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error)
	GetTrip(ctx context.Context, id string) (domain.Trip, error)
	CreateTrip(ctx context.Context, f domain.TripFields) (domain.Trip, error)
	DeleteTrip(ctx context.Context, id string) error
	AddStep(ctx context.Context, tripID string, ns domain.NewStep) (domain.Step, error)
	DeleteStep(ctx context.Context, tripID, stepID string) error
	ShareLink(ctx context.Context, tripID string) (service.ShareLink, error)
}

// Assistant runs AI actions on stored steps.
type Assistant interface {
	Ask(ctx context.Context, tripID, stepID string, task ai.Task) (ai.Result, error)
}

// PlaceSearcher geocodes free-text queries.
type PlaceSearcher interface {
	Search(ctx context.Context, query string) []domain.Place
}

// Server is an MCP server with the journal tools registered.
type Server struct {
	mcpServer *server.MCPServer
	journal   Journal
	assistant Assistant
	places    PlaceSearcher
}

// New builds the server and registers every tool. assistant and places may
// be nil; their tools are then left out.
func New(version string, j Journal, assistant Assistant, places PlaceSearcher) *Server {
	s := &Server{
		mcpServer: server.NewMCPServer(
			"Travel Journal MCP Server",
			version,
			server.WithLogging(),
			server.WithRecovery(),
		),
		journal:   j,
		assistant: assistant,
		places:    places,
	}
	s.registerTripTools()
	s.registerStepTools()
	if assistant != nil {
		s.registerGuidanceTool()
	}
	if places != nil {
		s.registerPlaceTool()
	}
	return s
}

// ServeStdio runs the stdio event loop until stdin closes.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// MCPRawServer exposes the raw mcp-go server.
func (s *Server) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}
