package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/domain"
)

func (s *Server) registerTripTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_trips",
		mcp.WithDescription("Lists trips, newest first."),
		mcp.WithNumber("page", mcp.Description("Optional page number, starting at 1.")),
		mcp.WithNumber("limit", mcp.Description("Optional page size, at most 100.")),
	), s.listTrips)

	s.mcpServer.AddTool(mcp.NewTool("get_trip",
		mcp.WithDescription("Returns one trip with all of its steps."),
		mcp.WithString("trip_id", mcp.Required(), mcp.Description("Trip identifier.")),
	), s.getTrip)

	s.mcpServer.AddTool(mcp.NewTool("create_trip",
		mcp.WithDescription("Creates a new private trip."),
		mcp.WithString("title", mcp.Description("Optional title. Defaults to 'New Trip'.")),
		mcp.WithString("start_date", mcp.Description("Optional start date.")),
		mcp.WithString("end_date", mcp.Description("Optional end date.")),
	), s.createTrip)

	s.mcpServer.AddTool(mcp.NewTool("delete_trip",
		mcp.WithDescription("Deletes a trip and all of its steps."),
		mcp.WithString("trip_id", mcp.Required(), mcp.Description("Trip identifier.")),
	), s.deleteTrip)

	s.mcpServer.AddTool(mcp.NewTool("share_trip",
		mcp.WithDescription("Returns a share link that embeds the whole trip."),
		mcp.WithString("trip_id", mcp.Required(), mcp.Description("Trip identifier.")),
	), s.shareTrip)
}

func (s *Server) registerStepTools() {
	s.mcpServer.AddTool(mcp.NewTool("add_step",
		mcp.WithDescription("Appends a step to a trip. The place needs a label and both coordinates."),
		mcp.WithString("trip_id", mcp.Required(), mcp.Description("Trip identifier.")),
		mcp.WithString("label", mcp.Required(), mcp.Description("Place label, e.g. 'Kyoto, Kansai, Japan'.")),
		mcp.WithNumber("lat", mcp.Required(), mcp.Description("Latitude in degrees.")),
		mcp.WithNumber("lng", mcp.Required(), mcp.Description("Longitude in degrees.")),
		mcp.WithString("arrival_date", mcp.Description("Optional arrival date.")),
		mcp.WithString("departure_date", mcp.Description("Optional departure date.")),
		mcp.WithString("notes", mcp.Description("Optional notes.")),
	), s.addStep)

	s.mcpServer.AddTool(mcp.NewTool("delete_step",
		mcp.WithDescription("Removes a step from a trip."),
		mcp.WithString("trip_id", mcp.Required(), mcp.Description("Trip identifier.")),
		mcp.WithString("step_id", mcp.Required(), mcp.Description("Step identifier.")),
	), s.deleteStep)
}

func (s *Server) registerGuidanceTool() {
	tasks := make([]string, len(ai.Tasks))
	for i, t := range ai.Tasks {
		tasks[i] = string(t)
	}
	s.mcpServer.AddTool(mcp.NewTool("ai_guidance",
		mcp.WithDescription("Runs an AI travel task for a step: place info, a day plan, flight or accommodation options."),
		mcp.WithString("trip_id", mcp.Required(), mcp.Description("Trip identifier.")),
		mcp.WithString("task", mcp.Required(), mcp.Enum(tasks...), mcp.Description("Task to run.")),
		mcp.WithString("step_id", mcp.Description("Optional step identifier. Defaults to the last step.")),
	), s.aiGuidance)
}

func (s *Server) registerPlaceTool() {
	s.mcpServer.AddTool(mcp.NewTool("search_places",
		mcp.WithDescription("Geocodes a free-text place query. Returns up to six matches with coordinates."),
		mcp.WithString("query", mcp.Required(), mcp.Description("At least three characters.")),
	), s.searchPlaces)
}

func (s *Server) listTrips(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	page := intArg(req, "page")
	limit := intArg(req, "limit")
	trips, total, err := s.journal.ListTrips(ctx, domain.NewPaginationParams(page, limit))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to list trips: %v", err)), nil
	}
	return jsonResult(map[string]any{"trips": trips, "total": total})
}

func (s *Server) getTrip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := stringArg(req, "trip_id")
	if !ok {
		return mcp.NewToolResultError("'trip_id' parameter is required and must be a non-empty string."), nil
	}
	trip, err := s.journal.GetTrip(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to get trip '%s': %v", id, err)), nil
	}
	return jsonResult(trip)
}

func (s *Server) createTrip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, _ := stringArg(req, "title")
	start, _ := stringArg(req, "start_date")
	end, _ := stringArg(req, "end_date")
	trip, err := s.journal.CreateTrip(ctx, domain.TripFields{Title: title, StartDate: start, EndDate: end})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create trip: %v", err)), nil
	}
	return jsonResult(trip)
}

func (s *Server) deleteTrip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := stringArg(req, "trip_id")
	if !ok {
		return mcp.NewToolResultError("'trip_id' parameter is required and must be a non-empty string."), nil
	}
	if err := s.journal.DeleteTrip(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete trip '%s': %v", id, err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Trip '%s' deleted.", id)), nil
}

func (s *Server) shareTrip(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := stringArg(req, "trip_id")
	if !ok {
		return mcp.NewToolResultError("'trip_id' parameter is required and must be a non-empty string."), nil
	}
	link, err := s.journal.ShareLink(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to share trip '%s': %v", id, err)), nil
	}
	return mcp.NewToolResultText(link.URL), nil
}

func (s *Server) addStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tripID, ok := stringArg(req, "trip_id")
	if !ok {
		return mcp.NewToolResultError("'trip_id' parameter is required and must be a non-empty string."), nil
	}
	label, _ := stringArg(req, "label")
	lat, latOk := req.Params.Arguments["lat"].(float64)
	lng, lngOk := req.Params.Arguments["lng"].(float64)
	if !latOk || !lngOk {
		return mcp.NewToolResultError("'lat' and 'lng' parameters are required and must be numbers."), nil
	}
	arrival, _ := stringArg(req, "arrival_date")
	departure, _ := stringArg(req, "departure_date")
	notes, _ := stringArg(req, "notes")

	step, err := s.journal.AddStep(ctx, tripID, domain.NewStep{
		Place:         &domain.Place{Label: label, Lat: &lat, Lng: &lng},
		ArrivalDate:   arrival,
		DepartureDate: departure,
		Notes:         notes,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to add step: %v", err)), nil
	}
	return jsonResult(step)
}

func (s *Server) deleteStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tripID, tripOk := stringArg(req, "trip_id")
	stepID, stepOk := stringArg(req, "step_id")
	if !tripOk || !stepOk {
		return mcp.NewToolResultError("'trip_id' and 'step_id' parameters are required."), nil
	}
	if err := s.journal.DeleteStep(ctx, tripID, stepID); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to delete step: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Step '%s' deleted.", stepID)), nil
}

func (s *Server) aiGuidance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tripID, ok := stringArg(req, "trip_id")
	if !ok {
		return mcp.NewToolResultError("'trip_id' parameter is required and must be a non-empty string."), nil
	}
	task, _ := stringArg(req, "task")
	stepID, _ := stringArg(req, "step_id")

	res, err := s.assistant.Ask(ctx, tripID, stepID, ai.Task(task))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Guidance failed: %v", err)), nil
	}
	return mcp.NewToolResultText(res.Display()), nil
}

func (s *Server) searchPlaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q, ok := stringArg(req, "query")
	if !ok {
		return mcp.NewToolResultError("'query' parameter is required and must be a non-empty string."), nil
	}
	places := s.places.Search(ctx, q)
	if places == nil {
		places = []domain.Place{}
	}
	return jsonResult(places)
}

func stringArg(req mcp.CallToolRequest, name string) (string, bool) {
	v, ok := req.Params.Arguments[name].(string)
	return v, ok && v != ""
}

func intArg(req mcp.CallToolRequest, name string) *int {
	v, ok := req.Params.Arguments[name].(float64)
	if !ok {
		return nil
	}
	n := int(v)
	return &n
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result to JSON: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}
