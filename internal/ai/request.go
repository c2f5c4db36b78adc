// Package ai turns a trip step and an optional reference summary into a
// grounded prompt, sends it to an OpenAI Responses-compatible endpoint and
// extracts the generated text.
package ai

import "github.com/pkordes/travel-journal/backend/internal/domain"

// Task names the kind of guidance requested.
type Task string

const (
	TaskPlaceInfo     Task = "place_info"
	TaskPlanDays      Task = "plan_days"
	TaskFlightOptions Task = "flight_options"
	TaskAccomOptions  Task = "accom_options"
)

// Tasks lists the recognised tasks in display order.
var Tasks = []Task{TaskPlaceInfo, TaskPlanDays, TaskFlightOptions, TaskAccomOptions}

// Known reports whether t is one of the recognised tasks. Unknown tasks are
// still accepted and answered with general assistance.
func (t Task) Known() bool {
	switch t {
	case TaskPlaceInfo, TaskPlanDays, TaskFlightOptions, TaskAccomOptions:
		return true
	}
	return false
}

// Request is the body of POST /api/ai.
type Request struct {
	Task    Task         `json:"task"`
	Trip    *TripSummary `json:"trip,omitempty"`
	Step    *StepSummary `json:"step,omitempty"`
	Sources Sources      `json:"sources"`
}

// TripSummary is the slice of a trip the prompt needs.
type TripSummary struct {
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// StepSummary is the slice of a step the prompt needs.
type StepSummary struct {
	Title         string   `json:"title"`
	Label         string   `json:"label"`
	Lat           *float64 `json:"lat"`
	Lng           *float64 `json:"lng"`
	ArrivalDate   string   `json:"arrivalDate"`
	DepartureDate string   `json:"departureDate"`
	Notes         string   `json:"notes"`
}

// Sources carries grounding material. Wikipedia is nil when no summary was found.
type Sources struct {
	Wikipedia *domain.ReferenceSummary `json:"wikipedia,omitempty"`
}

// NewRequest builds a Request for step within trip.
func NewRequest(task Task, trip domain.Trip, step domain.Step, wiki *domain.ReferenceSummary) Request {
	return Request{
		Task: task,
		Trip: &TripSummary{
			Title:     trip.Title,
			StartDate: trip.StartDate,
			EndDate:   trip.EndDate,
		},
		Step: &StepSummary{
			Title:         step.Title,
			Label:         step.Place.Label,
			Lat:           step.Place.Lat,
			Lng:           step.Place.Lng,
			ArrivalDate:   step.ArrivalDate,
			DepartureDate: step.DepartureDate,
			Notes:         step.Notes,
		},
		Sources: Sources{Wikipedia: wiki},
	}
}

// Result is the body of a successful POST /api/ai response.
type Result struct {
	Text  string   `json:"text"`
	Links []string `json:"links"`
}

// Display renders the result as plain text: the answer, then the links as a
// bulleted list when there are any.
func (r Result) Display() string {
	if len(r.Links) == 0 {
		return r.Text
	}
	out := r.Text + "\n\nLinks:"
	for _, l := range r.Links {
		out += "\n- " + l
	}
	return out
}
