package ai

import (
	"strconv"
	"strings"
)

// SystemInstruction frames every request: the assistant advises, it never
// books, and it says so when the sources are silent.
var SystemInstruction = strings.Join([]string{
	"You are a travel assistant for a travel-journal web app.",
	"You must not claim you can purchase or book anything. Provide options, decision criteria, and booking links only.",
	"Be concise, structured, and practical.",
	"If specific facts are not in the provided sources, say so and give best-effort guidance without inventing details.",
}, " ")

// Booking sites suggested with every answer. They are site roots, never
// deep links carrying user input.
const (
	LinkGoogleFlights = "https://www.google.com/travel/flights"
	LinkBooking       = "https://www.booking.com"
	LinkAirbnb        = "https://www.airbnb.com"
)

// Prompt is the user message plus the links returned alongside the answer.
type Prompt struct {
	Text  string
	Links []string
}

func baseLinks() []string {
	return []string{LinkGoogleFlights, LinkBooking, LinkAirbnb}
}

// BuildPrompt assembles the user prompt for req.Task. Unknown tasks get a
// general-assistance prompt.
func BuildPrompt(req Request) Prompt {
	head := []string{tripLine(req.Trip), stepLine(req.Step), ""}

	switch req.Task {
	case TaskPlaceInfo:
		links := baseLinks()
		if w := req.Sources.Wikipedia; w != nil && w.URL != nil && *w.URL != "" {
			links = append([]string{*w.URL}, links...)
		}
		return Prompt{Text: join(head,
			"Task: Provide a short, readable overview of this place for a travel journal entry.",
			"Use the provided Wikipedia summary if present. Do not invent facts beyond the summary.",
			"",
			"Output format:",
			"1) 120–180 word overview",
			"2) 5 bullet highlights (generic if needed)",
			"3) 3 practical tips (transport, safety, cost)",
			"",
			"Sources:",
			referenceBlock(req.Sources),
		), Links: links}

	case TaskPlanDays:
		return Prompt{Text: join(head,
			"Task: Plan the next 2–3 days starting from this step.",
			"Ask no questions. Assume: moderate budget, mixed interests (sightseeing + food + one nature option).",
			"Include a rainy-day backup each day.",
			"",
			"Output format:",
			"Day 1: Morning / Afternoon / Evening + transit notes + backup",
			"Day 2: ...",
			"Day 3: ... (optional)",
			"",
			"Constraints:",
			"- Do not fabricate opening hours or exact ticket prices.",
			"- Keep it implementable.",
		), Links: baseLinks()}

	case TaskFlightOptions:
		return Prompt{Text: join(head,
			"Task: Provide flight option patterns for traveling to the next destination.",
			"Because I have not provided an origin/destination, do this:",
			"- Provide a checklist of the minimum inputs needed (origin airport/city, destination, dates, baggage, preferred times).",
			"- Provide 4 example option patterns (e.g., cheapest, fastest, best schedule, fewer stops) and how to decide.",
			"- Provide a short step-by-step process for searching and booking (but do not book).",
			"",
			"Keep it short and actionable.",
		), Links: baseLinks()}

	case TaskAccomOptions:
		return Prompt{Text: join(head,
			"Task: Provide accommodation options and an approach to choosing where to stay near this step.",
			"Include:",
			"- 3–5 recommended areas/neighbourhood types (e.g., central, near transit, quiet residential) and tradeoffs",
			"- 3 accommodation types (hotel, serviced apartment, hostel/private room) and who they suit",
			"- a safety and cancellation checklist",
			"",
			"Do not invent hotel names.",
		), Links: baseLinks()}

	default:
		return Prompt{Text: join(head,
			"Task: General travel assistance. Provide a concise response.",
		), Links: baseLinks()}
	}
}

func join(head []string, lines ...string) string {
	return strings.Join(append(append([]string{}, head...), lines...), "\n")
}

func tripLine(t *TripSummary) string {
	var s TripSummary
	if t != nil {
		s = *t
	}
	return "Trip: " + or(s.Title, "Untitled") + " (" + or(s.StartDate, "?") + " to " + or(s.EndDate, "?") + ")"
}

func stepLine(st *StepSummary) string {
	var s StepSummary
	if st != nil {
		s = *st
	}
	place := or(s.Label, or(s.Title, "the selected place"))
	return "Step: " + place + " (" + coord(s.Lat) + ", " + coord(s.Lng) + ") Dates: " +
		or(s.ArrivalDate, "?") + " to " + or(s.DepartureDate, "?")
}

func referenceBlock(src Sources) string {
	w := src.Wikipedia
	if w == nil {
		return "No Wikipedia summary was available."
	}
	url := "(none)"
	if w.URL != nil && *w.URL != "" {
		url = *w.URL
	}
	return "Wikipedia summary for \"" + w.Title + "\":\n" + w.Extract + "\nSource URL: " + url
}

func coord(f *float64) string {
	if f == nil {
		return "?"
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
