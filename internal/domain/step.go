package domain

import "strings"

// MaxPhotosPerStep bounds how many photos a single save action keeps.
const MaxPhotosPerStep = 6

// CurrentLocationLabel labels places produced from a device position reading.
const CurrentLocationLabel = "Current location"

// Step is a single stop within a trip.
type Step struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Place         Place   `json:"place"`
	ArrivalDate   string  `json:"arrivalDate"`
	DepartureDate string  `json:"departureDate"`
	Notes         string  `json:"notes"`
	Photos        []Photo `json:"photos"`
}

// Place is a labelled geographic point. Lat and Lng are nil when unknown;
// a step can only be saved once both are present.
type Place struct {
	Label string   `json:"label"`
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (p Place) HasCoordinates() bool {
	return p.Lat != nil && p.Lng != nil
}

// CurrentLocation builds a Place from a device position reading.
func CurrentLocation(lat, lng float64) Place {
	return Place{Label: CurrentLocationLabel, Lat: &lat, Lng: &lng}
}

// Photo is an image attached to a step, stored inline as a data URL
// ("data:<media type>;base64,<payload>").
type Photo struct {
	Name    string `json:"name"`
	DataURL string `json:"dataUrl"`
}

// NewStep carries the values collected when a step is saved.
// Place is nil until the user has picked a search result or a location.
type NewStep struct {
	Place         *Place
	ArrivalDate   string
	DepartureDate string
	Notes         string
	Photos        []Photo
}

// StepPatch holds optional edits to a step. Nil fields are left untouched.
type StepPatch struct {
	Title         *string
	Place         *Place
	ArrivalDate   *string
	DepartureDate *string
	Notes         *string
	Photos        []Photo
}

// DefaultStepTitle derives a step title from a place label: the text before
// the first comma ("Kyoto, Kansai, Japan" → "Kyoto").
func DefaultStepTitle(label string) string {
	head, _, _ := strings.Cut(label, ",")
	return head
}

// DisplayTitle returns the title shown for a step, falling back to the place
// label and then to "Step".
func (s Step) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	if s.Place.Label != "" {
		return s.Place.Label
	}
	return "Step"
}

// ReferenceSummary is an encyclopedia snippet used to ground AI output.
// It is attached to AI requests only and never stored on a step.
type ReferenceSummary struct {
	Title   string  `json:"title"`
	Extract string  `json:"extract"`
	URL     *string `json:"url"`
}
