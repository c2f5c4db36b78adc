package domain

import (
	"fmt"
	"time"
)

// DefaultUnits is the measurement-unit preference of a fresh state.
const DefaultUnits = "metric"

// Settings holds user preferences.
type Settings struct {
	Units string `json:"units"`
}

// SettingsPatch holds optional edits to Settings.
type SettingsPatch struct {
	Units *string
}

// AppState is the root of the journal: every trip plus settings.
// It is persisted and restored as a single value.
type AppState struct {
	Trips    []Trip   `json:"trips"`
	Settings Settings `json:"settings"`
}

// DefaultState returns an empty journal with default settings.
func DefaultState() AppState {
	return AppState{
		Trips:    []Trip{},
		Settings: Settings{Units: DefaultUnits},
	}
}

// CreateTrip allocates a new private trip and inserts it at the front of the
// collection, so the most recently created trip comes first.
func (s *AppState) CreateTrip(f TripFields, now time.Time) Trip {
	title := f.Title
	if title == "" {
		title = DefaultTripTitle
	}

	id := NewID()
	for s.hasTrip(id) {
		id = NewID()
	}

	trip := Trip{
		ID:         id,
		Title:      title,
		StartDate:  f.StartDate,
		EndDate:    f.EndDate,
		Visibility: VisibilityPrivate,
		Steps:      []Step{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.Trips = append([]Trip{trip}, s.Trips...)
	return trip
}

// GetTrip returns the trip with the given id. The boolean is false when no
// such trip exists.
func (s *AppState) GetTrip(id string) (*Trip, bool) {
	for i := range s.Trips {
		if s.Trips[i].ID == id {
			return &s.Trips[i], true
		}
	}
	return nil, false
}

// UpdateTrip applies patch to the trip with the given id.
func (s *AppState) UpdateTrip(id string, patch TripPatch, now time.Time) (Trip, error) {
	trip, ok := s.GetTrip(id)
	if !ok {
		return Trip{}, fmt.Errorf("trip %q: %w", id, ErrNotFound)
	}
	if patch.Title != nil {
		trip.Title = *patch.Title
	}
	if patch.StartDate != nil {
		trip.StartDate = *patch.StartDate
	}
	if patch.EndDate != nil {
		trip.EndDate = *patch.EndDate
	}
	if patch.Visibility != nil {
		trip.Visibility = *patch.Visibility
	}
	trip.UpdatedAt = now
	return *trip, nil
}

// AddStep appends step to the trip's itinerary.
// Callers are expected to have checked that the trip exists; an unknown id
// yields ErrNotFound.
func (s *AppState) AddStep(tripID string, step Step, now time.Time) error {
	trip, ok := s.GetTrip(tripID)
	if !ok {
		return fmt.Errorf("trip %q: %w", tripID, ErrNotFound)
	}
	trip.Steps = append(trip.Steps, step)
	trip.UpdatedAt = now
	return nil
}

// UpdateStep merges the non-nil fields of patch onto the matching step.
func (s *AppState) UpdateStep(tripID, stepID string, patch StepPatch, now time.Time) (Step, error) {
	trip, ok := s.GetTrip(tripID)
	if !ok {
		return Step{}, fmt.Errorf("trip %q: %w", tripID, ErrNotFound)
	}
	step := trip.FindStep(stepID)
	if step == nil {
		return Step{}, fmt.Errorf("step %q: %w", stepID, ErrNotFound)
	}
	if patch.Title != nil {
		step.Title = *patch.Title
	}
	if patch.Place != nil {
		step.Place = *patch.Place
	}
	if patch.ArrivalDate != nil {
		step.ArrivalDate = *patch.ArrivalDate
	}
	if patch.DepartureDate != nil {
		step.DepartureDate = *patch.DepartureDate
	}
	if patch.Notes != nil {
		step.Notes = *patch.Notes
	}
	if patch.Photos != nil {
		step.Photos = patch.Photos
	}
	trip.UpdatedAt = now
	return *step, nil
}

// DeleteStep removes a step from a trip. Removing a step that is not there is
// harmless; only an unknown trip is an error.
func (s *AppState) DeleteStep(tripID, stepID string, now time.Time) error {
	trip, ok := s.GetTrip(tripID)
	if !ok {
		return fmt.Errorf("trip %q: %w", tripID, ErrNotFound)
	}
	kept := trip.Steps[:0]
	for _, st := range trip.Steps {
		if st.ID != stepID {
			kept = append(kept, st)
		}
	}
	trip.Steps = kept
	trip.UpdatedAt = now
	return nil
}

// DeleteTrip removes the trip and, with it, all of its steps.
// It reports whether anything was removed.
func (s *AppState) DeleteTrip(id string) bool {
	for i := range s.Trips {
		if s.Trips[i].ID == id {
			s.Trips = append(s.Trips[:i], s.Trips[i+1:]...)
			return true
		}
	}
	return false
}

// ApplySettings merges patch onto the settings record.
func (s *AppState) ApplySettings(patch SettingsPatch) Settings {
	if patch.Units != nil {
		s.Settings.Units = *patch.Units
	}
	return s.Settings
}

// Clone returns a deep copy of the state so it can be mutated without
// affecting readers of the original.
func (s AppState) Clone() AppState {
	out := AppState{
		Trips:    make([]Trip, len(s.Trips)),
		Settings: s.Settings,
	}
	for i, t := range s.Trips {
		out.Trips[i] = t.Clone()
	}
	return out
}

// Clone returns a deep copy of the trip and its steps.
func (t Trip) Clone() Trip {
	steps := make([]Step, len(t.Steps))
	for i, st := range t.Steps {
		steps[i] = st.Clone()
	}
	t.Steps = steps
	return t
}

// Clone returns a deep copy of the step.
func (s Step) Clone() Step {
	s.Place = s.Place.Clone()
	if s.Photos != nil {
		s.Photos = append([]Photo(nil), s.Photos...)
	}
	return s
}

// Clone returns a copy of the place that shares no pointers with p.
func (p Place) Clone() Place {
	if p.Lat != nil {
		lat := *p.Lat
		p.Lat = &lat
	}
	if p.Lng != nil {
		lng := *p.Lng
		p.Lng = &lng
	}
	return p
}

func (s *AppState) hasTrip(id string) bool {
	_, ok := s.GetTrip(id)
	return ok
}
