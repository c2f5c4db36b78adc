// Package service contains the business logic for the travel journal.
// Services validate inputs, enforce business rules, and persist the state tree
// through a StateStore. No storage details live here.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/format"
	"github.com/pkordes/travel-journal/backend/internal/photo"
)

// StateStore loads and saves the whole journal. *repo.StateRepo satisfies it.
type StateStore interface {
	Load(ctx context.Context) (domain.AppState, error)
	Save(ctx context.Context, state domain.AppState) error
}

// Change kinds reported to a ChangeNotifier.
const (
	ChangeTripCreated     = "trip.created"
	ChangeTripUpdated     = "trip.updated"
	ChangeTripDeleted     = "trip.deleted"
	ChangeStepAdded       = "step.added"
	ChangeStepUpdated     = "step.updated"
	ChangeStepDeleted     = "step.deleted"
	ChangeSettingsUpdated = "settings.updated"
)

// Change describes a mutation that has been saved.
type Change struct {
	Kind   string `json:"kind"`
	TripID string `json:"tripId,omitempty"`
	StepID string `json:"stepId,omitempty"`
}

// ChangeNotifier is told about every successful save.
// Implementations must not block.
type ChangeNotifier interface {
	StateChanged(ctx context.Context, c Change)
}

// ShareLink is a shareable URL for a trip and the payload it carries.
type ShareLink struct {
	URL     string `json:"url"`
	Payload string `json:"payload"`
}

// Option configures a Journal.
type Option func(*Journal)

// WithNotifier registers n to receive saved changes.
func WithNotifier(n ChangeNotifier) Option {
	return func(j *Journal) { j.notifier = n }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(j *Journal) { j.now = now }
}

// WithPhotoOptions sets how step photos are normalised.
func WithPhotoOptions(o photo.Options) Option {
	return func(j *Journal) { j.photos = o }
}

// WithPublicBaseURL sets the app root that share links point at.
func WithPublicBaseURL(u string) Option {
	return func(j *Journal) { j.publicBaseURL = u }
}

// WithLogger sets the logger used for notifications and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) { j.log = l }
}

// Journal owns the application state. Reads see the last saved tree; every
// mutation is applied to a copy, saved, and only then published.
type Journal struct {
	store         StateStore
	notifier      ChangeNotifier
	now           func() time.Time
	photos        photo.Options
	publicBaseURL string
	log           *slog.Logger

	mu    sync.RWMutex
	state domain.AppState
}

// NewJournal loads the state from store and returns a ready Journal.
func NewJournal(ctx context.Context, store StateStore, opts ...Option) (*Journal, error) {
	j := &Journal{
		store:         store,
		now:           time.Now,
		publicBaseURL: "/",
		log:           slog.Default(),
	}
	for _, o := range opts {
		o(j)
	}

	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.NewJournal: %w", err)
	}
	j.state = state
	return j, nil
}

// mutate runs fn against a copy of the state, saves it, publishes it and
// then notifies. Nothing is published when fn or the save fails.
func (j *Journal) mutate(ctx context.Context, fn func(s *domain.AppState) (Change, error)) error {
	j.mu.Lock()
	next := j.state.Clone()
	change, err := fn(&next)
	if err != nil {
		j.mu.Unlock()
		return err
	}
	if err := j.store.Save(ctx, next); err != nil {
		j.mu.Unlock()
		return fmt.Errorf("save state: %w", err)
	}
	j.state = next
	j.mu.Unlock()

	if j.notifier != nil {
		j.notifier.StateChanged(ctx, change)
	}
	return nil
}

// Snapshot returns a deep copy of the current state.
func (j *Journal) Snapshot() domain.AppState {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state.Clone()
}

// CreateTrip adds a new trip at the front of the collection.
func (j *Journal) CreateTrip(ctx context.Context, f domain.TripFields) (domain.Trip, error) {
	var trip domain.Trip
	err := j.mutate(ctx, func(s *domain.AppState) (Change, error) {
		trip = s.CreateTrip(f, j.now().UTC())
		return Change{Kind: ChangeTripCreated, TripID: trip.ID}, nil
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Journal.CreateTrip: %w", err)
	}
	return trip, nil
}

// ListTrips returns one page of trips, newest first, and the total count.
func (j *Journal) ListTrips(_ context.Context, p domain.PaginationParams) ([]domain.Trip, int64, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	start, end := p.Window(len(j.state.Trips))
	out := make([]domain.Trip, 0, end-start)
	for _, t := range j.state.Trips[start:end] {
		out = append(out, t.Clone())
	}
	return out, int64(len(j.state.Trips)), nil
}

// GetTrip returns the trip with the given id.
func (j *Journal) GetTrip(_ context.Context, id string) (domain.Trip, error) {
	t, err := j.trip(id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Journal.GetTrip: %w", err)
	}
	return t, nil
}

func (j *Journal) trip(id string) (domain.Trip, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	t, ok := j.state.GetTrip(id)
	if !ok {
		return domain.Trip{}, fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
	}
	return t.Clone(), nil
}

// UpdateTrip applies patch to a trip.
func (j *Journal) UpdateTrip(ctx context.Context, id string, patch domain.TripPatch) (domain.Trip, error) {
	if patch.Visibility != nil && !patch.Visibility.Valid() {
		return domain.Trip{}, fmt.Errorf("service.Journal.UpdateTrip: visibility %q: %w", *patch.Visibility, domain.ErrValidation)
	}

	var trip domain.Trip
	err := j.mutate(ctx, func(s *domain.AppState) (Change, error) {
		var err error
		trip, err = s.UpdateTrip(id, patch, j.now().UTC())
		return Change{Kind: ChangeTripUpdated, TripID: id}, err
	})
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.Journal.UpdateTrip: %w", err)
	}
	return trip.Clone(), nil
}

// DeleteTrip removes a trip and its steps.
func (j *Journal) DeleteTrip(ctx context.Context, id string) error {
	err := j.mutate(ctx, func(s *domain.AppState) (Change, error) {
		if !s.DeleteTrip(id) {
			return Change{}, fmt.Errorf("trip %q: %w", id, domain.ErrNotFound)
		}
		return Change{Kind: ChangeTripDeleted, TripID: id}, nil
	})
	if err != nil {
		return fmt.Errorf("service.Journal.DeleteTrip: %w", err)
	}
	return nil
}

// AddStep saves a new step at the end of a trip's itinerary. The place must
// be resolved with both coordinates; only the first MaxPhotosPerStep photos
// are kept.
func (j *Journal) AddStep(ctx context.Context, tripID string, ns domain.NewStep) (domain.Step, error) {
	if err := validatePlace(ns.Place); err != nil {
		return domain.Step{}, fmt.Errorf("service.Journal.AddStep: %w", err)
	}
	photos, err := j.normalizePhotos(ns.Photos)
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.Journal.AddStep: %w", err)
	}

	step := domain.Step{
		ID:            domain.NewID(),
		Title:         domain.DefaultStepTitle(ns.Place.Label),
		Place:         ns.Place.Clone(),
		ArrivalDate:   ns.ArrivalDate,
		DepartureDate: ns.DepartureDate,
		Notes:         ns.Notes,
		Photos:        photos,
	}
	err = j.mutate(ctx, func(s *domain.AppState) (Change, error) {
		return Change{Kind: ChangeStepAdded, TripID: tripID, StepID: step.ID},
			s.AddStep(tripID, step, j.now().UTC())
	})
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.Journal.AddStep: %w", err)
	}
	return step.Clone(), nil
}

// UpdateStep merges patch onto a step. A replacement place must carry both
// coordinates, and replacement photos go through the same limits as AddStep.
func (j *Journal) UpdateStep(ctx context.Context, tripID, stepID string, patch domain.StepPatch) (domain.Step, error) {
	if patch.Place != nil {
		if err := validatePlace(patch.Place); err != nil {
			return domain.Step{}, fmt.Errorf("service.Journal.UpdateStep: %w", err)
		}
	}
	if patch.Photos != nil {
		photos, err := j.normalizePhotos(patch.Photos)
		if err != nil {
			return domain.Step{}, fmt.Errorf("service.Journal.UpdateStep: %w", err)
		}
		patch.Photos = photos
	}

	var step domain.Step
	err := j.mutate(ctx, func(s *domain.AppState) (Change, error) {
		var err error
		step, err = s.UpdateStep(tripID, stepID, patch, j.now().UTC())
		return Change{Kind: ChangeStepUpdated, TripID: tripID, StepID: stepID}, err
	})
	if err != nil {
		return domain.Step{}, fmt.Errorf("service.Journal.UpdateStep: %w", err)
	}
	return step.Clone(), nil
}

// DeleteStep removes a step. Deleting an unknown step from a known trip is a no-op.
func (j *Journal) DeleteStep(ctx context.Context, tripID, stepID string) error {
	err := j.mutate(ctx, func(s *domain.AppState) (Change, error) {
		return Change{Kind: ChangeStepDeleted, TripID: tripID, StepID: stepID},
			s.DeleteStep(tripID, stepID, j.now().UTC())
	})
	if err != nil {
		return fmt.Errorf("service.Journal.DeleteStep: %w", err)
	}
	return nil
}

// Settings returns the current preferences.
func (j *Journal) Settings(_ context.Context) domain.Settings {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.state.Settings
}

// UpdateSettings merges patch onto the preferences.
func (j *Journal) UpdateSettings(ctx context.Context, patch domain.SettingsPatch) (domain.Settings, error) {
	if patch.Units != nil && *patch.Units == "" {
		return domain.Settings{}, fmt.Errorf("service.Journal.UpdateSettings: units must not be empty: %w", domain.ErrValidation)
	}

	var out domain.Settings
	err := j.mutate(ctx, func(s *domain.AppState) (Change, error) {
		out = s.ApplySettings(patch)
		return Change{Kind: ChangeSettingsUpdated}, nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("service.Journal.UpdateSettings: %w", err)
	}
	return out, nil
}

// ShareLink encodes a trip into a URL under the public base URL.
func (j *Journal) ShareLink(_ context.Context, tripID string) (ShareLink, error) {
	trip, err := j.trip(tripID)
	if err != nil {
		return ShareLink{}, fmt.Errorf("service.Journal.ShareLink: %w", err)
	}
	payload, err := format.EncodeShare(trip)
	if err != nil {
		return ShareLink{}, fmt.Errorf("service.Journal.ShareLink: %w", err)
	}
	return ShareLink{URL: format.ShareURL(j.publicBaseURL, payload), Payload: payload}, nil
}

// Export returns one flat row per step of the trip.
// Trips with no steps contribute one row with empty step fields.
func (j *Journal) Export(_ context.Context, tripID string) ([]domain.ExportRow, error) {
	trip, err := j.trip(tripID)
	if err != nil {
		return nil, fmt.Errorf("service.Journal.Export: %w", err)
	}
	return domain.ExportRows(trip), nil
}

// ExportAll returns the rows of every trip, newest trip first.
func (j *Journal) ExportAll(_ context.Context) []domain.ExportRow {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var rows []domain.ExportRow
	for _, t := range j.state.Trips {
		rows = append(rows, domain.ExportRows(t)...)
	}
	return rows
}

func validatePlace(p *domain.Place) error {
	if p == nil {
		return fmt.Errorf("place is required: %w", domain.ErrValidation)
	}
	if !p.HasCoordinates() {
		return fmt.Errorf("place %q has no coordinates: %w", p.Label, domain.ErrValidation)
	}
	return nil
}

func (j *Journal) normalizePhotos(in []domain.Photo) ([]domain.Photo, error) {
	if len(in) > domain.MaxPhotosPerStep {
		in = in[:domain.MaxPhotosPerStep]
	}
	out := make([]domain.Photo, 0, len(in))
	for _, p := range in {
		np, err := photo.Normalize(p, j.photos)
		if err != nil {
			return nil, err
		}
		out = append(out, np)
	}
	return out, nil
}
