package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

var (
	t0 = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func floatPtr(f float64) *float64 { return &f }

func stepFixture(id, label string) domain.Step {
	return domain.Step{
		ID:    id,
		Title: domain.DefaultStepTitle(label),
		Place: domain.Place{Label: label, Lat: floatPtr(35.0), Lng: floatPtr(135.7)},
	}
}

// ---- CreateTrip ------------------------------------------------------------

func TestCreateTrip_InsertsAtFrontWithDefaults(t *testing.T) {
	s := domain.DefaultState()

	first := s.CreateTrip(domain.TripFields{Title: "Japan"}, t0)
	second := s.CreateTrip(domain.TripFields{}, t1)

	require.Len(t, s.Trips, 2)
	assert.Equal(t, second.ID, s.Trips[0].ID, "newest trip must come first")
	assert.Equal(t, first.ID, s.Trips[1].ID)

	assert.Equal(t, domain.DefaultTripTitle, second.Title)
	assert.Equal(t, domain.VisibilityPrivate, second.Visibility)
	assert.Empty(t, second.StartDate)
	assert.NotNil(t, second.Steps)
	assert.Equal(t, t1, second.CreatedAt)
	assert.Equal(t, t1, second.UpdatedAt)
}

func TestCreateTrip_IDsAreUnique(t *testing.T) {
	s := domain.DefaultState()
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		trip := s.CreateTrip(domain.TripFields{}, t0)
		require.False(t, seen[trip.ID], "duplicate id %s", trip.ID)
		seen[trip.ID] = true
		assert.Equal(t, trip.ID, s.Trips[0].ID)
	}
}

// ---- GetTrip ---------------------------------------------------------------

func TestGetTrip_NotFoundIsBoolean(t *testing.T) {
	s := domain.DefaultState()

	got, ok := s.GetTrip("missing")

	assert.False(t, ok)
	assert.Nil(t, got)
}

// ---- Steps -----------------------------------------------------------------

func TestAddStep_AppendsAndRefreshesUpdatedAt(t *testing.T) {
	s := domain.DefaultState()
	trip := s.CreateTrip(domain.TripFields{Title: "Japan"}, t0)

	require.NoError(t, s.AddStep(trip.ID, stepFixture("a", "Kyoto, Japan"), t1))
	require.NoError(t, s.AddStep(trip.ID, stepFixture("b", "Osaka, Japan"), t1))

	got, _ := s.GetTrip(trip.ID)
	require.Len(t, got.Steps, 2)
	assert.Equal(t, "a", got.Steps[0].ID)
	assert.Equal(t, "b", got.Steps[1].ID)
	assert.Equal(t, t1, got.UpdatedAt)
}

func TestAddStep_UnknownTrip(t *testing.T) {
	s := domain.DefaultState()

	err := s.AddStep("nope", stepFixture("a", "Kyoto"), t0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStep_MergesPatch(t *testing.T) {
	s := domain.DefaultState()
	trip := s.CreateTrip(domain.TripFields{}, t0)
	require.NoError(t, s.AddStep(trip.ID, stepFixture("a", "Kyoto, Japan"), t0))

	notes := "temples"
	got, err := s.UpdateStep(trip.ID, "a", domain.StepPatch{Notes: &notes}, t1)

	require.NoError(t, err)
	assert.Equal(t, "temples", got.Notes)
	assert.Equal(t, "Kyoto", got.Title, "unpatched fields are kept")
	stored, _ := s.GetTrip(trip.ID)
	assert.Equal(t, t1, stored.UpdatedAt)
}

func TestUpdateStep_NotFound(t *testing.T) {
	s := domain.DefaultState()
	trip := s.CreateTrip(domain.TripFields{}, t0)

	_, err := s.UpdateStep(trip.ID, "missing", domain.StepPatch{}, t1)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.UpdateStep("missing", "a", domain.StepPatch{}, t1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteStep_AbsentStepIsHarmless(t *testing.T) {
	s := domain.DefaultState()
	trip := s.CreateTrip(domain.TripFields{}, t0)
	require.NoError(t, s.AddStep(trip.ID, stepFixture("a", "Kyoto"), t0))

	require.NoError(t, s.DeleteStep(trip.ID, "missing", t1))
	require.NoError(t, s.DeleteStep(trip.ID, "a", t1))

	got, _ := s.GetTrip(trip.ID)
	assert.Empty(t, got.Steps)
	assert.ErrorIs(t, s.DeleteStep("missing", "a", t1), domain.ErrNotFound)
}

// ---- DeleteTrip ------------------------------------------------------------

func TestDeleteTrip_RemovesOnlyThatTrip(t *testing.T) {
	s := domain.DefaultState()
	keep := s.CreateTrip(domain.TripFields{Title: "Keep"}, t0)
	drop := s.CreateTrip(domain.TripFields{Title: "Drop"}, t0)
	require.NoError(t, s.AddStep(keep.ID, stepFixture("k1", "Lisbon"), t0))
	require.NoError(t, s.AddStep(drop.ID, stepFixture("d1", "Porto"), t0))
	require.NoError(t, s.AddStep(drop.ID, stepFixture("d2", "Braga"), t0))

	before, _ := s.GetTrip(keep.ID)
	keepSnapshot := before.Clone()

	assert.True(t, s.DeleteTrip(drop.ID))

	require.Len(t, s.Trips, 1)
	_, ok := s.GetTrip(drop.ID)
	assert.False(t, ok)
	after, _ := s.GetTrip(keep.ID)
	assert.Equal(t, keepSnapshot, *after)
}

func TestDeleteTrip_MissingIsNoOp(t *testing.T) {
	s := domain.DefaultState()
	s.CreateTrip(domain.TripFields{}, t0)

	assert.False(t, s.DeleteTrip("missing"))
	assert.Len(t, s.Trips, 1)
}

// ---- Clone -----------------------------------------------------------------

func TestClone_IsDeep(t *testing.T) {
	s := domain.DefaultState()
	trip := s.CreateTrip(domain.TripFields{}, t0)
	require.NoError(t, s.AddStep(trip.ID, stepFixture("a", "Kyoto"), t0))

	c := s.Clone()
	*c.Trips[0].Steps[0].Place.Lat = 0
	c.Trips[0].Steps[0].Title = "changed"

	orig, _ := s.GetTrip(trip.ID)
	assert.Equal(t, 35.0, *orig.Steps[0].Place.Lat)
	assert.Equal(t, "Kyoto", orig.Steps[0].Title)
}

// ---- helpers ---------------------------------------------------------------

func TestDefaultStepTitle(t *testing.T) {
	assert.Equal(t, "Kyoto", domain.DefaultStepTitle("Kyoto, Kansai, Japan"))
	assert.Equal(t, "Reykjavik", domain.DefaultStepTitle("Reykjavik"))
	assert.Equal(t, "", domain.DefaultStepTitle(""))
}

func TestPaginationParams_WindowClamp(t *testing.T) {
	limit := 2
	page := 2
	p := domain.NewPaginationParams(&page, &limit)

	start, end := p.Window(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)

	start, end = p.Window(1)
	assert.Equal(t, 1, start)
	assert.Equal(t, 1, end)
}
