package repo_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

// mockSlots is a hand-written mock of repo.SlotRepo.
type mockSlots struct {
	getFn func(ctx context.Context, key string) ([]byte, bool, error)
	putFn func(ctx context.Context, key string, value []byte) error
}

func (m *mockSlots) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return m.getFn(ctx, key)
}

func (m *mockSlots) Put(ctx context.Context, key string, value []byte) error {
	return m.putFn(ctx, key, value)
}

var _ repo.SlotRepo = (*mockSlots)(nil)

func TestStateRepo_Load_AbsentIsDefault(t *testing.T) {
	r := repo.NewStateRepo(repo.NewMemorySlots(), "", nil, nil)

	got, err := r.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultState(), got)
}

func TestStateRepo_Load_CorruptIsDefault(t *testing.T) {
	slots := repo.NewMemorySlots()
	require.NoError(t, slots.Put(context.Background(), repo.DefaultStateKey, []byte("{not json")))
	r := repo.NewStateRepo(slots, "", nil, nil)

	got, err := r.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultState(), got)
}

func TestStateRepo_Load_BackfillsMissingFields(t *testing.T) {
	slots := repo.NewMemorySlots()
	doc := `{"trips":[{"id":"t1","title":"Old","steps":null}]}`
	require.NoError(t, slots.Put(context.Background(), repo.DefaultStateKey, []byte(doc)))
	r := repo.NewStateRepo(slots, "", nil, nil)

	got, err := r.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, got.Trips, 1)
	assert.Equal(t, "Old", got.Trips[0].Title)
	assert.NotNil(t, got.Trips[0].Steps)
	assert.Equal(t, domain.VisibilityPrivate, got.Trips[0].Visibility)
	assert.Equal(t, domain.DefaultUnits, got.Settings.Units)
}

func TestStateRepo_Load_NullTrips(t *testing.T) {
	slots := repo.NewMemorySlots()
	require.NoError(t, slots.Put(context.Background(), repo.DefaultStateKey, []byte(`{"trips":null,"settings":{"units":"imperial"}}`)))
	r := repo.NewStateRepo(slots, "", nil, nil)

	got, err := r.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.Trip{}, got.Trips)
	assert.Equal(t, "imperial", got.Settings.Units)
}

func TestStateRepo_Load_SlotFailureIsReturned(t *testing.T) {
	boom := errors.New("connection refused")
	r := repo.NewStateRepo(&mockSlots{
		getFn: func(context.Context, string) ([]byte, bool, error) { return nil, false, boom },
	}, "", nil, nil)

	_, err := r.Load(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestStateRepo_SaveThenLoad(t *testing.T) {
	ctx := context.Background()
	r := repo.NewStateRepo(repo.NewMemorySlots(), "custom.key", nil, nil)

	state := domain.DefaultState()
	trip := state.CreateTrip(domain.TripFields{Title: "Iceland"}, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	lat, lng := 64.1466, -21.9426
	require.NoError(t, state.AddStep(trip.ID, domain.Step{
		ID:    "s1",
		Title: "Reykjavik",
		Place: domain.Place{Label: "Reykjavik, Iceland", Lat: &lat, Lng: &lng},
	}, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)))

	require.NoError(t, r.Save(ctx, state))
	got, err := r.Load(ctx)

	require.NoError(t, err)
	assert.Equal(t, state, got)
}

func TestStateRepo_Save_PropagatesFailure(t *testing.T) {
	boom := errors.New("quota exceeded")
	var wroteKey string
	r := repo.NewStateRepo(&mockSlots{
		putFn: func(_ context.Context, key string, _ []byte) error {
			wroteKey = key
			return boom
		},
	}, "", nil, nil)

	err := r.Save(context.Background(), domain.DefaultState())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, repo.DefaultStateKey, wroteKey)
}
