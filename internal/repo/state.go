package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/telemetry"
)

// DefaultStateKey is the slot the journal is stored under.
const DefaultStateKey = "tj.v1"

// StateRepo persists the whole AppState as one JSON document in a slot.
type StateRepo struct {
	slot    SlotRepo
	key     string
	log     *slog.Logger
	metrics *telemetry.Metrics
}

// NewStateRepo wraps slot. An empty key means DefaultStateKey; metrics may be nil.
func NewStateRepo(slot SlotRepo, key string, log *slog.Logger, metrics *telemetry.Metrics) *StateRepo {
	if key == "" {
		key = DefaultStateKey
	}
	if log == nil {
		log = slog.Default()
	}
	return &StateRepo{slot: slot, key: key, log: log, metrics: metrics}
}

// Load restores the journal. A missing or unparseable value yields the default
// state; the stored document is decoded onto a default instance so fields
// added since it was written are backfilled. Errors are returned only when the
// slot itself cannot be read.
func (r *StateRepo) Load(ctx context.Context) (domain.AppState, error) {
	raw, ok, err := r.slot.Get(ctx, r.key)
	if err != nil {
		return domain.AppState{}, fmt.Errorf("repo.StateRepo.Load: %w", err)
	}
	if !ok {
		return domain.DefaultState(), nil
	}

	state := domain.DefaultState()
	if err := json.Unmarshal(raw, &state); err != nil {
		r.log.WarnContext(ctx, "stored state is unreadable; starting fresh",
			"key", r.key,
			"bytes", len(raw),
			"error", err,
		)
		return domain.DefaultState(), nil
	}
	backfill(&state)
	return state, nil
}

// Save serialises the entire tree and overwrites the slot. Last writer wins.
func (r *StateRepo) Save(ctx context.Context, state domain.AppState) error {
	b, err := json.Marshal(state)
	if err != nil {
		r.metrics.RecordStateSave(ctx, 0, err)
		return fmt.Errorf("repo.StateRepo.Save: encode: %w", err)
	}
	err = r.slot.Put(ctx, r.key, b)
	r.metrics.RecordStateSave(ctx, len(b), err)
	if err != nil {
		return fmt.Errorf("repo.StateRepo.Save: %w", err)
	}
	return nil
}

func backfill(s *domain.AppState) {
	if s.Trips == nil {
		s.Trips = []domain.Trip{}
	}
	if s.Settings.Units == "" {
		s.Settings.Units = domain.DefaultUnits
	}
	for i := range s.Trips {
		t := &s.Trips[i]
		if t.Steps == nil {
			t.Steps = []domain.Step{}
		}
		if t.Visibility == "" {
			t.Visibility = domain.VisibilityPrivate
		}
	}
}
