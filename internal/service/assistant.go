package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/travel-journal/backend/internal/ai"
	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// Guide answers an AI request. *ai.Pipeline and *ai.ProxyClient satisfy it.
type Guide interface {
	Run(ctx context.Context, req ai.Request) (ai.Result, error)
}

// ReferenceLookup finds an encyclopedia summary for a place.
// It returns nil when nothing usable is found. *lookup.Client satisfies it.
type ReferenceLookup interface {
	WikiSummary(ctx context.Context, title string) *domain.ReferenceSummary
}

// Assistant runs AI actions against steps in the journal.
type Assistant struct {
	journal *Journal
	refs    ReferenceLookup
	guide   Guide
	log     *slog.Logger
}

// NewAssistant returns an Assistant. refs may be nil, in which case requests
// carry no reference summary.
func NewAssistant(j *Journal, refs ReferenceLookup, g Guide, log *slog.Logger) *Assistant {
	if log == nil {
		log = slog.Default()
	}
	return &Assistant{journal: j, refs: refs, guide: g, log: log}
}

// Ask runs task for a step of a trip. An empty stepID selects the last step.
// A missing trip or step is ErrPrecondition. Unrecognised tasks use the
// fallback prompt.
func (a *Assistant) Ask(ctx context.Context, tripID, stepID string, task ai.Task) (ai.Result, error) {
	trip, err := a.journal.trip(tripID)
	if err != nil {
		return ai.Result{}, fmt.Errorf("service.Assistant.Ask: select a trip first: %w", domain.ErrPrecondition)
	}

	var step *domain.Step
	if stepID != "" {
		step = trip.FindStep(stepID)
	} else {
		step = trip.LastStep()
	}
	if step == nil {
		return ai.Result{}, fmt.Errorf("service.Assistant.Ask: add a step first: %w", domain.ErrPrecondition)
	}

	var wiki *domain.ReferenceSummary
	if a.refs != nil {
		title := step.Place.Label
		if title == "" {
			title = step.Title
		}
		wiki = a.refs.WikiSummary(ctx, title)
	}

	a.log.DebugContext(ctx, "running ai action",
		"task", task,
		"trip_id", trip.ID,
		"step_id", step.ID,
		"has_reference", wiki != nil,
	)

	res, err := a.guide.Run(ctx, ai.NewRequest(task, trip, *step, wiki))
	if err != nil {
		return ai.Result{}, fmt.Errorf("service.Assistant.Ask: %w", err)
	}
	return res, nil
}
