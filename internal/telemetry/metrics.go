package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome labels.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeUpstream = "upstream_error"
	OutcomeConfig   = "config_error"
)

// Cache labels for place lookups.
const (
	CacheHit  = "hit"
	CacheMiss = "miss"
	CacheSkip = "skip"
)

// Metrics is the instrument set recorded by the journal. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	aiRequests     metric.Int64Counter
	aiDuration     metric.Float64Histogram
	flightSearches metric.Int64Counter
	placeLookups   metric.Int64Counter
	stateSaves     metric.Int64Counter
	stateBytes     metric.Int64Histogram
}

// NewMetrics registers the instruments on meter. Pass nil to use the global
// meter provider.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = otel.Meter(InstrumentationName)
	}
	m := &Metrics{}
	var err error

	if m.aiRequests, err = meter.Int64Counter("journal.ai.requests",
		metric.WithDescription("AI guidance requests by task and outcome"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.aiDuration, err = meter.Float64Histogram("journal.ai.duration",
		metric.WithDescription("AI guidance request duration"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if m.flightSearches, err = meter.Int64Counter("journal.flights.searches",
		metric.WithDescription("Flight offer searches by outcome"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.placeLookups, err = meter.Int64Counter("journal.lookup.requests",
		metric.WithDescription("Place and reference lookups by kind and cache result"),
		metric.WithUnit("{request}"),
	); err != nil {
		return nil, err
	}
	if m.stateSaves, err = meter.Int64Counter("journal.state.saves",
		metric.WithDescription("State tree saves by outcome"),
		metric.WithUnit("{save}"),
	); err != nil {
		return nil, err
	}
	if m.stateBytes, err = meter.Int64Histogram("journal.state.size",
		metric.WithDescription("Serialised state tree size"),
		metric.WithUnit("By"),
	); err != nil {
		return nil, err
	}
	return m, nil
}

// RecordAIRequest counts one AI request and its duration.
func (m *Metrics) RecordAIRequest(ctx context.Context, task, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("task", task), attribute.String("outcome", outcome))
	m.aiRequests.Add(ctx, 1, attrs)
	m.aiDuration.Record(ctx, d.Seconds(), attrs)
}

// RecordFlightSearch counts one flight search.
func (m *Metrics) RecordFlightSearch(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.flightSearches.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordLookup counts one place search or reference lookup.
func (m *Metrics) RecordLookup(ctx context.Context, kind, cache string) {
	if m == nil {
		return
	}
	m.placeLookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("cache", cache),
	))
}

// RecordStateSave counts one save attempt; size is recorded for successful saves.
func (m *Metrics) RecordStateSave(ctx context.Context, size int, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.stateSaves.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if err == nil {
		m.stateBytes.Record(ctx, int64(size))
	}
}
