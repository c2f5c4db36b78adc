package ai

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/pkordes/travel-journal/backend/internal/telemetry"
)

// Pipeline builds the prompt for a request and runs it through a Completer.
type Pipeline struct {
	completer Completer
	metrics   *telemetry.Metrics
}

// NewPipeline returns a Pipeline. metrics may be nil.
func NewPipeline(c Completer, metrics *telemetry.Metrics) *Pipeline {
	return &Pipeline{completer: c, metrics: metrics}
}

// Run answers req. The links of the built prompt are returned with the text.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ai.Pipeline.Run")
	defer span.End()
	span.SetAttributes(attribute.String("ai.task", string(req.Task)))

	start := time.Now()
	prompt := BuildPrompt(req)
	text, err := p.completer.Complete(ctx, SystemInstruction, prompt.Text)

	p.metrics.RecordAIRequest(ctx, taskLabel(req.Task), outcome(err), time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Result{}, err
	}
	return Result{Text: text, Links: prompt.Links}, nil
}

// taskLabel keeps metric cardinality bounded: free-form task names share one
// series.
func taskLabel(t Task) string {
	if !t.Known() {
		return "other"
	}
	return string(t)
}

func outcome(err error) string {
	var up *UpstreamError
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case errors.Is(err, ErrMissingAPIKey):
		return telemetry.OutcomeConfig
	case errors.As(err, &up):
		return telemetry.OutcomeUpstream
	default:
		return telemetry.OutcomeError
	}
}
