// Package tracing wraps the OpenTelemetry trace API the orchestrator
// uses to mark each pipeline stage as a span. No exporter is wired in
// this deployment (spec.md's Non-goals exclude an observability
// backend); callers that configure a global TracerProvider elsewhere
// in their process get real spans, and everyone else gets the
// zero-cost noop tracer OpenTelemetry falls back to by default.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "namazing"

// StartStage starts a span named after a pipeline stage's agent id,
// tagging it with the run ID so spans from concurrent runs are
// distinguishable in a trace backend.
func StartStage(ctx context.Context, runID, agent string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, agent, trace.WithAttributes(
		attribute.String("run_id", runID),
	))
}

// End closes span, recording err on it when non-nil.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
