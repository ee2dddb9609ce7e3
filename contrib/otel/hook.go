// Package otel exports Jutge call telemetry as OpenTelemetry spans.
//
//	tp := sdktrace.NewTracerProvider(...)
//	client := core.NewClient(rpc.New(), core.WithTelemetry(otel.NewHook(tp)))
package otel

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/petal-labs/jutge/core"
)

// ScopeName is the instrumentation scope of the tracer.
const ScopeName = "github.com/petal-labs/jutge"

// Attribute keys set on call spans.
const (
	AttrFunc          = attribute.Key("jutge.func")
	AttrFiles         = attribute.Key("jutge.files")
	AttrAuthenticated = attribute.Key("jutge.authenticated")
	AttrDownloads     = attribute.Key("jutge.downloads")
	AttrErrorKind     = attribute.Key("jutge.error.kind")
	AttrOperationID   = attribute.Key("jutge.operation_id")
)

// Hook is a core.TelemetryHook that records one client span per call.
// Start and end events are paired by their call ID.
type Hook struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[uint64]trace.Span
}

var _ core.TelemetryHook = (*Hook)(nil)

// NewHook creates a Hook that starts spans from tp.
func NewHook(tp trace.TracerProvider) *Hook {
	return &Hook{
		tracer: tp.Tracer(ScopeName),
		spans:  make(map[uint64]trace.Span),
	}
}

// OnCallStart starts the span of a call.
func (h *Hook) OnCallStart(e core.CallStartEvent) {
	_, span := h.tracer.Start(context.Background(), "jutge "+e.Func,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithTimestamp(e.Start),
		trace.WithAttributes(
			AttrFunc.String(e.Func),
			AttrFiles.Int(e.Files),
			AttrAuthenticated.Bool(e.Authenticated),
		),
	)

	h.mu.Lock()
	h.spans[e.ID] = span
	h.mu.Unlock()
}

// OnCallEnd ends the span of a call, recording its error if any.
func (h *Hook) OnCallEnd(e core.CallEndEvent) {
	h.mu.Lock()
	span, ok := h.spans[e.ID]
	delete(h.spans, e.ID)
	h.mu.Unlock()

	if !ok {
		return
	}

	span.SetAttributes(AttrDownloads.Int(e.Downloads))
	if e.Err != nil {
		span.RecordError(e.Err)
		span.SetStatus(codes.Error, e.Err.Error())
		var apiErr *core.APIError
		if errors.As(e.Err, &apiErr) {
			span.SetAttributes(AttrErrorKind.String(apiErr.Kind.String()))
			if apiErr.OperationID != "" {
				span.SetAttributes(AttrOperationID.String(apiErr.OperationID))
			}
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(e.End))
}

// InFlight returns the number of calls whose span has not ended.
func (h *Hook) InFlight() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.spans)
}
