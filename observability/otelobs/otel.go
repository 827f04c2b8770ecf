// Package otelobs implements observability.Tracer on top of
// go.opentelemetry.io/otel/trace, for
// deployments that already export traces to a collector and want a run's
// spans to show up alongside the rest of their system.
//
// Metrics and logging are intentionally left to slogobs or a caller-supplied
// Provider; otelobs only takes over span creation, so tracing, metrics, and
// logging can each be backed by independent implementations composed at
// the call site.
package otelobs

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/flowgraph/compgraph/observability"
)

// Tracer implements observability.Tracer using an OpenTelemetry
// trace.Tracer obtained from the caller's TracerProvider.
type Tracer struct {
	tracer oteltrace.Tracer
}

// New wraps tracer (typically otel.Tracer("compgraph")) as an
// observability.Tracer.
func New(tracer oteltrace.Tracer) *Tracer {
	return &Tracer{tracer: tracer}
}

var _ observability.Tracer = (*Tracer)(nil)

// StartSpan starts an OpenTelemetry span named name, converting attrs to
// OpenTelemetry attributes.
func (t *Tracer) StartSpan(ctx context.Context, name string, attrs ...observability.Attribute) (context.Context, observability.Span) {
	ctx, span := t.tracer.Start(ctx, name, oteltrace.WithAttributes(toOtelAttrs(attrs)...))
	return ctx, &otelSpan{span: span}
}

type otelSpan struct {
	span oteltrace.Span
}

func (s *otelSpan) End() { s.span.End() }

func (s *otelSpan) SetAttributes(attrs ...observability.Attribute) {
	s.span.SetAttributes(toOtelAttrs(attrs)...)
}

func (s *otelSpan) SetStatus(code observability.StatusCode, description string) {
	switch code {
	case observability.StatusOK:
		s.span.SetStatus(codes.Ok, description)
	case observability.StatusError:
		s.span.SetStatus(codes.Error, description)
	default:
		s.span.SetStatus(codes.Unset, description)
	}
}

func (s *otelSpan) RecordError(err error) {
	if err == nil {
		return
	}
	s.span.RecordError(err)
}

func (s *otelSpan) AddEvent(name string, attrs ...observability.Attribute) {
	s.span.AddEvent(name, oteltrace.WithAttributes(toOtelAttrs(attrs)...))
}

func toOtelAttrs(attrs []observability.Attribute) []attribute.KeyValue {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(attrs))
	for _, a := range attrs {
		switch v := a.Value.(type) {
		case string:
			out = append(out, attribute.String(a.Key, v))
		case int:
			out = append(out, attribute.Int(a.Key, v))
		case int64:
			out = append(out, attribute.Int64(a.Key, v))
		case float64:
			out = append(out, attribute.Float64(a.Key, v))
		case bool:
			out = append(out, attribute.Bool(a.Key, v))
		default:
			out = append(out, attribute.String(a.Key, observability.TruncateStringDefault(toString(v))))
		}
	}
	return out
}

func toString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(interface{ String() string }); ok {
		return s.String()
	}
	return "(unprintable)"
}
