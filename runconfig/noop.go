package runconfig

import (
	"context"

	"github.com/flowgraph/compgraph/observability"
)

// NoopProvider implements observability.Provider by discarding everything.
// It is the default when a Run is not given a Provider via WithProvider.
type NoopProvider struct{}

var _ observability.Provider = NoopProvider{}

func (NoopProvider) StartSpan(ctx context.Context, _ string, _ ...observability.Attribute) (context.Context, observability.Span) {
	return ctx, noopSpan{}
}

func (NoopProvider) Counter(string) observability.Counter     { return noopCounter{} }
func (NoopProvider) Histogram(string) observability.Histogram { return noopHistogram{} }

func (NoopProvider) Trace(context.Context, string, ...observability.Attribute) {}
func (NoopProvider) Debug(context.Context, string, ...observability.Attribute) {}
func (NoopProvider) Info(context.Context, string, ...observability.Attribute)  {}
func (NoopProvider) Warn(context.Context, string, ...observability.Attribute)  {}
func (NoopProvider) Error(context.Context, string, ...observability.Attribute) {}

type noopSpan struct{}

func (noopSpan) End()                                               {}
func (noopSpan) SetAttributes(...observability.Attribute)           {}
func (noopSpan) SetStatus(observability.StatusCode, string)         {}
func (noopSpan) RecordError(error)                                  {}
func (noopSpan) AddEvent(string, ...observability.Attribute)        {}

type noopCounter struct{}

func (noopCounter) Add(context.Context, int64, ...observability.Attribute) {}

type noopHistogram struct{}

func (noopHistogram) Record(context.Context, float64, ...observability.Attribute) {}
