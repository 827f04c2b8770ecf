// Package observability defines the core interfaces and semantic conventions
// used for distributed tracing, metrics collection, and structured logging
// while a compgraph run executes.
//
// The central entry point is [Provider], which composes [Tracer], [Metrics],
// and [Logger] into a single injectable dependency. Callers propagate an
// active [Provider] and [Span] through a [context.Context] using
// [ContextWithObserver] and [ContextWithSpan]; they can be retrieved with
// [ObserverFromContext] and [SpanFromContext].
//
// semconv.go holds the attribute-key and span-name constants recorded while
// planning and running a graph. slogobs implements [Provider] on top of
// log/slog; otelobs implements only [Tracer], on top of
// go.opentelemetry.io/otel.
package observability
