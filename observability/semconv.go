package observability

// Semantic conventions for observability attributes.
// These constants define standard attribute names to ensure consistency
// across different components of the system.

// --- Run Attributes ---

const (
	// AttrRunID is the unique identifier of a Run invocation.
	AttrRunID = "run.id"

	// AttrGraphID is an opaque identifier for a *Graph within a run, stable
	// for the lifetime of that run only (graphs have no identity across runs).
	AttrGraphID = "graph.id"

	// AttrOperatorKind names the operator a span covers: "init", "map",
	// "reduce", "sort", "fold", or "join".
	AttrOperatorKind = "operator.kind"

	// AttrSourceName is the name a source-bound Init node resolves against
	// the run's source mapping.
	AttrSourceName = "source.name"
)

// --- Record Flow Attributes ---

const (
	// AttrRecordCount is the number of records an operator produced.
	AttrRecordCount = "record.count"

	// AttrMaterialized reports whether a graph's result was buffered
	// (refcount > 1) rather than streamed directly to its single consumer.
	AttrMaterialized = "graph.materialized"

	// AttrRefCount is the number of consumers a graph had within its run.
	AttrRefCount = "graph.refcount"
)

// --- General Attributes ---

const (
	// AttrError is the error message.
	AttrError = "error"

	// AttrErrorType is the error type/class.
	AttrErrorType = "error.type"

	// AttrDuration is the operation duration.
	AttrDuration = "duration"

	// AttrStatus is the operation status.
	AttrStatus = "status"

	// AttrStatusDescription is the human-readable detail accompanying AttrStatus.
	AttrStatusDescription = "status.description"
)

// --- Span Names ---

const (
	// SpanRunExecute covers draining the root graph's output; it starts
	// after planning has succeeded.
	SpanRunExecute = "run.execute"

	// SpanGraphExecute covers one graph's pipeline, from its Init node to
	// its last operator.
	SpanGraphExecute = "graph.execute"

	// SpanSourceMaterialize covers buffering a shared named source on its
	// first use.
	SpanSourceMaterialize = "source.materialize"
)

// --- Event Names ---

const (
	// EventGraphMaterialized marks a graph's output being fully buffered.
	EventGraphMaterialized = "graph.materialized"

	// EventSourceExhausted marks a named source reaching end of input.
	EventSourceExhausted = "source.exhausted"
)
