// Package runstats aggregates execution statistics for a single
// compgraph.Run: a run identifier, per-graph and per-source record counts,
// materialization decisions, and wall-clock duration. compgraph.Run creates
// one Stats per run, updates it while the run's output is drained, and
// returns it as Execution.Stats. [Stats.ToContext] and [FromContext] store
// and retrieve a Stats in a [context.Context]; Run itself does not place
// its Stats in a context.
//
// It uses a ToContext/FromContext-with-lazy-creation shape and a
// StartExecution/EndExecution/ExecutionDuration pair, the same pattern any
// run-scoped accumulator needs regardless of what it's counting.
package runstats

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const statsContextKey contextKey = "runstats"

// Stats aggregates per-run statistics. GraphRecordCounts and
// GraphMaterialized are keyed by the caller-assigned label for a graph
// (compgraph labels graphs by their position in topological order);
// SourceRecordCounts is keyed by source name.
type Stats struct {
	RunID string `json:"run_id"`

	GraphRecordCounts  map[string]int  `json:"graph_record_counts"`
	GraphMaterialized  map[string]bool `json:"graph_materialized"`
	SourceRecordCounts map[string]int  `json:"source_record_counts"`

	ExecutionStartTime time.Time `json:"execution_start_time,omitempty"`
	ExecutionEndTime   time.Time `json:"execution_end_time,omitempty"`
}

// New returns an empty Stats with a freshly generated RunID.
func New() *Stats {
	return &Stats{
		RunID:              uuid.NewString(),
		GraphRecordCounts:  make(map[string]int),
		GraphMaterialized:  make(map[string]bool),
		SourceRecordCounts: make(map[string]int),
	}
}

// FromContext retrieves the Stats from the context, creating one if it does
// not already exist. The context pointer is updated in-place when a new
// Stats is created so callers see the enriched context.
func FromContext(ctx *context.Context) *Stats {
	if statsVal := (*ctx).Value(statsContextKey); statsVal != nil {
		if stats, ok := statsVal.(*Stats); ok {
			return stats
		}
	}

	stats := New()
	*ctx = stats.ToContext(*ctx)
	return stats
}

// ToContext stores the Stats in the given context under a private key and
// returns the enriched context. If ctx is nil, context.Background() is used
// as the base.
func (stats *Stats) ToContext(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, statsContextKey, stats)
}

// RecordGraphOutput records that the graph labeled graphID produced count
// records and whether its output was materialized.
func (stats *Stats) RecordGraphOutput(graphID string, materialized bool, count int) {
	stats.GraphRecordCounts[graphID] += count
	stats.GraphMaterialized[graphID] = materialized
}

// RecordSourceConsumed records that count records were read from the named
// external source.
func (stats *Stats) RecordSourceConsumed(name string, count int) {
	stats.SourceRecordCounts[name] += count
}

// StartExecution marks the start of the run.
func (stats *Stats) StartExecution() {
	stats.ExecutionStartTime = time.Now()
}

// EndExecution marks the end of the run.
func (stats *Stats) EndExecution() {
	stats.ExecutionEndTime = time.Now()
}

// ExecutionDuration returns the total run duration, or 0 if the run hasn't
// started or ended.
func (stats *Stats) ExecutionDuration() time.Duration {
	if stats.ExecutionStartTime.IsZero() || stats.ExecutionEndTime.IsZero() {
		return 0
	}
	return stats.ExecutionEndTime.Sub(stats.ExecutionStartTime)
}
