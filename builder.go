package compgraph

import "github.com/flowgraph/compgraph/record"

// Graph is a mutable, append-only pipeline of operators rooted at a single
// source: either a named external input supplied to Run, or the result of
// another Graph. Build one with Create or CreateFrom, append operators with
// AddMap/AddReduce/AddSort/AddFold/AddJoin, then pass the graph you want the
// final result of to Run.
//
// Appending an operator never triggers planning or execution; a Graph only
// becomes executable once Run resolves it (and everything it transitively
// depends on) into a Plan. There is no separate terminal Build call —
// validity can only be fully determined once the graph-of-graphs is
// resolved, so Run's planning step plays that role.
type Graph struct {
	sourceName  string
	sourceGraph *Graph

	pipeline []opNode

	buildErrors []error
}

// Create returns an empty Graph rooted at the named external source.
// sourceName is resolved against the name→iterable mapping passed to Run.
func Create(sourceName string) *Graph {
	return &Graph{sourceName: sourceName}
}

// CreateFrom returns an empty Graph rooted at another graph's result: other
// is run first (directly, or transitively because Run discovers it), and
// this graph's Init node reads other's materialized or streamed output.
func CreateFrom(other *Graph) *Graph {
	return &Graph{sourceGraph: other}
}

func (g *Graph) fail(err error) {
	g.buildErrors = append(g.buildErrors, err)
}

// AddMap appends a Map node. mapper receives a copy of each upstream record
// (see record.Record.Clone) so in-place mutation never aliases upstream
// state, and may emit zero or more derived records per input in upstream
// order.
func (g *Graph) AddMap(mapper Mapper) *Graph {
	if mapper == nil {
		g.fail(configErrorf("AddMap: mapper must not be nil"))
		return g
	}
	g.pipeline = append(g.pipeline, opNode{kind: nodeMap, mapper: mapper})
	return g
}

// AddReduce appends a Reduce node grouping consecutive records by reduceBy,
// which normalizes the common case of a single field name. An empty
// reduceBy is a ConfigError: empty reduce keys are rejected rather than
// left to undefined behavior.
func (g *Graph) AddReduce(reducer Reducer, reduceBy ...string) *Graph {
	if reducer == nil {
		g.fail(configErrorf("AddReduce: reducer must not be nil"))
		return g
	}
	if len(reduceBy) == 0 {
		g.fail(configErrorf("AddReduce: reduce_by must not be empty"))
		return g
	}
	g.pipeline = append(g.pipeline, opNode{kind: nodeReduce, reducer: reducer, rKey: record.Key(reduceBy)})
	return g
}

// AddSort appends a Sort node. The upstream is buffered entirely and
// re-emitted in ascending order of sortBy, stably. An empty sortBy is a
// ConfigError, matching AddReduce's treatment of an empty key.
func (g *Graph) AddSort(sortBy ...string) *Graph {
	if len(sortBy) == 0 {
		g.fail(configErrorf("AddSort: sort_by must not be empty"))
		return g
	}
	g.pipeline = append(g.pipeline, opNode{kind: nodeSort, sKey: record.Key(sortBy)})
	return g
}

// AddFold appends a Fold node. folder is called exactly once with the
// entire upstream and must return a single summary record; it terminates
// the stream.
func (g *Graph) AddFold(folder Folder) *Graph {
	if folder == nil {
		g.fail(configErrorf("AddFold: folder must not be nil"))
		return g
	}
	g.pipeline = append(g.pipeline, opNode{kind: nodeFold, folder: folder})
	return g
}

// AddJoin appends a Join node implementing a sorted-merge join against
// other's result, using strategy to decide which unmatched side(s) survive.
// joinBy may be empty, meaning both sides are treated as one implicit group
// (a Cartesian product when strategy is JoinInner) — unlike AddReduce and
// AddSort, an empty join key is accepted.
func (g *Graph) AddJoin(other *Graph, strategy JoinStrategy, joinBy ...string) *Graph {
	if other == nil {
		g.fail(configErrorf("AddJoin: other graph must not be nil"))
		return g
	}
	if !strategy.valid() {
		g.fail(configErrorf("AddJoin: unknown join strategy %q", strategy))
		return g
	}
	g.pipeline = append(g.pipeline, opNode{
		kind:         nodeJoin,
		joinOther:    other,
		joinKey:      record.Key(joinBy),
		joinStrategy: strategy,
	})
	return g
}
