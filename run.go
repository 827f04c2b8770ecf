package compgraph

import (
	"context"
	"fmt"

	"github.com/flowgraph/compgraph/observability"
	"github.com/flowgraph/compgraph/record"
	"github.com/flowgraph/compgraph/runconfig"
	"github.com/flowgraph/compgraph/runstats"
)

// execContext holds everything an operator engine needs while a single Run
// is in flight: the plan's materialization decisions, the shared failure
// box, per-graph and per-source stream memoization, and the run's stats and
// observability provider.
type execContext struct {
	plan    *Plan
	cfg     *runconfig.Config
	ctx     context.Context
	failure *runFailure
	stats   *runstats.Stats

	graphCache  map[*Graph]Stream
	sourceCache map[string]Stream
	graphLabel  map[*Graph]string
}

func newExecContext(ctx context.Context, p *Plan, cfg *runconfig.Config, stats *runstats.Stats) *execContext {
	ec := &execContext{
		plan:        p,
		cfg:         cfg,
		ctx:         ctx,
		failure:     &runFailure{},
		stats:       stats,
		graphCache:  make(map[*Graph]Stream),
		sourceCache: make(map[string]Stream),
		graphLabel:  make(map[*Graph]string, len(p.order)),
	}
	for i, g := range p.order {
		ec.graphLabel[g] = fmt.Sprintf("graph#%d", i)
	}
	return ec
}

// materializeStream drains upstream into a slice on the first full pass and
// replays that slice on every subsequent one, so upstream is consumed
// exactly once regardless of how many times the returned Stream is ranged
// over. hint sizes the initial allocation; 0 lets append grow it.
func materializeStream(failure *runFailure, upstream Stream, hint int) Stream {
	var cached []record.Record
	done := false
	return func(yield func(record.Record) bool) {
		if !done {
			if hint > 0 {
				cached = make([]record.Record, 0, hint)
			}
			for r := range upstream {
				cached = append(cached, r)
				if failure.failed() {
					break
				}
			}
			done = true
		}
		for _, r := range cached {
			if !yield(r) {
				return
			}
		}
	}
}

// resolveSource converts the sources map's value for name into a Stream.
// A *Graph value is run (through buildGraph, so it is only ever executed
// once per run); a Stream or []record.Record value is used as-is.
func resolveSource(ec *execContext, name string) (Stream, error) {
	v, present := ec.plan.sources[name]
	if !present {
		return nil, configErrorf("unknown source name %q", name)
	}
	switch val := v.(type) {
	case *Graph:
		return buildGraph(ec, val), nil
	case Stream:
		return val, nil
	case []record.Record:
		return func(yield func(record.Record) bool) {
			for _, r := range val {
				if !yield(r) {
					return
				}
			}
		}, nil
	case nil:
		return nil, configErrorf("source %q is unset", name)
	default:
		return nil, configErrorf("source %q has unsupported type %T", name, v)
	}
}

// buildSource returns the (memoized) Stream for a named source, the Init
// node of the pipeline: buffered once if more than one graph in this run
// reads name, streamed directly otherwise.
func buildSource(ec *execContext, name string) Stream {
	if s, ok := ec.sourceCache[name]; ok {
		return s
	}

	raw, err := resolveSource(ec, name)
	if err != nil {
		ec.failure.set(err)
		raw = func(func(record.Record) bool) {}
	}

	counted := func(yield func(record.Record) bool) {
		n := 0
		for r := range raw {
			n++
			if !yield(r) {
				ec.stats.RecordSourceConsumed(name, n)
				return
			}
		}
		ec.stats.RecordSourceConsumed(name, n)
	}

	var s Stream
	if ec.plan.storeStream(name) {
		s = materializeStream(ec.failure, counted, ec.cfg.MaterializeHint)
	} else {
		s = counted
	}
	ec.sourceCache[name] = s
	return s
}

// buildGraph returns the (memoized) Stream that produces g's output: its
// source resolved, every pipeline operator applied in order, and the whole
// chain wrapped in materializeStream if g has more than one consumer in
// this run's Plan.
func buildGraph(ec *execContext, g *Graph) Stream {
	if s, ok := ec.graphCache[g]; ok {
		return s
	}

	var s Stream
	if g.sourceGraph != nil {
		s = buildGraph(ec, g.sourceGraph)
	} else {
		s = buildSource(ec, g.sourceName)
	}

	for _, n := range g.pipeline {
		s = applyNode(ec, n, s)
	}

	materialized := ec.plan.needsMaterialize(g)
	label := ec.graphLabel[g]
	produced := s
	counted := func(yield func(record.Record) bool) {
		n := 0
		for r := range produced {
			n++
			if !yield(r) {
				ec.stats.RecordGraphOutput(label, materialized, n)
				return
			}
		}
		ec.stats.RecordGraphOutput(label, materialized, n)
	}

	if materialized {
		s = materializeStream(ec.failure, counted, ec.cfg.MaterializeHint)
	} else {
		s = counted
	}
	ec.graphCache[g] = s
	return s
}

// applyNode dispatches a pipeline node to its operator engine.
func applyNode(ec *execContext, n opNode, upstream Stream) Stream {
	switch n.kind {
	case nodeMap:
		return mapStream(ec.failure, upstream, n.mapper)
	case nodeSort:
		return sortStream(ec.failure, upstream, n.sKey)
	case nodeReduce:
		return reduceStream(ec.failure, upstream, n.rKey, n.reducer)
	case nodeFold:
		return foldStream(ec.failure, upstream, n.folder)
	case nodeJoin:
		return joinStream(ec, upstream, n)
	default:
		ec.failure.set(configErrorf("unknown operator node kind %d", n.kind))
		return func(func(record.Record) bool) {}
	}
}

// Execution is the result of Run: a Stream the caller drains for the root
// graph's output, plus the stats gathered while doing so. Err is only
// meaningful once Records has been fully drained (or iteration stopped
// after a failure) — the same "iterate, then check Err" shape as
// bufio.Scanner, adopted because an iter.Seq's yield callback has no error
// channel of its own (see runFailure in stream.go).
type Execution struct {
	Records Stream
	Stats   *runstats.Stats

	failure *runFailure
}

// Err returns the first fatal error (an *OrderError, a *UserError, or a
// *ConfigError for a source value that is nil or of an unsupported type)
// encountered while draining Records, or nil if none has occurred yet.
func (e *Execution) Err() error {
	return e.failure.get()
}

// Run plans root against sources and returns an Execution whose Records
// stream yields root's output lazily. Planning errors (a *ConfigError) are
// returned immediately, before any user code runs; runtime errors surface
// through Execution.Err once Records has been drained.
//
// sources maps external source names to either a Stream, a []record.Record,
// or another *Graph (meaning: run that graph first and use its output as
// this name's records).
func Run(ctx context.Context, root *Graph, sources map[string]Source, opts ...runconfig.Option) (*Execution, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := runconfig.Resolve(opts...)

	p, err := plan(root, sources)
	if err != nil {
		return nil, err
	}

	stats := runstats.New()
	ec := newExecContext(ctx, p, cfg, stats)

	spanCtx, span := cfg.Provider.StartSpan(ctx, observability.SpanRunExecute,
		observability.String(observability.AttrRunID, stats.RunID))
	ec.ctx = spanCtx
	stats.StartExecution()

	rootStream := buildGraph(ec, root)

	records := func(yield func(record.Record) bool) {
		defer func() {
			stats.EndExecution()
			if runErr := ec.failure.get(); runErr != nil {
				span.RecordError(runErr)
				span.SetStatus(observability.StatusError, runErr.Error())
			} else {
				span.SetStatus(observability.StatusOK, "")
			}
			span.End()
		}()
		for rec := range rootStream {
			if !yield(rec) {
				return
			}
		}
	}

	return &Execution{Records: records, Stats: stats, failure: ec.failure}, nil
}

// RunCollect runs root against sources and drains its output into a slice,
// returning the first error encountered either during planning or while
// draining. It is the convenience entry point for callers who want the
// whole result at once rather than a lazy Stream.
func RunCollect(ctx context.Context, root *Graph, sources map[string]Source, opts ...runconfig.Option) ([]record.Record, error) {
	exec, err := Run(ctx, root, sources, opts...)
	if err != nil {
		return nil, err
	}

	var out []record.Record
	for rec := range exec.Records {
		out = append(out, rec)
	}
	if err := exec.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
