package compgraph

import (
	"iter"
	"sync/atomic"

	"github.com/flowgraph/compgraph/record"
)

// Stream is a finite, single-pass, lazily produced sequence of records.
// It is exactly a Go 1.23 range-over-func sequence: a Stream's own failures
// are not reported through yield (see runFailure below) but through
// Execution.Err once the stream has been drained.
//
// A consumer ranges over a Stream with `for rec := range s { ... }` and may
// stop early by breaking out of the loop; every operator in this package
// treats that as yield returning false and stops pulling from its own
// upstream in turn, so cancellation requires no extra plumbing.
type Stream = iter.Seq[record.Record]

// Mapper processes one input record, calling emit zero or more times with
// derived records. It is the caller-supplied callable for a Map node.
type Mapper func(rec record.Record, emit func(record.Record))

// Reducer processes one group of records sharing a key value. keyRecord
// contains exactly the reduce key's fields; group replays the records in
// upstream order. The reducer may consume group partially; the engine still
// advances correctly to the next group regardless (the grouping mechanism,
// not the reducer, owns group boundaries).
type Reducer func(keyRecord record.Record, group Stream, emit func(record.Record))

// Folder consumes the entire upstream exactly once and returns a single
// summary record. It may traverse input in any manner it likes.
type Folder func(input Stream) record.Record

// runFailure is a per-Run box holding the first fatal error observed by any
// operator during execution. Because iter.Seq's yield callback carries no
// error channel, an operator that detects an OrderError or catches a
// UserError stores it here and stops yielding; Run's caller-facing iterator
// checks the box once the underlying range loop completes. The first error
// wins: later operators that also fail (a common case once one sibling
// stream stops) do not overwrite it.
type runFailure struct {
	err atomic.Pointer[error]
}

func (f *runFailure) set(err error) {
	if err == nil {
		return
	}
	f.err.CompareAndSwap(nil, &err)
}

func (f *runFailure) get() error {
	if p := f.err.Load(); p != nil {
		return *p
	}
	return nil
}

// failed reports whether an error has already been recorded. Operators use
// this to stop producing further output promptly once any sibling has
// failed, rather than only discovering the failure at their own next pull.
func (f *runFailure) failed() bool {
	return f.err.Load() != nil
}
