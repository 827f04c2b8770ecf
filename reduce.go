package compgraph

import (
	"iter"

	"github.com/flowgraph/compgraph/record"
)

// reduceStream groups consecutive upstream records sharing the same value
// for key and invokes reducer once per group. The upstream must already be
// non-decreasing by key; a descending step, or a pair of key values that
// cannot be ordered (record.KeyValue.Compare's ok is false), fails the run
// with an *OrderError.
//
// Group membership is exposed to reducer as a Stream pulled lazily from the
// same underlying iterator reduceStream itself consumes, so a reducer that
// only reads the first few members of a huge group never forces the rest
// into memory. Group boundaries belong to the engine, not the reducer:
// whatever reducer leaves unread is drained here before the next group
// starts, so an early `break` inside a reducer's range loop never
// desynchronizes grouping.
//
// Grounded on gimlids-dmrgo's Reducer.Reduce(key, values Iterator, Emitter)
// contract, replacing its externally-driven Iterator with a pull-based
// iter.Seq sourced via iter.Pull, since compgraph has no separate on-disk
// sorted-run reader to iterate.
func reduceStream(failure *runFailure, upstream Stream, key record.Key, reducer Reducer) Stream {
	return func(yield func(record.Record) bool) {
		next, stop := iter.Pull(upstream)
		defer stop()

		rec, ok := next()

		for ok {
			if failure.failed() {
				return
			}
			groupKey := key.ValueOf(rec)

			groupStream := func(y func(record.Record) bool) {
				for ok {
					if failure.failed() {
						return
					}
					kv := key.ValueOf(rec)
					cmp, cok := groupKey.Compare(kv)
					if !cok {
						failure.set(orderErrorf("reduce: values for key %v are not comparable", []string(key)))
						return
					}
					if cmp != 0 {
						if cmp > 0 {
							failure.set(orderErrorf("reduce: input not sorted ascending by key %v", []string(key)))
						}
						return
					}
					cur := rec
					if !y(cur) {
						rec, ok = next()
						return
					}
					rec, ok = next()
				}
			}

			keyRecord := key.AsRecord(groupKey)
			var emitted []record.Record
			var caught error
			func() {
				defer recoverUserError("reduce", &caught)
				reducer(keyRecord, groupStream, func(out record.Record) {
					emitted = append(emitted, out)
				})
			}()
			if caught != nil {
				failure.set(caught)
				return
			}
			if failure.failed() {
				return
			}

			// Drain whatever members reducer left unread so the next
			// iteration of the outer loop starts at the next group's key.
			for ok {
				kv := key.ValueOf(rec)
				cmp, cok := groupKey.Compare(kv)
				if !cok {
					failure.set(orderErrorf("reduce: values for key %v are not comparable", []string(key)))
					return
				}
				if cmp != 0 {
					if cmp > 0 {
						failure.set(orderErrorf("reduce: input not sorted ascending by key %v", []string(key)))
						return
					}
					break
				}
				rec, ok = next()
			}

			for _, out := range emitted {
				if !yield(out) {
					return
				}
			}
		}
	}
}
