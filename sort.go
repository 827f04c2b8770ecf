package compgraph

import (
	"sort"

	"github.com/flowgraph/compgraph/record"
)

// sortStream buffers the entire upstream, stably sorts it ascending by key,
// and re-emits it. A value pair that key.ValueOf produces for two records
// but that cannot be ordered (record.KeyValue.Compare's second return is
// false — e.g. a string compared against a bool) fails the run with an
// *OrderError rather than silently picking an arbitrary order.
//
// Buffering the whole input is unavoidable for a general sort (there is no
// streaming algorithm for an arbitrary comparator), so Sort is the one
// operator that always materializes its own input regardless of the
// upstream graph's needsMaterialize decision.
func sortStream(failure *runFailure, upstream Stream, key record.Key) Stream {
	return func(yield func(record.Record) bool) {
		buffered := make([]record.Record, 0)
		for rec := range upstream {
			if failure.failed() {
				return
			}
			buffered = append(buffered, rec)
		}

		var orderErr error
		sort.SliceStable(buffered, func(i, j int) bool {
			if orderErr != nil {
				return false
			}
			cmp, ok := key.ValueOf(buffered[i]).Compare(key.ValueOf(buffered[j]))
			if !ok {
				orderErr = orderErrorf("sort: values for key %v are not comparable", []string(key))
				return false
			}
			return cmp < 0
		})
		if orderErr != nil {
			failure.set(orderErr)
			return
		}

		for _, rec := range buffered {
			if !yield(rec) {
				return
			}
		}
	}
}
