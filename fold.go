package compgraph

import "github.com/flowgraph/compgraph/record"

// foldStream calls folder exactly once with the entire upstream and yields
// the single record it returns. A panic inside folder is recovered as a
// *UserError, matching the other operator engines.
//
// folder runs as a single-pass accumulation over the whole stream, the same
// shape as any start/end pair folding into one summary value, generalized
// here to an arbitrary user-supplied fold over records.
func foldStream(failure *runFailure, upstream Stream, folder Folder) Stream {
	return func(yield func(record.Record) bool) {
		if failure.failed() {
			return
		}

		var result record.Record
		var caught error
		func() {
			defer recoverUserError("fold", &caught)
			result = folder(upstream)
		}()
		if caught != nil {
			failure.set(caught)
			return
		}
		if failure.failed() {
			return
		}

		yield(result)
	}
}
