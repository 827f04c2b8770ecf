package compgraph

import "github.com/flowgraph/compgraph/record"

// mapStream applies mapper to each upstream record in order, forwarding
// whatever mapper emits. A panic inside mapper is recovered and reported as
// a *UserError through failure, which also stops the stream promptly.
//
// mapper is invoked through an emit-callback rather than a single return
// value, so one input record can expand into zero or more outputs — the
// same Map contract github.com/gimlids/dmrgo's Mapper.Map(key, value,
// Emitter) exposes.
func mapStream(failure *runFailure, upstream Stream, mapper Mapper) Stream {
	return func(yield func(record.Record) bool) {
		for rec := range upstream {
			if failure.failed() {
				return
			}

			var emitted []record.Record
			var caught error
			func() {
				defer recoverUserError("map", &caught)
				mapper(rec.Clone(), func(out record.Record) {
					emitted = append(emitted, out)
				})
			}()
			if caught != nil {
				failure.set(caught)
				return
			}

			for _, out := range emitted {
				if !yield(out) {
					return
				}
			}
		}
	}
}
