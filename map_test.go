package compgraph

import (
	"errors"
	"testing"

	"github.com/flowgraph/compgraph/record"
)

func collectStream(testCase *testing.T, s Stream) []record.Record {
	testCase.Helper()
	var out []record.Record
	for rec := range s {
		out = append(out, rec)
	}
	return out
}

func TestMapStream_FanOut(testCase *testing.T) {
	upstream := sliceStream([]record.Record{
		{"n": record.Int(2)},
		{"n": record.Int(3)},
	})

	double := func(rec record.Record, emit func(record.Record)) {
		n, _ := rec["n"].Int()
		emit(record.Record{"n": record.Int(n)})
		emit(record.Record{"n": record.Int(n * 10)})
	}

	failure := &runFailure{}
	out := collectStream(testCase, mapStream(failure, upstream, double))
	if len(out) != 4 {
		testCase.Fatalf("expected 4 records, got %d", len(out))
	}
	if n, _ := out[3]["n"].Int(); n != 30 {
		testCase.Errorf("expected last record n=30, got %d", n)
	}
}

func TestMapStream_MutationDoesNotAliasUpstream(testCase *testing.T) {
	upstream := sliceStream([]record.Record{{"n": record.Int(1)}})

	mutate := func(rec record.Record, emit func(record.Record)) {
		rec["n"] = record.Int(99)
		emit(rec)
	}

	failure := &runFailure{}
	original := []record.Record{{"n": record.Int(1)}}
	for rec := range mapStream(failure, sliceStream(original), mutate) {
		if n, _ := rec["n"].Int(); n != 99 {
			testCase.Errorf("expected mapped record n=99, got %d", n)
		}
	}
	if n, _ := original[0]["n"].Int(); n != 1 {
		testCase.Errorf("expected upstream slice record untouched, got n=%d", n)
	}
	_ = upstream
}

func TestMapStream_PanicBecomesUserError(testCase *testing.T) {
	upstream := sliceStream([]record.Record{{"n": record.Int(1)}})
	boom := func(rec record.Record, emit func(record.Record)) {
		panic(errors.New("boom"))
	}

	failure := &runFailure{}
	collectStream(testCase, mapStream(failure, upstream, boom))

	var userErr *UserError
	if !errors.As(failure.get(), &userErr) {
		testCase.Fatalf("expected *UserError, got %v", failure.get())
	}
	if userErr.Op != "map" {
		testCase.Errorf("expected Op=map, got %s", userErr.Op)
	}
}

// sliceStream is a small test helper turning a slice into a Stream.
func sliceStream(recs []record.Record) Stream {
	return func(yield func(record.Record) bool) {
		for _, rec := range recs {
			if !yield(rec) {
				return
			}
		}
	}
}
