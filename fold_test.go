package compgraph

import (
	"errors"
	"testing"

	"github.com/flowgraph/compgraph/record"
)

func TestFoldStream_SinglePassAccumulation(testCase *testing.T) {
	upstream := sliceStream([]record.Record{
		{"n": record.Int(1)},
		{"n": record.Int(2)},
		{"n": record.Int(3)},
	})

	sumAll := func(input Stream) record.Record {
		var total int64
		for rec := range input {
			n, _ := rec["n"].Int()
			total += n
		}
		return record.Record{"total": record.Int(total)}
	}

	failure := &runFailure{}
	out := collectStream(testCase, foldStream(failure, upstream, sumAll))
	if failure.get() != nil {
		testCase.Fatalf("unexpected failure: %v", failure.get())
	}
	if len(out) != 1 {
		testCase.Fatalf("expected exactly one summary record, got %d", len(out))
	}
	if total, _ := out[0]["total"].Int(); total != 6 {
		testCase.Errorf("expected total=6, got %d", total)
	}
}

func TestFoldStream_PanicBecomesUserError(testCase *testing.T) {
	upstream := sliceStream([]record.Record{{"n": record.Int(1)}})
	boom := func(input Stream) record.Record {
		panic(errors.New("boom"))
	}

	failure := &runFailure{}
	collectStream(testCase, foldStream(failure, upstream, boom))

	var userErr *UserError
	if !errors.As(failure.get(), &userErr) {
		testCase.Fatalf("expected *UserError, got %v", failure.get())
	}
	if userErr.Op != "fold" {
		testCase.Errorf("expected Op=fold, got %s", userErr.Op)
	}
}
