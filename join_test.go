package compgraph

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/flowgraph/compgraph/record"
)

func textOf(rec record.Record, field string) string {
	v, _ := rec[field].String()
	return v
}

func TestJoin_InnerCrossProduct(testCase *testing.T) {
	left := Create("left")
	right := Create("right")
	left.AddJoin(right, JoinInner, "id")

	sources := map[string]Source{
		"left": []record.Record{
			{"id": record.Str("x"), "l": record.Int(1)},
			{"id": record.Str("x"), "l": record.Int(2)},
			{"id": record.Str("y"), "l": record.Int(3)},
		},
		"right": []record.Record{
			{"id": record.Str("x"), "r": record.Int(10)},
			{"id": record.Str("x"), "r": record.Int(20)},
		},
	}

	out, err := RunCollect(context.Background(), left, sources)
	if err != nil {
		testCase.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 4 {
		testCase.Fatalf("expected 2x2 cross product = 4 records, got %d", len(out))
	}
	for _, rec := range out {
		if id, _ := rec["id"].String(); id != "x" {
			testCase.Errorf("expected only matched key x to survive an inner join, got %s", id)
		}
	}
}

func TestJoin_LeftKeepsUnmatchedLeftRows(testCase *testing.T) {
	left := Create("left")
	right := Create("right")
	left.AddJoin(right, JoinLeft, "id")

	sources := map[string]Source{
		"left": []record.Record{
			{"id": record.Str("x"), "l": record.Int(1)},
			{"id": record.Str("y"), "l": record.Int(2)},
		},
		"right": []record.Record{
			{"id": record.Str("x"), "r": record.Int(10)},
		},
	}

	out, err := RunCollect(context.Background(), left, sources)
	if err != nil {
		testCase.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 2 {
		testCase.Fatalf("expected matched x plus unmatched y, got %d records", len(out))
	}

	ids := make([]string, 0, len(out))
	for _, rec := range out {
		ids = append(ids, textOf(rec, "id"))
	}
	sort.Strings(ids)
	if ids[0] != "x" || ids[1] != "y" {
		testCase.Errorf("expected ids [x y], got %v", ids)
	}
}

func TestJoin_ColumnCollisionRenamesRightField(testCase *testing.T) {
	left := Create("left")
	right := Create("right")
	left.AddJoin(right, JoinInner, "id")

	sources := map[string]Source{
		"left":  []record.Record{{"id": record.Str("x"), "value": record.Int(1)}},
		"right": []record.Record{{"id": record.Str("x"), "value": record.Int(2)}},
	}

	out, err := RunCollect(context.Background(), left, sources)
	if err != nil {
		testCase.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		testCase.Fatalf("expected 1 record, got %d", len(out))
	}
	if v, _ := out[0]["value"].Int(); v != 1 {
		testCase.Errorf("expected left's value to win the collision, got %d", v)
	}
	if v, _ := out[0][".value"].Int(); v != 2 {
		testCase.Errorf("expected right's colliding value under .value, got %d", v)
	}
}

func TestJoin_UnsortedSideFailsWithOrderError(testCase *testing.T) {
	left := Create("left")
	right := Create("right")
	left.AddJoin(right, JoinInner, "id")

	sources := map[string]Source{
		"left": []record.Record{
			{"id": record.Str("b")},
			{"id": record.Str("a")},
		},
		"right": []record.Record{{"id": record.Str("a")}},
	}

	_, err := RunCollect(context.Background(), left, sources)
	var orderErr *OrderError
	if !errors.As(err, &orderErr) {
		testCase.Fatalf("expected *OrderError, got %v", err)
	}
}

// TestJoin_UnsortedSideFailsAfterOtherSideExhausts mirrors
// TestJoin_UnsortedSideFailsWithOrderError with the unsorted side on the
// right instead of the left, so the violation is only reachable through the
// !lOK && rOK advance branch rather than the lOK && !rOK one.
func TestJoin_UnsortedSideFailsAfterOtherSideExhausts(testCase *testing.T) {
	left := Create("left")
	right := Create("right")
	left.AddJoin(right, JoinInner, "id")

	sources := map[string]Source{
		"left": []record.Record{{"id": record.Str("a")}},
		"right": []record.Record{
			{"id": record.Str("b")},
			{"id": record.Str("a")},
		},
	}

	_, err := RunCollect(context.Background(), left, sources)
	var orderErr *OrderError
	if !errors.As(err, &orderErr) {
		testCase.Fatalf("expected *OrderError once the left side exhausts and right keeps descending, got %v", err)
	}
}

func TestJoin_SharedRightGraphExecutesOnce(testCase *testing.T) {
	shared := Create("shared")
	var calls int
	shared.AddMap(func(rec record.Record, emit func(record.Record)) {
		calls++
		emit(rec)
	})

	leftA := Create("a")
	leftA.AddJoin(shared, JoinInner, "id")
	leftB := Create("b")
	leftB.AddJoin(shared, JoinInner, "id")

	root := CreateFrom(leftA)
	root.AddJoin(leftB, JoinOuter, "id")

	sources := map[string]Source{
		"a":      []record.Record{{"id": record.Str("x")}},
		"b":      []record.Record{{"id": record.Str("x")}},
		"shared": []record.Record{{"id": record.Str("x")}},
	}

	_, err := RunCollect(context.Background(), root, sources)
	if err != nil {
		testCase.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		testCase.Errorf("expected the shared join target to be mapped exactly once across both joins, got %d calls", calls)
	}
}
