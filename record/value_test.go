package record

import "testing"

func TestValue_Compare_Numeric(testCase *testing.T) {
	cmp, ok := Int(1).Compare(Float(2.5))
	if !ok {
		testCase.Fatalf("expected int/float comparison to be ok")
	}
	if cmp != -1 {
		testCase.Errorf("expected -1, got %d", cmp)
	}

	cmp, ok = Float(3.0).Compare(Int(3))
	if !ok || cmp != 0 {
		testCase.Errorf("expected 3.0 == 3, got cmp=%d ok=%v", cmp, ok)
	}
}

func TestValue_Compare_StringAndBool(testCase *testing.T) {
	cmp, ok := Str("a").Compare(Str("b"))
	if !ok || cmp != -1 {
		testCase.Errorf("expected \"a\" < \"b\", got cmp=%d ok=%v", cmp, ok)
	}

	cmp, ok = Bool(false).Compare(Bool(true))
	if !ok || cmp != -1 {
		testCase.Errorf("expected false < true, got cmp=%d ok=%v", cmp, ok)
	}
}

func TestValue_Compare_Incomparable(testCase *testing.T) {
	cases := []struct {
		name string
		a, b Value
	}{
		{"string vs bool", Str("x"), Bool(true)},
		{"string vs int", Str("x"), Int(1)},
		{"null vs int", Null(), Int(1)},
		{"int vs null", Int(1), Null()},
	}

	for _, tt := range cases {
		if _, ok := tt.a.Compare(tt.b); ok {
			testCase.Errorf("%s: expected incomparable, got ok=true", tt.name)
		}
	}
}

func TestValue_FromAny_Roundtrip(testCase *testing.T) {
	cases := []any{42, int64(42), 3.14, "hi", true, nil}
	for _, c := range cases {
		v := FromAny(c)
		got := v.Any()
		switch want := c.(type) {
		case int:
			if got != int64(want) {
				testCase.Errorf("FromAny(%v).Any() = %v, want %v", c, got, int64(want))
			}
		default:
			if got != c {
				testCase.Errorf("FromAny(%v).Any() = %v, want %v", c, got, c)
			}
		}
	}
}

func TestValue_FromAny_UnsupportedPanics(testCase *testing.T) {
	defer func() {
		if recover() == nil {
			testCase.Errorf("expected panic for unsupported type")
		}
	}()
	FromAny(struct{}{})
}

func TestValue_Equal(testCase *testing.T) {
	if !Int(5).Equal(Float(5.0)) {
		testCase.Errorf("expected Int(5) to equal Float(5.0)")
	}
	if Str("a").Equal(Bool(false)) {
		testCase.Errorf("expected incomparable values to be unequal")
	}
}
