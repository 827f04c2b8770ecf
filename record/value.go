package record

import "fmt"

// Kind identifies the dynamic type carried by a Value.
type Kind int

const (
	// KindNull marks an explicit absence of a value, distinct from a field
	// simply not being present in a Record.
	KindNull Kind = iota
	KindInt
	KindFloat
	KindString
	KindBool
)

// String returns a human-readable name for the kind, used in error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a tagged union over the scalar types a record field may hold.
// The zero Value is KindNull.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Int returns an integer value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Str returns a string value.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns a boolean value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Kind returns the dynamic type tag of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Int returns the integer payload of v. Ok is false if v is not KindInt.
func (v Value) Int() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Float returns the floating-point payload of v, widening an int value.
// Ok is false for any other kind.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// String returns the string payload of v. Ok is false if v is not KindString.
func (v Value) String() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Bool returns the boolean payload of v. Ok is false if v is not KindBool.
func (v Value) Bool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// Any returns the payload of v boxed as interface{}, or nil for KindNull.
// Useful for interop with encoding/json and fmt.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// FromAny converts a Go value of type int, int64, float64, string, bool, or
// nil into a Value. It panics for any other type, since it is intended for
// adapters at the edge of the library (e.g. JSON decoding) that control their
// own input shape.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case int:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float64:
		return Float(t)
	case string:
		return Str(t)
	case bool:
		return Bool(t)
	default:
		panic(fmt.Sprintf("record: cannot convert %T to Value", x))
	}
}

// Compare orders a against b. It returns (-1, true) if a < b, (0, true) if
// a == b, (1, true) if a > b. Ok is false when the two values have
// incomparable kinds: numeric kinds (int/float) compare against each other
// numerically, but any other kind mismatch (e.g. string vs bool, or either
// side being null while the other is not) is reported as incomparable so
// callers can surface it as a sort/reduce/join ordering error rather than
// silently mis-order records.
func (v Value) Compare(other Value) (int, bool) {
	if v.kind == KindNull && other.kind == KindNull {
		return 0, true
	}

	vIsNum := v.kind == KindInt || v.kind == KindFloat
	oIsNum := other.kind == KindInt || other.kind == KindFloat
	if vIsNum && oIsNum {
		af, _ := v.Float()
		bf, _ := other.Float()
		switch {
		case af < bf:
			return -1, true
		case af > bf:
			return 1, true
		default:
			return 0, true
		}
	}

	if v.kind != other.kind {
		return 0, false
	}

	switch v.kind {
	case KindString:
		switch {
		case v.s < other.s:
			return -1, true
		case v.s > other.s:
			return 1, true
		default:
			return 0, true
		}
	case KindBool:
		switch {
		case v.b == other.b:
			return 0, true
		case !v.b && other.b:
			return -1, true
		default:
			return 1, true
		}
	default:
		return 0, false
	}
}

// Equal reports whether v and other represent the same value. Unlike
// Compare, incomparable kinds are simply unequal rather than an error.
func (v Value) Equal(other Value) bool {
	cmp, ok := v.Compare(other)
	return ok && cmp == 0
}
