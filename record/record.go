package record

// Record is an unordered mapping from field name to Value. Operators add,
// remove, or rename fields freely; the field set is never declared ahead of
// time. Two records compare equal (see Equal) iff they have the same fields
// with equal values.
type Record map[string]Value

// New returns an empty Record ready for field assignment.
func New() Record {
	return make(Record)
}

// FromMap builds a Record from a plain Go map, converting each value with
// [FromAny]. It panics if any value is of an unsupported type.
func FromMap(m map[string]any) Record {
	r := make(Record, len(m))
	for k, v := range m {
		r[k] = FromAny(v)
	}
	return r
}

// Clone returns a shallow copy of r. Because Value is an immutable scalar,
// a shallow copy is sufficient to guarantee that mutating the clone never
// aliases the original — this is the "copy" a Map operator's mapper receives
// so that in-place field mutation cannot corrupt upstream state.
func (r Record) Clone() Record {
	clone := make(Record, len(r))
	for k, v := range r {
		clone[k] = v
	}
	return clone
}

// Equal reports whether r and other have exactly the same fields with equal
// values.
func (r Record) Equal(other Record) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Key is a tuple of field names declared by a reduce, sort, or join operator.
// Single field names are normalized to a one-element Key by the graph
// builder; Key itself imposes no such normalization.
type Key []string

// KeyValue is the tuple of a record's values at the fields of a Key, in the
// Key's declared order.
type KeyValue []Value

// ValueOf extracts the KeyValue of r under key: the tuple of r's values at
// key's field names, in order. A field absent from r yields the null Value
// at that position rather than an error — absence is a valid (if usually
// surprising) key component, and operators that care distinguish it via
// Value.IsNull.
func (k Key) ValueOf(r Record) KeyValue {
	kv := make(KeyValue, len(k))
	for i, field := range k {
		kv[i] = r[field]
	}
	return kv
}

// AsRecord builds a fresh Record containing exactly the key's fields, set to
// the corresponding values in kv. This is the key_record a Reduce node's
// reducer receives.
func (k Key) AsRecord(kv KeyValue) Record {
	r := make(Record, len(k))
	for i, field := range k {
		r[field] = kv[i]
	}
	return r
}

// Compare orders a against b lexicographically over their component Values,
// in the declared field order. Ok is false the moment a component pair is
// incomparable (see Value.Compare) or the tuples have different arity.
func (a KeyValue) Compare(b KeyValue) (int, bool) {
	if len(a) != len(b) {
		return 0, false
	}
	for i := range a {
		cmp, ok := a[i].Compare(b[i])
		if !ok {
			return 0, false
		}
		if cmp != 0 {
			return cmp, true
		}
	}
	return 0, true
}

// Equal reports whether a and b compare equal under Compare.
func (a KeyValue) Equal(b KeyValue) bool {
	cmp, ok := a.Compare(b)
	return ok && cmp == 0
}

// Contains reports whether field is one of key's declared fields.
func (k Key) Contains(field string) bool {
	for _, f := range k {
		if f == field {
			return true
		}
	}
	return false
}
