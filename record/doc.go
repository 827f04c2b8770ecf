// Package record defines the dynamically typed record that flows through a
// compgraph pipeline: an unordered mapping from string field names to
// [Value], plus the [Key] / [KeyValue] machinery operators use to group,
// sort, and join records.
//
// Value is a tagged union over the scalar kinds a record field can hold
// (int64, float64, string, bool) so that a statically typed Go program can
// still carry the heterogeneous, schema-less records the core API contract
// requires. Construct values with [Int], [Float], [Str], [Bool], or [Null],
// and read them back with [Value.Int], [Value.Float], [Value.String],
// [Value.Bool], and [Value.IsNull].
package record
