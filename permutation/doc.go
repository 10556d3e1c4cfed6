// Package permutation resolves precompiled shader program variants from a
// set of boolean feature options.
//
// Each shader stage ships a [Table] produced ahead of time by an external
// generator. A table pairs a [Layout] (the named option bits of the stage,
// lowest bit first) with a dense indirection table that maps every possible
// [OptionSet] value to one [Variant]. Several option sets may alias the same
// variant when the generator found the compiled program to be identical for
// them; that deduplication happens at generation time, never at run time.
//
// # Resolution
//
// Resolution is a single indexed load:
//
//	v, err := table.Resolve(permutation.OptionSet(0b000101))
//	if err != nil {
//		// err wraps ErrOutOfRange: the set has bits outside the layout.
//	}
//	entries, err := v.BindGroupLayouts(gputypes.ShaderStageCompute)
//
// Tables are validated once, when they are built with [NewTable] or decoded
// with [UnmarshalTable]. Indirection entries pointing past the variant list
// and malformed binding records are reported as [ErrInvalidTable];
// [MustTable] turns them into a panic for tables compiled into the binary.
// After validation [Table.Resolve] performs no further checks beyond the
// option range, does not allocate on success, and is safe for concurrent use.
//
// # Binding metadata
//
// A [Variant] groups its resource bindings by [BindingClass]. Each class is
// an optional ordered list of [Binding] records: a nil list means the class
// is absent from the program, an empty non-nil list means it is present but
// declares nothing. Callers should treat [Bindings.Count] as authoritative.
//
// Variants returned by a table are shared, process-lifetime data and must
// not be modified.
package permutation
