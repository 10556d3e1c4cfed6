package permutation

// Table is the generated permutation table of one shader stage.
// A Table is immutable and safe for concurrent use.
type Table struct {
	name        string
	layout      Layout
	indirection []uint32
	variants    []Variant
}

// NewTable validates generated stage data and builds a table.
//
// The indirection table must hold exactly layout.Size() entries, each a valid
// index into variants. Violations are generator defects and are reported as
// ErrInvalidTable. The table keeps its own copy of the input, so later
// changes to the caller's slices are not observed.
func NewTable(name string, layout Layout, indirection []uint32, variants []Variant) (*Table, error) {
	if name == "" {
		return nil, invalidf("empty stage name")
	}
	if uint64(len(indirection)) != layout.Size() {
		return nil, invalidf("stage %q: indirection table has %d entries, want %d",
			name, len(indirection), layout.Size())
	}
	if len(variants) == 0 {
		return nil, invalidf("stage %q: no variants", name)
	}
	for m, idx := range indirection {
		if uint64(idx) >= uint64(len(variants)) {
			return nil, invalidf("stage %q: option set %#x maps to variant %d of %d",
				name, m, idx, len(variants))
		}
	}
	for i := range variants {
		if err := variants[i].validate(); err != nil {
			return nil, invalidf("stage %q variant %d: %v", name, i, err)
		}
	}

	owned := make([]Variant, len(variants))
	for i := range variants {
		owned[i] = variants[i].clone()
	}
	return &Table{
		name:        name,
		layout:      layout,
		indirection: append([]uint32(nil), indirection...),
		variants:    owned,
	}, nil
}

// MustTable is like NewTable but panics on error.
// It is used for tables compiled into the binary, where an invalid table is
// a build defect.
func MustTable(name string, layout Layout, indirection []uint32, variants []Variant) *Table {
	t, err := NewTable(name, layout, indirection, variants)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve returns the variant compiled for the option set s.
// It fails with a *RangeError if s has bits outside the stage layout.
//
// The returned record is shared by every caller for the lifetime of the
// table and was validated when the table was built. It is read-only:
// callers must not modify it or the slices it references.
func (t *Table) Resolve(s OptionSet) (*Variant, error) {
	if uint64(s) >= uint64(len(t.indirection)) {
		return nil, &RangeError{Stage: t.name, Options: s, Size: uint64(len(t.indirection))}
	}
	return &t.variants[t.indirection[s]], nil
}

// Index returns the variant index for the option set s.
func (t *Table) Index(s OptionSet) (int, error) {
	if uint64(s) >= uint64(len(t.indirection)) {
		return 0, &RangeError{Stage: t.name, Options: s, Size: uint64(len(t.indirection))}
	}
	return int(t.indirection[s]), nil
}

// Name returns the stage name.
func (t *Table) Name() string { return t.name }

// Layout returns the stage option layout.
func (t *Table) Layout() Layout { return t.layout }

// Size returns the number of indirection entries.
func (t *Table) Size() int { return len(t.indirection) }

// Len returns the number of distinct variants.
func (t *Table) Len() int { return len(t.variants) }

// Variant returns the i-th variant. It panics if i is out of range.
// Like the result of Resolve, the record is shared and read-only.
func (t *Table) Variant(i int) *Variant { return &t.variants[i] }
