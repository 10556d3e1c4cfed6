package permutation

import "fmt"

// OptionSet is a bitmask of boolean feature options for one shader stage.
// The meaning of each bit is fixed by the stage's [Layout].
type OptionSet uint32

// Has reports whether every bit of o is set in s.
func (s OptionSet) Has(o OptionSet) bool { return s&o == o }

// MaxOptions is the widest layout a stage may declare.
const MaxOptions = 32

// Layout names the option bits of a shader stage, lowest bit first.
// The bit order is part of the stage's public contract.
type Layout struct {
	names []string
}

// NewLayout creates a layout from option names, lowest bit first.
// Names must be non-empty and unique; at most MaxOptions are allowed.
func NewLayout(names ...string) (Layout, error) {
	if len(names) > MaxOptions {
		return Layout{}, invalidf("layout has %d options, max %d", len(names), MaxOptions)
	}
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return Layout{}, invalidf("option %d has an empty name", i)
		}
		if _, dup := seen[n]; dup {
			return Layout{}, invalidf("duplicate option %q", n)
		}
		seen[n] = struct{}{}
	}
	return Layout{names: append([]string(nil), names...)}, nil
}

// MustLayout is like NewLayout but panics on error.
func MustLayout(names ...string) Layout {
	l, err := NewLayout(names...)
	if err != nil {
		panic(err)
	}
	return l
}

// Width returns the number of option bits.
func (l Layout) Width() int { return len(l.names) }

// Size returns the number of distinct option sets, 2^Width.
func (l Layout) Size() uint64 { return uint64(1) << uint(len(l.names)) }

// Contains reports whether s uses only bits defined by the layout.
func (l Layout) Contains(s OptionSet) bool { return uint64(s) < l.Size() }

// Name returns the name of option bit i, or "" if i is out of range.
func (l Layout) Name(i int) string {
	if i < 0 || i >= len(l.names) {
		return ""
	}
	return l.names[i]
}

// Names returns a copy of the option names, lowest bit first.
func (l Layout) Names() []string {
	return append([]string(nil), l.names...)
}

// Bit returns the single-bit option set for the named option.
func (l Layout) Bit(name string) (OptionSet, bool) {
	for i, n := range l.names {
		if n == name {
			return OptionSet(1) << uint(i), true
		}
	}
	return 0, false
}

// Set builds an option set from option names.
func (l Layout) Set(names ...string) (OptionSet, error) {
	var s OptionSet
	for _, n := range names {
		b, ok := l.Bit(n)
		if !ok {
			return 0, fmt.Errorf("permutation: unknown option %q", n)
		}
		s |= b
	}
	return s, nil
}

// Describe returns the names of the options set in s, lowest bit first.
// Bits outside the layout are ignored.
func (l Layout) Describe(s OptionSet) []string {
	var out []string
	for i, n := range l.names {
		if s&(OptionSet(1)<<uint(i)) != 0 {
			out = append(out, n)
		}
	}
	return out
}
