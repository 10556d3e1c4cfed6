package permutation

import (
	"errors"
	"fmt"
)

// Common permutation errors.
var (
	// ErrOutOfRange is returned when an option set has bits outside the
	// stage layout.
	ErrOutOfRange = errors.New("permutation: option set out of range")

	// ErrInvalidTable is returned when a table violates a generator
	// invariant (indirection length, variant indices, binding records).
	ErrInvalidTable = errors.New("permutation: invalid table")

	// ErrCorruptTable is returned when an encoded table cannot be decoded.
	ErrCorruptTable = errors.New("permutation: corrupt table encoding")

	// ErrUnsupportedBinding is returned when a binding class has no
	// WebGPU equivalent.
	ErrUnsupportedBinding = errors.New("permutation: unsupported binding class")

	// ErrBindingConflict is returned when two bindings share a slot in the
	// same register space.
	ErrBindingConflict = errors.New("permutation: binding slot conflict")
)

// RangeError reports an option set that does not fit the stage layout.
type RangeError struct {
	Stage   string
	Options OptionSet
	Size    uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("permutation: option set %#x out of range for stage %q (table size %d)",
		uint32(e.Options), e.Stage, e.Size)
}

// Unwrap returns ErrOutOfRange.
func (e *RangeError) Unwrap() error { return ErrOutOfRange }

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidTable}, args...)...)
}
