package permutation

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Format identifies the encoding of a variant's program blob.
type Format uint8

// Blob formats.
const (
	FormatUnknown Format = iota
	// FormatWGSL is WGSL source text.
	FormatWGSL
	// FormatSPIRV is a little-endian SPIR-V module.
	FormatSPIRV
	// FormatDXIL is a DXIL container.
	FormatDXIL
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatWGSL:
		return "wgsl"
	case FormatSPIRV:
		return "spirv"
	case FormatDXIL:
		return "dxil"
	default:
		return "unknown"
	}
}

// Blob is the compiled program payload of a variant.
type Blob struct {
	Format Format
	Data   []byte
}

// Size returns the payload size in bytes.
func (b Blob) Size() int { return len(b.Data) }

// BindingClass groups the resource bindings of a program.
type BindingClass uint8

// Binding classes, in generator order.
const (
	ConstantBuffer BindingClass = iota
	TextureSRV
	TextureUAV
	BufferSRV
	BufferUAV
	Sampler
	AccelerationStructure

	// NumBindingClasses is the number of binding classes.
	NumBindingClasses
)

// String returns the binding class name.
func (c BindingClass) String() string {
	switch c {
	case ConstantBuffer:
		return "cbv"
	case TextureSRV:
		return "texture_srv"
	case TextureUAV:
		return "texture_uav"
	case BufferSRV:
		return "buffer_srv"
	case BufferUAV:
		return "buffer_uav"
	case Sampler:
		return "sampler"
	case AccelerationStructure:
		return "rt_acceleration_structure"
	default:
		return "unknown"
	}
}

// Binding describes one resource binding of a program.
type Binding struct {
	// Name is the symbolic resource name in the shader.
	Name string
	// Slot is the binding register.
	Slot uint32
	// Count is the number of array elements; 1 for scalar bindings.
	Count uint32
	// Space is the register space (bind group index).
	Space uint32
	// Format is the storage format of read-write textures.
	// Zero selects RGBA16Float.
	Format gputypes.TextureFormat
}

// Bindings holds the bindings of a program, one optional list per class.
// A nil list means the class is absent.
type Bindings [NumBindingClasses][]Binding

// Class returns the bindings of class c.
func (b *Bindings) Class(c BindingClass) []Binding {
	if c >= NumBindingClasses {
		return nil
	}
	return b[c]
}

// Count returns the number of bindings of class c.
func (b *Bindings) Count(c BindingClass) int {
	return len(b.Class(c))
}

// Present reports whether class c is declared, even with no entries.
func (b *Bindings) Present(c BindingClass) bool {
	return b.Class(c) != nil
}

// Total returns the number of bindings across all classes.
func (b *Bindings) Total() int {
	n := 0
	for c := range b {
		n += len(b[c])
	}
	return n
}

// Variant is one compiled program and its resource-binding metadata.
type Variant struct {
	Blob Blob
	// EntryPoint is the program entry function.
	EntryPoint string
	// WorkgroupSize is the compute workgroup size declared by the program.
	WorkgroupSize [3]uint32
	Bindings      Bindings
}

// clone returns a copy of v that shares no memory with it. Absent binding
// classes stay nil and present-but-empty classes stay non-nil.
func (v *Variant) clone() Variant {
	c := *v
	c.Blob.Data = append([]byte(nil), v.Blob.Data...)
	for i, list := range v.Bindings {
		if list != nil {
			c.Bindings[i] = append([]Binding{}, list...)
		}
	}
	return c
}

func (v *Variant) validate() error {
	if v.Blob.Size() == 0 {
		return errors.New("empty program blob")
	}
	if v.Blob.Format == FormatUnknown {
		return errors.New("unknown blob format")
	}
	if v.EntryPoint == "" {
		return errors.New("empty entry point")
	}
	for c := range v.Bindings {
		for i, b := range v.Bindings[c] {
			if b.Name == "" {
				return fmt.Errorf("%s binding %d has no name", BindingClass(c), i)
			}
			if b.Count == 0 {
				return fmt.Errorf("%s binding %q has zero array count", BindingClass(c), b.Name)
			}
		}
	}
	return nil
}
