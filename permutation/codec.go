package permutation

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/gputypes"
)

// Binary table layout (little-endian):
//
//	magic "FXPT", version u16
//	stage name, option count u8, option names
//	indirection count u32, entries u32...
//	variant count u32, per variant:
//	  format u8, blob size u32, blob bytes, entry point,
//	  workgroup size 3*u32,
//	  per binding class: present u8, [count u32, records...]
//	  record: name, slot u32, count u32, space u32, format u32
//
// Strings are a u16 length followed by bytes.

var tableMagic = [4]byte{'F', 'X', 'P', 'T'}

const tableVersion = 1

// Smallest encodings of a variant and a binding record, used to bound
// element counts before allocating.
const (
	minVariantSize = 1 + 4 + 2 + 3*4 + int(NumBindingClasses)
	minBindingSize = 2 + 4*4
)

// MarshalBinary encodes the table in the stable binary table format.
func (t *Table) MarshalBinary() ([]byte, error) {
	var w encoder
	w.buf = append(w.buf, tableMagic[:]...)
	w.u16(tableVersion)
	if err := w.str(t.name); err != nil {
		return nil, err
	}
	w.buf = append(w.buf, uint8(t.layout.Width()))
	for _, n := range t.layout.names {
		if err := w.str(n); err != nil {
			return nil, err
		}
	}

	w.u32(uint32(len(t.indirection)))
	for _, idx := range t.indirection {
		w.u32(idx)
	}

	w.u32(uint32(len(t.variants)))
	for i := range t.variants {
		v := &t.variants[i]
		w.buf = append(w.buf, uint8(v.Blob.Format))
		if uint64(len(v.Blob.Data)) > math.MaxUint32 {
			return nil, fmt.Errorf("permutation: variant %d blob too large", i)
		}
		w.u32(uint32(len(v.Blob.Data)))
		w.buf = append(w.buf, v.Blob.Data...)
		if err := w.str(v.EntryPoint); err != nil {
			return nil, err
		}
		for _, n := range v.WorkgroupSize {
			w.u32(n)
		}
		for c := range v.Bindings {
			list := v.Bindings[c]
			if list == nil {
				w.buf = append(w.buf, 0)
				continue
			}
			w.buf = append(w.buf, 1)
			w.u32(uint32(len(list)))
			for _, b := range list {
				if err := w.str(b.Name); err != nil {
					return nil, err
				}
				w.u32(b.Slot)
				w.u32(b.Count)
				w.u32(b.Space)
				w.u32(uint32(b.Format))
			}
		}
	}
	return w.buf, nil
}

// UnmarshalTable decodes a table encoded by MarshalBinary.
// The decoded table is validated like NewTable.
func UnmarshalTable(data []byte) (*Table, error) {
	r := decoder{buf: data}

	var magic [4]byte
	copy(magic[:], r.bytes(4))
	if r.err == nil && magic != tableMagic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorruptTable, magic[:])
	}
	if v := r.u16(); r.err == nil && v != tableVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptTable, v)
	}
	name := r.str()
	names := make([]string, r.u8())
	for i := range names {
		names[i] = r.str()
	}

	n := r.count(4)
	indirection := make([]uint32, n)
	for i := range indirection {
		indirection[i] = r.u32()
	}

	variants := make([]Variant, r.count(minVariantSize))
	for i := range variants {
		v := &variants[i]
		v.Blob.Format = Format(r.u8())
		size := r.u32()
		if r.err == nil && uint64(size) > uint64(len(r.buf)) {
			r.fail("blob size %d exceeds remaining %d bytes", size, len(r.buf))
		}
		v.Blob.Data = append([]byte(nil), r.bytes(int(size))...)
		v.EntryPoint = r.str()
		for j := range v.WorkgroupSize {
			v.WorkgroupSize[j] = r.u32()
		}
		for c := range v.Bindings {
			if r.u8() == 0 {
				continue
			}
			list := make([]Binding, r.count(minBindingSize))
			for j := range list {
				list[j] = Binding{
					Name:   r.str(),
					Slot:   r.u32(),
					Count:  r.u32(),
					Space:  r.u32(),
					Format: gputypes.TextureFormat(r.u32()),
				}
			}
			v.Bindings[c] = list
		}
	}

	if r.err != nil {
		return nil, r.err
	}
	if len(r.buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorruptTable, len(r.buf))
	}

	layout, err := NewLayout(names...)
	if err != nil {
		return nil, err
	}
	return NewTable(name, layout, indirection, variants)
}

type encoder struct {
	buf []byte
}

func (w *encoder) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *encoder) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }

func (w *encoder) str(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("permutation: string of %d bytes too long to encode", len(s))
	}
	w.u16(uint16(len(s)))
	w.buf = append(w.buf, s...)
	return nil
}

// decoder reads from buf and records the first error; reads after an error
// return zero values.
type decoder struct {
	buf []byte
	err error
}

func (r *decoder) fail(format string, args ...any) {
	if r.err == nil {
		r.err = fmt.Errorf("%w: "+format, append([]any{ErrCorruptTable}, args...)...)
	}
	r.buf = nil
}

func (r *decoder) bytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n > len(r.buf) {
		r.fail("unexpected end of data")
		return nil
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b
}

func (r *decoder) u8() uint8 {
	b := r.bytes(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (r *decoder) u16() uint16 {
	b := r.bytes(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *decoder) u32() uint32 {
	b := r.bytes(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *decoder) str() string {
	return string(r.bytes(int(r.u16())))
}

// count reads an element count and rejects counts that cannot fit in the
// remaining data given a minimum encoded element size.
func (r *decoder) count(minSize int) int {
	n := r.u32()
	if r.err != nil {
		return 0
	}
	if uint64(n)*uint64(minSize) > uint64(len(r.buf)) {
		r.fail("count %d exceeds remaining %d bytes", n, len(r.buf))
		return 0
	}
	return int(n)
}
