package permutation

import (
	"bytes"
	"encoding/binary"
	"errors"
	"reflect"
	"runtime"
	"testing"
)

func TestTableBinaryRoundTrip(t *testing.T) {
	tbl := newTestTable(t)
	// Mark one class present-but-empty to check it survives encoding.
	tbl.variants[0].Bindings[BufferSRV] = []Binding{}

	data, err := tbl.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("FXPT")) {
		t.Fatalf("encoding does not start with magic: %q", data[:4])
	}

	got, err := UnmarshalTable(data)
	if err != nil {
		t.Fatalf("UnmarshalTable() error = %v", err)
	}
	if got.Name() != tbl.Name() || !reflect.DeepEqual(got.Layout().Names(), tbl.Layout().Names()) {
		t.Error("stage name or layout changed")
	}
	if !reflect.DeepEqual(got.indirection, tbl.indirection) {
		t.Error("indirection table changed")
	}
	if !reflect.DeepEqual(got.variants, tbl.variants) {
		t.Error("variants changed")
	}
	if !got.variants[0].Bindings.Present(BufferSRV) || got.variants[0].Bindings.Present(BufferUAV) {
		t.Error("binding class presence was not preserved")
	}

	again, err := got.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(again, data) {
		t.Error("re-encoding is not byte-for-byte stable")
	}
}

func TestUnmarshalTableCorrupt(t *testing.T) {
	data, err := newTestTable(t).MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}

	badMagic := append([]byte(nil), data...)
	badMagic[0] = 'X'
	badVersion := append([]byte(nil), data...)
	badVersion[4] = 9

	tests := map[string][]byte{
		"empty":       nil,
		"bad magic":   badMagic,
		"bad version": badVersion,
		"truncated":   data[:len(data)-3],
		"header only": data[:6],
		"trailing":    append(append([]byte(nil), data...), 0),
	}
	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := UnmarshalTable(in); !errors.Is(err, ErrCorruptTable) {
				t.Errorf("UnmarshalTable() error = %v, want ErrCorruptTable", err)
			}
		})
	}
}

func TestUnmarshalTableHugeVariantCount(t *testing.T) {
	const variants = 4 << 20

	// Header with no options and no indirection entries, followed by a
	// variant count far larger than the zero payload could hold.
	data := []byte("FXPT")
	data = binary.LittleEndian.AppendUint16(data, tableVersion)
	data = binary.LittleEndian.AppendUint16(data, 0) // stage name
	data = append(data, 0)                           // option count
	data = binary.LittleEndian.AppendUint32(data, 0) // indirection count
	data = binary.LittleEndian.AppendUint32(data, variants)
	data = append(data, make([]byte, variants)...)

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := UnmarshalTable(data)
	runtime.ReadMemStats(&after)

	if !errors.Is(err, ErrCorruptTable) {
		t.Fatalf("UnmarshalTable() error = %v, want ErrCorruptTable", err)
	}
	if alloc := after.TotalAlloc - before.TotalAlloc; alloc > uint64(len(data)) {
		t.Errorf("decoder allocated %d bytes for a %d byte input", alloc, len(data))
	}
}

func TestMinimumEncodedSizes(t *testing.T) {
	var w encoder
	w.buf = append(w.buf, 0) // format
	w.u32(0)
	if err := w.str(""); err != nil {
		t.Fatal(err)
	}
	for range 3 {
		w.u32(0)
	}
	for range NumBindingClasses {
		w.buf = append(w.buf, 0)
	}
	if len(w.buf) != minVariantSize {
		t.Errorf("empty variant encodes to %d bytes, minVariantSize = %d", len(w.buf), minVariantSize)
	}

	w = encoder{}
	if err := w.str(""); err != nil {
		t.Fatal(err)
	}
	for range 4 {
		w.u32(0)
	}
	if len(w.buf) != minBindingSize {
		t.Errorf("empty binding encodes to %d bytes, minBindingSize = %d", len(w.buf), minBindingSize)
	}
}

func TestUnmarshalTableValidates(t *testing.T) {
	tbl := newTestTable(t)
	// Corrupt the in-memory table past NewTable's checks, then encode it.
	tbl.indirection[10] = 7

	data, err := tbl.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := UnmarshalTable(data); !errors.Is(err, ErrInvalidTable) {
		t.Errorf("UnmarshalTable() error = %v, want ErrInvalidTable", err)
	}
}
