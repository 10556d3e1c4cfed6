package ffx

import (
	"errors"
	"sync"
	"testing"
)

const (
	typeA DescType = EffectUpscale | 0x00F0
	typeB DescType = EffectUpscale | 0x00F1
	typeC DescType = EffectFrameGeneration | 0x00F0
)

func newTestRegistry() (*Registry, *fakeProvider, *fakeProvider, *fakeProvider) {
	first := newFake(0x10, "first", typeA)
	second := newFake(0x20, "second", typeA, typeB)
	third := newFake(0x30, "third", typeB)
	return NewRegistry(first, second, third), first, second, third
}

func TestSelectFirstMatchWins(t *testing.T) {
	reg, first, second, _ := newTestRegistry()

	tests := []struct {
		t    DescType
		want Provider
	}{
		{typeA, first},
		{typeB, second},
	}
	for _, tt := range tests {
		got, err := reg.Select(tt.t, NoOverride)
		if err != nil {
			t.Fatalf("Select(%v) error = %v", tt.t, err)
		}
		if got != tt.want {
			t.Errorf("Select(%v) = %s, want %s", tt.t, got.Version(), tt.want.Version())
		}
	}
}

func TestSelectDeterministic(t *testing.T) {
	reg, _, _, _ := newTestRegistry()
	want, err := reg.Select(typeB, NoOverride)
	if err != nil {
		t.Fatal(err)
	}
	for range 100 {
		got, err := reg.Select(typeB, NoOverride)
		if err != nil || got != want {
			t.Fatalf("Select() = %v, %v; want %s", got, err, want.Version())
		}
	}
}

func TestSelectOverrideIgnoresCapability(t *testing.T) {
	reg, first, _, third := newTestRegistry()

	// third cannot provide typeA but is forced by identifier.
	got, err := reg.Select(typeA, third.ID())
	if err != nil {
		t.Fatalf("Select(typeA, third) error = %v", err)
	}
	if got != third {
		t.Errorf("Select(typeA, third) = %s, want third", got.Version())
	}

	// An override for a capable provider that is not first still wins.
	got, err = reg.Select(typeB, first.ID())
	if err != nil || got != first {
		t.Errorf("Select(typeB, first) = %v, %v; want first", got, err)
	}
}

func TestSelectUnknownOverrideNoFallback(t *testing.T) {
	reg, _, _, _ := newTestRegistry()

	got, err := reg.Select(typeA, 0xDEAD)
	if !errors.Is(err, ErrProviderNotFound) {
		t.Fatalf("Select(unknown override) error = %v, want ErrProviderNotFound", err)
	}
	if got != nil {
		t.Errorf("Select(unknown override) returned %s, want nil", got.Version())
	}
}

func TestSelectNoCapableProvider(t *testing.T) {
	reg, _, _, _ := newTestRegistry()
	if _, err := reg.Select(typeC, NoOverride); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("Select(typeC) error = %v, want ErrProviderNotFound", err)
	}

	empty := NewRegistry()
	if _, err := empty.Select(typeA, NoOverride); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("empty Select() error = %v, want ErrProviderNotFound", err)
	}
}

func TestVersionsCountOnly(t *testing.T) {
	reg, first, second, third := newTestRegistry()

	tests := []struct {
		t    DescType
		want int
	}{
		{typeA, 2},
		{typeB, 2},
		{typeC, 0},
	}
	for _, tt := range tests {
		if got := reg.Versions(tt.t, nil); got != tt.want {
			t.Errorf("Versions(%v, nil) = %d, want %d", tt.t, got, tt.want)
		}
		if got := reg.Versions(tt.t, []Version{}); got != tt.want {
			t.Errorf("Versions(%v, empty) = %d, want %d", tt.t, got, tt.want)
		}
	}

	// Count-only must not touch the providers' capability answers.
	for _, p := range []*fakeProvider{first, second, third} {
		if p.destroyed != 0 || len(p.queries) != 0 {
			t.Errorf("%s: unexpected side effects", p.version)
		}
	}
}

func TestVersionsTruncates(t *testing.T) {
	reg, first, second, _ := newTestRegistry()

	dst := make([]Version, 1)
	if got := reg.Versions(typeA, dst); got != 2 {
		t.Errorf("Versions(typeA, 1) = %d, want total 2", got)
	}
	if dst[0] != (Version{ID: first.ID(), Label: "first"}) {
		t.Errorf("dst[0] = %+v, want first", dst[0])
	}

	full := make([]Version, 4)
	if got := reg.Versions(typeA, full); got != 2 {
		t.Errorf("Versions(typeA, 4) = %d, want 2", got)
	}
	want := []Version{{first.ID(), "first"}, {second.ID(), "second"}, {}, {}}
	for i := range want {
		if full[i] != want[i] {
			t.Errorf("full[%d] = %+v, want %+v", i, full[i], want[i])
		}
	}

	// The true count is unchanged by truncation.
	if got := reg.Versions(typeA, nil); got != 2 {
		t.Errorf("Versions(typeA, nil) after truncation = %d, want 2", got)
	}
}

func TestNewRegistryPanics(t *testing.T) {
	tests := []struct {
		name      string
		providers []Provider
	}{
		{"nil provider", []Provider{newFake(1, "a"), nil}},
		{"reserved id", []Provider{newFake(NoOverride, "zero")}},
		{"duplicate id", []Provider{newFake(7, "a"), newFake(7, "b")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("NewRegistry() did not panic")
				}
			}()
			NewRegistry(tt.providers...)
		})
	}
}

func TestRegistryIsImmutable(t *testing.T) {
	a, b := newFake(1, "a", typeA), newFake(2, "b", typeA)
	list := []Provider{a, b}
	reg := NewRegistry(list...)

	list[0] = b
	got := reg.Providers()
	got[1] = a

	if p, _ := reg.Select(typeA, NoOverride); p != a {
		t.Error("registry changed through the caller's slice")
	}
	if reg.Providers()[1] != b {
		t.Error("registry changed through Providers()")
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistryQuery(t *testing.T) {
	reg, first, _, third := newTestRegistry()

	if err := reg.Query(&fakeDesc{typeA}); err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if len(first.queries) != 1 || first.queries[0] != nil {
		t.Errorf("first.queries = %v, want one context-free query", first.queries)
	}

	if err := reg.Query(&fakeDesc{typeA}, WithVersion(third.ID())); err != nil {
		t.Fatalf("Query(override) error = %v", err)
	}
	if len(third.queries) != 1 {
		t.Error("override should route the query to third")
	}

	if err := reg.Query(nil); !errors.Is(err, ErrNilDescriptor) {
		t.Errorf("Query(nil) error = %v, want ErrNilDescriptor", err)
	}
	if err := reg.Query(&fakeDesc{typeC}); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("Query(typeC) error = %v, want ErrProviderNotFound", err)
	}
}

func TestRegistryConcurrentReads(t *testing.T) {
	reg, first, _, _ := newTestRegistry()

	var wg sync.WaitGroup
	for range 64 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dst := make([]Version, 1)
			for range 100 {
				p, err := reg.Select(typeA, NoOverride)
				if err != nil || p != first {
					t.Error("concurrent Select returned a different provider")
					return
				}
				if reg.Versions(typeA, dst) != 2 {
					t.Error("concurrent Versions returned a different count")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestDescTypeEffect(t *testing.T) {
	tests := []struct {
		t    DescType
		want DescType
	}{
		{DescUpscaleCreate, EffectUpscale},
		{DescUpscaleConfigureKeyValue, EffectUpscale},
		{DescFrameGenerationCreate, EffectFrameGeneration},
	}
	for _, tt := range tests {
		if got := tt.t.Effect(); got != tt.want {
			t.Errorf("%v.Effect() = %v, want %v", tt.t, got, tt.want)
		}
	}
	if got := DescType(0x00010042).String(); got != "0x00010042" {
		t.Errorf("String() = %q, want hex for unknown types", got)
	}
	if got := DescUpscaleDispatch.String(); got != "upscale.dispatch" {
		t.Errorf("String() = %q", got)
	}
}

func BenchmarkSelect(b *testing.B) {
	reg, _, _, _ := newTestRegistry()
	b.ReportAllocs()
	for b.Loop() {
		_, _ = reg.Select(typeB, NoOverride)
	}
}

func BenchmarkVersionsCount(b *testing.B) {
	reg, _, _, _ := newTestRegistry()
	b.ReportAllocs()
	for b.Loop() {
		_ = reg.Versions(typeA, nil)
	}
}
