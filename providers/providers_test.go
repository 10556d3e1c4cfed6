package providers

import (
	"errors"
	"testing"

	"github.com/gogpu/ffx"
	"github.com/gogpu/ffx/backend"
	"github.com/gogpu/ffx/upscale"
)

func TestRegistryOrder(t *testing.T) {
	got := Registry.Providers()
	want := []ffx.Provider{upscale.Current, upscale.Legacy}
	if len(got) != len(want) {
		t.Fatalf("Providers() = %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Providers()[%d] = %s, want %s", i, got[i].Version(), want[i].Version())
		}
	}
}

func TestRegistrySelection(t *testing.T) {
	tests := []struct {
		name     string
		t        ffx.DescType
		override uint64
		want     ffx.Provider
		wantErr  error
	}{
		{"create picks current", upscale.DescCreate, ffx.NoOverride, upscale.Current, nil},
		{"reactive picks current", upscale.DescGenerateReactive, ffx.NoOverride, upscale.Current, nil},
		{"override legacy", upscale.DescCreate, upscale.Legacy.ID(), upscale.Legacy, nil},
		{"override ignores capability", upscale.DescGenerateReactive, upscale.Legacy.ID(), upscale.Legacy, nil},
		{"frame generation", ffx.DescFrameGenerationCreate, ffx.NoOverride, nil, ffx.ErrProviderNotFound},
		{"unknown override", upscale.DescCreate, 0x1234, nil, ffx.ErrProviderNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Registry.Select(tt.t, tt.override)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Select() error = %v, want %v", err, tt.wantErr)
			}
			if p != tt.want {
				t.Errorf("Select() = %v, want %v", p, tt.want)
			}
		})
	}
}

func TestRegistryVersions(t *testing.T) {
	tests := []struct {
		t    ffx.DescType
		want []ffx.Version
	}{
		{upscale.DescCreate, []ffx.Version{
			{ID: upscale.Current.ID(), Label: "3.1.4"},
			{ID: upscale.Legacy.ID(), Label: "3.0.3"},
		}},
		{upscale.DescGenerateReactive, []ffx.Version{
			{ID: upscale.Current.ID(), Label: "3.1.4"},
		}},
		{ffx.DescFrameGenerationCreate, nil},
	}
	for _, tt := range tests {
		t.Run(tt.t.String(), func(t *testing.T) {
			if n := Registry.Versions(tt.t, nil); n != len(tt.want) {
				t.Errorf("Versions(nil) = %d, want %d", n, len(tt.want))
			}
			buf := make([]ffx.Version, 4)
			n := Registry.Versions(tt.t, buf)
			if n != len(tt.want) {
				t.Fatalf("Versions() = %d, want %d", n, len(tt.want))
			}
			for i, v := range tt.want {
				if buf[i] != v {
					t.Errorf("Versions()[%d] = %+v, want %+v", i, buf[i], v)
				}
			}
		})
	}
}

func TestRegistryEndToEnd(t *testing.T) {
	b := backend.NewHeadlessBackend()
	if err := b.Init(); err != nil {
		t.Fatal(err)
	}

	var size [2]uint32
	err := Registry.Query(&upscale.QueryRenderSizeDesc{
		DisplaySize:   [2]uint32{2560, 1440},
		QualityMode:   upscale.QualityPerformance,
		OutRenderSize: &size,
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx, err := Registry.CreateContext(&upscale.CreateDesc{
		MaxRenderSize:  size,
		MaxUpscaleSize: [2]uint32{2560, 1440},
		Flags:          upscale.FlagHDR | upscale.FlagInvertedDepth,
	}, ffx.WithBackend(b))
	if err != nil {
		t.Fatalf("CreateContext() error = %v", err)
	}
	if ctx.Provider() != upscale.Current {
		t.Errorf("Provider() = %s, want current", ctx.Provider().Version())
	}

	err = ctx.Dispatch(&upscale.DispatchDesc{RenderSize: size, UpscaleSize: [2]uint32{2560, 1440}})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if n := len(b.Records()); n != 1 {
		t.Errorf("got %d dispatches, want 1", n)
	}
	if err := ctx.Destroy(); err != nil {
		t.Fatal(err)
	}
	if b.LivePipelines() != 0 {
		t.Error("pipelines left after Destroy")
	}
}
