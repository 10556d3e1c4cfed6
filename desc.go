package ffx

import "fmt"

// DescType identifies the kind of a descriptor. The high byte of the low
// 24 bits names the effect family; the low 16 bits the operation.
type DescType uint32

// Effect families.
const (
	EffectUpscale         DescType = 0x00010000
	EffectFrameGeneration DescType = 0x00020000

	effectMask DescType = 0x00FF0000
)

// Upscale descriptor types.
const (
	DescUpscaleCreate            DescType = EffectUpscale | 0x0000
	DescUpscaleDispatch          DescType = EffectUpscale | 0x0001
	DescUpscaleQueryUpscaleRatio DescType = EffectUpscale | 0x0002
	DescUpscaleQueryRenderSize   DescType = EffectUpscale | 0x0003
	DescUpscaleQueryJitterPhases DescType = EffectUpscale | 0x0004
	DescUpscaleQueryJitterOffset DescType = EffectUpscale | 0x0005
	DescUpscaleGenerateReactive  DescType = EffectUpscale | 0x0006
	DescUpscaleConfigureKeyValue DescType = EffectUpscale | 0x0007
	DescFrameGenerationCreate    DescType = EffectFrameGeneration | 0x0000
)

// Effect returns the effect family of t.
func (t DescType) Effect() DescType {
	return t & effectMask
}

var descNames = map[DescType]string{
	DescUpscaleCreate:            "upscale.create",
	DescUpscaleDispatch:          "upscale.dispatch",
	DescUpscaleQueryUpscaleRatio: "upscale.query_upscale_ratio",
	DescUpscaleQueryRenderSize:   "upscale.query_render_size",
	DescUpscaleQueryJitterPhases: "upscale.query_jitter_phases",
	DescUpscaleQueryJitterOffset: "upscale.query_jitter_offset",
	DescUpscaleGenerateReactive:  "upscale.generate_reactive",
	DescUpscaleConfigureKeyValue: "upscale.configure_key_value",
	DescFrameGenerationCreate:    "framegeneration.create",
}

// String returns a readable name for known types and the hex value
// otherwise.
func (t DescType) String() string {
	if name, ok := descNames[t]; ok {
		return name
	}
	return fmt.Sprintf("0x%08x", uint32(t))
}

// KnownDescTypes returns every descriptor type with a name, in ascending
// order.
func KnownDescTypes() []DescType {
	return []DescType{
		DescUpscaleCreate,
		DescUpscaleDispatch,
		DescUpscaleQueryUpscaleRatio,
		DescUpscaleQueryRenderSize,
		DescUpscaleQueryJitterPhases,
		DescUpscaleQueryJitterOffset,
		DescUpscaleGenerateReactive,
		DescUpscaleConfigureKeyValue,
		DescFrameGenerationCreate,
	}
}

// Descriptor is implemented by every request passed to a provider.
type Descriptor interface {
	Type() DescType
}
