package permutation

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
)

// GroupLayout holds the bind group layout entries of one register space.
type GroupLayout struct {
	Space   uint32
	Entries []gputypes.BindGroupLayoutEntry
}

// BindGroupLayouts converts the variant's binding metadata into WebGPU bind
// group layout entries, one group per register space, ordered by space and
// then by binding slot.
//
// Array bindings occupy Count consecutive slots. Read-write textures are
// exposed as write-only storage textures. Acceleration structures have no
// WebGPU equivalent and fail with ErrUnsupportedBinding.
func (v *Variant) BindGroupLayouts(visibility gputypes.ShaderStages) ([]GroupLayout, error) {
	groups := make(map[uint32]*GroupLayout)
	used := make(map[[2]uint32]string)

	for c := range v.Bindings {
		class := BindingClass(c)
		for _, b := range v.Bindings[c] {
			if class == AccelerationStructure {
				return nil, fmt.Errorf("%w: %s %q", ErrUnsupportedBinding, class, b.Name)
			}
			g, ok := groups[b.Space]
			if !ok {
				g = &GroupLayout{Space: b.Space}
				groups[b.Space] = g
			}
			for i := uint32(0); i < b.Count; i++ {
				slot := b.Slot + i
				key := [2]uint32{b.Space, slot}
				if prev, taken := used[key]; taken {
					return nil, fmt.Errorf("%w: %q and %q at space %d slot %d",
						ErrBindingConflict, prev, b.Name, b.Space, slot)
				}
				used[key] = b.Name
				g.Entries = append(g.Entries, layoutEntry(class, b, slot, visibility))
			}
		}
	}

	out := make([]GroupLayout, 0, len(groups))
	for _, g := range groups {
		slices.SortFunc(g.Entries, func(a, b gputypes.BindGroupLayoutEntry) int {
			return int(a.Binding) - int(b.Binding)
		})
		out = append(out, *g)
	}
	slices.SortFunc(out, func(a, b GroupLayout) int {
		return int(a.Space) - int(b.Space)
	})
	return out, nil
}

func layoutEntry(class BindingClass, b Binding, slot uint32, visibility gputypes.ShaderStages) gputypes.BindGroupLayoutEntry {
	e := gputypes.BindGroupLayoutEntry{
		Binding:    slot,
		Visibility: visibility,
	}
	switch class {
	case ConstantBuffer:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	case TextureSRV:
		e.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	case TextureUAV:
		format := b.Format
		if format == 0 {
			format = gputypes.TextureFormatRGBA16Float
		}
		e.StorageTexture = &gputypes.StorageTextureBindingLayout{
			Access:        gputypes.StorageTextureAccessWriteOnly,
			Format:        format,
			ViewDimension: gputypes.TextureViewDimension2D,
		}
	case BufferSRV:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}
	case BufferUAV:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}
	case Sampler:
		e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
	}
	return e
}
