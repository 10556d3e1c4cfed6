package fsr3upscaler

import (
	_ "embed"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/ffx/permutation"
)

//go:embed luma_pyramid.wgsl
var lumaPyramidWGSL string

//go:embed autogen_reactive.wgsl
var autogenReactiveWGSL string

//go:embed debug_view.wgsl
var debugViewWGSL string

var samplers = []permutation.Binding{
	{Name: "s_point_clamp", Slot: 13, Count: 1},
	{Name: "s_linear_clamp", Slot: 14, Count: 1},
}

// LumaPyramid downsamples luma and farthest depth. One dispatch covers a
// 64x64 tile of the render target.
var LumaPyramid = permutation.MustTable("fsr3upscaler_luma_pyramid_pass", Options, zeroIndirection(), []permutation.Variant{{
	Blob:          wgsl(lumaPyramidWGSL),
	EntryPoint:    "main",
	WorkgroupSize: [3]uint32{256, 1, 1},
	Bindings: permutation.Bindings{
		permutation.ConstantBuffer: {
			{Name: "cb_fsr3upscaler", Slot: 0, Count: 1},
			{Name: "cb_spd", Slot: 1, Count: 1},
		},
		permutation.TextureSRV: {
			{Name: "r_current_luma", Slot: 2, Count: 1},
			{Name: "r_farthest_depth", Slot: 3, Count: 1},
		},
		permutation.TextureUAV: {
			{Name: "rw_frame_info", Slot: 4, Count: 1, Format: gputypes.TextureFormatRGBA32Float},
			{Name: "rw_spd_mip0", Slot: 5, Count: 1, Format: gputypes.TextureFormatR32Float},
			{Name: "rw_spd_mip1", Slot: 6, Count: 1, Format: gputypes.TextureFormatR32Float},
			{Name: "rw_spd_mip2", Slot: 7, Count: 1, Format: gputypes.TextureFormatR32Float},
			{Name: "rw_spd_mip3", Slot: 8, Count: 1, Format: gputypes.TextureFormatR32Float},
			{Name: "rw_spd_mip4", Slot: 9, Count: 1, Format: gputypes.TextureFormatR32Float},
			{Name: "rw_spd_mip5", Slot: 10, Count: 1, Format: gputypes.TextureFormatR32Float},
			{Name: "rw_farthest_depth_mip1", Slot: 11, Count: 1, Format: gputypes.TextureFormatR32Float},
			{Name: "rw_auto_exposure", Slot: 12, Count: 1, Format: gputypes.TextureFormatRG32Float},
		},
		permutation.Sampler: samplers,
	},
}})

// AutogenReactive derives a reactive mask from opaque-only and pre-alpha
// color inputs.
var AutogenReactive = permutation.MustTable("fsr3upscaler_autogen_reactive_pass", Options, zeroIndirection(), []permutation.Variant{{
	Blob:          wgsl(autogenReactiveWGSL),
	EntryPoint:    "main",
	WorkgroupSize: [3]uint32{8, 8, 1},
	Bindings: permutation.Bindings{
		permutation.ConstantBuffer: {
			{Name: "cb_fsr3upscaler", Slot: 0, Count: 1},
			{Name: "cb_generate_reactive", Slot: 1, Count: 1},
		},
		permutation.TextureSRV: {
			{Name: "r_input_opaque_only", Slot: 2, Count: 1},
			{Name: "r_input_color_pre_alpha", Slot: 3, Count: 1},
		},
		permutation.TextureUAV: {
			{Name: "rw_output_autogen_reactive", Slot: 4, Count: 1, Format: gputypes.TextureFormatR32Float},
		},
		permutation.Sampler: {
			{Name: "s_point_clamp", Slot: 5, Count: 1},
			{Name: "s_linear_clamp", Slot: 6, Count: 1},
		},
	},
}})

// DebugView overlays intermediate resources onto the upscaled output.
var DebugView = permutation.MustTable("fsr3upscaler_debug_view_pass", Options, zeroIndirection(), []permutation.Variant{{
	Blob:          wgsl(debugViewWGSL),
	EntryPoint:    "main",
	WorkgroupSize: [3]uint32{8, 8, 1},
	Bindings: permutation.Bindings{
		permutation.ConstantBuffer: {
			{Name: "cb_fsr3upscaler", Slot: 0, Count: 1},
		},
		permutation.TextureSRV: {
			{Name: "r_dilated_reactive_masks", Slot: 1, Count: 1},
			{Name: "r_dilated_motion_vectors", Slot: 2, Count: 1},
			{Name: "r_dilated_depth", Slot: 3, Count: 1},
			{Name: "r_internal_upscaled_color", Slot: 4, Count: 1},
			{Name: "r_frame_info", Slot: 5, Count: 1},
		},
		permutation.TextureUAV: {
			{Name: "rw_upscaled_output", Slot: 6, Count: 1, Format: gputypes.TextureFormatRGBA16Float},
		},
		permutation.Sampler: {
			{Name: "s_point_clamp", Slot: 7, Count: 1},
			{Name: "s_linear_clamp", Slot: 8, Count: 1},
		},
	},
}})
