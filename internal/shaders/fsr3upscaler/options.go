// Package fsr3upscaler holds the compiled permutation tables for the FSR3
// upscaler compute stages.
//
// Every stage is keyed by the same six option bits. The tables in this
// package are data: they are built once at init and never mutated.
package fsr3upscaler

import "github.com/gogpu/ffx/permutation"

// Options is the option layout shared by every upscaler stage.
var Options = permutation.MustLayout(
	"JITTERED_MOTION_VECTORS",
	"INVERTED_DEPTH",
	"REPROJECT_USE_LANCZOS_TYPE",
	"HDR_COLOR_INPUT",
	"LOW_RESOLUTION_MOTION_VECTORS",
	"APPLY_SHARPENING",
)

// Option bits, in layout order.
const (
	OptionJitteredMotionVectors permutation.OptionSet = 1 << iota
	OptionInvertedDepth
	OptionReprojectLanczos
	OptionHDRColorInput
	OptionLowResolutionMotionVectors
	OptionApplySharpening
)

// Stages lists every table in this package.
func Stages() []*permutation.Table {
	return []*permutation.Table{LumaPyramid, AutogenReactive, DebugView}
}

// Stage returns the table with the given name.
func Stage(name string) (*permutation.Table, bool) {
	for _, t := range Stages() {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// zeroIndirection returns an indirection table mapping every option set to
// variant 0.
func zeroIndirection() []uint32 {
	return make([]uint32, Options.Size())
}

func wgsl(src string) permutation.Blob {
	return permutation.Blob{Format: permutation.FormatWGSL, Data: []byte(src)}
}
