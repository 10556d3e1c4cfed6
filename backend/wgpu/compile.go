package wgpu

import (
	"fmt"

	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ffx/backend"
	"github.com/gogpu/ffx/permutation"
)

// compileWGSL compiles WGSL source to SPIR-V words.
func compileWGSL(src string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader: %w", err)
	}
	return spirvWords(spirvBytes)
}

// spirvWords converts little-endian SPIR-V bytes to 32-bit words.
func spirvWords(b []byte) ([]uint32, error) {
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V size %d is not a multiple of 4", backend.ErrUnsupportedFormat, len(b))
	}
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words, nil
}

// shaderSource returns the HAL source for a variant, compiling and caching
// WGSL when SPIR-V output is enabled.
func (b *Backend) shaderSource(v *permutation.Variant) (hal.ShaderSource, error) {
	switch v.Blob.Format {
	case permutation.FormatWGSL:
		if !b.opts.spirv {
			return hal.ShaderSource{WGSL: string(v.Blob.Data)}, nil
		}
		words, err := b.shaders.GetOrCreate(v, func() ([]uint32, error) {
			b.logger().Debug("wgpu: compiling shader", "entry", v.EntryPoint, "bytes", v.Blob.Size())
			return compileWGSL(string(v.Blob.Data))
		})
		if err != nil {
			return hal.ShaderSource{}, err
		}
		return hal.ShaderSource{SPIRV: words}, nil
	case permutation.FormatSPIRV:
		words, err := b.shaders.GetOrCreate(v, func() ([]uint32, error) {
			return spirvWords(v.Blob.Data)
		})
		if err != nil {
			return hal.ShaderSource{}, err
		}
		return hal.ShaderSource{SPIRV: words}, nil
	default:
		return hal.ShaderSource{}, fmt.Errorf("%w: %v", backend.ErrUnsupportedFormat, v.Blob.Format)
	}
}
