package wgpu

import (
	"fmt"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ffx/permutation"
)

// Pipeline is a compute pipeline and the HAL objects it owns.
// It implements backend.Pipeline.
type Pipeline struct {
	owner   *Backend
	label   string
	variant *permutation.Variant

	module      hal.ShaderModule
	bindLayouts []hal.BindGroupLayout
	layout      hal.PipelineLayout
	pipeline    hal.ComputePipeline
}

// Label returns the debug label the pipeline was created with.
func (p *Pipeline) Label() string { return p.label }

// Variant returns the variant the pipeline was built from.
func (p *Pipeline) Variant() *permutation.Variant { return p.variant }

// build creates the shader module, one bind group layout per register
// space, the pipeline layout and the compute pipeline. Spaces the variant
// does not use get empty layouts so group indices line up with spaces.
func (p *Pipeline) build(device hal.Device, label string, src hal.ShaderSource, groups []permutation.GroupLayout) error {
	var err error
	p.module, err = device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: src,
	})
	if err != nil {
		return fmt.Errorf("create shader module: %w", err)
	}

	var count int
	if len(groups) > 0 {
		count = int(groups[len(groups)-1].Space) + 1
	}
	p.bindLayouts = make([]hal.BindGroupLayout, count)
	for _, g := range groups {
		p.bindLayouts[g.Space], err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label:   fmt.Sprintf("%s_group%d", label, g.Space),
			Entries: g.Entries,
		})
		if err != nil {
			return fmt.Errorf("create bind group layout %d: %w", g.Space, err)
		}
	}
	for i := range p.bindLayouts {
		if p.bindLayouts[i] != nil {
			continue
		}
		p.bindLayouts[i], err = device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: fmt.Sprintf("%s_group%d_empty", label, i),
		})
		if err != nil {
			return fmt.Errorf("create bind group layout %d: %w", i, err)
		}
	}

	p.layout, err = device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_layout",
		BindGroupLayouts: p.bindLayouts,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}

	p.pipeline, err = device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label:  label,
		Layout: p.layout,
		Compute: hal.ComputeState{
			Module:     p.module,
			EntryPoint: p.variant.EntryPoint,
		},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	return nil
}

// destroy releases GPU objects in reverse creation order.
// It is safe on a partially built pipeline.
func (p *Pipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyComputePipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	for _, l := range p.bindLayouts {
		if l != nil {
			device.DestroyBindGroupLayout(l)
		}
	}
	p.bindLayouts = nil
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}
