// Package wgpu provides a GPU compute backend using the gogpu/wgpu HAL.
//
// The backend turns resolved shader variants into HAL compute pipelines:
//
//	Variant -> naga (WGSL to SPIR-V) -> ShaderModule
//	        -> BindGroupLayouts -> PipelineLayout -> ComputePipeline
//
// WGSL variants are compiled to SPIR-V with gogpu/naga by default and the
// result is cached per variant, so every context that uses the same table
// entry shares one compilation. WithSPIRV(false) hands WGSL to the device
// unchanged for HAL backends that accept it natively.
//
// # Creating a Backend
//
// From an existing HAL device:
//
//	b, err := wgpu.New(device, queue)
//
// From a host application that implements gpucontext.DeviceProvider:
//
//	b, err := wgpu.FromProvider(app)
//
// Or register it so backend.Default() picks it over the headless backend:
//
//	wgpu.Register(app)
//
// # Submission
//
// Each Dispatch records one compute pass into its own command buffer and
// submits it. Command buffers are freed once the queue reports their
// submission index as completed, or at Close.
package wgpu
