// Package backend provides a pluggable compute backend abstraction.
//
// Effect providers never talk to a graphics API directly. They resolve a
// shader variant from a permutation table, ask the backend for a pipeline
// built from it, and submit dispatches as Jobs. This keeps providers
// testable without a GPU and lets applications bring their own device.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The headless backend is automatically registered on import:
//
//	import _ "github.com/gogpu/ffx/backend"
//
// The wgpu backend needs a device, so it is registered explicitly:
//
//	wgpu.Register(deviceProvider)
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	// Get the default (best available) backend
//	b := backend.Default()
//
//	// Or request a specific backend
//	b := backend.Get("headless")
//
// # Usage
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	v, _ := fsr3upscaler.LumaPyramid.Resolve(opts)
//	p, err := b.CreatePipeline(&backend.PipelineDesc{Label: "luma", Variant: v})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.DestroyPipeline(p)
//
//	err = b.Dispatch(&backend.Job{Pipeline: p, Groups: [3]uint32{30, 17, 1}})
//
// # Available Backends
//
// - "headless": validates and records dispatches (always available)
// - "wgpu": GPU compute via gogpu/wgpu HAL
package backend
