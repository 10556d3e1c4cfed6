// Package upscale provides the FSR3 upscaler providers and their
// descriptors.
//
// Two providers are compiled in. Current serves every upscale descriptor.
// Legacy predates the debug view and reactive mask generation and only
// accepts the velocity factor configuration key. Both resolve the shader
// variant for each pass from the context's creation flags and the
// dispatch parameters, then submit the pass through the context's
// backend.
//
// Queries are stateless and can run without a context:
//
//	var size [2]uint32
//	err := providers.Registry.Query(&upscale.QueryRenderSizeDesc{
//		DisplaySize:   [2]uint32{3840, 2160},
//		QualityMode:   upscale.QualityBalanced,
//		OutRenderSize: &size,
//	})
package upscale
