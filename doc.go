// Package ffx selects effect providers and binds them to effect contexts.
//
// # Overview
//
// An effect (an upscaler, a frame generator) is served by one of several
// compiled-in providers. A Registry holds them in a fixed priority order.
// Creating a context picks a provider once and binds it to the returned
// Context; every later call on that context goes to the same provider
// without searching again.
//
// # Quick Start
//
//	import (
//		"github.com/gogpu/ffx"
//		"github.com/gogpu/ffx/providers"
//		"github.com/gogpu/ffx/upscale"
//	)
//
//	ctx, err := providers.Registry.CreateContext(&upscale.CreateDesc{
//		MaxRenderSize:  [2]uint32{1280, 720},
//		MaxUpscaleSize: [2]uint32{2560, 1440},
//		Flags:          upscale.FlagHDR,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ctx.Destroy()
//
//	err = ctx.Dispatch(&upscale.DispatchDesc{
//		RenderSize:  [2]uint32{1280, 720},
//		UpscaleSize: [2]uint32{2560, 1440},
//	})
//
// # Provider Selection
//
// Without an override the first provider whose CanProvide accepts the
// descriptor type wins. The order of the list is a priority order, not a
// ranking. WithVersion forces a provider by identifier and skips the
// capability check for it; an unknown identifier fails with
// ErrProviderNotFound and never falls back to capability matching.
//
//	var versions [4]ffx.Version
//	n := providers.Registry.Versions(upscale.DescCreate, versions[:])
//	ctx, err := providers.Registry.CreateContext(desc, ffx.WithVersion(versions[n-1].ID))
//
// # Backends
//
// Providers submit work through a backend.Backend. By default a context
// uses backend.Default(); WithDevice builds a GPU backend on a host
// application's device and WithBackend injects one directly.
//
// # Logging
//
// ffx is silent by default. See SetLogger.
package ffx
