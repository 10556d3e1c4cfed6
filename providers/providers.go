// Package providers holds the compiled-in provider list.
//
// The order of the list is the selection priority: without an override
// the first provider that accepts a descriptor type serves it.
package providers

import (
	"github.com/gogpu/ffx"
	"github.com/gogpu/ffx/upscale"
)

// Registry is the process-wide provider registry. It is built once at
// init and never changes.
var Registry = ffx.NewRegistry(
	upscale.Current,
	upscale.Legacy,
)
