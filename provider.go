package ffx

import (
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ffx/backend"
)

// NoOverride is the override identifier that selects by capability.
// No provider may use it as its identifier.
const NoOverride uint64 = 0

// Provider is a compiled-in implementation of one or more effects.
//
// Providers are stateless singletons: everything a context needs lives in
// the State returned by CreateContext. Implementations must be comparable
// (typically a pointer) because contexts check ownership by identity.
type Provider interface {
	// ID returns the stable 64-bit identifier. It must not be NoOverride.
	ID() uint64

	// Version returns a human-readable version label, e.g. "3.1.4".
	Version() string

	// CanProvide reports whether the provider services descriptor type t.
	CanProvide(t DescType) bool

	// CreateContext builds the provider-private state for a new context.
	CreateContext(desc Descriptor, env *Env) (State, error)

	// DestroyContext releases everything CreateContext acquired.
	DestroyContext(s State) error

	// Configure applies a configuration descriptor to a context.
	Configure(s State, desc Descriptor) error

	// Query answers a query descriptor by writing into it.
	// s is nil for context-free queries.
	Query(s State, desc Descriptor) error

	// Dispatch records and submits the work a descriptor describes.
	Dispatch(s State, desc Descriptor) error
}

// State is the provider-private part of a context. Owner is the tag a
// Context validates on every use.
type State interface {
	Owner() Provider
}

// Env carries the collaborators a provider may use when it creates a
// context.
type Env struct {
	// Backend builds pipelines and submits dispatches. Never nil.
	Backend backend.Backend

	// Device is the host device, if the caller supplied one.
	Device gpucontext.DeviceProvider

	// Logger is the package logger at creation time. Never nil.
	Logger *slog.Logger
}

// AdapterType returns the adapter type of the host device, or
// gpucontext.AdapterTypeUnknown when no device was supplied.
func (e *Env) AdapterType() gpucontext.AdapterType {
	if e == nil || e.Device == nil {
		return gpucontext.AdapterTypeUnknown
	}
	return e.Device.AdapterInfo().Type
}

// Version is one entry reported by Registry.Versions.
type Version struct {
	ID    uint64
	Label string
}
