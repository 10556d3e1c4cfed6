package ffx

import (
	"fmt"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/ffx/backend"
	"github.com/gogpu/ffx/backend/wgpu"
)

// Option configures context creation and context-free queries.
//
// Example:
//
//	// Default backend, first capable provider
//	ctx, err := reg.CreateContext(desc)
//
//	// Force a provider version and run on the host's GPU
//	ctx, err := reg.CreateContext(desc,
//		ffx.WithVersion(id),
//		ffx.WithDevice(app))
type Option func(*createOptions)

// createOptions holds optional configuration for context creation.
type createOptions struct {
	version uint64
	backend backend.Backend
	device  gpucontext.DeviceProvider
}

func applyOptions(opts []Option) createOptions {
	var o createOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithVersion forces the provider with the given identifier, as reported
// by Registry.Versions. The provider's capability check is skipped.
// NoOverride restores capability-based selection.
func WithVersion(id uint64) Option {
	return func(o *createOptions) {
		o.version = id
	}
}

// WithBackend sets the backend the context submits work to.
// The caller keeps ownership: the backend must already be initialized and
// is not closed when the context is destroyed.
func WithBackend(b backend.Backend) Option {
	return func(o *createOptions) {
		o.backend = b
	}
}

// WithDevice supplies the host application's GPU device.
//
// Without WithBackend, the context creates and owns a wgpu backend on
// this device. Providers also read the adapter type from it.
func WithDevice(dp gpucontext.DeviceProvider) Option {
	return func(o *createOptions) {
		o.device = dp
	}
}

// env builds the provider environment. owned reports whether the backend
// was created here and must be closed with the context.
func (o *createOptions) env() (env *Env, owned bool, err error) {
	l := Logger()
	env = &Env{Backend: o.backend, Device: o.device, Logger: l}

	switch {
	case o.backend != nil:
	case o.device != nil:
		b, err := wgpu.FromProvider(o.device, wgpu.WithLogger(l))
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrNoBackend, err)
		}
		if err := b.Init(); err != nil {
			b.Close()
			return nil, false, fmt.Errorf("%w: %s: %w", ErrNoBackend, b.Name(), err)
		}
		env.Backend, owned = b, true
	default:
		b, err := backend.InitDefault()
		if err != nil {
			return nil, false, fmt.Errorf("%w: %w", ErrNoBackend, err)
		}
		env.Backend, owned = b, true
	}

	propagateLogger(env.Backend, l)
	return env, owned, nil
}
