package ffx

import (
	"fmt"
)

// Registry is an immutable, priority-ordered list of providers.
//
// All methods are safe for concurrent use; a Registry never changes after
// NewRegistry returns.
type Registry struct {
	providers []Provider
}

// NewRegistry returns a registry holding providers in the given order.
// The first provider has the highest priority.
//
// NewRegistry panics if a provider is nil, uses NoOverride as its
// identifier, or shares an identifier with an earlier provider. The list
// is fixed at build time, so these are programming errors.
func NewRegistry(providers ...Provider) *Registry {
	seen := make(map[uint64]string, len(providers))
	list := make([]Provider, len(providers))
	for i, p := range providers {
		if p == nil {
			panic(fmt.Sprintf("ffx: provider %d is nil", i))
		}
		id := p.ID()
		if id == NoOverride {
			panic(fmt.Sprintf("ffx: provider %q uses the reserved identifier 0", p.Version()))
		}
		if prev, dup := seen[id]; dup {
			panic(fmt.Sprintf("ffx: providers %q and %q share identifier %#x", prev, p.Version(), id))
		}
		seen[id] = p.Version()
		list[i] = p
	}
	return &Registry{providers: list}
}

// Len returns the number of providers.
func (r *Registry) Len() int {
	return len(r.providers)
}

// Providers returns a copy of the provider list in priority order.
func (r *Registry) Providers() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Select returns the provider for descriptor type t.
//
// With override == NoOverride the first provider whose CanProvide accepts
// t is returned. Otherwise the first provider whose ID equals override is
// returned whether or not it can provide t, and an unknown override fails
// without falling back to capability matching.
func (r *Registry) Select(t DescType, override uint64) (Provider, error) {
	for _, p := range r.providers {
		if override == NoOverride {
			if p.CanProvide(t) {
				return p, nil
			}
			continue
		}
		if p.ID() == override {
			return p, nil
		}
	}
	if override != NoOverride {
		return nil, fmt.Errorf("%w: version %#x", ErrProviderNotFound, override)
	}
	return nil, fmt.Errorf("%w: type %v", ErrProviderNotFound, t)
}

// Versions writes the identifier and version label of every provider that
// can provide t into dst, in priority order, stopping when dst is full.
// It returns the number of matching providers, which may exceed len(dst).
// Pass a nil dst to count without writing.
func (r *Registry) Versions(t DescType, dst []Version) int {
	n := 0
	for _, p := range r.providers {
		if !p.CanProvide(t) {
			continue
		}
		if n < len(dst) {
			dst[n] = Version{ID: p.ID(), Label: p.Version()}
		}
		n++
	}
	return n
}

// Query runs a context-free query on the provider selected for the
// descriptor's type. WithVersion forces a provider; other options are
// ignored.
func (r *Registry) Query(desc Descriptor, opts ...Option) error {
	if desc == nil {
		return ErrNilDescriptor
	}
	o := applyOptions(opts)
	p, err := r.Select(desc.Type(), o.version)
	if err != nil {
		return err
	}
	return p.Query(nil, desc)
}

// CreateContext selects a provider for desc and creates a context bound
// to it. The returned context is fully usable; on error nothing is
// returned and every resource acquired along the way is released.
func (r *Registry) CreateContext(desc Descriptor, opts ...Option) (*Context, error) {
	if desc == nil {
		return nil, ErrNilDescriptor
	}
	o := applyOptions(opts)

	p, err := r.Select(desc.Type(), o.version)
	if err != nil {
		return nil, err
	}

	env, owned, err := o.env()
	if err != nil {
		return nil, err
	}

	state, err := p.CreateContext(desc, env)
	if err != nil {
		if owned {
			env.Backend.Close()
		}
		return nil, fmt.Errorf("ffx: create %v with %s: %w", desc.Type(), p.Version(), err)
	}
	if state == nil || state.Owner() != p {
		if state != nil {
			_ = p.DestroyContext(state)
		}
		if owned {
			env.Backend.Close()
		}
		return nil, fmt.Errorf("%w: %s returned state it does not own", ErrProviderMismatch, p.Version())
	}

	env.Logger.Info("ffx: context created",
		"type", desc.Type().String(),
		"provider", fmt.Sprintf("%#x", p.ID()),
		"version", p.Version(),
		"backend", env.Backend.Name())

	return &Context{
		provider:    p,
		state:       state,
		backend:     env.Backend,
		ownsBackend: owned,
		log:         env.Logger,
	}, nil
}
