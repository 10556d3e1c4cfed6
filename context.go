package ffx

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/ffx/backend"
)

// Context is an effect context bound to exactly one provider.
//
// The binding is set once by Registry.CreateContext and never changes.
// Every operation checks that the context is live and that its state is
// still tagged with the bound provider before forwarding to it.
//
// A Context is not safe for concurrent use; callers sharing one across
// goroutines must serialize access.
type Context struct {
	provider    Provider
	state       State
	backend     backend.Backend
	ownsBackend bool
	destroyed   bool

	// log is the package logger captured at creation.
	log *slog.Logger
}

// Provider returns the provider bound at creation.
// It returns nil for a nil Context.
func (c *Context) Provider() Provider {
	if c == nil {
		return nil
	}
	return c.provider
}

// Backend returns the backend the context submits work to.
func (c *Context) Backend() backend.Backend {
	if c == nil {
		return nil
	}
	return c.backend
}

// Destroyed reports whether Destroy has been called.
func (c *Context) Destroyed() bool {
	return c != nil && c.destroyed
}

func (c *Context) logger() *slog.Logger {
	if c.log == nil {
		return Logger()
	}
	return c.log
}

// check validates the handle before any provider call.
func (c *Context) check() error {
	if c == nil || c.provider == nil || c.state == nil {
		return ErrInvalidContext
	}
	if c.destroyed {
		return ErrContextDestroyed
	}
	if c.state.Owner() != c.provider {
		return fmt.Errorf("%w: bound to %s", ErrProviderMismatch, c.provider.Version())
	}
	return nil
}

// Dispatch forwards a dispatch descriptor to the bound provider.
func (c *Context) Dispatch(desc Descriptor) error {
	if err := c.check(); err != nil {
		return err
	}
	if desc == nil {
		return ErrNilDescriptor
	}
	return c.provider.Dispatch(c.state, desc)
}

// Query forwards a query descriptor to the bound provider.
func (c *Context) Query(desc Descriptor) error {
	if err := c.check(); err != nil {
		return err
	}
	if desc == nil {
		return ErrNilDescriptor
	}
	return c.provider.Query(c.state, desc)
}

// Configure forwards a configuration descriptor to the bound provider.
func (c *Context) Configure(desc Descriptor) error {
	if err := c.check(); err != nil {
		return err
	}
	if desc == nil {
		return ErrNilDescriptor
	}
	return c.provider.Configure(c.state, desc)
}

// Destroy releases the context through its provider. The context is
// unusable afterwards even if the provider reports an error.
func (c *Context) Destroy() error {
	if err := c.check(); err != nil {
		return err
	}

	err := c.provider.DestroyContext(c.state)
	c.destroyed = true
	if c.ownsBackend {
		c.backend.Close()
	}

	c.logger().Info("ffx: context destroyed",
		"provider", fmt.Sprintf("%#x", c.provider.ID()),
		"version", c.provider.Version())

	if err != nil {
		return fmt.Errorf("ffx: destroy with %s: %w", c.provider.Version(), err)
	}
	return nil
}
