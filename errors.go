package ffx

import "errors"

// Errors returned by the registry and by contexts.
var (
	// ErrProviderNotFound is returned when no provider matches a descriptor
	// type or an override identifier.
	ErrProviderNotFound = errors.New("ffx: no provider found")

	// ErrInvalidContext is returned for a nil or zero Context.
	ErrInvalidContext = errors.New("ffx: invalid context")

	// ErrContextDestroyed is returned when a context is used after Destroy.
	ErrContextDestroyed = errors.New("ffx: context destroyed")

	// ErrProviderMismatch is returned when a context's state belongs to a
	// provider other than the one bound to the context.
	ErrProviderMismatch = errors.New("ffx: context bound to a different provider")

	// ErrUnsupportedDescriptor is returned by a provider for a descriptor
	// type it does not handle.
	ErrUnsupportedDescriptor = errors.New("ffx: unsupported descriptor")

	// ErrInvalidArgument is returned when a descriptor field is out of range.
	ErrInvalidArgument = errors.New("ffx: invalid argument")

	// ErrNilDescriptor is returned when a nil descriptor is passed.
	ErrNilDescriptor = errors.New("ffx: nil descriptor")

	// ErrNoBackend is returned when a context needs a backend and none is
	// available.
	ErrNoBackend = errors.New("ffx: no backend available")
)
