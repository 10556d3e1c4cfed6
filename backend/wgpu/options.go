package wgpu

import "log/slog"

// Option configures a Backend.
type Option func(*options)

type options struct {
	spirv     bool
	label     string
	cacheSize int
	logger    *slog.Logger
}

func defaultOptions() options {
	return options{
		spirv:     true,
		label:     "ffx",
		cacheSize: 64,
	}
}

// WithSPIRV selects whether WGSL variants are compiled to SPIR-V with naga
// before they reach the device. Enabled by default.
func WithSPIRV(enabled bool) Option {
	return func(o *options) {
		o.spirv = enabled
	}
}

// WithLabel sets the prefix used for every GPU object label.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}

// WithShaderCacheSize sets the soft limit of the compiled shader cache.
// Zero means unlimited.
func WithShaderCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = max(n, 0)
	}
}

// WithLogger sets the logger for pipeline and submission diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
