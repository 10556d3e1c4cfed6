package wgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/ffx/backend"
	"github.com/gogpu/ffx/internal/cache"
	"github.com/gogpu/ffx/permutation"
)

// Backend is a compute backend on top of a HAL device.
// It implements backend.Backend.
//
// Backend is safe for concurrent use from multiple goroutines.
type Backend struct {
	mu sync.Mutex

	device hal.Device
	queue  hal.Queue
	opts   options
	log    *slog.Logger

	shaders   *cache.Cache[*permutation.Variant, []uint32]
	pipelines map[*Pipeline]struct{}
	inflight  []submission

	initialized bool
}

// submission is a command buffer waiting for the GPU to finish with it.
type submission struct {
	index uint64
	cmd   hal.CommandBuffer
}

// New creates a backend for an already opened HAL device.
// The backend must be initialized with Init() before use.
func New(device hal.Device, queue hal.Queue, opts ...Option) (*Backend, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	b := &Backend{
		device:    device,
		queue:     queue,
		opts:      o,
		log:       o.logger,
		shaders:   cache.New[*permutation.Variant, []uint32](o.cacheSize),
		pipelines: make(map[*Pipeline]struct{}),
	}
	// Shaders are only compiled or cleared with b.mu held.
	b.shaders.OnEvict(func(v *permutation.Variant, words []uint32) {
		b.logger().Debug("wgpu: shader evicted", "entry", v.EntryPoint, "words", len(words))
	})
	return b, nil
}

// FromProvider creates a backend from a host application's device.
// The provider's Device and Queue must be HAL handles.
func FromProvider(dp gpucontext.DeviceProvider, opts ...Option) (*Backend, error) {
	if dp == nil {
		return nil, ErrNilDevice
	}
	device, ok := dp.Device().(hal.Device)
	if !ok {
		return nil, fmt.Errorf("%w: device is %T", ErrUnsupportedDevice, dp.Device())
	}
	queue, ok := dp.Queue().(hal.Queue)
	if !ok {
		return nil, fmt.Errorf("%w: queue is %T", ErrUnsupportedDevice, dp.Queue())
	}
	return New(device, queue, opts...)
}

// Register makes a backend built from dp available as backend.BackendWGPU,
// so backend.Default() prefers it over the headless backend.
func Register(dp gpucontext.DeviceProvider, opts ...Option) {
	backend.Register(backend.BackendWGPU, func() backend.Backend {
		b, err := FromProvider(dp, opts...)
		if err != nil {
			return nil
		}
		return b
	})
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// SetLogger sets the logger for pipeline and submission diagnostics.
func (b *Backend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = l
}

func (b *Backend) logger() *slog.Logger {
	if b.log == nil {
		return slog.New(slog.DiscardHandler)
	}
	return b.log
}

// Init initializes the backend.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	return nil
}

// Close waits for the device to go idle and releases every pipeline,
// in-flight command buffer and cached shader.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	if err := b.device.WaitIdle(); err != nil {
		b.logger().Warn("wgpu: wait idle failed", "err", err)
	}
	for _, s := range b.inflight {
		b.device.FreeCommandBuffer(s.cmd)
	}
	b.inflight = nil

	for p := range b.pipelines {
		p.destroy(b.device)
	}
	clear(b.pipelines)
	b.shaders.Clear()
	b.initialized = false
}

// CreatePipeline builds a compute pipeline for desc.Variant.
func (b *Backend) CreatePipeline(desc *backend.PipelineDesc) (backend.Pipeline, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}

	label := b.opts.label + "_" + desc.Label
	v := desc.Variant

	groups, err := v.BindGroupLayouts(gputypes.ShaderStageCompute)
	if err != nil {
		return nil, fmt.Errorf("wgpu: %s: %w", desc.Label, err)
	}
	src, err := b.shaderSource(v)
	if err != nil {
		return nil, fmt.Errorf("wgpu: %s: %w", desc.Label, err)
	}

	p := &Pipeline{owner: b, label: desc.Label, variant: v}
	if err := p.build(b.device, label, src, groups); err != nil {
		p.destroy(b.device)
		return nil, fmt.Errorf("wgpu: %s: %w", desc.Label, err)
	}

	b.pipelines[p] = struct{}{}
	b.logger().Debug("wgpu: pipeline created",
		"label", label,
		"groups", len(groups),
		"bindings", v.Bindings.Total())
	return p, nil
}

// DestroyPipeline releases a pipeline created by this backend.
func (b *Backend) DestroyPipeline(p backend.Pipeline) {
	wp, ok := p.(*Pipeline)
	if !ok || wp == nil || wp.owner != b {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, live := b.pipelines[wp]; !live {
		return
	}
	delete(b.pipelines, wp)
	wp.destroy(b.device)
}

// Dispatch encodes one compute pass and submits it to the queue.
func (b *Backend) Dispatch(job *backend.Job) error {
	if job == nil {
		return fmt.Errorf("%w: nil job", backend.ErrInvalidPipeline)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return backend.ErrNotInitialized
	}

	wp, ok := job.Pipeline.(*Pipeline)
	if !ok || wp == nil || wp.owner != b {
		return backend.ErrInvalidPipeline
	}
	if _, live := b.pipelines[wp]; !live {
		return fmt.Errorf("%w: %q was destroyed", backend.ErrInvalidPipeline, wp.label)
	}

	b.reclaim()

	label := b.opts.label + "_" + wp.label
	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label + "_encoder"})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(job.Label); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: label})
	pass.SetPipeline(wp.pipeline)
	pass.Dispatch(job.Groups[0], job.Groups[1], job.Groups[2])
	pass.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}

	index, err := b.queue.Submit([]hal.CommandBuffer{cmd})
	if err != nil {
		b.device.FreeCommandBuffer(cmd)
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	b.inflight = append(b.inflight, submission{index: index, cmd: cmd})
	return nil
}

// reclaim frees command buffers the GPU has finished with.
// Caller must hold b.mu.
func (b *Backend) reclaim() {
	if len(b.inflight) == 0 {
		return
	}
	done := b.queue.PollCompleted()
	keep := b.inflight[:0]
	for _, s := range b.inflight {
		if s.index <= done {
			b.device.FreeCommandBuffer(s.cmd)
			continue
		}
		keep = append(keep, s)
	}
	b.inflight = keep
}

// Stats reports backend resource usage.
type Stats struct {
	Pipelines int
	InFlight  int
	Shaders   cache.Stats
}

// Stats returns current resource usage.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		Pipelines: len(b.pipelines),
		InFlight:  len(b.inflight),
		Shaders:   b.shaders.Stats(),
	}
}
