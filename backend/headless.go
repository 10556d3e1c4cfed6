package backend

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/ffx/permutation"
)

// Record is one dispatch captured by the headless backend.
type Record struct {
	Label   string
	Stage   string
	Variant *permutation.Variant
	Groups  [3]uint32
}

// HeadlessBackend is a backend that validates and records dispatches
// without touching a GPU. It is the fallback when no device is available
// and the backend used by tests.
//
// HeadlessBackend is safe for concurrent use.
type HeadlessBackend struct {
	mu          sync.Mutex
	initialized bool
	pipelines   map[*headlessPipeline]struct{}
	records     []Record
	created     int
	logger      *slog.Logger
}

type headlessPipeline struct {
	owner   *HeadlessBackend
	label   string
	variant *permutation.Variant
}

func (p *headlessPipeline) Label() string                 { return p.label }
func (p *headlessPipeline) Variant() *permutation.Variant { return p.variant }

// init registers the headless backend on package import.
func init() {
	Register(BackendHeadless, func() Backend {
		return &HeadlessBackend{}
	})
}

// NewHeadlessBackend creates a new headless backend.
func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

// Name returns the backend identifier.
func (b *HeadlessBackend) Name() string {
	return BackendHeadless
}

// SetLogger sets the logger used for pipeline lifecycle diagnostics.
func (b *HeadlessBackend) SetLogger(l *slog.Logger) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger = l
}

// Init initializes the backend.
func (b *HeadlessBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.pipelines == nil {
		b.pipelines = make(map[*headlessPipeline]struct{})
	}
	b.initialized = true
	return nil
}

// Close releases all pipelines. Recorded dispatches are kept.
func (b *HeadlessBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	clear(b.pipelines)
	b.initialized = false
}

// CreatePipeline validates the variant and returns a pipeline handle.
func (b *HeadlessBackend) CreatePipeline(desc *PipelineDesc) (Pipeline, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, ErrNotInitialized
	}

	p := &headlessPipeline{owner: b, label: desc.Label, variant: desc.Variant}
	b.pipelines[p] = struct{}{}
	b.created++
	if b.logger != nil {
		b.logger.Debug("headless: pipeline created", "label", desc.Label, "live", len(b.pipelines))
	}
	return p, nil
}

// DestroyPipeline releases a pipeline.
func (b *HeadlessBackend) DestroyPipeline(p Pipeline) {
	hp, ok := p.(*headlessPipeline)
	if !ok || hp == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pipelines, hp)
}

// Dispatch validates the job and records it.
func (b *HeadlessBackend) Dispatch(job *Job) error {
	if job == nil {
		return fmt.Errorf("%w: nil job", ErrInvalidPipeline)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return ErrNotInitialized
	}

	hp, ok := job.Pipeline.(*headlessPipeline)
	if !ok || hp == nil || hp.owner != b {
		return ErrInvalidPipeline
	}
	if _, live := b.pipelines[hp]; !live {
		return fmt.Errorf("%w: %q was destroyed", ErrInvalidPipeline, hp.label)
	}

	b.records = append(b.records, Record{
		Label:   job.Label,
		Stage:   hp.label,
		Variant: hp.variant,
		Groups:  job.Groups,
	})
	return nil
}

// Records returns a copy of the dispatches recorded so far.
func (b *HeadlessBackend) Records() []Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Record, len(b.records))
	copy(out, b.records)
	return out
}

// Reset discards recorded dispatches.
func (b *HeadlessBackend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.records = nil
}

// LivePipelines returns the number of pipelines not yet destroyed.
func (b *HeadlessBackend) LivePipelines() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pipelines)
}

// CreatedPipelines returns the total number of pipelines created.
func (b *HeadlessBackend) CreatedPipelines() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}
