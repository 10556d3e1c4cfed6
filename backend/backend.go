package backend

import (
	"errors"

	"github.com/gogpu/ffx/permutation"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrUnsupportedFormat is returned when a variant's blob format cannot
	// be consumed by the backend.
	ErrUnsupportedFormat = errors.New("backend: unsupported shader format")

	// ErrInvalidPipeline is returned when a job references a pipeline that
	// is nil, destroyed, or owned by another backend.
	ErrInvalidPipeline = errors.New("backend: invalid pipeline")
)

// Backend is the interface for compute backends.
// It abstracts how resolved shader variants become pipelines and how
// dispatches reach a device, so effect providers stay independent of the
// graphics API in use.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "headless", "wgpu").
	Name() string

	// Init initializes the backend.
	// This should be called before any pipeline is created.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// CreatePipeline builds a compute pipeline for a resolved variant.
	CreatePipeline(desc *PipelineDesc) (Pipeline, error)

	// DestroyPipeline releases a pipeline created by this backend.
	// Destroying nil or an already destroyed pipeline is a no-op.
	DestroyPipeline(p Pipeline)

	// Dispatch records and submits one compute dispatch.
	Dispatch(job *Job) error
}

// PipelineDesc describes a compute pipeline.
type PipelineDesc struct {
	// Label is used for debugging and GPU captures.
	Label string

	// Variant is the resolved shader record. It must outlive the pipeline.
	Variant *permutation.Variant
}

// Pipeline is a backend-owned compute pipeline.
type Pipeline interface {
	// Label returns the debug label the pipeline was created with.
	Label() string

	// Variant returns the variant the pipeline was built from.
	Variant() *permutation.Variant
}

// Job is a single compute dispatch.
type Job struct {
	Label    string
	Pipeline Pipeline

	// Groups is the workgroup count in x, y and z.
	Groups [3]uint32
}

// GroupsFor returns the number of workgroups needed to cover an extent
// with the given workgroup size. Zero-sized workgroup dimensions count as 1.
func GroupsFor(extent, workgroup [3]uint32) [3]uint32 {
	var g [3]uint32
	for i := range g {
		w := workgroup[i]
		if w == 0 {
			w = 1
		}
		g[i] = (extent[i] + w - 1) / w
	}
	return g
}

// Validate reports whether desc can be turned into a pipeline by any
// backend. Backends may reject more formats than Validate does.
func (desc *PipelineDesc) Validate() error {
	if desc == nil || desc.Variant == nil {
		return ErrInvalidPipeline
	}
	if desc.Variant.Blob.Format == permutation.FormatUnknown || desc.Variant.Blob.Size() == 0 {
		return ErrUnsupportedFormat
	}
	return nil
}
