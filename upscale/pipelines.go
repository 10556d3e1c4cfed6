package upscale

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/ffx/backend"
	"github.com/gogpu/ffx/permutation"
)

// pipelineCache holds the pipelines of one context, keyed by the resolved
// variant. Option sets that alias to the same variant share a pipeline.
//
// pipelineCache is safe for concurrent use. It uses RWMutex with
// double-check locking: lookups take the read lock, creation the write
// lock.
type pipelineCache struct {
	mu        sync.RWMutex
	backend   backend.Backend
	pipelines map[*permutation.Variant]backend.Pipeline

	hits   atomic.Uint64
	misses atomic.Uint64
}

func newPipelineCache(b backend.Backend) *pipelineCache {
	return &pipelineCache{
		backend:   b,
		pipelines: make(map[*permutation.Variant]backend.Pipeline),
	}
}

// get returns the pipeline for v, creating it on first use.
func (c *pipelineCache) get(label string, v *permutation.Variant) (backend.Pipeline, error) {
	// Fast path: read lock
	c.mu.RLock()
	if p, ok := c.pipelines[v]; ok {
		c.mu.RUnlock()
		c.hits.Add(1)
		return p, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if p, ok := c.pipelines[v]; ok {
		c.hits.Add(1)
		return p, nil
	}

	p, err := c.backend.CreatePipeline(&backend.PipelineDesc{Label: label, Variant: v})
	if err != nil {
		return nil, err
	}
	c.pipelines[v] = p
	c.misses.Add(1)
	return p, nil
}

// len returns the number of cached pipelines.
func (c *pipelineCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pipelines)
}

// destroy releases every cached pipeline.
func (c *pipelineCache) destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for v, p := range c.pipelines {
		c.backend.DestroyPipeline(p)
		delete(c.pipelines, v)
	}
}
