// Package cache provides a generic LRU cache.
//
// The cache backs the compiled shader store of the wgpu backend: the
// WGSL to SPIR-V translation of a variant is done once and reused by every
// pipeline built from it.
//
//	c := cache.New[*permutation.Variant, []uint32](64)
//	spirv, err := c.GetOrCreate(v, func() ([]uint32, error) {
//		return compile(v)
//	})
//
// # Eviction
//
// When the soft limit is exceeded the least recently used entries are
// dropped until the cache is at three quarters of the limit. OnEvict
// observes every removal.
//
// # Thread Safety
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
