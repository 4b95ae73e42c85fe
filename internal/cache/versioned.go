package cache

import (
	"context"
	"sync"
)

// Versioned counts invalidations so a result computed before one is never
// stored after it. Searches read Generation before querying and store with
// SetAt.
type Versioned struct {
	QueryCache

	mu  sync.RWMutex
	gen uint64
}

// NewVersioned wraps c. A nil c stores nothing.
func NewVersioned(c QueryCache) *Versioned {
	if c == nil {
		c = Noop{}
	}
	return &Versioned{QueryCache: c}
}

// Generation returns the number of invalidations so far.
func (v *Versioned) Generation() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.gen
}

// SetAt stores value only if no invalidation happened since gen was read.
// It reports whether the value was stored.
func (v *Versioned) SetAt(ctx context.Context, gen uint64, key string, value []byte) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.gen != gen {
		return false
	}
	v.QueryCache.Set(ctx, key, value)
	return true
}

// Invalidate bumps the generation and clears the wrapped cache.
func (v *Versioned) Invalidate(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	v.QueryCache.Invalidate(ctx)
}
