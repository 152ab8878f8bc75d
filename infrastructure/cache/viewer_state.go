package cache

import (
	"sync"
	"time"

	"keepsake-backend/application/ports"
)

// ViewerStateCache is the process-wide sampler bookkeeping, keyed by viewer
// id. Entries idle longer than the retention window are swept so the map does
// not grow with every viewer ever seen.
type ViewerStateCache struct {
	mu        sync.RWMutex
	states    map[string]ports.ViewerState
	retention time.Duration
}

var _ ports.ViewerStateStore = (*ViewerStateCache)(nil)

// NewViewerStateCache creates the cache and starts its sweep goroutine
func NewViewerStateCache() *ViewerStateCache {
	cache := &ViewerStateCache{
		states:    make(map[string]ports.ViewerState),
		retention: 1 * time.Hour,
	}

	go cache.sweep()

	return cache
}

// Get retrieves the viewer's draw state
func (c *ViewerStateCache) Get(viewerID string) (ports.ViewerState, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	state, exists := c.states[viewerID]
	return state, exists
}

// Set stores the viewer's draw state. Concurrent draws for the same viewer
// may race; last writer wins.
func (c *ViewerStateCache) Set(viewerID string, state ports.ViewerState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.states[viewerID] = state
}

// sweep periodically drops entries past the retention window
func (c *ViewerStateCache) sweep() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-c.retention)
		c.mu.Lock()
		for viewerID, state := range c.states {
			if state.LastDrawAt.Before(cutoff) {
				delete(c.states, viewerID)
			}
		}
		c.mu.Unlock()
	}
}
