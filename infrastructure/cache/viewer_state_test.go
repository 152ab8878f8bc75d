package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"keepsake-backend/application/ports"
)

func TestViewerStateCache_GetSet(t *testing.T) {
	cache := NewViewerStateCache()

	_, known := cache.Get("viewer-1")
	assert.False(t, known)

	state := ports.ViewerState{LastDrawAt: time.Now(), LastPivot: "pivot-1"}
	cache.Set("viewer-1", state)

	got, known := cache.Get("viewer-1")
	assert.True(t, known)
	assert.Equal(t, state, got)

	_, known = cache.Get("viewer-2")
	assert.False(t, known)
}

func TestViewerStateCache_LastWriterWins(t *testing.T) {
	cache := NewViewerStateCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Set("viewer-1", ports.ViewerState{LastDrawAt: time.Now(), LastPivot: "pivot-1"})
			cache.Get("viewer-1")
		}()
	}
	wg.Wait()

	got, known := cache.Get("viewer-1")
	assert.True(t, known)
	assert.Equal(t, "pivot-1", got.LastPivot)
}
