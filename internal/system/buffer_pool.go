package system

import (
	"image"
	"sync"
)

// FramePool reuses image.RGBA buffers between frames to keep GC pressure
// low during the render loop, which allocates transition scratch frames
// thirty times per second. Each renderer owns its own pool; there is no
// ambient global instance.
type FramePool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

// NewFramePool creates an empty pool.
func NewFramePool() *FramePool {
	return &FramePool{pools: make(map[string]*sync.Pool)}
}

// Get returns an RGBA buffer of the given size, creating one when none
// is available. Returned buffers may hold stale pixels; callers clear
// them before drawing.
func (p *FramePool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

// Put returns a buffer to the pool for reuse.
func (p *FramePool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
