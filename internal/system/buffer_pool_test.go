package system

import (
	"image"
	"testing"
)

func TestFramePoolBounds(t *testing.T) {
	pool := NewFramePool()

	small := pool.Get(image.Rect(0, 0, 64, 36))
	big := pool.Get(image.Rect(0, 0, 1280, 720))

	if small.Bounds() != image.Rect(0, 0, 64, 36) {
		t.Errorf("Unexpected bounds %v", small.Bounds())
	}
	if big.Bounds() != image.Rect(0, 0, 1280, 720) {
		t.Errorf("Unexpected bounds %v", big.Bounds())
	}

	pool.Put(small)
	again := pool.Get(image.Rect(0, 0, 64, 36))
	if again.Bounds() != small.Bounds() {
		t.Errorf("Pool returned wrong size after reuse: %v", again.Bounds())
	}
}

func TestFramePoolPutNil(t *testing.T) {
	pool := NewFramePool()
	pool.Put(nil) // must not panic

	// Putting a buffer the pool has never seen is a quiet no-op too.
	pool.Put(image.NewRGBA(image.Rect(0, 0, 10, 10)))
}
