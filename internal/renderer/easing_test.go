package renderer

import (
	"math"
	"testing"
)

func TestEasingBoundaryLaws(t *testing.T) {
	easings := map[string]EasingFunc{
		"linear":    Linear,
		"easeIn":    EaseIn,
		"easeOut":   EaseOut,
		"easeInOut": EaseInOut,
		"bounce":    Bounce,
		"elastic":   Elastic,
	}

	for name, fn := range easings {
		if got := fn(0); math.Abs(got) > 1e-9 {
			t.Errorf("%s(0) = %f, want 0", name, got)
		}
		if got := fn(1); math.Abs(got-1) > 1e-9 {
			t.Errorf("%s(1) = %f, want 1", name, got)
		}
	}
}

func TestEaseInOutMidpoint(t *testing.T) {
	if got := EaseInOut(0.5); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("EaseInOut(0.5) = %f, want 0.5", got)
	}
	// Slow start, fast middle.
	if EaseInOut(0.1) >= 0.1 {
		t.Errorf("EaseInOut(0.1) = %f, expected below linear", EaseInOut(0.1))
	}
	if EaseInOut(0.9) <= 0.9 {
		t.Errorf("EaseInOut(0.9) = %f, expected above linear", EaseInOut(0.9))
	}
}

func TestResolveEasingFallback(t *testing.T) {
	fn := ResolveEasing("no-such-easing")
	for _, v := range []float64{0, 0.25, 0.5, 0.75, 1} {
		if got := fn(v); got != v {
			t.Errorf("Fallback easing(%f) = %f, want identity", v, got)
		}
	}
}
