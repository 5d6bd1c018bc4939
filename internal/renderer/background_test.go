package renderer

import (
	"math"
	"testing"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
)

func TestTransitionBoundaryStates(t *testing.T) {
	kinds := []timeline.TransitionKind{
		timeline.TransitionCrossfade,
		timeline.TransitionSlide,
		timeline.TransitionZoom,
		timeline.TransitionWipe,
		timeline.TransitionMorph,
		timeline.TransitionParticle,
	}

	for _, kind := range kinds {
		trans := timeline.Transition{Kind: kind, Duration: 1, Direction: timeline.DirectionLeft, Easing: "linear"}

		// At progress 0 only the previous background is shown.
		start := TransitionStateFor(trans, 0, 1280, 720)
		if start.Prev == nil {
			t.Errorf("%s: expected previous layer at progress 0", kind)
		} else if start.Prev.Alpha != 1 {
			t.Errorf("%s: expected previous alpha 1 at progress 0, got %f", kind, start.Prev.Alpha)
		}
		if kind != timeline.TransitionWipe && start.Cur.Alpha != 0 {
			t.Errorf("%s: expected current hidden at progress 0, got alpha %f", kind, start.Cur.Alpha)
		}

		// At progress 1 only the current background is shown.
		end := TransitionStateFor(trans, 1, 1280, 720)
		if end.Prev != nil {
			t.Errorf("%s: expected no previous layer at progress 1", kind)
		}
		if end.Cur.Alpha != 1 {
			t.Errorf("%s: expected current alpha 1 at progress 1, got %f", kind, end.Cur.Alpha)
		}
	}
}

func TestSlideOffsetsOppose(t *testing.T) {
	trans := timeline.Transition{Kind: timeline.TransitionSlide, Duration: 1, Direction: timeline.DirectionLeft, Easing: "linear"}
	state := TransitionStateFor(trans, 0.5, 1000, 500)

	if state.Prev == nil {
		t.Fatal("Expected previous layer mid-slide")
	}
	if state.Prev.OffsetX != -state.Cur.OffsetX {
		t.Errorf("Slide offsets must oppose: prev %f, cur %f", state.Prev.OffsetX, state.Cur.OffsetX)
	}
	if math.Abs(state.Cur.OffsetX-500) > 1e-9 {
		t.Errorf("Expected current offset 500 at half progress, got %f", state.Cur.OffsetX)
	}
}

func TestZoomScales(t *testing.T) {
	trans := timeline.Transition{Kind: timeline.TransitionZoom, Duration: 1, Easing: "linear"}
	state := TransitionStateFor(trans, 0.5, 1280, 720)

	if state.Prev == nil {
		t.Fatal("Expected previous layer mid-zoom")
	}
	if math.Abs(state.Prev.Scale-1.1) > 1e-9 {
		t.Errorf("Expected previous scale 1.1, got %f", state.Prev.Scale)
	}
	if math.Abs(state.Cur.Scale-0.9) > 1e-9 {
		t.Errorf("Expected current scale 0.9, got %f", state.Cur.Scale)
	}
}

func TestWipeClipGrows(t *testing.T) {
	trans := timeline.Transition{Kind: timeline.TransitionWipe, Duration: 1, Direction: timeline.DirectionCenter, Easing: "linear"}
	state := TransitionStateFor(trans, 0.3, 1280, 720)

	if state.Cur.Clip == nil {
		t.Fatal("Expected wipe clip mid-transition")
	}
	if !state.Cur.Clip.Circle {
		t.Error("Center-directed wipe must use the circle reveal")
	}
	if math.Abs(state.Cur.Clip.Progress-0.3) > 1e-9 {
		t.Errorf("Expected clip progress 0.3, got %f", state.Cur.Clip.Progress)
	}
}

func TestParticleOpacityPulse(t *testing.T) {
	// Particle 0 peaks at overall progress 0.25 and dies by 0.5.
	if got := ParticleOpacity(0, 0); got != 0 {
		t.Errorf("Expected zero opacity at start, got %f", got)
	}
	if got := ParticleOpacity(0.25, 0); math.Abs(got-1) > 1e-9 {
		t.Errorf("Expected peak opacity 1 at p=0.25, got %f", got)
	}
	if got := ParticleOpacity(0.5, 0); got != 0 {
		t.Errorf("Expected zero opacity once the pulse ends, got %f", got)
	}
	// Later particles lag earlier ones.
	if ParticleOpacity(0.2, 40) >= ParticleOpacity(0.2, 0) {
		t.Error("Particle 40 must lag particle 0")
	}
}

func TestParallaxBounded(t *testing.T) {
	const h = 720
	limit := 0.05 * h
	for tt := 0.0; tt < 30; tt += 0.37 {
		off := ParallaxOffset(tt, h)
		if math.Abs(off) > limit+1e-9 {
			t.Errorf("ParallaxOffset(%f) = %f exceeds 5%% of height", tt, off)
		}
	}
}

func TestGradientStopsDeterministic(t *testing.T) {
	t1, b1 := GradientStops("seg-key")
	t2, b2 := GradientStops("seg-key")
	if t1 != t2 || b1 != b2 {
		t.Error("GradientStops must be deterministic per seed")
	}
	if t1 == b1 {
		t.Error("Gradient stops should differ from each other")
	}
}
