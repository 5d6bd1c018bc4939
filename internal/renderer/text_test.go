package renderer

import (
	"math"
	"testing"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
)

func TestTypewriterReveal(t *testing.T) {
	anim := timeline.Typewriter{AnimSpec: timeline.AnimSpec{Delay: 0, Duration: 2}}

	// Halfway: floor(10 * 0.5) = 5 characters.
	state := TextStateFor(anim, 10, 1.0)
	if !state.Visible {
		t.Fatal("Expected visible at mid-animation")
	}
	if state.VisibleChars != 5 {
		t.Errorf("Expected 5 visible chars, got %d", state.VisibleChars)
	}

	// Past the end: full reveal, caret off.
	state = TextStateFor(anim, 10, 3.0)
	if state.VisibleChars != 10 {
		t.Errorf("Expected 10 visible chars after completion, got %d", state.VisibleChars)
	}
	if state.ShowCaret {
		t.Error("Caret must stop blinking after the reveal completes")
	}
}

func TestAnimationHiddenBeforeDelay(t *testing.T) {
	anims := []timeline.Animation{
		timeline.Typewriter{AnimSpec: timeline.AnimSpec{Delay: 1, Duration: 1}},
		timeline.FadeIn{AnimSpec: timeline.AnimSpec{Delay: 1, Duration: 1}},
		timeline.SlideIn{AnimSpec: timeline.AnimSpec{Delay: 1, Duration: 1}},
		timeline.ScaleIn{AnimSpec: timeline.AnimSpec{Delay: 1, Duration: 1}},
		timeline.Glitch{AnimSpec: timeline.AnimSpec{Delay: 1, Duration: 1}},
		timeline.Wave{AnimSpec: timeline.AnimSpec{Delay: 1, Duration: 1}, Stagger: 0.1},
	}
	for _, anim := range anims {
		if state := TextStateFor(anim, 5, 0.5); state.Visible {
			t.Errorf("%T visible before its delay elapsed", anim)
		}
	}
}

func TestSlideInConverges(t *testing.T) {
	anim := timeline.SlideIn{AnimSpec: timeline.AnimSpec{Delay: 0, Duration: 1}}

	early := TextStateFor(anim, 5, 0.1)
	if early.OffsetX >= 0 {
		t.Errorf("Expected negative offset early in slide, got %f", early.OffsetX)
	}
	done := TextStateFor(anim, 5, 1.0)
	if math.Abs(done.OffsetX) > 1e-9 {
		t.Errorf("Expected zero offset at completion, got %f", done.OffsetX)
	}
	if math.Abs(done.Opacity-1) > 1e-9 {
		t.Errorf("Expected full opacity at completion, got %f", done.Opacity)
	}
}

func TestScaleInEndsAtFullSize(t *testing.T) {
	anim := timeline.ScaleIn{AnimSpec: timeline.AnimSpec{Delay: 0, Duration: 1}}
	state := TextStateFor(anim, 5, 1.0)
	if math.Abs(state.Scale-1) > 1e-9 {
		t.Errorf("Expected scale 1 at completion, got %f", state.Scale)
	}
}

func TestGlitchWarmup(t *testing.T) {
	anim := timeline.Glitch{AnimSpec: timeline.AnimSpec{Delay: 0, Duration: 2}}

	// Below 10% progress the text stays hidden.
	if state := TextStateFor(anim, 5, 0.1); state.Visible {
		t.Error("Glitch text must stay hidden below 10% progress")
	}
	state := TextStateFor(anim, 5, 1.0)
	if !state.Visible {
		t.Fatal("Glitch text must show past 10% progress")
	}
	if state.GlitchAmp == 0 {
		t.Error("Expected non-zero jitter amplitude mid-animation")
	}
}

func TestWaveStagger(t *testing.T) {
	anim := timeline.Wave{AnimSpec: timeline.AnimSpec{Delay: 0, Duration: 1}, Stagger: 0.2}

	state := TextStateFor(anim, 4, 0.5)
	if len(state.Wave) != 4 {
		t.Fatalf("Expected 4 char states, got %d", len(state.Wave))
	}
	// Later characters lag earlier ones.
	for i := 1; i < 4; i++ {
		if state.Wave[i].Progress > state.Wave[i-1].Progress {
			t.Errorf("Char %d ahead of char %d: %f > %f", i, i-1, state.Wave[i].Progress, state.Wave[i-1].Progress)
		}
	}
	// At t=0.5 with stagger 0.2 the third character (index 2) starts at 0.4.
	if math.Abs(state.Wave[2].Progress-0.1) > 1e-9 {
		t.Errorf("Expected char 2 progress 0.1, got %f", state.Wave[2].Progress)
	}
}

func TestTextStateDeterministic(t *testing.T) {
	anim := timeline.Wave{AnimSpec: timeline.AnimSpec{Delay: 0.3, Duration: 1.5}, Stagger: 0.05}
	a := TextStateFor(anim, 12, 0.77)
	b := TextStateFor(anim, 12, 0.77)
	if len(a.Wave) != len(b.Wave) {
		t.Fatal("Wave state length differs between identical calls")
	}
	for i := range a.Wave {
		if a.Wave[i] != b.Wave[i] {
			t.Errorf("Char %d state differs between identical calls", i)
		}
	}
}
