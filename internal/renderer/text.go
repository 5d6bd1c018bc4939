package renderer

import (
	"math"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
)

// CharState is the wave animation state of a single character.
type CharState struct {
	Progress float64
	OffsetY  float64
}

// TextState is the computed draw state of a text element at one instant.
// It is a pure function of (animation, rune count, local time), so frame
// renders of the same segment at the same time are reproducible; only the
// glitch jitter applied at draw time uses randomness.
type TextState struct {
	Visible      bool
	Opacity      float64
	OffsetX      float64 // horizontal slide offset in pixels
	Scale        float64
	VisibleChars int // -1 draws the whole string
	ShowCaret    bool
	GlitchAmp    float64     // jitter amplitude in pixels, 0 disables
	Wave         []CharState // per-character states, nil for other variants
}

// TextStateFor evaluates a text animation at segment-local time.
func TextStateFor(anim timeline.Animation, runeCount int, localTime float64) TextState {
	spec := anim.Spec()
	progress := spec.Progress(localTime)

	state := TextState{Visible: progress > 0, Opacity: 1, Scale: 1, VisibleChars: -1}
	if !state.Visible {
		return state
	}

	switch a := anim.(type) {
	case timeline.Typewriter:
		state.VisibleChars = int(math.Floor(float64(runeCount) * progress))
		// Caret blinks on a 500ms toggle until the reveal completes.
		state.ShowCaret = progress < 1 && int(localTime/0.5)%2 == 0

	case timeline.FadeIn:
		state.Opacity = EaseOut(progress)

	case timeline.SlideIn:
		eased := EaseOut(progress)
		state.OffsetX = -100 * (1 - eased)
		state.Opacity = eased

	case timeline.ScaleIn:
		state.Scale = 0.3 + 0.7*Bounce(progress)
		state.Opacity = progress

	case timeline.Glitch:
		if progress < 0.1 {
			state.Visible = false
			return state
		}
		state.GlitchAmp = math.Sin(progress*20) * 5

	case timeline.Wave:
		state.Wave = make([]CharState, runeCount)
		for i := range state.Wave {
			cp := charProgress(spec, a.Stagger, i, localTime)
			state.Wave[i] = CharState{
				Progress: cp,
				OffsetY:  math.Sin(cp*2*math.Pi+float64(i)*0.5) * 10 * cp,
			}
		}
	}
	return state
}

// charProgress offsets the shared animation window by index*stagger for
// character-by-character reveals.
func charProgress(spec timeline.AnimSpec, stagger float64, index int, localTime float64) float64 {
	t := localTime - spec.Delay - float64(index)*stagger
	if t <= 0 {
		return 0
	}
	if spec.Duration <= 0 {
		return 1
	}
	return clamp(t/spec.Duration, 0, 1)
}
