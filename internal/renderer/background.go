package renderer

import (
	"hash/fnv"
	"image/color"
	"math"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
)

// Layer describes how one background image participates in a blend.
// Offsets are in pixels, scale is around the canvas center.
type Layer struct {
	Alpha   float64
	Scale   float64
	OffsetX float64
	OffsetY float64
	Screen  bool      // composite with screen blend instead of normal alpha
	Clip    *WipeClip // non-nil restricts drawing to a growing region
}

// WipeClip is the reveal region of a wipe transition.
type WipeClip struct {
	Circle    bool
	Progress  float64
	Direction timeline.Direction
}

// TransitionState is the computed blend of previous and current
// backgrounds at one instant. It is a pure function of the directive,
// the local time and the canvas size.
type TransitionState struct {
	Progress  float64 // eased progress in [0, 1]
	Prev      *Layer  // nil when the previous background is not drawn
	Cur       Layer
	Particles int // particle count for the particle transition, else 0
}

// TransitionStateFor evaluates a transition directive at segment-local
// time. At progress 0 the output is "previous only"; at progress 1 it is
// "current only".
func TransitionStateFor(t timeline.Transition, localTime float64, w, h int) TransitionState {
	raw := 1.0
	if t.Duration > 0 {
		raw = clamp(localTime/t.Duration, 0, 1)
	}
	e := ResolveEasing(t.Easing)(raw)

	fw, fh := float64(w), float64(h)
	state := TransitionState{Progress: e, Cur: Layer{Alpha: 1, Scale: 1}}

	switch t.Kind {
	case timeline.TransitionCrossfade:
		state.Prev = &Layer{Alpha: 1 - e, Scale: 1}
		state.Cur.Alpha = e

	case timeline.TransitionSlide:
		// Both images stay full size and translate in opposite directions.
		var dx, dy float64
		switch t.Direction {
		case timeline.DirectionRight:
			dx = -1
		case timeline.DirectionUp:
			dy = 1
		case timeline.DirectionDown:
			dy = -1
		default: // left
			dx = 1
		}
		state.Prev = &Layer{Alpha: 1, Scale: 1, OffsetX: -dx * fw * e, OffsetY: -dy * fh * e}
		state.Cur.OffsetX = dx * fw * (1 - e)
		state.Cur.OffsetY = dy * fh * (1 - e)

	case timeline.TransitionZoom:
		state.Prev = &Layer{Alpha: 1 - e, Scale: 1 + 0.2*e}
		state.Cur.Alpha = e
		state.Cur.Scale = 0.8 + 0.2*e

	case timeline.TransitionWipe:
		state.Prev = &Layer{Alpha: 1, Scale: 1}
		state.Cur.Clip = &WipeClip{
			Circle:    t.Direction == timeline.DirectionCenter,
			Progress:  e,
			Direction: t.Direction,
		}

	case timeline.TransitionMorph:
		state.Prev = &Layer{Alpha: 1 - e, Scale: 1}
		state.Cur.Alpha = e
		state.Cur.Screen = true

	case timeline.TransitionParticle:
		state.Prev = &Layer{Alpha: 1 - e, Scale: 1}
		state.Cur.Alpha = e
		state.Particles = maxParticles
	}

	if e >= 1 {
		state.Prev = nil
	}
	if e <= 0 && state.Prev != nil && state.Cur.Clip == nil {
		state.Cur.Alpha = 0
	}
	return state
}

const maxParticles = 50

// ParticleOpacity is the parabolic pulse of one transition particle.
// Each particle's own progress is the overall progress advanced by its
// index, so particles flare and die at different moments.
func ParticleOpacity(progress float64, index int) float64 {
	p := clamp(progress*2-float64(index)/maxParticles, 0, 1)
	return p * (1 - p) * 4
}

// ParallaxOffset is the continuous vertical drift applied to a segment
// background outside transition windows, bounded by 5% of frame height.
func ParallaxOffset(globalTime float64, h int) float64 {
	return math.Sin(globalTime*0.8) * 0.05 * float64(h)
}

// gradientPalette are the two-stop pairs used when a segment has no
// usable background image.
var gradientPalette = [][2]color.NRGBA{
	{{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}, {R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}},
	{{R: 0x31, G: 0x1b, B: 0x4d, A: 0xff}, {R: 0x14, G: 0x0b, B: 0x24, A: 0xff}},
	{{R: 0x0c, G: 0x3a, B: 0x45, A: 0xff}, {R: 0x06, G: 0x18, B: 0x20, A: 0xff}},
	{{R: 0x45, G: 0x1f, B: 0x27, A: 0xff}, {R: 0x1c, G: 0x0c, B: 0x10, A: 0xff}},
}

// GradientStops derives a deterministic two-stop gradient from a seed
// string, so a segment that falls back keeps the same look every frame.
func GradientStops(seed string) (color.NRGBA, color.NRGBA) {
	h := fnv.New32a()
	h.Write([]byte(seed))
	pair := gradientPalette[h.Sum32()%uint32(len(gradientPalette))]
	return pair[0], pair[1]
}
