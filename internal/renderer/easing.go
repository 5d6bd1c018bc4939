package renderer

import "math"

// EasingFunc maps linear progress in [0, 1] to shaped progress in [0, 1].
// Every easing satisfies f(0) = 0 and f(1) = 1.
type EasingFunc func(t float64) float64

// Linear is the identity easing.
func Linear(t float64) float64 { return t }

// EaseIn accelerates from zero velocity.
func EaseIn(t float64) float64 { return t * t }

// EaseOut decelerates to zero velocity.
func EaseOut(t float64) float64 { return 1 - (1-t)*(1-t) }

// EaseInOut accelerates until halfway, then decelerates.
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Bounce is the standard three-threshold bounce.
func Bounce(t float64) float64 {
	const n1 = 7.5625
	const d1 = 2.75
	switch {
	case t < 1/d1:
		return n1 * t * t
	case t < 2/d1:
		t -= 1.5 / d1
		return n1*t*t + 0.75
	case t < 2.5/d1:
		t -= 2.25 / d1
		return n1*t*t + 0.9375
	default:
		t -= 2.625 / d1
		return n1*t*t + 0.984375
	}
}

// Elastic overshoots with a decaying oscillation. The endpoints are
// special-cased so the boundary laws hold exactly.
func Elastic(t float64) float64 {
	const c4 = 2 * math.Pi / 3
	if t == 0 {
		return 0
	}
	if t == 1 {
		return 1
	}
	return math.Pow(2, -10*t)*math.Sin((t*10-0.75)*c4) + 1
}

// ResolveEasing maps an easing name from a transition directive to its
// function. Unknown names fall back to linear rather than failing a frame.
func ResolveEasing(name string) EasingFunc {
	switch name {
	case "easeIn":
		return EaseIn
	case "easeOut":
		return EaseOut
	case "easeInOut":
		return EaseInOut
	case "bounce":
		return Bounce
	case "elastic":
		return Elastic
	default:
		return Linear
	}
}

// lerp performs linear interpolation between a and b.
func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
