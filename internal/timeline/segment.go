package timeline

import "fmt"

// SegmentKind identifies the role of a segment inside the summary video.
type SegmentKind string

const (
	KindIntro      SegmentKind = "intro"
	KindKeyPoint   SegmentKind = "keypoint"
	KindHighlight  SegmentKind = "highlight"
	KindConclusion SegmentKind = "conclusion"
)

// Direction steers directional transitions (slide, wipe).
type Direction string

const (
	DirectionLeft   Direction = "left"
	DirectionRight  Direction = "right"
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionCenter Direction = "center"
)

// TransitionKind names the blend applied between two segment backgrounds.
type TransitionKind string

const (
	TransitionCrossfade TransitionKind = "crossfade"
	TransitionSlide     TransitionKind = "slide"
	TransitionZoom      TransitionKind = "zoom"
	TransitionWipe      TransitionKind = "wipe"
	TransitionMorph     TransitionKind = "morph"
	TransitionParticle  TransitionKind = "particle"
)

// Transition is a time-bounded blend between the previous segment's
// background and the current one. It is only active during the first
// Duration seconds of the segment.
type Transition struct {
	Kind      TransitionKind `yaml:"kind"`
	Duration  float64        `yaml:"duration"`
	Direction Direction      `yaml:"direction,omitempty"`
	Easing    string         `yaml:"easing"`
}

// RectPct positions an element as percentages of the canvas (0-100).
type RectPct struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Style carries the optional text styling of an element.
type Style struct {
	FontSize    float64 `yaml:"font_size,omitempty"`
	Bold        bool    `yaml:"bold,omitempty"`
	Fill        string  `yaml:"fill,omitempty"`
	Stroke      string  `yaml:"stroke,omitempty"`
	StrokeWidth float64 `yaml:"stroke_width,omitempty"`
	Align       string  `yaml:"align,omitempty"` // left, center, right
}

// AnimSpec is the timing shared by every animation variant.
type AnimSpec struct {
	Delay    float64 `yaml:"delay"`
	Duration float64 `yaml:"duration"`
}

// Progress maps a segment-local time to animation progress in [0, 1].
// Before the delay elapses the progress is 0 and the element is not drawn.
func (a AnimSpec) Progress(localTime float64) float64 {
	if localTime <= a.Delay {
		return 0
	}
	if a.Duration <= 0 {
		return 1
	}
	p := (localTime - a.Delay) / a.Duration
	if p > 1 {
		return 1
	}
	return p
}

// Animation is the closed set of element entrance animations.
// Rendering dispatches on the concrete type, never on strings.
type Animation interface {
	Spec() AnimSpec
	animKind() string
}

type Typewriter struct{ AnimSpec }
type FadeIn struct{ AnimSpec }
type SlideIn struct{ AnimSpec }
type ScaleIn struct{ AnimSpec }
type Glitch struct{ AnimSpec }

// Wave reveals text character by character, each character offset by
// index*Stagger seconds and bobbing on a sine wave.
type Wave struct {
	AnimSpec
	Stagger float64
}

func (a Typewriter) Spec() AnimSpec { return a.AnimSpec }
func (a FadeIn) Spec() AnimSpec     { return a.AnimSpec }
func (a SlideIn) Spec() AnimSpec    { return a.AnimSpec }
func (a ScaleIn) Spec() AnimSpec    { return a.AnimSpec }
func (a Glitch) Spec() AnimSpec     { return a.AnimSpec }
func (a Wave) Spec() AnimSpec       { return a.AnimSpec }

func (Typewriter) animKind() string { return "typewriter" }
func (FadeIn) animKind() string     { return "fadeIn" }
func (SlideIn) animKind() string    { return "slideIn" }
func (ScaleIn) animKind() string    { return "scaleIn" }
func (Glitch) animKind() string     { return "glitch" }
func (Wave) animKind() string       { return "wave" }

// Content is the closed set of element payloads.
type Content interface{ contentKind() string }

type TextContent struct{ Text string }

// ImageContent references a drawable image. A "qr:" prefixed ref is
// rendered as a QR code of the remainder instead of being fetched.
type ImageContent struct{ Ref string }

type ProgressContent struct{ Percentage float64 }

type OverlayContent struct {
	Fill  string
	Alpha float64
}

func (TextContent) contentKind() string     { return "text" }
func (ImageContent) contentKind() string    { return "image" }
func (ProgressContent) contentKind() string { return "progress" }
func (OverlayContent) contentKind() string  { return "overlay" }

// VisualElement is one animated drawable unit owned by a segment.
type VisualElement struct {
	Content Content
	Anim    Animation
	Rect    RectPct
	Style   Style
}

// Segment is a contiguous time slice of the generated video.
// Segments are immutable once the planner hands them out.
type Segment struct {
	Kind        SegmentKind     `yaml:"kind"`
	Start       float64         `yaml:"start"`
	End         float64         `yaml:"end"`
	Title       string          `yaml:"title"`
	Narration   string          `yaml:"narration,omitempty"`
	Background  string          `yaml:"background,omitempty"`
	Transitions []Transition    `yaml:"transitions,omitempty"`
	Elements    []VisualElement `yaml:"elements,omitempty"`
}

// Duration returns the segment length in seconds.
func (s Segment) Duration() float64 { return s.End - s.Start }

// LocalTime converts a global timeline time to segment-local time.
func (s Segment) LocalTime(t float64) float64 { return t - s.Start }

// Contains reports whether t falls inside [Start, End).
func (s Segment) Contains(t float64) bool { return t >= s.Start && t < s.End }

// ActiveTransition returns the transition in effect at segment-local time,
// or nil when the time is past every transition window.
func (s Segment) ActiveTransition(localTime float64) *Transition {
	for i := range s.Transitions {
		if localTime < s.Transitions[i].Duration {
			return &s.Transitions[i]
		}
	}
	return nil
}

// FindSegment locates the segment whose [start, end) window contains t.
// A linear scan is fine: plans are single-digit to low-tens of segments.
func FindSegment(segments []Segment, t float64) (Segment, bool) {
	for _, s := range segments {
		if s.Contains(t) {
			return s, true
		}
	}
	return Segment{}, false
}

// Validate checks the planner invariants: segments contiguous,
// non-overlapping and covering [0, total] exactly.
func Validate(segments []Segment, total float64) error {
	if len(segments) == 0 {
		return fmt.Errorf("empty segment list")
	}
	const eps = 1e-6
	if segments[0].Start > eps {
		return fmt.Errorf("first segment starts at %.3f, want 0", segments[0].Start)
	}
	for i := 1; i < len(segments); i++ {
		if d := segments[i].Start - segments[i-1].End; d > eps || d < -eps {
			return fmt.Errorf("gap of %.6fs between segment %d and %d", d, i-1, i)
		}
	}
	last := segments[len(segments)-1].End
	if d := last - total; d > eps || d < -eps {
		return fmt.Errorf("segments end at %.3f, want %.3f", last, total)
	}
	return nil
}
