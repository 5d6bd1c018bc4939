package timeline

import (
	"errors"
	"fmt"
	"math"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
)

// ErrInvalidDuration is returned for a non-positive total duration or a
// plan whose key points cannot fit into the remaining time.
var ErrInvalidDuration = errors.New("invalid timeline duration")

// Planner partitions the narration timeline into an intro, one segment
// per key point and a conclusion.
type Planner struct {
	// MaxBookendSeconds caps the intro and conclusion length.
	MaxBookendSeconds float64
	// BookendShare is the fraction of the total duration given to the
	// intro and to the conclusion before the cap applies.
	BookendShare float64
	// TransitionSeconds is the nominal transition length; it is shortened
	// for very short segments so a transition never swallows a segment.
	TransitionSeconds float64
}

// NewPlanner returns a planner with the product defaults: 8s bookends
// at 15% of the total duration and 1s transitions.
func NewPlanner() *Planner {
	return &Planner{
		MaxBookendSeconds: 8,
		BookendShare:      0.15,
		TransitionSeconds: 1.0,
	}
}

// Plan builds the ordered segment list covering [0, totalDuration].
// The result is deterministic for the same inputs: transition variety
// comes from alternating kinds and cycling directions by index, never
// from randomness, so renders stay reproducible.
func (p *Planner) Plan(video media.VideoDescriptor, summary media.SummaryResult, totalDuration float64) ([]Segment, error) {
	if totalDuration <= 0 {
		return nil, fmt.Errorf("%w: total duration %.2fs", ErrInvalidDuration, totalDuration)
	}

	bookend := math.Min(p.MaxBookendSeconds, p.BookendShare*totalDuration)
	keyPoints := summary.KeyPoints
	n := len(keyPoints)

	introEnd := bookend
	conclusionStart := totalDuration - bookend
	if n == 0 {
		// No key points: the intro absorbs the middle of the timeline and
		// the conclusion starts exactly where the intro ends.
		introEnd = conclusionStart
	} else {
		keyDur := (totalDuration - 2*bookend) / float64(n)
		if keyDur <= 0 {
			return nil, fmt.Errorf("%w: %d key points do not fit into %.2fs", ErrInvalidDuration, n, totalDuration)
		}
	}

	segments := make([]Segment, 0, n+2)

	intro := Segment{
		Kind:        KindIntro,
		Start:       0,
		End:         introEnd,
		Title:       video.Title,
		Narration:   summary.Summary,
		Background:  video.ThumbnailURL,
		Transitions: []Transition{{Kind: TransitionCrossfade, Duration: p.transitionFor(introEnd), Easing: "easeInOut"}},
	}
	intro.Elements = p.introElements(video, summary)
	segments = append(segments, intro)

	if n > 0 {
		keyDur := (conclusionStart - introEnd) / float64(n)
		for i, point := range keyPoints {
			start := introEnd + float64(i)*keyDur
			end := start + keyDur
			if i == n-1 {
				end = conclusionStart
			}
			seg := Segment{
				Kind:        KindKeyPoint,
				Start:       start,
				End:         end,
				Title:       fmt.Sprintf("Key Insight %d", i+1),
				Narration:   point,
				Background:  video.ThumbnailURL,
				Transitions: []Transition{p.keyPointTransition(i, end-start)},
			}
			seg.Elements = p.keyPointElements(point, i, n, summary.Sentiment)
			segments = append(segments, seg)
		}
	}

	conclusion := Segment{
		Kind:        KindConclusion,
		Start:       conclusionStart,
		End:         totalDuration,
		Title:       "Summary Complete",
		Background:  video.ThumbnailURL,
		Transitions: []Transition{{Kind: TransitionZoom, Duration: p.transitionFor(totalDuration - conclusionStart), Direction: DirectionCenter, Easing: "easeOut"}},
	}
	conclusion.Elements = p.conclusionElements(video, summary)
	segments = append(segments, conclusion)

	return segments, nil
}

// keyPointTransition alternates slide and zoom and cycles the direction
// by index modulo 4 so consecutive segments stay visually distinct.
func (p *Planner) keyPointTransition(index int, segDur float64) Transition {
	directions := [4]Direction{DirectionLeft, DirectionRight, DirectionUp, DirectionDown}
	t := Transition{
		Duration:  p.transitionFor(segDur),
		Direction: directions[index%4],
		Easing:    "easeInOut",
	}
	if index%2 == 0 {
		t.Kind = TransitionSlide
	} else {
		t.Kind = TransitionZoom
	}
	return t
}

// transitionFor shortens the nominal transition so it never exceeds a
// quarter of its segment.
func (p *Planner) transitionFor(segDur float64) float64 {
	return math.Min(p.TransitionSeconds, segDur/4)
}

func (p *Planner) introElements(video media.VideoDescriptor, summary media.SummaryResult) []VisualElement {
	return []VisualElement{
		{
			Content: TextContent{Text: "AI VIDEO SUMMARY"},
			Anim:    Glitch{AnimSpec{Delay: 0.2, Duration: 1.2}},
			Rect:    RectPct{X: 10, Y: 18, W: 80, H: 8},
			Style:   Style{FontSize: 28, Fill: "#facc15", Align: "center"},
		},
		{
			Content: TextContent{Text: video.Title},
			Anim:    ScaleIn{AnimSpec{Delay: 0.5, Duration: 0.9}},
			Rect:    RectPct{X: 8, Y: 34, W: 84, H: 18},
			Style:   Style{FontSize: 48, Bold: true, Fill: "#ffffff", Align: "center"},
		},
		{
			Content: TextContent{Text: video.ChannelTitle},
			Anim:    FadeIn{AnimSpec{Delay: 1.2, Duration: 0.8}},
			Rect:    RectPct{X: 20, Y: 58, W: 60, H: 7},
			Style:   Style{FontSize: 30, Fill: "#d4d4d8", Align: "center"},
		},
		{
			Content: TextContent{Text: fmt.Sprintf("%s · %s", summary.Difficulty, summary.Sentiment)},
			Anim:    FadeIn{AnimSpec{Delay: 1.6, Duration: 0.8}},
			Rect:    RectPct{X: 25, Y: 70, W: 50, H: 5},
			Style:   Style{FontSize: 22, Fill: "#a1a1aa", Align: "center"},
		},
	}
}

func (p *Planner) keyPointElements(point string, index, total int, sentiment media.Sentiment) []VisualElement {
	// Alternate body animation for variety; still deterministic per index.
	var body Animation = Typewriter{AnimSpec{Delay: 0.6, Duration: 2.2}}
	if index%2 == 1 {
		body = Wave{AnimSpec: AnimSpec{Delay: 0.6, Duration: 2.0}, Stagger: 0.08}
	}
	return []VisualElement{
		{
			Content: TextContent{Text: fmt.Sprintf("Key Insight %d", index+1)},
			Anim:    SlideIn{AnimSpec{Delay: 0.2, Duration: 0.6}},
			Rect:    RectPct{X: 8, Y: 16, W: 60, H: 8},
			Style:   Style{FontSize: 38, Bold: true, Fill: "#facc15"},
		},
		{
			Content: TextContent{Text: point},
			Anim:    body,
			Rect:    RectPct{X: 8, Y: 34, W: 84, H: 30},
			Style:   Style{FontSize: 32, Fill: "#ffffff"},
		},
		{
			Content: ProgressContent{Percentage: float64(index+1) / float64(total) * 100},
			Anim:    FadeIn{AnimSpec{Delay: 0.4, Duration: 0.6}},
			Rect:    RectPct{X: 8, Y: 84, W: 84, H: 3},
			Style:   Style{Fill: "#facc15"},
		},
	}
}

func (p *Planner) conclusionElements(video media.VideoDescriptor, summary media.SummaryResult) []VisualElement {
	elements := []VisualElement{
		{
			Content: TextContent{Text: "Summary Complete"},
			Anim:    ScaleIn{AnimSpec{Delay: 0.3, Duration: 0.9}},
			Rect:    RectPct{X: 10, Y: 28, W: 80, H: 14},
			Style:   Style{FontSize: 46, Bold: true, Fill: "#ffffff", Align: "center"},
		},
		{
			Content: ImageContent{Ref: "qr:" + video.URL()},
			Anim:    FadeIn{AnimSpec{Delay: 1.0, Duration: 0.8}},
			Rect:    RectPct{X: 41, Y: 48, W: 18, H: 32},
		},
		{
			Content: TextContent{Text: "Scan to watch the full video"},
			Anim:    FadeIn{AnimSpec{Delay: 1.4, Duration: 0.8}},
			Rect:    RectPct{X: 20, Y: 84, W: 60, H: 5},
			Style:   Style{FontSize: 24, Fill: "#d4d4d8", Align: "center"},
		},
	}
	if len(summary.Topics) > 0 {
		elements = append(elements, VisualElement{
			Content: TextContent{Text: joinTopics(summary.Topics)},
			Anim:    FadeIn{AnimSpec{Delay: 1.8, Duration: 0.8}},
			Rect:    RectPct{X: 15, Y: 90, W: 70, H: 4},
			Style:   Style{FontSize: 20, Fill: "#a1a1aa", Align: "center"},
		})
	}
	return elements
}

func joinTopics(topics []string) string {
	out := ""
	for i, t := range topics {
		if i > 0 {
			out += " · "
		}
		out += t
	}
	return out
}
