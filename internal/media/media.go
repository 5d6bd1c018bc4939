package media

import (
	"fmt"
	"strings"
	"time"
)

// VideoDescriptor holds the metadata of the source YouTube video.
// It is produced once by the metadata provider and read-only afterwards.
type VideoDescriptor struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	ChannelTitle string    `json:"channel_title" yaml:"channel_title"`
	Duration     float64   `json:"duration_seconds" yaml:"duration_seconds"`
	ThumbnailURL string    `json:"thumbnail_url" yaml:"thumbnail_url"`
	PublishedAt  time.Time `json:"published_at" yaml:"published_at"`
	ViewCount    int64     `json:"view_count" yaml:"view_count"`
	Tags         []string  `json:"tags" yaml:"tags"`
}

// URL returns the canonical watch URL for the video.
func (v VideoDescriptor) URL() string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", v.ID)
}

// Sentiment classifies the overall tone of the summarized content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Difficulty classifies how advanced the summarized content is.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// SummaryResult is the structured summary returned by the LLM provider.
type SummaryResult struct {
	Summary    string     `json:"summary" yaml:"summary"`
	KeyPoints  []string   `json:"key_points" yaml:"key_points"`
	Topics     []string   `json:"topics" yaml:"topics"`
	Sentiment  Sentiment  `json:"sentiment" yaml:"sentiment"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// NarrationText joins the prose summary and key points into the text
// that is handed to the voice synthesizer.
func (s SummaryResult) NarrationText() string {
	parts := make([]string, 0, len(s.KeyPoints)+1)
	if s.Summary != "" {
		parts = append(parts, s.Summary)
	}
	parts = append(parts, s.KeyPoints...)
	return strings.Join(parts, " ")
}

// NarrationEstimate converts a narration word count into an expected
// duration in seconds. The words-per-minute rate and the clamp bounds
// are configurable because they directly drive segment timing.
type NarrationEstimate struct {
	WordsPerMinute float64
	MinSeconds     float64
	MaxSeconds     float64
}

// DefaultNarrationEstimate matches the narration pacing the product
// shipped with: 150 wpm clamped to [30s, 120s].
func DefaultNarrationEstimate() NarrationEstimate {
	return NarrationEstimate{WordsPerMinute: 150, MinSeconds: 30, MaxSeconds: 120}
}

// Seconds estimates the spoken duration of text.
func (e NarrationEstimate) Seconds(text string) float64 {
	wpm := e.WordsPerMinute
	if wpm <= 0 {
		wpm = 150
	}
	words := len(strings.Fields(text))
	dur := float64(words) / wpm * 60

	if e.MinSeconds > 0 && dur < e.MinSeconds {
		dur = e.MinSeconds
	}
	if e.MaxSeconds > 0 && dur > e.MaxSeconds {
		dur = e.MaxSeconds
	}
	return dur
}
