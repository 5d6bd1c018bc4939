package media

import (
	"math"
	"strings"
	"testing"
)

func TestNarrationEstimateRate(t *testing.T) {
	est := NarrationEstimate{WordsPerMinute: 150}

	// 300 words at 150 wpm is 120 seconds.
	text := strings.Repeat("word ", 300)
	if got := est.Seconds(text); math.Abs(got-120) > 1e-9 {
		t.Errorf("Expected 120s for 300 words, got %f", got)
	}
}

func TestNarrationEstimateClamp(t *testing.T) {
	est := DefaultNarrationEstimate()

	// 10 words would be 4 seconds unclamped.
	if got := est.Seconds("one two three four five six seven eight nine ten"); got != 30 {
		t.Errorf("Expected clamp to 30s minimum, got %f", got)
	}
	// 1000 words would be 400 seconds unclamped.
	if got := est.Seconds(strings.Repeat("word ", 1000)); got != 120 {
		t.Errorf("Expected clamp to 120s maximum, got %f", got)
	}
}

func TestNarrationEstimateCustomRate(t *testing.T) {
	est := NarrationEstimate{WordsPerMinute: 100, MinSeconds: 5, MaxSeconds: 600}
	if got := est.Seconds(strings.Repeat("word ", 200)); math.Abs(got-120) > 1e-9 {
		t.Errorf("Expected 120s for 200 words at 100 wpm, got %f", got)
	}

	// Non-positive rate falls back to the shipped 150 wpm.
	est = NarrationEstimate{WordsPerMinute: 0}
	if got := est.Seconds(strings.Repeat("word ", 150)); math.Abs(got-60) > 1e-9 {
		t.Errorf("Expected fallback rate of 150 wpm, got %f seconds", got)
	}
}

func TestNarrationText(t *testing.T) {
	s := SummaryResult{
		Summary:   "The gist.",
		KeyPoints: []string{"First point.", "Second point."},
	}
	got := s.NarrationText()
	want := "The gist. First point. Second point."
	if got != want {
		t.Errorf("NarrationText = %q, want %q", got, want)
	}

	empty := SummaryResult{KeyPoints: []string{"Only point."}}
	if got := empty.NarrationText(); got != "Only point." {
		t.Errorf("NarrationText without summary = %q", got)
	}
}

func TestVideoURL(t *testing.T) {
	v := VideoDescriptor{ID: "dQw4w9WgXcQ"}
	if got := v.URL(); got != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Errorf("URL = %q", got)
	}
}
