package summarizer

import (
	"testing"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
)

func TestParseSummary(t *testing.T) {
	response := "Here is the analysis:\n```json\n" + `{
  "summary": "A video about Go.",
  "key_points": ["Point one", "Point two"],
  "topics": ["go", "programming"],
  "sentiment": "positive",
  "difficulty": "intermediate"
}` + "\n```"

	result, err := parseSummary(response)
	if err != nil {
		t.Fatalf("parseSummary failed: %v", err)
	}
	if result.Summary != "A video about Go." {
		t.Errorf("Summary = %q", result.Summary)
	}
	if len(result.KeyPoints) != 2 {
		t.Errorf("Expected 2 key points, got %d", len(result.KeyPoints))
	}
	if result.Sentiment != media.SentimentPositive {
		t.Errorf("Sentiment = %s", result.Sentiment)
	}
}

func TestParseSummaryDefaultsEnums(t *testing.T) {
	result, err := parseSummary(`{"summary": "s", "sentiment": "ecstatic", "difficulty": "impossible"}`)
	if err != nil {
		t.Fatalf("parseSummary failed: %v", err)
	}
	if result.Sentiment != media.SentimentNeutral {
		t.Errorf("Expected neutral fallback, got %s", result.Sentiment)
	}
	if result.Difficulty != media.DifficultyIntermediate {
		t.Errorf("Expected intermediate fallback, got %s", result.Difficulty)
	}
}

func TestParseSummaryRejectsBadResponses(t *testing.T) {
	if _, err := parseSummary("no json here"); err == nil {
		t.Error("Expected error for response without JSON")
	}
	if _, err := parseSummary(`{"summary": ""}`); err == nil {
		t.Error("Expected error for empty summary")
	}
}
