package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
)

const defaultModel = "gemini-2.0-flash"

// Gemini produces structured summaries of YouTube videos. It sends the
// watch URL directly so Gemini can process the actual video content,
// and falls back to metadata-only prompting when the model rejects the
// video for size.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds an API-key authenticated summarizer.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Gemini{client: client, model: model}, nil
}

// Summarize asks the model for the structured summary driving the whole
// timeline: prose summary, key points, topics, sentiment and difficulty.
func (g *Gemini) Summarize(ctx context.Context, video media.VideoDescriptor) (media.SummaryResult, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(buildPrompt(video, false)),
		genai.NewPartFromURI(video.URL(), "video/mp4"),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		// Long videos blow the token budget; retry on metadata alone.
		if strings.Contains(err.Error(), "token count") || strings.Contains(err.Error(), "INVALID_ARGUMENT") {
			log.Printf("[!] Video content too large for %s, summarizing from metadata only", video.ID)
			return g.summarizeMetadataOnly(ctx, video)
		}
		return media.SummaryResult{}, fmt.Errorf("summarize video %s: %w", video.ID, err)
	}

	text := result.Text()
	if text == "" {
		log.Printf("[!] Empty model response for %s, summarizing from metadata only", video.ID)
		return g.summarizeMetadataOnly(ctx, video)
	}
	return parseSummary(text)
}

func (g *Gemini) summarizeMetadataOnly(ctx context.Context, video media.VideoDescriptor) (media.SummaryResult, error) {
	parts := []*genai.Part{genai.NewPartFromText(buildPrompt(video, true))}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return media.SummaryResult{}, fmt.Errorf("summarize metadata of %s: %w", video.ID, err)
	}
	text := result.Text()
	if text == "" {
		return media.SummaryResult{}, fmt.Errorf("no summary produced for video %s", video.ID)
	}
	return parseSummary(text)
}

func buildPrompt(video media.VideoDescriptor, metadataOnly bool) string {
	source := "the actual video content provided"
	if metadataOnly {
		source = "ONLY the metadata below; the video itself could not be processed"
	}

	return fmt.Sprintf(`You are an assistant that summarizes YouTube videos for an automated video generator. Base your answer on %s.

VIDEO METADATA:
Title: %s
Channel: %s
Duration: %.0f seconds
View Count: %d
Published: %s
Tags: %s

Respond with JSON only, in this exact shape:
{
  "summary": "2-3 sentence prose summary",
  "key_points": ["4 to 6 short key takeaways"],
  "topics": ["up to 5 topic labels"],
  "sentiment": "positive" | "neutral" | "negative",
  "difficulty": "beginner" | "intermediate" | "advanced"
}`,
		source,
		video.Title,
		video.ChannelTitle,
		video.Duration,
		video.ViewCount,
		video.PublishedAt.Format("2006-01-02"),
		strings.Join(video.Tags, ", "),
	)
}

// parseSummary extracts the JSON object from the model response, which
// may wrap it in prose or code fences.
func parseSummary(response string) (media.SummaryResult, error) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return media.SummaryResult{}, fmt.Errorf("no JSON found in model response: %s", truncate(response, 200))
	}

	var result media.SummaryResult
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return media.SummaryResult{}, fmt.Errorf("unmarshal summary JSON: %w", err)
	}

	if result.Summary == "" {
		return media.SummaryResult{}, fmt.Errorf("model returned an empty summary")
	}
	switch result.Sentiment {
	case media.SentimentPositive, media.SentimentNeutral, media.SentimentNegative:
	default:
		result.Sentiment = media.SentimentNeutral
	}
	switch result.Difficulty {
	case media.DifficultyBeginner, media.DifficultyIntermediate, media.DifficultyAdvanced:
	default:
		result.Difficulty = media.DifficultyIntermediate
	}
	return result, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
