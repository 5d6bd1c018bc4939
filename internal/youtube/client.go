package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
)

// Client fetches video metadata from the YouTube Data API.
type Client struct {
	service *youtube.Service
}

// NewClient builds an API-key authenticated client. Metadata reads do
// not need OAuth scopes.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{service: service}, nil
}

// FetchVideo resolves a video ID into the descriptor the planner and
// renderer work from.
func (c *Client) FetchVideo(ctx context.Context, videoID string) (media.VideoDescriptor, error) {
	call := c.service.Videos.
		List([]string{"snippet", "contentDetails", "statistics"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return media.VideoDescriptor{}, fmt.Errorf("fetch video %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 {
		return media.VideoDescriptor{}, fmt.Errorf("video %s not found", videoID)
	}

	item := resp.Items[0]
	desc := media.VideoDescriptor{
		ID:           item.Id,
		Title:        item.Snippet.Title,
		ChannelTitle: item.Snippet.ChannelTitle,
		Duration:     float64(parseDurationSeconds(item.ContentDetails.Duration)),
		ThumbnailURL: bestThumbnail(item.Snippet.Thumbnails),
		Tags:         item.Snippet.Tags,
	}
	if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
		desc.PublishedAt = publishedAt
	}
	if item.Statistics != nil {
		desc.ViewCount = int64(item.Statistics.ViewCount)
	}
	return desc, nil
}

func bestThumbnail(t *youtube.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, cand := range []*youtube.Thumbnail{t.Maxres, t.High, t.Medium, t.Default} {
		if cand != nil && cand.Url != "" {
			return cand.Url
		}
	}
	return ""
}

var iso8601Duration = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// parseDurationSeconds converts an ISO 8601 duration like "PT2H15M30S"
// into seconds. Malformed input yields zero.
func parseDurationSeconds(duration string) int {
	if duration == "" {
		return 0
	}
	matches := iso8601Duration.FindStringSubmatch(duration)
	if len(matches) == 0 {
		return 0
	}

	total := 0
	if matches[1] != "" {
		if hours, err := strconv.Atoi(matches[1]); err == nil {
			total += hours * 3600
		}
	}
	if matches[2] != "" {
		if minutes, err := strconv.Atoi(matches[2]); err == nil {
			total += minutes * 60
		}
	}
	if matches[3] != "" {
		if seconds, err := strconv.Atoi(matches[3]); err == nil {
			total += seconds
		}
	}
	return total
}
