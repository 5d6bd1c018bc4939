package pipeline

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"path/filepath"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/assets"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/capture"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/config"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/renderer"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/thumbnail"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/video"
)

// MetadataProvider resolves a video ID into its descriptor.
type MetadataProvider interface {
	FetchVideo(ctx context.Context, videoID string) (media.VideoDescriptor, error)
}

// Summarizer produces the structured summary a timeline is planned from.
type Summarizer interface {
	Summarize(ctx context.Context, video media.VideoDescriptor) (media.SummaryResult, error)
}

// Narrator synthesizes the voice track and reports its measured length.
type Narrator interface {
	Synthesize(ctx context.Context, text, outPath string) (float64, error)
}

// Pipeline wires the collaborators of one generation run. All external
// services are injected so every stage can be faked in tests.
type Pipeline struct {
	cfg        config.Config
	metadata   MetadataProvider
	summarizer Summarizer
	narrator   Narrator
	encoder    video.Encoder
	planner    *timeline.Planner
	seed       int64
}

// New assembles a pipeline. A nil narrator disables the voice track and
// segment timing falls back to the configured narration estimate alone.
func New(cfg config.Config, metadata MetadataProvider, summarizer Summarizer, narrator Narrator, encoder video.Encoder, seed int64) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		metadata:   metadata,
		summarizer: summarizer,
		narrator:   narrator,
		encoder:    encoder,
		planner:    timeline.NewPlanner(),
		seed:       seed,
	}
}

// Run executes the full flow for one video ID: metadata, summary,
// narration, plan, assets, capture, thumbnail. Asset failures degrade
// to gradients, encoding failures degrade to the placeholder artifact;
// only cancellation and upstream API failures abort.
func (p *Pipeline) Run(ctx context.Context, videoID string) (*capture.Artifact, error) {
	fmt.Printf("[*] Fetching metadata for %s\n", videoID)
	desc, err := p.metadata.FetchVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	fmt.Printf("[*] %q by %s (%.0fs)\n", desc.Title, desc.ChannelTitle, desc.Duration)

	fmt.Println("[*] Summarizing video content")
	summary, err := p.summarizer.Summarize(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("summarize: %w", err)
	}
	fmt.Printf("[*] Summary ready: %d key points, %s/%s\n", len(summary.KeyPoints), summary.Difficulty, summary.Sentiment)

	estimate := media.NarrationEstimate{
		WordsPerMinute: p.cfg.Narration.WordsPerMinute,
		MinSeconds:     p.cfg.Narration.MinSeconds,
		MaxSeconds:     p.cfg.Narration.MaxSeconds,
	}
	total := estimate.Seconds(summary.NarrationText())

	audioPath := ""
	if p.narrator != nil {
		audioPath = filepath.Join(p.cfg.OutputDir, fmt.Sprintf("narration_%s.mp3", desc.ID))
		fmt.Println("[*] Synthesizing narration")
		measured, err := p.narrator.Synthesize(ctx, summary.NarrationText(), audioPath)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[!] Narration synthesis failed, continuing silent: %v", err)
			audioPath = ""
		} else {
			// The spoken track is the source of truth for timing.
			total = measured
		}
	}

	segments, err := p.planner.Plan(desc, summary, total)
	if err != nil {
		return nil, fmt.Errorf("plan timeline: %w", err)
	}
	if err := timeline.Validate(segments, total); err != nil {
		return nil, fmt.Errorf("plan timeline: %w", err)
	}

	planPath := timeline.TimestampedPlanPath(p.cfg.PlanDir, desc.ID)
	plan := &timeline.Plan{Version: "1", VideoID: desc.ID, TotalDuration: total, Segments: segments}
	if err := timeline.WritePlan(plan, planPath); err != nil {
		log.Printf("[!] Could not persist plan: %v", err)
	} else {
		fmt.Printf("[*] Plan written to %s\n", planPath)
	}

	library := assets.NewLibrary(p.cfg.AssetTimeout())
	refs := collectRefs(segments, desc.ThumbnailURL)
	for _, soft := range library.Prefetch(ctx, refs) {
		log.Printf("[!] Asset unavailable, gradient fallback: %v", soft)
	}

	rng := rand.New(rand.NewSource(p.seed))
	r, err := renderer.New(p.cfg.Render.Width, p.cfg.Render.Height, total, library, summary.Sentiment, rng)
	if err != nil {
		return nil, fmt.Errorf("renderer: %w", err)
	}

	thumbPath := filepath.Join(p.cfg.OutputDir, fmt.Sprintf("thumb_%s.png", desc.ID))
	composer, err := thumbnail.NewComposer(library)
	if err != nil {
		return nil, fmt.Errorf("thumbnail composer: %w", err)
	}
	if err := composer.Compose(desc, total, thumbPath); err != nil {
		log.Printf("[!] Thumbnail compose failed: %v", err)
		thumbPath = desc.ThumbnailURL
	}

	driver := capture.NewDriver(p.encoder, capture.Options{
		Width:            p.cfg.Render.Width,
		Height:           p.cfg.Render.Height,
		FPS:              p.cfg.Render.FPS,
		EncoderName:      p.cfg.Render.Encoder,
		Quality:          p.cfg.Render.Quality,
		OutputPath:       filepath.Join(p.cfg.OutputDir, fmt.Sprintf("summary_%s.mp4", desc.ID)),
		PlaceholderVideo: p.cfg.PlaceholderVideo,
		ShowStats:        p.cfg.ShowStats,
	})

	fmt.Printf("[*] Capturing %.1fs at %d fps\n", total, p.cfg.Render.FPS)
	artifact, err := driver.Capture(ctx, desc, segments, r, audioPath, thumbPath)
	if err != nil {
		return nil, err
	}
	if artifact.Placeholder {
		fmt.Println("[!] Encoding degraded, placeholder artifact returned")
	} else {
		fmt.Printf("[+++] Done: %s\n", artifact.VideoPath)
	}
	return artifact, nil
}

// collectRefs gathers every image the plan references so the library
// can resolve them before the frame loop starts.
func collectRefs(segments []timeline.Segment, thumbnailURL string) []string {
	refs := []string{thumbnailURL}
	for _, seg := range segments {
		refs = append(refs, seg.Background)
		for _, el := range seg.Elements {
			if img, ok := el.Content.(timeline.ImageContent); ok {
				refs = append(refs, img.Ref)
			}
		}
	}
	return refs
}
