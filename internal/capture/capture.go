package capture

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/system"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/video"
)

// Artifact is the finished result of one generation request.
// Placeholder is set when a hard encoding failure degraded the output
// to the pre-selected stand-in video.
type Artifact struct {
	VideoPath     string
	ThumbnailPath string
	AudioPath     string
	Duration      float64
	Segments      []timeline.Segment
	Placeholder   bool
}

// FrameRenderer paints a single frame; implemented by renderer.Renderer.
type FrameRenderer interface {
	RenderFrame(frame *image.RGBA, cur timeline.Segment, prev *timeline.Segment, localTime, globalProgress float64)
}

// Options configures one capture run.
type Options struct {
	Width, Height int
	FPS           int
	EncoderName   string
	Quality       int
	OutputPath    string

	// PlaceholderVideo is returned instead of failing when the encoder
	// breaks; generation always completes with something playable.
	PlaceholderVideo string

	ShowStats bool

	// Yield is invoked once per rendered frame, the loop's only
	// suspension point. Defaults to a no-op.
	Yield func(frame int)
}

// Driver runs the fixed-rate frame loop and finalizes the recording.
type Driver struct {
	encoder video.Encoder
	opts    Options
}

// NewDriver creates a capture driver around an encoder.
func NewDriver(encoder video.Encoder, opts Options) *Driver {
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.Yield == nil {
		opts.Yield = func(int) {}
	}
	return &Driver{encoder: encoder, opts: opts}
}

// Capture renders every frame of the plan, encodes them, attaches the
// narration track and returns the playable artifact. Encoding failures
// degrade to the placeholder artifact; only cancellation is returned as
// an error.
func (d *Driver) Capture(ctx context.Context, desc media.VideoDescriptor, segments []timeline.Segment, r FrameRenderer, audioPath, thumbnailPath string) (*Artifact, error) {
	if len(segments) == 0 {
		return nil, fmt.Errorf("capture: empty segment list")
	}
	total := segments[len(segments)-1].End
	fps := float64(d.opts.FPS)

	startTime := time.Now()

	tempDir, err := os.MkdirTemp("", "summaryvideo_")
	if err != nil {
		log.Printf("[!] Capture init failed: %v", err)
		return d.placeholder(desc, segments, thumbnailPath, total), nil
	}
	defer os.RemoveAll(tempDir)

	encodePath := d.opts.OutputPath
	if audioPath != "" {
		encodePath = filepath.Join(tempDir, "video_only.mp4")
	}

	sink, err := d.encoder.Start(ctx, video.StreamOptions{
		Width:       d.opts.Width,
		Height:      d.opts.Height,
		FPS:         d.opts.FPS,
		OutputPath:  encodePath,
		EncoderName: d.opts.EncoderName,
		Quality:     d.opts.Quality,
	})
	if err != nil {
		log.Printf("[!] Recording sink failed to start: %v", err)
		return d.placeholder(desc, segments, thumbnailPath, total), nil
	}
	closed := false
	defer func() {
		if !closed {
			sink.Abort()
		}
	}()

	frame := image.NewRGBA(image.Rect(0, 0, d.opts.Width, d.opts.Height))
	ticks := 0

	for n := 0; float64(n)/fps < total; n++ {
		// Cooperative cancellation, checked once per tick.
		if err := ctx.Err(); err != nil {
			fmt.Printf("[!] Capture cancelled after %d frames\n", ticks)
			return nil, err
		}

		t := float64(n) / fps
		idx := segmentIndexAt(segments, t)
		if idx < 0 {
			// Float edges can leave the last instant uncovered.
			idx = len(segments) - 1
		}
		var prev *timeline.Segment
		if idx > 0 {
			prev = &segments[idx-1]
		}

		seg := segments[idx]
		r.RenderFrame(frame, seg, prev, t-seg.Start, t/total)

		if err := sink.WriteFrame(frame); err != nil {
			log.Printf("[!] Frame %d encode failed: %v", n, err)
			return d.placeholder(desc, segments, thumbnailPath, total), nil
		}
		ticks++
		d.opts.Yield(n)
	}

	closed = true
	if err := sink.Close(); err != nil {
		log.Printf("[!] Recording finalize failed: %v", err)
		return d.placeholder(desc, segments, thumbnailPath, total), nil
	}

	if audioPath != "" {
		if err := d.encoder.MuxAudio(ctx, encodePath, audioPath, d.opts.OutputPath); err != nil {
			log.Printf("[!] Audio mux failed: %v", err)
			return d.placeholder(desc, segments, thumbnailPath, total), nil
		}
	}

	if d.opts.ShowStats {
		d.printStats(ticks, total, time.Since(startTime))
	}

	return &Artifact{
		VideoPath:     d.opts.OutputPath,
		ThumbnailPath: thumbnailPath,
		AudioPath:     audioPath,
		Duration:      total,
		Segments:      segments,
	}, nil
}

// placeholder builds the graceful-degradation artifact: the generic
// stand-in video plus the source video's own thumbnail.
func (d *Driver) placeholder(desc media.VideoDescriptor, segments []timeline.Segment, thumbnailPath string, total float64) *Artifact {
	if thumbnailPath == "" {
		thumbnailPath = desc.ThumbnailURL
	}
	return &Artifact{
		VideoPath:     d.opts.PlaceholderVideo,
		ThumbnailPath: thumbnailPath,
		Duration:      total,
		Segments:      segments,
		Placeholder:   true,
	}
}

func (d *Driver) printStats(ticks int, total float64, elapsed time.Duration) {
	report := fmt.Sprintf(
		"--- [CAPTURE REPORT] ---\n"+
			"Frames: %d (%.1fs @ %d fps)\n"+
			"Wall Time: %.2fs\n"+
			"Effective FPS: %.2f\n",
		ticks, total, d.opts.FPS, elapsed.Seconds(), float64(ticks)/elapsed.Seconds(),
	)
	if stats, err := system.SnapshotProcess(); err == nil {
		report += fmt.Sprintf("RSS: %.1f MB | CPU: %.1f%% of %d cores\n", stats.RSSMegabytes, stats.CPUPercent, stats.LogicalCPUs)
	}
	report += "------------------------\n"
	fmt.Print(report)
}

// segmentIndexAt locates the segment containing t; linear scan is fine
// for the single-digit segment counts a plan produces.
func segmentIndexAt(segments []timeline.Segment, t float64) int {
	for i := range segments {
		if segments[i].Contains(t) {
			return i
		}
	}
	return -1
}
