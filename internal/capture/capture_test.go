package capture

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/video"
)

type fakeSink struct {
	frames  int
	aborted bool
	closed  bool
	failAt  int // frame index that returns an error; -1 disables
}

func (s *fakeSink) WriteFrame(img *image.RGBA) error {
	if s.failAt >= 0 && s.frames == s.failAt {
		return errors.New("broken pipe")
	}
	s.frames++
	return nil
}

func (s *fakeSink) Close() error { s.closed = true; return nil }
func (s *fakeSink) Abort()       { s.aborted = true }

type fakeEncoder struct {
	sink     *fakeSink
	startErr error
	muxed    bool
}

func (e *fakeEncoder) Start(ctx context.Context, opts video.StreamOptions) (video.FrameSink, error) {
	if e.startErr != nil {
		return nil, e.startErr
	}
	return e.sink, nil
}

func (e *fakeEncoder) MuxAudio(ctx context.Context, videoPath, audioPath, outPath string) error {
	e.muxed = true
	return nil
}

type countingRenderer struct {
	calls   int
	lastCur timeline.Segment
}

func (r *countingRenderer) RenderFrame(frame *image.RGBA, cur timeline.Segment, prev *timeline.Segment, localTime, globalProgress float64) {
	r.calls++
	r.lastCur = cur
	if localTime < 0 {
		panic("negative local time")
	}
	if globalProgress < 0 || globalProgress >= 1 {
		panic("global progress out of range")
	}
}

func twoSegments(total float64) []timeline.Segment {
	half := total / 2
	return []timeline.Segment{
		{Kind: timeline.KindIntro, Start: 0, End: half},
		{Kind: timeline.KindConclusion, Start: half, End: total},
	}
}

func testDriver(enc video.Encoder, yield func(int)) *Driver {
	return NewDriver(enc, Options{
		Width:            320,
		Height:           180,
		FPS:              30,
		OutputPath:       "/tmp/capture_test.mp4",
		PlaceholderVideo: "/assets/placeholder.mp4",
		Yield:            yield,
	})
}

func TestCaptureTickCount(t *testing.T) {
	sink := &fakeSink{failAt: -1}
	enc := &fakeEncoder{sink: sink}
	r := &countingRenderer{}

	yields := 0
	d := testDriver(enc, func(int) { yields++ })

	artifact, err := d.Capture(context.Background(), media.VideoDescriptor{ID: "x"}, twoSegments(60), r, "", "thumb.png")
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}

	// 60 seconds at 30 fps is exactly 1800 frames.
	if sink.frames != 1800 {
		t.Errorf("Expected 1800 encoded frames, got %d", sink.frames)
	}
	if r.calls != 1800 {
		t.Errorf("Expected 1800 rendered frames, got %d", r.calls)
	}
	if yields != 1800 {
		t.Errorf("Expected one yield per frame, got %d", yields)
	}
	if !sink.closed {
		t.Error("Sink must be closed on success")
	}
	if sink.aborted {
		t.Error("Sink must not be aborted on success")
	}
	if artifact.Placeholder {
		t.Error("Expected real artifact, got placeholder")
	}
	if artifact.Duration != 60 {
		t.Errorf("Expected duration 60, got %f", artifact.Duration)
	}
	// Last rendered frame at t=59.966... belongs to the second segment.
	if r.lastCur.Kind != timeline.KindConclusion {
		t.Errorf("Last frame rendered from %s, want conclusion", r.lastCur.Kind)
	}
}

func TestCaptureCancellation(t *testing.T) {
	sink := &fakeSink{failAt: -1}
	enc := &fakeEncoder{sink: sink}
	r := &countingRenderer{}

	ctx, cancel := context.WithCancel(context.Background())
	d := testDriver(enc, func(n int) {
		if n == 99 {
			cancel()
		}
	})

	_, err := d.Capture(ctx, media.VideoDescriptor{ID: "x"}, twoSegments(60), r, "", "thumb.png")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
	if sink.frames != 100 {
		t.Errorf("Expected 100 frames before cancellation, got %d", sink.frames)
	}
	if !sink.aborted {
		t.Error("Sink must be aborted on cancellation")
	}
	if sink.closed {
		t.Error("Sink must not be closed on cancellation")
	}
}

func TestCaptureEncoderStartFailure(t *testing.T) {
	enc := &fakeEncoder{startErr: errors.New("no ffmpeg")}
	r := &countingRenderer{}
	d := testDriver(enc, nil)

	desc := media.VideoDescriptor{ID: "x", ThumbnailURL: "https://example.com/t.jpg"}
	artifact, err := d.Capture(context.Background(), desc, twoSegments(60), r, "", "")
	if err != nil {
		t.Fatalf("Encoding failure must degrade, not fail: %v", err)
	}
	if !artifact.Placeholder {
		t.Fatal("Expected placeholder artifact")
	}
	if artifact.VideoPath != "/assets/placeholder.mp4" {
		t.Errorf("Expected placeholder video path, got %s", artifact.VideoPath)
	}
	// Without a composed thumbnail the source video's own thumbnail is used.
	if artifact.ThumbnailPath != desc.ThumbnailURL {
		t.Errorf("Expected source thumbnail fallback, got %s", artifact.ThumbnailPath)
	}
	if r.calls != 0 {
		t.Errorf("No frames should render when the sink never starts, got %d", r.calls)
	}
}

func TestCaptureWriteFailure(t *testing.T) {
	sink := &fakeSink{failAt: 500}
	enc := &fakeEncoder{sink: sink}
	r := &countingRenderer{}
	d := testDriver(enc, nil)

	artifact, err := d.Capture(context.Background(), media.VideoDescriptor{ID: "x"}, twoSegments(60), r, "", "thumb.png")
	if err != nil {
		t.Fatalf("Write failure must degrade, not fail: %v", err)
	}
	if !artifact.Placeholder {
		t.Fatal("Expected placeholder artifact after write failure")
	}
	if !sink.aborted {
		t.Error("Sink must be aborted after a write failure")
	}
}

func TestCaptureMuxesAudio(t *testing.T) {
	sink := &fakeSink{failAt: -1}
	enc := &fakeEncoder{sink: sink}
	r := &countingRenderer{}
	d := testDriver(enc, nil)

	artifact, err := d.Capture(context.Background(), media.VideoDescriptor{ID: "x"}, twoSegments(30), r, "narration.mp3", "thumb.png")
	if err != nil {
		t.Fatalf("Capture failed: %v", err)
	}
	if !enc.muxed {
		t.Error("Expected audio mux when an audio path is given")
	}
	if artifact.AudioPath != "narration.mp3" {
		t.Errorf("Expected audio path on artifact, got %s", artifact.AudioPath)
	}
}
