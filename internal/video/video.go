package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
)

// StreamOptions configures one encoded output stream.
type StreamOptions struct {
	Width, Height int
	FPS           int
	OutputPath    string
	EncoderName   string // libx264, h264_nvenc, h264_videotoolbox
	Quality       int
}

// FrameSink accepts raw RGBA frames at a fixed rate and finalizes them
// into a playable file. Close must be called on success, Abort on
// cancellation or failure; both release the underlying process.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
	Abort()
}

// Encoder produces frame sinks and muxes audio onto finished video.
type Encoder interface {
	Start(ctx context.Context, opts StreamOptions) (FrameSink, error)
	MuxAudio(ctx context.Context, videoPath, audioPath, outPath string) error
}

// FFmpegEncoder streams raw RGBA frames to an ffmpeg child process over
// stdin, avoiding any per-frame disk I/O.
type FFmpegEncoder struct{}

func (e *FFmpegEncoder) Start(ctx context.Context, opts StreamOptions) (FrameSink, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
		"-framerate", fmt.Sprintf("%d", opts.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", opts.EncoderName,
	}
	args = append(args, qualityArgs(opts.EncoderName, opts.Quality)...)
	args = append(args, opts.OutputPath)

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	var logBuf bytes.Buffer
	cmd.Stdout = &logBuf
	cmd.Stderr = &logBuf

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return &ffmpegSink{cmd: cmd, stdin: stdin, log: &logBuf}, nil
}

type ffmpegSink struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
	log   *bytes.Buffer
}

func (s *ffmpegSink) WriteFrame(img *image.RGBA) error {
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw frame: %w", err)
	}
	return nil
}

func (s *ffmpegSink) Close() error {
	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nlog: %s", err, s.log.String())
	}
	return nil
}

func (s *ffmpegSink) Abort() {
	s.stdin.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
}

// MuxAudio attaches the narration track to a finished video stream.
// The video stream is copied, not re-encoded.
func (e *FFmpegEncoder) MuxAudio(ctx context.Context, videoPath, audioPath, outPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg", "-y",
		"-i", videoPath,
		"-i", audioPath,
		"-map", "0:v", "-map", "1:a",
		"-c:v", "copy",
		"-c:a", "aac", "-b:a", "192k",
		"-shortest",
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg mux error: %v, output: %s", err, string(out))
	}
	return nil
}

// qualityArgs picks the quality flags each encoder understands.
func qualityArgs(encoderName string, quality int) []string {
	switch encoderName {
	case "h264_videotoolbox":
		// VideoToolbox does not support -q:v reliably; use bitrate.
		return []string{"-b:v", fmt.Sprintf("%dk", quality*100)}
	case "h264_nvenc":
		return []string{"-cq", fmt.Sprintf("%d", quality)}
	default: // libx264
		return []string{"-crf", fmt.Sprintf("%d", quality), "-preset", "medium"}
	}
}

// writeRawRGBA writes the pixel data of img in packed RGBA order,
// normalizing stride and origin when needed.
func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	if img.Stride != bounds.Dx()*4 || bounds.Min.X != 0 || bounds.Min.Y != 0 {
		normalized := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(normalized, normalized.Bounds(), img, bounds.Min, draw.Src)
		img = normalized
	}
	_, err := w.Write(img.Pix)
	return err
}
