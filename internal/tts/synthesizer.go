package tts

import (
	"context"
	"fmt"
	"log"
	"os/exec"
	"time"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/system"
)

const defaultVoice = "en-US-AriaNeural"

// Synthesizer turns narration text into an audio file using the
// edge-tts command line tool.
type Synthesizer struct {
	Voice   string
	Retries int
}

// NewSynthesizer returns a synthesizer with sane retry defaults.
func NewSynthesizer(voice string) *Synthesizer {
	if voice == "" {
		voice = defaultVoice
	}
	return &Synthesizer{Voice: voice, Retries: 3}
}

// Available reports whether the edge-tts binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("edge-tts")
	return err == nil
}

// Synthesize writes spoken audio for text to outPath and returns the
// measured duration in seconds. The network-backed tool flakes
// occasionally, so failed attempts are retried with backoff.
func (s *Synthesizer) Synthesize(ctx context.Context, text, outPath string) (float64, error) {
	var lastErr error
	for attempt := 1; attempt <= s.Retries; attempt++ {
		cmd := exec.CommandContext(ctx, "edge-tts",
			"--voice", s.Voice,
			"--text", text,
			"--write-media", outPath,
		)
		out, err := cmd.CombinedOutput()
		if err == nil {
			return system.GetAudioDuration(outPath)
		}
		lastErr = fmt.Errorf("edge-tts: %w, output: %s", err, string(out))
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		log.Printf("[!] TTS attempt %d/%d failed: %v", attempt, s.Retries, err)
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(time.Duration(attempt) * 2 * time.Second):
		}
	}
	return 0, lastErr
}
