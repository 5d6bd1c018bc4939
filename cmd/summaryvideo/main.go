package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/config"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/pipeline"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/summarizer"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/system"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/tts"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/video"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/youtube"
)

func main() {
	system.InitResourceLimits()

	videoPtr := flag.String("video", "", "YouTube video ID or watch URL")
	configPtr := flag.String("config", "config.yaml", "Path to the YAML config file")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	encoderPtr := flag.String("encoder", "", "H.264 encoder (empty: autodetect)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0: auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	seedPtr := flag.Int64("seed", 42, "Seed for glitch and particle effects; fixed seed = reproducible render")
	noAudioPtr := flag.Bool("no-audio", false, "Skip narration synthesis")
	statsPtr := flag.Bool("stats", false, "Print the capture performance report")

	flag.Parse()

	videoID := extractVideoID(*videoPtr)
	if videoID == "" {
		log.Fatalf("[-] Error: -video is required (ID or watch URL)")
	}

	cfg, err := config.Load(*configPtr)
	if err != nil {
		log.Fatalf("[-] Config error: %v", err)
	}

	for _, d := range []string{cfg.OutputDir, cfg.PlanDir} {
		os.MkdirAll(d, 0755)
	}

	switch *presetPtr {
	case "16:9":
		cfg.Render.Width, cfg.Render.Height = 1280, 720
	case "9:16":
		cfg.Render.Width, cfg.Render.Height = 720, 1280
	case "4:5":
		cfg.Render.Width, cfg.Render.Height = 1080, 1350
	}

	if *encoderPtr != "" {
		cfg.Render.Encoder = *encoderPtr
	}
	if cfg.Render.Encoder == "" {
		cfg.Render.Encoder = system.GetBestH264Encoder()
		if cfg.Render.Encoder != "libx264" {
			fmt.Printf("[*] Hardware acceleration detected: %s\n", cfg.Render.Encoder)
		}
	}

	if *qualityPtr != 0 {
		cfg.Render.Quality = *qualityPtr
	} else if cfg.Render.Quality == 0 {
		switch cfg.Render.Encoder {
		case "h264_videotoolbox":
			cfg.Render.Quality = 75
		case "h264_nvenc":
			cfg.Render.Quality = 28
		default:
			cfg.Render.Quality = 23
		}
	}
	if *statsPtr {
		cfg.ShowStats = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	meta, err := youtube.NewClient(ctx, cfg.YouTubeAPIKey)
	if err != nil {
		log.Fatalf("[-] YouTube client error: %v", err)
	}
	summ, err := summarizer.NewGemini(ctx, cfg.GeminiAPIKey, "")
	if err != nil {
		log.Fatalf("[-] Summarizer error: %v", err)
	}

	var narrator pipeline.Narrator
	if !*noAudioPtr {
		if tts.Available() {
			narrator = tts.NewSynthesizer(cfg.Narration.Voice)
		} else {
			log.Println("[!] edge-tts not found on PATH, rendering without narration")
		}
	}

	p := pipeline.New(cfg, meta, summ, narrator, &video.FFmpegEncoder{}, *seedPtr)
	artifact, err := p.Run(ctx, videoID)
	if err != nil {
		log.Fatalf("[-] Generation failed: %v", err)
	}

	fmt.Printf("[+++] Success! Video: %s, thumbnail: %s\n", artifact.VideoPath, artifact.ThumbnailPath)
}

// extractVideoID accepts a bare ID, a watch URL or a youtu.be short link.
func extractVideoID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if i := strings.Index(s, "watch?v="); i >= 0 {
		s = s[i+len("watch?v="):]
	} else if i := strings.Index(s, "youtu.be/"); i >= 0 {
		s = s[i+len("youtu.be/"):]
	}
	if i := strings.IndexAny(s, "&?"); i >= 0 {
		s = s[:i]
	}
	return s
}
