package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds everything one generation run needs: API credentials,
// render geometry, narration pacing and the degradation assets.
type Config struct {
	YouTubeAPIKey string `yaml:"youtube_api_key"`
	GeminiAPIKey  string `yaml:"gemini_api_key"`

	Render struct {
		Width   int    `yaml:"width"`
		Height  int    `yaml:"height"`
		FPS     int    `yaml:"fps"`
		Encoder string `yaml:"encoder"` // empty = autodetect
		Quality int    `yaml:"quality"`
	} `yaml:"render"`

	Narration struct {
		WordsPerMinute float64 `yaml:"words_per_minute"`
		MinSeconds     float64 `yaml:"min_seconds"`
		MaxSeconds     float64 `yaml:"max_seconds"`
		Voice          string  `yaml:"voice"`
	} `yaml:"narration"`

	// AssetTimeoutSeconds is kept as a plain number because yaml.v3 has
	// no native duration decoding.
	AssetTimeoutSeconds float64 `yaml:"asset_timeout_seconds"`

	OutputDir        string `yaml:"output_dir"`
	PlanDir          string `yaml:"plan_dir"`
	PlaceholderVideo string `yaml:"placeholder_video"`

	ShowStats bool `yaml:"show_stats"`
}

// Default returns the built-in configuration: 720p at 30 fps with
// conservative narration pacing.
func Default() Config {
	var cfg Config
	cfg.Render.Width = 1280
	cfg.Render.Height = 720
	cfg.Render.FPS = 30
	cfg.Render.Quality = 23
	cfg.Narration.WordsPerMinute = 150
	cfg.Narration.MinSeconds = 30
	cfg.Narration.MaxSeconds = 120
	cfg.Narration.Voice = "en-US-AriaNeural"
	cfg.AssetTimeoutSeconds = 5
	cfg.OutputDir = "output"
	cfg.PlanDir = "output/plans"
	cfg.PlaceholderVideo = "assets/placeholder.mp4"
	return cfg
}

// Load reads the optional YAML config file and overlays environment
// variables. A missing file is not an error; missing API keys are,
// since nothing downstream can run without them.
func Load(path string) (Config, error) {
	// Best effort: a .env file is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.YouTubeAPIKey = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}

	if cfg.YouTubeAPIKey == "" {
		return cfg, fmt.Errorf("YOUTUBE_API_KEY is not set")
	}
	if cfg.GeminiAPIKey == "" {
		return cfg, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	return cfg, nil
}

// AssetTimeout returns the per-asset load timeout as a duration.
func (c Config) AssetTimeout() time.Duration {
	return time.Duration(c.AssetTimeoutSeconds * float64(time.Second))
}
