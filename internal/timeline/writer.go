package timeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Plan is the persisted form of one generation request's timeline.
type Plan struct {
	Version       string    `yaml:"version"`
	VideoID       string    `yaml:"video_id"`
	TotalDuration float64   `yaml:"total_duration"`
	Segments      []Segment `yaml:"segments"`
}

// WritePlan writes a plan to a YAML file.
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPlan reads a plan from a YAML file.
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// DefaultPlanDir is where generated plans are kept for inspection and
// replay unless the config overrides it.
const DefaultPlanDir = "output/plans"

// TimestampedPlanPath creates a timestamped plan filename under dir.
func TimestampedPlanPath(dir, videoID string) string {
	if dir == "" {
		dir = DefaultPlanDir
	}
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("plan_%s_%s.yaml", videoID, timestamp))
}

// FindLatestPlan finds the most recent plan file in dir.
func FindLatestPlan(dir string) (string, error) {
	if dir == "" {
		dir = DefaultPlanDir
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read plans directory: %w", err)
	}

	var plans []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".yaml") {
			plans = append(plans, filepath.Join(dir, entry.Name()))
		}
	}
	if len(plans) == 0 {
		return "", fmt.Errorf("no plan files found in %s", dir)
	}

	sort.Slice(plans, func(i, j int) bool {
		infoI, _ := os.Stat(plans[i])
		infoJ, _ := os.Stat(plans[j])
		return infoI.ModTime().After(infoJ.ModTime())
	})
	return plans[0], nil
}

// Flat YAML shapes for the variant types. The discriminator fields keep
// plan files readable while the in-memory types stay closed sets.

type elementYAML struct {
	Type       string   `yaml:"type"`
	Text       string   `yaml:"text,omitempty"`
	Ref        string   `yaml:"ref,omitempty"`
	Percentage float64  `yaml:"percentage,omitempty"`
	Fill       string   `yaml:"fill,omitempty"`
	Alpha      float64  `yaml:"alpha,omitempty"`
	Animation  animYAML `yaml:"animation"`
	Rect       RectPct  `yaml:"rect"`
	Style      Style    `yaml:"style,omitempty"`
}

type animYAML struct {
	Kind     string  `yaml:"kind"`
	Delay    float64 `yaml:"delay"`
	Duration float64 `yaml:"duration"`
	Stagger  float64 `yaml:"stagger,omitempty"`
}

func (e VisualElement) MarshalYAML() (interface{}, error) {
	out := elementYAML{Rect: e.Rect, Style: e.Style}

	switch c := e.Content.(type) {
	case TextContent:
		out.Type = c.contentKind()
		out.Text = c.Text
	case ImageContent:
		out.Type = c.contentKind()
		out.Ref = c.Ref
	case ProgressContent:
		out.Type = c.contentKind()
		out.Percentage = c.Percentage
	case OverlayContent:
		out.Type = c.contentKind()
		out.Fill = c.Fill
		out.Alpha = c.Alpha
	default:
		return nil, fmt.Errorf("unknown element content %T", e.Content)
	}

	spec := e.Anim.Spec()
	out.Animation = animYAML{Kind: e.Anim.animKind(), Delay: spec.Delay, Duration: spec.Duration}
	if w, ok := e.Anim.(Wave); ok {
		out.Animation.Stagger = w.Stagger
	}
	return out, nil
}

func (e *VisualElement) UnmarshalYAML(value *yaml.Node) error {
	var raw elementYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}

	switch raw.Type {
	case "text":
		e.Content = TextContent{Text: raw.Text}
	case "image":
		e.Content = ImageContent{Ref: raw.Ref}
	case "progress":
		e.Content = ProgressContent{Percentage: raw.Percentage}
	case "overlay":
		e.Content = OverlayContent{Fill: raw.Fill, Alpha: raw.Alpha}
	default:
		return fmt.Errorf("unknown element type %q", raw.Type)
	}

	spec := AnimSpec{Delay: raw.Animation.Delay, Duration: raw.Animation.Duration}
	switch raw.Animation.Kind {
	case "typewriter":
		e.Anim = Typewriter{spec}
	case "fadeIn":
		e.Anim = FadeIn{spec}
	case "slideIn":
		e.Anim = SlideIn{spec}
	case "scaleIn":
		e.Anim = ScaleIn{spec}
	case "glitch":
		e.Anim = Glitch{spec}
	case "wave":
		e.Anim = Wave{AnimSpec: spec, Stagger: raw.Animation.Stagger}
	default:
		return fmt.Errorf("unknown animation kind %q", raw.Animation.Kind)
	}

	e.Rect = raw.Rect
	e.Style = raw.Style
	return nil
}
