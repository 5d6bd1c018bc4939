package thumbnail

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
)

type stubSource struct {
	img image.Image
}

func (s stubSource) Image(ref string) image.Image { return s.img }

func TestComposeWithSource(t *testing.T) {
	composer, err := NewComposer(stubSource{img: image.NewRGBA(image.Rect(0, 0, 640, 360))})
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "thumb.png")
	desc := media.VideoDescriptor{ID: "abc", Title: "Test", ThumbnailURL: "https://example.com/t.jpg"}
	if err := composer.Compose(desc, 95, out); err != nil {
		t.Fatalf("Compose failed: %v", err)
	}

	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("Thumbnail not written: %v", err)
	}
	if info.Size() == 0 {
		t.Error("Thumbnail file is empty")
	}
}

func TestComposeGradientFallback(t *testing.T) {
	// A nil source image triggers the gradient card path.
	composer, err := NewComposer(stubSource{})
	if err != nil {
		t.Fatalf("NewComposer failed: %v", err)
	}

	out := filepath.Join(t.TempDir(), "thumb.png")
	desc := media.VideoDescriptor{ID: "abc", Title: "A Fairly Long Video Title That Needs Truncation Somewhere Along The Way"}
	if err := composer.Compose(desc, 60, out); err != nil {
		t.Fatalf("Compose fallback failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("Fallback thumbnail not written: %v", err)
	}
}
