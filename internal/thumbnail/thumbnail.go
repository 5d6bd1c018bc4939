package thumbnail

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/renderer"
)

const (
	canvasW = 1280
	canvasH = 720
)

// ImageSource resolves the source video's thumbnail; nil means the
// fetch failed and the composer falls back to a gradient card.
type ImageSource interface {
	Image(ref string) image.Image
}

// Composer renders the 1280x720 cover image of a finished summary video.
type Composer struct {
	assets ImageSource
	face   font.Face
	big    font.Face
}

// NewComposer parses the embedded bold font once and reuses it for every
// thumbnail.
func NewComposer(assets ImageSource) (*Composer, error) {
	f, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse thumbnail font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 40, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("build thumbnail face: %w", err)
	}
	big, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 64, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("build thumbnail face: %w", err)
	}
	return &Composer{assets: assets, face: face, big: big}, nil
}

// Compose writes the cover image to outPath: the source thumbnail scaled
// to fill, a dark overlay, the AI SUMMARY badge and the duration label.
// When the source thumbnail is unavailable the card degrades to a
// deterministic gradient with the title centered.
func (c *Composer) Compose(desc media.VideoDescriptor, duration float64, outPath string) error {
	canvas := image.NewRGBA(image.Rect(0, 0, canvasW, canvasH))

	src := c.assets.Image(desc.ThumbnailURL)
	if src != nil {
		scaleFill(canvas, src)
		fillRect(canvas, canvas.Bounds(), color.NRGBA{A: 96})
	} else {
		log.Printf("[!] Thumbnail source unavailable, using gradient card: %s", desc.ThumbnailURL)
		top, bottom := renderer.GradientStops(desc.ID)
		drawVerticalGradient(canvas, top, bottom)
		c.drawCentered(canvas, desc.Title, c.big, canvasH/2)
	}

	c.drawBadge(canvas, "AI SUMMARY")
	c.drawDuration(canvas, duration)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create thumbnail: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, canvas); err != nil {
		return fmt.Errorf("encode thumbnail: %w", err)
	}
	return nil
}

func (c *Composer) drawBadge(dst *image.RGBA, label string) {
	tw := font.MeasureString(c.face, label).Ceil()
	padX, padY := 24, 14
	h := c.face.Metrics().Height.Ceil() + 2*padY
	x0, y0 := 40, 40
	fillRect(dst, image.Rect(x0, y0, x0+tw+2*padX, y0+h), color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff})
	drawString(dst, label, x0+padX, y0+padY+c.face.Metrics().Ascent.Ceil(), c.face, color.NRGBA{A: 0xff})
}

func (c *Composer) drawDuration(dst *image.RGBA, seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	label := fmt.Sprintf("%d:%02d", total/60, total%60)
	tw := font.MeasureString(c.face, label).Ceil()
	padX, padY := 18, 10
	h := c.face.Metrics().Height.Ceil() + 2*padY
	x1, y1 := canvasW-40, canvasH-40
	fillRect(dst, image.Rect(x1-tw-2*padX, y1-h, x1, y1), color.NRGBA{A: 0xc8})
	drawString(dst, label, x1-tw-padX, y1-padY-c.face.Metrics().Descent.Ceil(), c.face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

func (c *Composer) drawCentered(dst *image.RGBA, text string, face font.Face, y int) {
	tw := font.MeasureString(face, text).Ceil()
	for tw > canvasW-120 && len(text) > 4 {
		text = text[:len(text)-4] + "..."
		tw = font.MeasureString(face, text).Ceil()
	}
	drawString(dst, text, (canvasW-tw)/2, y, face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
}

func scaleFill(dst *image.RGBA, src image.Image) {
	db := dst.Bounds()
	sb := src.Bounds()
	sx := float64(db.Dx()) / float64(sb.Dx())
	sy := float64(db.Dy()) / float64(sb.Dy())
	scale := sx
	if sy > sx {
		scale = sy
	}
	w := int(float64(sb.Dx())*scale + 0.5)
	h := int(float64(sb.Dy())*scale + 0.5)
	x0 := (db.Dx() - w) / 2
	y0 := (db.Dy() - h) / 2
	xdraw.ApproxBiLinear.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, sb, xdraw.Src, nil)
}

func drawVerticalGradient(dst *image.RGBA, top, bottom color.NRGBA) {
	b := dst.Bounds()
	h := b.Dy()
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		row := color.NRGBA{
			R: uint8(float64(top.R) + (float64(bottom.R)-float64(top.R))*t),
			G: uint8(float64(top.G) + (float64(bottom.G)-float64(top.G))*t),
			B: uint8(float64(top.B) + (float64(bottom.B)-float64(top.B))*t),
			A: 0xff,
		}
		fillRect(dst, image.Rect(b.Min.X, b.Min.Y+y, b.Max.X, b.Min.Y+y+1), row)
	}
}

func fillRect(dst *image.RGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

func drawString(dst *image.RGBA, s string, x, y int, face font.Face, col color.NRGBA) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
