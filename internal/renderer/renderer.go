package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/media"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/system"
	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
)

// ImageSource resolves element and background image references.
// A nil result means the asset is unavailable and the renderer falls
// back to its deterministic gradient.
type ImageSource interface {
	Image(ref string) image.Image
}

// Renderer paints single frames of the summary video onto an RGBA
// surface. It holds no per-frame state: a frame is a pure function of
// (segment, previous segment, local time) except for the glitch jitter
// and transition particles, which draw from the injected seeded source.
type Renderer struct {
	W, H  int
	Total float64 // total timeline length, for the elapsed readout

	assets    ImageSource
	sentiment media.Sentiment
	rng       *rand.Rand

	regular *sfnt.Font
	bold    *sfnt.Font
	faces   map[faceKey]font.Face
	bgCache map[string]*image.RGBA
	pool    *system.FramePool
}

type faceKey struct {
	size10 int // font size in tenths of a point
	bold   bool
}

// New creates a renderer for the given canvas size. The rng seeds the
// glitch and particle effects; fixing the seed makes renders reproducible.
func New(w, h int, total float64, assets ImageSource, sentiment media.Sentiment, rng *rand.Rand) (*Renderer, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Renderer{
		W:         w,
		H:         h,
		Total:     total,
		assets:    assets,
		sentiment: sentiment,
		rng:       rng,
		regular:   regular,
		bold:      bold,
		faces:     make(map[faceKey]font.Face),
		bgCache:   make(map[string]*image.RGBA),
		pool:      system.NewFramePool(),
	}, nil
}

// RenderFrame paints one frame at segment-local time. prev may be nil
// for the first segment; globalProgress is overall progress in [0, 1].
func (r *Renderer) RenderFrame(frame *image.RGBA, cur timeline.Segment, prev *timeline.Segment, localTime, globalProgress float64) {
	globalTime := cur.Start + localTime

	r.drawBackground(frame, cur, prev, localTime, globalTime)

	// Uniform dark overlay for text legibility.
	fillRect(frame, frame.Bounds(), color.NRGBA{A: 102})
	r.drawSentimentOverlay(frame, globalProgress)

	for _, el := range cur.Elements {
		r.drawElement(frame, el, localTime)
	}

	r.drawChrome(frame, globalTime)
}

func (r *Renderer) drawBackground(frame *image.RGBA, cur timeline.Segment, prev *timeline.Segment, localTime, globalTime float64) {
	if trans := cur.ActiveTransition(localTime); trans != nil && prev != nil {
		state := TransitionStateFor(*trans, localTime, r.W, r.H)
		if state.Prev != nil {
			r.drawLayer(frame, r.background(*prev), *state.Prev)
		}
		r.drawLayer(frame, r.background(cur), state.Cur)
		if state.Particles > 0 {
			r.drawParticles(frame, state)
		}
		return
	}
	// Slight overscale keeps the parallax drift from exposing the edges.
	r.drawLayer(frame, r.background(cur), Layer{
		Alpha:   1,
		Scale:   1.1,
		OffsetY: ParallaxOffset(globalTime, r.H),
	})
}

// background returns the segment's canvas-sized backdrop: the fetched
// image scaled to fill, or the segment's gradient fallback.
func (r *Renderer) background(seg timeline.Segment) *image.RGBA {
	key := seg.Background + "|" + seg.Title
	if bg, ok := r.bgCache[key]; ok {
		return bg
	}

	bg := image.NewRGBA(image.Rect(0, 0, r.W, r.H))
	var src image.Image
	if seg.Background != "" {
		src = r.assets.Image(seg.Background)
	}
	if src != nil {
		scaleFill(bg, src)
	} else {
		top, bottom := GradientStops(key)
		drawGradient(bg, top, bottom)
	}
	r.bgCache[key] = bg
	return bg
}

// scaleFill scales src to cover dst completely, cropping the overflow
// around the center.
func scaleFill(dst *image.RGBA, src image.Image) {
	db := dst.Bounds()
	sb := src.Bounds()
	scale := math.Max(float64(db.Dx())/float64(sb.Dx()), float64(db.Dy())/float64(sb.Dy()))
	w := float64(sb.Dx()) * scale
	h := float64(sb.Dy()) * scale
	x0 := (float64(db.Dx()) - w) / 2
	y0 := (float64(db.Dy()) - h) / 2
	target := image.Rect(int(x0), int(y0), int(x0+w+0.5), int(y0+h+0.5))
	xdraw.ApproxBiLinear.Scale(dst, target, src, sb, xdraw.Src, nil)
}

// drawGradient paints a vertical two-stop linear gradient.
func drawGradient(dst *image.RGBA, top, bottom color.NRGBA) {
	b := dst.Bounds()
	h := b.Dy()
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		row := color.NRGBA{
			R: uint8(lerp(float64(top.R), float64(bottom.R), t)),
			G: uint8(lerp(float64(top.G), float64(bottom.G), t)),
			B: uint8(lerp(float64(top.B), float64(bottom.B), t)),
			A: 0xff,
		}
		fillRect(dst, image.Rect(b.Min.X, b.Min.Y+y, b.Max.X, b.Min.Y+y+1), row)
	}
}

func (r *Renderer) drawSentimentOverlay(frame *image.RGBA, globalProgress float64) {
	alpha := 0.1 + 0.05*math.Sin(2*math.Pi*globalProgress)
	var tint color.NRGBA
	switch r.sentiment {
	case media.SentimentPositive:
		tint = color.NRGBA{G: 0x80}
	case media.SentimentNegative:
		tint = color.NRGBA{R: 0x80}
	default:
		tint = color.NRGBA{B: 0x80}
	}
	tint.A = uint8(alpha*255 + 0.5)
	fillRect(frame, frame.Bounds(), tint)
}

func (r *Renderer) drawParticles(frame *image.RGBA, state TransitionState) {
	for i := 0; i < state.Particles; i++ {
		op := ParticleOpacity(state.Progress, i)
		if op <= 0 {
			continue
		}
		x := r.rng.Float64() * float64(r.W)
		y := r.rng.Float64() * float64(r.H)
		radius := 2 + r.rng.Float64()*4
		fillCircle(frame, x, y, radius, withAlpha(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, op*0.8))
	}
}

func (r *Renderer) drawElement(frame *image.RGBA, el timeline.VisualElement, localTime float64) {
	switch c := el.Content.(type) {
	case timeline.TextContent:
		r.drawTextElement(frame, el, c.Text, localTime)

	case timeline.ImageContent:
		state := TextStateFor(el.Anim, 1, localTime)
		if !state.Visible {
			return
		}
		img := r.assets.Image(c.Ref)
		if img == nil {
			return
		}
		drawImageAlpha(frame, img, r.pctRect(el.Rect), state.Opacity)

	case timeline.ProgressContent:
		state := TextStateFor(el.Anim, 1, localTime)
		if !state.Visible {
			return
		}
		rect := r.pctRect(el.Rect)
		radius := rect.Dy() / 2
		fillRoundedRect(frame, rect, radius, withAlpha(color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, 0.25*state.Opacity))
		fill := el.Style.Fill
		if fill == "" {
			fill = "#facc15"
		}
		fw := int(float64(rect.Dx()) * clamp(c.Percentage/100, 0, 1))
		if fw > 0 {
			filled := image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+fw, rect.Max.Y)
			fillRoundedRect(frame, filled, radius, withAlpha(parseHex(fill), state.Opacity))
		}

	case timeline.OverlayContent:
		state := TextStateFor(el.Anim, 1, localTime)
		if !state.Visible {
			return
		}
		fillRect(frame, r.pctRect(el.Rect), withAlpha(parseHex(c.Fill), c.Alpha*state.Opacity))
	}
}

func (r *Renderer) drawTextElement(frame *image.RGBA, el timeline.VisualElement, text string, localTime float64) {
	runes := []rune(text)
	state := TextStateFor(el.Anim, len(runes), localTime)
	if !state.Visible {
		return
	}

	size := el.Style.FontSize
	if size == 0 {
		size = 28
	}
	face := r.face(size*state.Scale, el.Style.Bold)
	col := withAlpha(parseHex(styleFill(el.Style)), state.Opacity)
	rect := r.pctRect(el.Rect)

	lineHeight := face.Metrics().Height.Ceil()
	ascent := face.Metrics().Ascent.Ceil()
	lines := wrapText(face, text, rect.Dx())

	if state.Wave != nil {
		r.drawWaveLines(frame, lines, state.Wave, face, col, rect, ascent, lineHeight, el.Style.Align)
		return
	}

	// Glitch jitter and ghost copies are per-frame random on purpose.
	jx, jy := 0.0, 0.0
	if state.GlitchAmp != 0 {
		jx = (r.rng.Float64()*2 - 1) * state.GlitchAmp
		jy = (r.rng.Float64()*2 - 1) * state.GlitchAmp
	}

	remaining := state.VisibleChars
	y := rect.Min.Y + ascent
	for li, line := range lines {
		visible := line
		if remaining >= 0 {
			lineRunes := []rune(line)
			if remaining < len(lineRunes) {
				visible = string(lineRunes[:remaining])
				remaining = 0
			} else {
				remaining -= len(lineRunes)
			}
		}
		x := alignX(face, visible, rect, el.Style.Align)
		x += int(state.OffsetX + jx)

		if state.GlitchAmp != 0 {
			if r.rng.Float64() < 0.3 {
				drawString(frame, visible, x+2, y+int(jy), face, color.NRGBA{R: 0xff, A: col.A / 2})
			}
			if r.rng.Float64() < 0.3 {
				drawString(frame, visible, x-2, y+int(jy), face, color.NRGBA{G: 0xff, A: col.A / 2})
			}
		}
		drawString(frame, visible, x, y+int(jy), face, col)

		// Caret follows the last revealed character.
		if state.ShowCaret && remaining == 0 && li == caretLine(lines, state.VisibleChars) {
			cx := x + measureString(face, visible)
			drawString(frame, "|", cx, y+int(jy), face, col)
		}
		y += lineHeight
	}
}

func (r *Renderer) drawWaveLines(frame *image.RGBA, lines []string, wave []CharState, face font.Face, col color.NRGBA, rect image.Rectangle, ascent, lineHeight int, align string) {
	index := 0
	y := rect.Min.Y + ascent
	for _, line := range lines {
		x := alignX(face, line, rect, align)
		for _, ch := range line {
			if index >= len(wave) {
				return
			}
			cs := wave[index]
			s := string(ch)
			if cs.Progress > 0 {
				drawString(frame, s, x, y+int(cs.OffsetY), face, withAlpha(col, cs.Progress))
			}
			x += measureString(face, s)
			index++
		}
		y += lineHeight
	}
}

// drawChrome paints the always-on overlay: elapsed-time readout and the
// fixed AI SUMMARY badge.
func (r *Renderer) drawChrome(frame *image.RGBA, globalTime float64) {
	face := r.face(20, false)
	readout := fmt.Sprintf("%s / %s", formatClock(globalTime), formatClock(r.Total))
	drawString(frame, readout, r.W/40, r.H-r.H/30, face, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xd0})

	badgeFace := r.face(18, true)
	label := "AI SUMMARY"
	tw := measureString(badgeFace, label)
	padX, padY := 12, 8
	bh := badgeFace.Metrics().Height.Ceil() + padY
	bx1 := r.W - r.W/40
	bx0 := bx1 - tw - 2*padX
	by0 := r.H / 30
	fillRoundedRect(frame, image.Rect(bx0, by0, bx1, by0+bh), bh/2, color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xe6})
	drawString(frame, label, bx0+padX, by0+padY/2+badgeFace.Metrics().Ascent.Ceil(), badgeFace, color.NRGBA{A: 0xff})
}

// pctRect converts a normalized percentage rect to canvas pixels.
func (r *Renderer) pctRect(p timeline.RectPct) image.Rectangle {
	return image.Rect(
		int(p.X/100*float64(r.W)),
		int(p.Y/100*float64(r.H)),
		int((p.X+p.W)/100*float64(r.W)),
		int((p.Y+p.H)/100*float64(r.H)),
	)
}

func (r *Renderer) face(size float64, bold bool) font.Face {
	if size < 6 {
		size = 6
	}
	key := faceKey{size10: int(size * 10), bold: bold}
	if f, ok := r.faces[key]; ok {
		return f
	}
	src := r.regular
	if bold {
		src = r.bold
	}
	f, err := opentype.NewFace(src, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		// Should not happen for the embedded Go fonts; reuse the chrome face.
		f = r.face(20, false)
	}
	r.faces[key] = f
	return f
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

func measureString(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

func alignX(face font.Face, line string, rect image.Rectangle, align string) int {
	switch align {
	case "center":
		return rect.Min.X + (rect.Dx()-measureString(face, line))/2
	case "right":
		return rect.Max.X - measureString(face, line)
	default:
		return rect.Min.X
	}
}

func styleFill(s timeline.Style) string {
	if s.Fill == "" {
		return "#ffffff"
	}
	return s.Fill
}

// wrapText greedily breaks text into lines that fit maxWidth pixels.
func wrapText(face font.Face, text string, maxWidth int) []string {
	words := splitWords(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if measureString(face, candidate) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

func splitWords(s string) []string {
	var words []string
	start := -1
	for i, ch := range s {
		if ch == ' ' || ch == '\n' || ch == '\t' {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

// caretLine returns the index of the line holding the n-th revealed rune.
func caretLine(lines []string, visible int) int {
	if visible < 0 {
		return len(lines) - 1
	}
	for i, line := range lines {
		n := len([]rune(line))
		if visible <= n {
			return i
		}
		visible -= n
	}
	return len(lines) - 1
}

func formatClock(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
