package renderer

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/chirag-xo/YouTube-Video-Summarizer-with-AI/internal/timeline"
)

// clearFrame zeroes a pooled buffer before reuse.
func clearFrame(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}

// fillRect paints a solid color over the rectangle with normal alpha
// compositing.
func fillRect(dst *image.RGBA, r image.Rectangle, c color.NRGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// drawLayer composites a full-canvas background image onto dst according
// to the blend layer: scale around center, pixel offset, alpha, optional
// screen blend and wipe clip. Scratch frames come from the renderer's pool.
func (r *Renderer) drawLayer(dst *image.RGBA, src *image.RGBA, layer Layer) {
	if layer.Alpha <= 0 {
		return
	}
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var composed *image.RGBA
	if layer.Scale == 1 && layer.OffsetX == 0 && layer.OffsetY == 0 {
		composed = src
	} else {
		composed = r.pool.Get(bounds)
		defer r.pool.Put(composed)
		clearFrame(composed)
		// Scale around the canvas center, then translate.
		s := layer.Scale
		tx := layer.OffsetX + float64(w)/2*(1-s)
		ty := layer.OffsetY + float64(h)/2*(1-s)
		m := f64.Aff3{s, 0, tx, 0, s, ty}
		xdraw.ApproxBiLinear.Transform(composed, m, src, src.Bounds(), xdraw.Src, nil)
	}

	if layer.Screen {
		screenBlend(dst, composed, layer.Alpha)
		return
	}

	var mask image.Image = image.NewUniform(color.Alpha{A: uint8(layer.Alpha*255 + 0.5)})
	if layer.Clip != nil {
		mask = wipeMask(w, h, *layer.Clip)
	}
	draw.DrawMask(dst, bounds, composed, bounds.Min, mask, bounds.Min, draw.Over)
}

// screenBlend composites src over dst with the "screen" blend mode,
// weighted by alpha: out = dst + (screen(dst, src) - dst) * alpha.
func screenBlend(dst, src *image.RGBA, alpha float64) {
	bounds := dst.Bounds()
	a := uint32(alpha*255 + 0.5)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		di := dst.PixOffset(bounds.Min.X, y)
		si := src.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			for c := 0; c < 3; c++ {
				d := uint32(dst.Pix[di+c])
				s := uint32(src.Pix[si+c])
				screen := 255 - (255-d)*(255-s)/255
				dst.Pix[di+c] = uint8(d + (screen-d)*a/255)
			}
			dst.Pix[di+3] = 0xff
			di += 4
			si += 4
		}
	}
}

// wipeMask builds the reveal mask of a wipe transition: a rectangle
// growing from the named edge, or a circle growing from the center.
func wipeMask(w, h int, clip WipeClip) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	p := clamp(clip.Progress, 0, 1)

	if clip.Circle {
		cx, cy := float64(w)/2, float64(h)/2
		maxR := math.Hypot(cx, cy)
		r := p * maxR
		r2 := r * r
		for y := 0; y < h; y++ {
			dy := float64(y) + 0.5 - cy
			for x := 0; x < w; x++ {
				dx := float64(x) + 0.5 - cx
				if dx*dx+dy*dy <= r2 {
					mask.SetAlpha(x, y, color.Alpha{A: 0xff})
				}
			}
		}
		return mask
	}

	var r image.Rectangle
	switch clip.Direction {
	case timeline.DirectionRight:
		r = image.Rect(w-int(float64(w)*p), 0, w, h)
	case timeline.DirectionUp:
		r = image.Rect(0, h-int(float64(h)*p), w, h)
	case timeline.DirectionDown:
		r = image.Rect(0, 0, w, int(float64(h)*p))
	default: // left
		r = image.Rect(0, 0, int(float64(w)*p), h)
	}
	draw.Draw(mask, r, image.NewUniform(color.Alpha{A: 0xff}), image.Point{}, draw.Src)
	return mask
}

// drawImageAlpha draws src into the destination rectangle, scaled to fit,
// with uniform opacity.
func drawImageAlpha(dst *image.RGBA, src image.Image, r image.Rectangle, alpha float64) {
	if alpha <= 0 {
		return
	}
	scaled := image.NewRGBA(r)
	xdraw.ApproxBiLinear.Scale(scaled, r, src, src.Bounds(), xdraw.Src, nil)
	mask := image.NewUniform(color.Alpha{A: uint8(alpha*255 + 0.5)})
	draw.DrawMask(dst, r, scaled, r.Min, mask, image.Point{}, draw.Over)
}

// fillCircle paints a filled circle, used by the particle transition.
func fillCircle(dst *image.RGBA, cx, cy, radius float64, c color.NRGBA) {
	if c.A == 0 {
		return
	}
	r2 := radius * radius
	minX := int(cx - radius)
	maxX := int(cx + radius + 1)
	minY := int(cy - radius)
	maxY := int(cy + radius + 1)
	uni := image.NewUniform(c)
	for y := minY; y < maxY; y++ {
		dy := float64(y) + 0.5 - cy
		for x := minX; x < maxX; x++ {
			dx := float64(x) + 0.5 - cx
			if dx*dx+dy*dy <= r2 {
				draw.Draw(dst, image.Rect(x, y, x+1, y+1), uni, image.Point{}, draw.Over)
			}
		}
	}
}

// fillRoundedRect paints a rectangle with quarter-circle corners.
func fillRoundedRect(dst *image.RGBA, r image.Rectangle, radius int, c color.NRGBA) {
	if radius <= 0 {
		fillRect(dst, r, c)
		return
	}
	fillRect(dst, image.Rect(r.Min.X+radius, r.Min.Y, r.Max.X-radius, r.Max.Y), c)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+radius, r.Min.X+radius, r.Max.Y-radius), c)
	fillRect(dst, image.Rect(r.Max.X-radius, r.Min.Y+radius, r.Max.X, r.Max.Y-radius), c)

	fr := float64(radius)
	corners := [4][2]float64{
		{float64(r.Min.X) + fr, float64(r.Min.Y) + fr},
		{float64(r.Max.X) - fr, float64(r.Min.Y) + fr},
		{float64(r.Min.X) + fr, float64(r.Max.Y) - fr},
		{float64(r.Max.X) - fr, float64(r.Max.Y) - fr},
	}
	for _, corner := range corners {
		fillCircle(dst, corner[0], corner[1], fr, c)
	}
}

// parseHex decodes "#RRGGBB" into an opaque color. Invalid input yields
// white so a bad style never blanks an element.
func parseHex(s string) color.NRGBA {
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	}
	hex := func(hi, lo byte) uint8 {
		v := func(b byte) uint8 {
			switch {
			case b >= '0' && b <= '9':
				return b - '0'
			case b >= 'a' && b <= 'f':
				return b - 'a' + 10
			case b >= 'A' && b <= 'F':
				return b - 'A' + 10
			}
			return 0
		}
		return v(hi)<<4 | v(lo)
	}
	return color.NRGBA{R: hex(s[1], s[2]), G: hex(s[3], s[4]), B: hex(s[5], s[6]), A: 0xff}
}

// withAlpha scales a color's opacity.
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A)*clamp(alpha, 0, 1) + 0.5)
	return c
}
