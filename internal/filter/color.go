package filter

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
)

// Map applies fn to every pixel of src. fn receives and returns straight
// alpha colors with channels in [0, 1].
func Map(src *image.RGBA, fn func(r, g, b, a float64) (float64, float64, float64, float64)) *image.RGBA {
	return adjust.Apply(src, func(c color.RGBA) color.RGBA {
		if c.A == 0 {
			r, g, b, a := fn(0, 0, 0, 0)
			return premultiply(r, g, b, a)
		}
		a := float64(c.A) / 255
		r := float64(c.R) / 255 / a
		g := float64(c.G) / 255 / a
		b := float64(c.B) / 255 / a
		return premultiply(fn(r, g, b, a))
	})
}

func premultiply(r, g, b, a float64) color.RGBA {
	a = clamp01(a)
	return color.RGBA{
		R: to8(clamp01(r) * a),
		G: to8(clamp01(g) * a),
		B: to8(clamp01(b) * a),
		A: to8(a),
	}
}

// Tint replaces the color of every pixel with c (premultiplied), keeping
// coverage from the source alpha.
func Tint(src *image.RGBA, c color.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	for i := 0; i+3 < len(src.Pix); i += 4 {
		a := uint32(src.Pix[i+3])
		if a == 0 {
			continue
		}
		dst.Pix[i] = uint8(uint32(c.R) * a / 255)
		dst.Pix[i+1] = uint8(uint32(c.G) * a / 255)
		dst.Pix[i+2] = uint8(uint32(c.B) * a / 255)
		dst.Pix[i+3] = uint8(uint32(c.A) * a / 255)
	}
	return dst
}

// InvertAlpha returns an image whose alpha is 1 - src alpha, with black
// color. It turns a shape into its complement for inner shadows.
func InvertAlpha(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	for i := 3; i < len(src.Pix); i += 4 {
		dst.Pix[i] = 255 - src.Pix[i]
	}
	return dst
}

// MaskAlpha multiplies every pixel of src by the alpha of mask, which must
// have the same bounds.
func MaskAlpha(src, mask *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	for i := 0; i+3 < len(src.Pix) && i+3 < len(mask.Pix); i += 4 {
		m := uint32(mask.Pix[i+3])
		for c := range 4 {
			dst.Pix[i+c] = uint8(uint32(src.Pix[i+c]) * m / 255)
		}
	}
	return dst
}

// Offset translates src by whole pixels. Uncovered pixels are transparent.
func Offset(src *image.RGBA, dx, dy int) *image.RGBA {
	b := src.Rect
	dst := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		sy := y - dy
		if sy < b.Min.Y || sy >= b.Max.Y {
			continue
		}
		x0 := max(b.Min.X, b.Min.X+dx)
		x1 := min(b.Max.X, b.Max.X+dx)
		if x0 >= x1 {
			continue
		}
		di := dst.PixOffset(x0, y)
		si := src.PixOffset(x0-dx, sy)
		copy(dst.Pix[di:di+4*(x1-x0)], src.Pix[si:si+4*(x1-x0)])
	}
	return dst
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

func to8(x float64) uint8 {
	return uint8(math.Round(x * 255))
}
