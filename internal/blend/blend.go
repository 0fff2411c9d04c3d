// Package blend provides per-pixel color compositing.
//
// Colors are premultiplied float64 RGBA in [0, 1]. Porter-Duff operators
// and the W3C separable and non-separable blend modes are supported.
//
// References:
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import "math"

// Color is a premultiplied color.
type Color struct {
	R, G, B, A float64
}

// Mode represents a blending mode.
// The order matches layer.BlendMode.
type Mode int

const (
	ModeSrcOver Mode = iota
	ModeMultiply
	ModeScreen
	ModeOverlay
	ModeDarken
	ModeLighten
	ModeColorDodge
	ModeColorBurn
	ModeHardLight
	ModeSoftLight
	ModeDifference
	ModeExclusion
	ModeHue
	ModeSaturation
	ModeColor
	ModeLuminosity
	ModePlusDarker
	ModePlusLighter
	ModeClear
	ModeSrc
	ModeDst
	ModeDstOver
	ModeSrcIn
	ModeDstIn
	ModeSrcOut
	ModeDstOut
	ModeSrcATop
	ModeDstATop
	ModeXor
)

// Apply composites src over dst with mode and returns the result.
func Apply(mode Mode, src, dst Color) Color {
	switch mode {
	case ModeSrcOver:
		return porterDuff(src, dst, 1, 1-src.A)
	case ModeClear:
		return Color{}
	case ModeSrc:
		return src
	case ModeDst:
		return dst
	case ModeDstOver:
		return porterDuff(src, dst, 1-dst.A, 1)
	case ModeSrcIn:
		return porterDuff(src, dst, dst.A, 0)
	case ModeDstIn:
		return porterDuff(src, dst, 0, src.A)
	case ModeSrcOut:
		return porterDuff(src, dst, 1-dst.A, 0)
	case ModeDstOut:
		return porterDuff(src, dst, 0, 1-src.A)
	case ModeSrcATop:
		return porterDuff(src, dst, dst.A, 1-src.A)
	case ModeDstATop:
		return porterDuff(src, dst, 1-dst.A, src.A)
	case ModeXor:
		return porterDuff(src, dst, 1-dst.A, 1-src.A)
	case ModePlusLighter:
		return Color{
			R: math.Min(1, src.R+dst.R),
			G: math.Min(1, src.G+dst.G),
			B: math.Min(1, src.B+dst.B),
			A: math.Min(1, src.A+dst.A),
		}
	case ModePlusDarker:
		return plusDarker(src, dst)
	case ModeHue, ModeSaturation, ModeColor, ModeLuminosity:
		return nonSeparable(mode, src, dst)
	default:
		if fn, ok := separableFuncs[mode]; ok {
			return separable(src, dst, fn)
		}
		return porterDuff(src, dst, 1, 1-src.A)
	}
}

// porterDuff computes src*fa + dst*fb on all channels.
func porterDuff(src, dst Color, fa, fb float64) Color {
	return Color{
		R: src.R*fa + dst.R*fb,
		G: src.G*fa + dst.G*fb,
		B: src.B*fa + dst.B*fb,
		A: src.A*fa + dst.A*fb,
	}
}

// plusDarker is linear burn for premultiplied colors:
// result = max(0, 1 - ((1-D) + (1-S))) scaled by the union alpha.
func plusDarker(src, dst Color) Color {
	a := src.A + dst.A - src.A*dst.A
	ch := func(s, d float64) float64 {
		return math.Max(0, a-((dst.A-d)+(src.A-s)))
	}
	return Color{R: ch(src.R, dst.R), G: ch(src.G, dst.G), B: ch(src.B, dst.B), A: a}
}

// Lerp interpolates between a and b by t.
func Lerp(a, b Color, t float64) Color {
	return Color{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// Scale multiplies every channel by s.
func Scale(c Color, s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A * s}
}
