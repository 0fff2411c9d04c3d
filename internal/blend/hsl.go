package blend

import "math"

// Lum returns the luminance of a color using BT.601 coefficients.
// Formula: Lum(r, g, b) = 0.30*r + 0.59*g + 0.11*b
func Lum(r, g, b float64) float64 {
	return 0.30*r + 0.59*g + 0.11*b
}

// Lightness returns the HSL lightness (max+min)/2 of a color.
func Lightness(r, g, b float64) float64 {
	return (max3(r, g, b) + min3(r, g, b)) / 2
}

// Sat returns the saturation (max - min) of a color.
func Sat(r, g, b float64) float64 {
	return max3(r, g, b) - min3(r, g, b)
}

// ClipColor clips color components to [0,1] while preserving luminance.
func ClipColor(r, g, b float64) (float64, float64, float64) {
	l := Lum(r, g, b)
	n := min3(r, g, b)
	x := max3(r, g, b)

	if n < 0 {
		r = l + (r-l)*l/(l-n)
		g = l + (g-l)*l/(l-n)
		b = l + (b-l)*l/(l-n)
	}
	if x > 1 {
		r = l + (r-l)*(1-l)/(x-l)
		g = l + (g-l)*(1-l)/(x-l)
		b = l + (b-l)*(1-l)/(x-l)
	}
	return r, g, b
}

// SetLum sets the luminance of a color while preserving saturation and hue.
func SetLum(r, g, b, l float64) (float64, float64, float64) {
	d := l - Lum(r, g, b)
	return ClipColor(r+d, g+d, b+d)
}

// SetSat sets the saturation of a color while preserving hue.
func SetSat(r, g, b, s float64) (float64, float64, float64) {
	c := [3]float64{r, g, b}
	minI, midI, maxI := 0, 1, 2
	if c[minI] > c[midI] {
		minI, midI = midI, minI
	}
	if c[midI] > c[maxI] {
		midI, maxI = maxI, midI
	}
	if c[minI] > c[midI] {
		minI, midI = midI, minI
	}
	var out [3]float64
	if c[maxI] > c[minI] {
		out[midI] = (c[midI] - c[minI]) * s / (c[maxI] - c[minI])
		out[maxI] = s
	}
	return out[0], out[1], out[2]
}

// nonSeparable applies Hue, Saturation, Color or Luminosity.
func nonSeparable(mode Mode, src, dst Color) Color {
	if src.A == 0 {
		return dst
	}
	if dst.A == 0 {
		return src
	}
	sa, da := src.A, dst.A
	sr, sg, sb := src.R/sa, src.G/sa, src.B/sa
	dr, dg, db := dst.R/da, dst.G/da, dst.B/da

	var r, g, b float64
	switch mode {
	case ModeHue:
		r, g, b = SetSat(sr, sg, sb, Sat(dr, dg, db))
		r, g, b = SetLum(r, g, b, Lum(dr, dg, db))
	case ModeSaturation:
		r, g, b = SetSat(dr, dg, db, Sat(sr, sg, sb))
		r, g, b = SetLum(r, g, b, Lum(dr, dg, db))
	case ModeColor:
		r, g, b = SetLum(sr, sg, sb, Lum(dr, dg, db))
	default:
		r, g, b = SetLum(dr, dg, db, Lum(sr, sg, sb))
	}

	mix := func(s, d, bl float64) float64 {
		return s*(1-da) + d*(1-sa) + sa*da*clamp(bl)
	}
	return Color{
		R: mix(src.R, dst.R, r),
		G: mix(src.G, dst.G, g),
		B: mix(src.B, dst.B, b),
		A: sa + da - sa*da,
	}
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }

func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }
