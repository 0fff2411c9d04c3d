package layer

import "math"

// ColorFilter transforms a single straight-alpha color.
type ColorFilter interface {
	FilterColor(c RGBA) RGBA
}

// ColorFilterFunc adapts a function to the ColorFilter interface.
type ColorFilterFunc func(c RGBA) RGBA

// FilterColor implements ColorFilter.
func (f ColorFilterFunc) FilterColor(c RGBA) RGBA { return f(c) }

// ColorMatrix is a 4x5 color transformation in row-major order:
//
//	[R']   [m0  m1  m2  m3  m4 ]   [R]
//	[G'] = [m5  m6  m7  m8  m9 ] * [G]
//	[B']   [m10 m11 m12 m13 m14]   [B]
//	[A']   [m15 m16 m17 m18 m19]   [A]
//	                               [1]
//
// Channels are straight alpha in [0, 1]; the fifth column is a bias in the
// same range.
type ColorMatrix [20]float64

// IdentityColorMatrix returns the matrix that leaves colors unchanged.
func IdentityColorMatrix() ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// FilterColor implements ColorFilter. The result is clamped.
func (m ColorMatrix) FilterColor(c RGBA) RGBA {
	return RGBA{
		R: m[0]*c.R + m[1]*c.G + m[2]*c.B + m[3]*c.A + m[4],
		G: m[5]*c.R + m[6]*c.G + m[7]*c.B + m[8]*c.A + m[9],
		B: m[10]*c.R + m[11]*c.G + m[12]*c.B + m[13]*c.A + m[14],
		A: m[15]*c.R + m[16]*c.G + m[17]*c.B + m[18]*c.A + m[19],
	}.Clamp()
}

// Concat returns the matrix that applies n first and then m.
func (m ColorMatrix) Concat(n ColorMatrix) ColorMatrix {
	var out ColorMatrix
	for row := range 4 {
		for col := range 5 {
			var v float64
			for k := range 4 {
				v += m[row*5+k] * n[k*5+col]
			}
			if col == 4 {
				v += m[row*5+4]
			}
			out[row*5+col] = v
		}
	}
	return out
}

// IsIdentity reports whether m leaves every color unchanged.
func (m ColorMatrix) IsIdentity() bool {
	return m == IdentityColorMatrix()
}

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// ScaleColorMatrix multiplies the color channels by factor.
func ScaleColorMatrix(factor float64) ColorMatrix {
	return ColorMatrix{
		factor, 0, 0, 0, 0,
		0, factor, 0, 0, 0,
		0, 0, factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// ContrastColorMatrix scales colors around mid gray.
// factor: 0.0 = gray, 1.0 = unchanged, 2.0 = high contrast
func ContrastColorMatrix(factor float64) ColorMatrix {
	offset := 0.5 * (1 - factor)
	return ColorMatrix{
		factor, 0, 0, 0, offset,
		0, factor, 0, 0, offset,
		0, 0, factor, 0, offset,
		0, 0, 0, 1, 0,
	}
}

// SaturationColorMatrix blends between grayscale (0) and identity (1).
func SaturationColorMatrix(factor float64) ColorMatrix {
	inv := 1 - factor
	return ColorMatrix{
		lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
		lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
		lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// HueRotateColorMatrix rotates hue by the given angle in radians.
func HueRotateColorMatrix(angle float64) ColorMatrix {
	cos, sin := math.Cos(angle), math.Sin(angle)
	const (
		r = 0.213
		g = 0.715
		b = 0.072
	)
	return ColorMatrix{
		r + cos*(1-r) - sin*r, g - cos*g - sin*g, b - cos*b + sin*(1-b), 0, 0,
		r - cos*r + sin*0.143, g + cos*(1-g) + sin*0.140, b - cos*b - sin*0.283, 0, 0,
		r - cos*r - sin*(1-r), g - cos*g + sin*g, b + cos*(1-b) + sin*b, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// OffsetColorMatrix adds per-channel offsets to the color channels.
func OffsetColorMatrix(dr, dg, db float64) ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, dr,
		0, 1, 0, 0, dg,
		0, 0, 1, 0, db,
		0, 0, 0, 1, 0,
	}
}

// AlphaColorMatrix multiplies alpha by factor.
func AlphaColorMatrix(factor float64) ColorMatrix {
	return ColorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, factor, 0,
	}
}

// ComposeColorFilters returns a filter applying inner first and then outer.
// Two color matrices are folded into one.
func ComposeColorFilters(outer, inner ColorFilter) ColorFilter {
	switch {
	case outer == nil:
		return inner
	case inner == nil:
		return outer
	}
	if om, ok := outer.(ColorMatrix); ok {
		if im, ok := inner.(ColorMatrix); ok {
			return om.Concat(im)
		}
	}
	return ColorFilterFunc(func(c RGBA) RGBA {
		return outer.FilterColor(inner.FilterColor(c))
	})
}
