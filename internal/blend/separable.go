package blend

import "math"

// channelFunc is the W3C blend function B(Cb, Cs) on unmultiplied channels.
type channelFunc func(cb, cs float64) float64

var separableFuncs = map[Mode]channelFunc{
	ModeMultiply:   multiply,
	ModeScreen:     screen,
	ModeOverlay:    func(cb, cs float64) float64 { return hardLight(cs, cb) },
	ModeDarken:     math.Min,
	ModeLighten:    math.Max,
	ModeColorDodge: colorDodge,
	ModeColorBurn:  colorBurn,
	ModeHardLight:  hardLight,
	ModeSoftLight:  softLight,
	ModeDifference: func(cb, cs float64) float64 { return math.Abs(cb - cs) },
	ModeExclusion:  func(cb, cs float64) float64 { return cb + cs - 2*cb*cs },
}

// separable applies the standard formula
//
//	co = cs*(1-ab) + cb*(1-as) + as*ab*B(Cb, Cs)
//
// to premultiplied colors.
func separable(src, dst Color, fn channelFunc) Color {
	if src.A == 0 {
		return dst
	}
	if dst.A == 0 {
		return src
	}
	sa, da := src.A, dst.A
	ch := func(s, d float64) float64 {
		cs, cb := s/sa, d/da
		return s*(1-da) + d*(1-sa) + sa*da*clamp(fn(cb, cs))
	}
	return Color{
		R: ch(src.R, dst.R),
		G: ch(src.G, dst.G),
		B: ch(src.B, dst.B),
		A: sa + da - sa*da,
	}
}

func multiply(cb, cs float64) float64 { return cb * cs }

func screen(cb, cs float64) float64 { return cb + cs - cb*cs }

func hardLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return multiply(cb, 2*cs)
	}
	return screen(cb, 2*cs-1)
}

func colorDodge(cb, cs float64) float64 {
	switch {
	case cb == 0:
		return 0
	case cs >= 1:
		return 1
	default:
		return math.Min(1, cb/(1-cs))
	}
}

func colorBurn(cb, cs float64) float64 {
	switch {
	case cb >= 1:
		return 1
	case cs <= 0:
		return 0
	default:
		return 1 - math.Min(1, (1-cb)/cs)
	}
}

func softLight(cb, cs float64) float64 {
	if cs <= 0.5 {
		return cb - (1-2*cs)*cb*(1-cb)
	}
	var d float64
	if cb <= 0.25 {
		d = ((16*cb-12)*cb + 4) * cb
	} else {
		d = math.Sqrt(cb)
	}
	return cb + (2*cs-1)*(d-cb)
}

func clamp(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
