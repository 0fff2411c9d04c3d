package layer

import (
	"math"
	"sort"
)

// ExtendMode defines how shaders extend beyond their defined domain.
type ExtendMode uint8

const (
	// ExtendPad extends edge colors beyond bounds (default behavior).
	ExtendPad ExtendMode = iota
	// ExtendRepeat repeats the content.
	ExtendRepeat
	// ExtendReflect mirrors the content on every repetition.
	ExtendReflect
	// ExtendDecal leaves everything outside the domain transparent.
	ExtendDecal
)

// ColorStop represents a color at a specific position in a gradient.
type ColorStop struct {
	Offset float64 // Position in gradient, 0.0 to 1.0
	Color  RGBA    // Color at this position
}

// SortStops returns a copy of stops sorted by offset. Stops with equal
// offsets keep their relative order.
func SortStops(stops []ColorStop) []ColorStop {
	sorted := make([]ColorStop, len(stops))
	copy(sorted, stops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Offset < sorted[j].Offset
	})
	return sorted
}

// applyExtendMode maps t into [0, 1]. The second result is false when the
// mode is ExtendDecal and t lies outside the domain.
func applyExtendMode(t float64, mode ExtendMode) (float64, bool) {
	switch mode {
	case ExtendRepeat:
		t -= math.Floor(t)
	case ExtendReflect:
		t = math.Abs(t)
		period := math.Floor(t)
		t -= period
		if int(period)%2 == 1 {
			t = 1 - t
		}
	case ExtendDecal:
		if t < 0 || t > 1 {
			return 0, false
		}
	default:
		t = clamp01(t)
	}
	return t, true
}

// colorAtOffset returns the interpolated color at t. stops must be sorted.
func colorAtOffset(stops []ColorStop, t float64, mode ExtendMode) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	t, ok := applyExtendMode(t, mode)
	if !ok {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset >= t
	})
	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	s1, s2 := stops[idx-1], stops[idx]
	if s2.Offset == s1.Offset {
		return s1.Color
	}
	return s1.Color.Lerp(s2.Color, (t-s1.Offset)/(s2.Offset-s1.Offset))
}

// LinearGradient is a color transition along the line from Start to End.
//
// Example:
//
//	g := layer.NewLinearGradient(layer.Pt(0, 0), layer.Pt(100, 0), []layer.ColorStop{
//	    {Offset: 0, Color: layer.Red},
//	    {Offset: 1, Color: layer.Blue},
//	})
type LinearGradient struct {
	Start, End Point
	Stops      []ColorStop
	Extend     ExtendMode
}

// NewLinearGradient creates a linear gradient. Stops are sorted.
func NewLinearGradient(start, end Point, stops []ColorStop) *LinearGradient {
	return &LinearGradient{Start: start, End: end, Stops: SortStops(stops)}
}

// ColorAt implements Shader.
func (g *LinearGradient) ColorAt(x, y float64) RGBA {
	d := g.End.Sub(g.Start)
	lengthSq := d.Dot(d)
	if lengthSq == 0 {
		return firstStopColor(g.Stops)
	}
	// t = dot(P - Start, End - Start) / |End - Start|^2
	t := Pt(x, y).Sub(g.Start).Dot(d) / lengthSq
	return colorAtOffset(g.Stops, t, g.Extend)
}

// RadialGradient is a concentric color transition around Center. Offset 0
// maps to StartRadius and offset 1 to EndRadius.
type RadialGradient struct {
	Center      Point
	StartRadius float64
	EndRadius   float64
	Stops       []ColorStop
	Extend      ExtendMode
}

// NewRadialGradient creates a radial gradient. Stops are sorted.
func NewRadialGradient(center Point, startRadius, endRadius float64, stops []ColorStop) *RadialGradient {
	return &RadialGradient{
		Center:      center,
		StartRadius: startRadius,
		EndRadius:   endRadius,
		Stops:       SortStops(stops),
	}
}

// ColorAt implements Shader.
func (g *RadialGradient) ColorAt(x, y float64) RGBA {
	diff := g.EndRadius - g.StartRadius
	if diff == 0 {
		return firstStopColor(g.Stops)
	}
	d := Pt(x, y).Distance(g.Center)
	return colorAtOffset(g.Stops, (d-g.StartRadius)/diff, g.Extend)
}

// DiamondGradient is like RadialGradient but measures distance with the
// L1 metric, so iso-color lines are diamonds instead of circles.
type DiamondGradient struct {
	Center      Point
	StartRadius float64
	EndRadius   float64
	Stops       []ColorStop
	Extend      ExtendMode
}

// NewDiamondGradient creates a diamond gradient. Stops are sorted.
func NewDiamondGradient(center Point, startRadius, endRadius float64, stops []ColorStop) *DiamondGradient {
	return &DiamondGradient{
		Center:      center,
		StartRadius: startRadius,
		EndRadius:   endRadius,
		Stops:       SortStops(stops),
	}
}

// ColorAt implements Shader.
func (g *DiamondGradient) ColorAt(x, y float64) RGBA {
	diff := g.EndRadius - g.StartRadius
	if diff == 0 {
		return firstStopColor(g.Stops)
	}
	d := math.Abs(x-g.Center.X) + math.Abs(y-g.Center.Y)
	return colorAtOffset(g.Stops, (d-g.StartRadius)/diff, g.Extend)
}

// SweepGradient is an angular (conic) color transition around Center.
// Angles grow clockwise in screen space (y down), starting at StartAngle and
// covering EndAngle - StartAngle radians.
type SweepGradient struct {
	Center     Point
	StartAngle float64
	EndAngle   float64
	Stops      []ColorStop
	Extend     ExtendMode
}

// NewSweepGradient creates a full-turn sweep gradient starting at angle 0.
// Stops are sorted.
func NewSweepGradient(center Point, stops []ColorStop) *SweepGradient {
	return &SweepGradient{
		Center:   center,
		EndAngle: 2 * math.Pi,
		Stops:    SortStops(stops),
	}
}

// ColorAt implements Shader.
func (g *SweepGradient) ColorAt(x, y float64) RGBA {
	dx, dy := x-g.Center.X, y-g.Center.Y
	if dx == 0 && dy == 0 {
		return firstStopColor(g.Stops)
	}
	sweep := g.EndAngle - g.StartAngle
	if sweep == 0 {
		return firstStopColor(g.Stops)
	}
	rel := normalizeAngle(math.Atan2(dy, dx)-g.StartAngle, sweep)
	return colorAtOffset(g.Stops, rel/sweep, g.Extend)
}

// normalizeAngle wraps angle into [0, 2π) for positive sweeps and
// (-2π, 0] for negative ones.
func normalizeAngle(angle, sweep float64) float64 {
	const twoPi = 2 * math.Pi
	angle = math.Mod(angle, twoPi)
	if sweep > 0 && angle < 0 {
		angle += twoPi
	}
	if sweep < 0 && angle > 0 {
		angle -= twoPi
	}
	return angle
}

// firstStopColor returns the first stop's color or Transparent if empty.
func firstStopColor(stops []ColorStop) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	return stops[0].Color
}
