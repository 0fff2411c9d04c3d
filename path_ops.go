package layer

import "math"

// DefaultTolerance is the flattening tolerance in device pixels.
const DefaultTolerance = 0.25

// Polyline is one flattened subpath.
type Polyline struct {
	Points []Point
	Closed bool
}

// Flatten converts the path into polylines, one per subpath.
// tolerance is the maximum distance from the curve; non-positive values
// select DefaultTolerance. Open subpaths are reported with Closed false but
// are treated as implicitly closed by fills.
func (p *Path) Flatten(tolerance float64) []Polyline {
	if p.IsEmpty() {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	tolSq := tolerance * tolerance

	var out []Polyline
	var cur *Polyline
	var current, start Point
	flush := func() {
		if cur != nil && len(cur.Points) > 1 {
			out = append(out, *cur)
		}
		cur = nil
	}
	ensure := func() {
		if cur == nil {
			cur = &Polyline{Points: []Point{current}}
			start = current
		}
	}
	emit := func(pt Point) { cur.Points = append(cur.Points, pt) }

	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			flush()
			current = e.Point
			ensure()
		case LineTo:
			ensure()
			emit(e.Point)
			current = e.Point
		case QuadTo:
			ensure()
			flattenQuad(current, e.Control, e.Point, tolSq, emit)
			current = e.Point
		case CubicTo:
			ensure()
			flattenCubic(current, e.Control1, e.Control2, e.Point, tolSq, emit)
			current = e.Point
		case Close:
			if cur != nil {
				cur.Closed = true
			}
			flush()
			current = start
		}
	}
	flush()
	return out
}

// flattenQuad recursively subdivides the quadratic until the control point
// is within tolerance of the chord midpoint.
func flattenQuad(p0, p1, p2 Point, tolSq float64, fn func(Point)) {
	mid := p0.Lerp(p2, 0.5)
	d := p1.Sub(mid)
	if d.Dot(d) <= tolSq*4 {
		fn(p2)
		return
	}
	a := p0.Lerp(p1, 0.5)
	b := p1.Lerp(p2, 0.5)
	m := a.Lerp(b, 0.5)
	flattenQuad(p0, a, m, tolSq, fn)
	flattenQuad(m, b, p2, tolSq, fn)
}

// flattenCubic recursively subdivides the cubic using the standard
// flatness metric on the control polygon.
func flattenCubic(p0, p1, p2, p3 Point, tolSq float64, fn func(Point)) {
	ux := 3*p1.X - 2*p0.X - p3.X
	uy := 3*p1.Y - 2*p0.Y - p3.Y
	vx := 3*p2.X - p0.X - 2*p3.X
	vy := 3*p2.Y - p0.Y - 2*p3.Y
	flatness := math.Max(ux*ux, vx*vx) + math.Max(uy*uy, vy*vy)
	if flatness <= tolSq*16 {
		fn(p3)
		return
	}
	p01 := p0.Lerp(p1, 0.5)
	p12 := p1.Lerp(p2, 0.5)
	p23 := p2.Lerp(p3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	m := p012.Lerp(p123, 0.5)
	flattenCubic(p0, p01, p012, m, tolSq, fn)
	flattenCubic(m, p123, p23, p3, tolSq, fn)
}

// Bounds returns the tight axis-aligned bounding box of the path.
func (p *Path) Bounds() Rect {
	var pts []Point
	for _, pl := range p.Flatten(DefaultTolerance / 4) {
		pts = append(pts, pl.Points...)
	}
	return BoundsOf(pts...)
}

// Winding returns the winding number of pt relative to the path.
// Every subpath is treated as closed. Uses ray casting with a horizontal
// ray to the right.
func (p *Path) Winding(pt Point) int {
	winding := 0
	for _, pl := range p.Flatten(DefaultTolerance) {
		n := len(pl.Points)
		for i := range n {
			winding += lineWinding(pl.Points[i], pl.Points[(i+1)%n], pt)
		}
	}
	return winding
}

// lineWinding computes the winding contribution of a line segment.
func lineWinding(p0, p1, pt Point) int {
	if p0.Y <= pt.Y && p1.Y > pt.Y {
		if isLeft(p0, p1, pt) > 0 {
			return 1
		}
	} else if p0.Y > pt.Y && p1.Y <= pt.Y {
		if isLeft(p0, p1, pt) < 0 {
			return -1
		}
	}
	return 0
}

// isLeft returns positive if pt is left of line p0-p1, negative if right, 0 if on.
func isLeft(p0, p1, pt Point) float64 {
	return (p1.X-p0.X)*(pt.Y-p0.Y) - (pt.X-p0.X)*(p1.Y-p0.Y)
}

// Contains tests if a point is inside the path under the given fill rule.
func (p *Path) Contains(pt Point, rule FillRule) bool {
	w := p.Winding(pt)
	if rule == FillEvenOdd {
		return w%2 != 0
	}
	return w != 0
}

// Area returns the signed area enclosed by the flattened path.
// Positive values mean clockwise orientation in y-down coordinates.
func (p *Path) Area() float64 {
	area := 0.0
	for _, pl := range p.Flatten(DefaultTolerance) {
		n := len(pl.Points)
		for i := range n {
			a, b := pl.Points[i], pl.Points[(i+1)%n]
			area += a.Cross(b)
		}
	}
	return area / 2
}
