package layer

import "math"

// PathElement represents a single element in a path.
type PathElement interface {
	isPathElement()
}

// MoveTo moves to a point without drawing.
type MoveTo struct {
	Point Point
}

func (MoveTo) isPathElement() {}

// LineTo draws a line to a point.
type LineTo struct {
	Point Point
}

func (LineTo) isPathElement() {}

// QuadTo draws a quadratic Bezier curve.
type QuadTo struct {
	Control Point
	Point   Point
}

func (QuadTo) isPathElement() {}

// CubicTo draws a cubic Bezier curve.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

func (CubicTo) isPathElement() {}

// Close closes the current subpath.
type Close struct{}

func (Close) isPathElement() {}

// Path represents a vector path.
type Path struct {
	elements []PathElement
	start    Point // Starting point of current subpath
	current  Point // Current point
}

// NewPath creates a new empty path.
func NewPath() *Path {
	return &Path{
		elements: make([]PathElement, 0, 16),
	}
}

// MoveTo moves to a point without drawing.
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
}

// LineTo draws a line to a point.
// A LineTo on an empty path behaves like MoveTo.
func (p *Path) LineTo(x, y float64) {
	if len(p.elements) == 0 {
		p.MoveTo(x, y)
		return
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadraticTo draws a quadratic Bezier curve.
func (p *Path) QuadraticTo(cx, cy, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo draws a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath by drawing a line to the start point.
func (p *Path) Close() {
	if len(p.elements) == 0 {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
}

// Elements returns the path elements.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// IsEmpty reports whether the path has no drawing elements.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.elements) == 0
}

// Append adds all elements of other to p.
func (p *Path) Append(other *Path) {
	if other.IsEmpty() {
		return
	}
	p.elements = append(p.elements, other.elements...)
	p.start = other.start
	p.current = other.current
}

// Transform returns a copy of the path with every point mapped by m.
func (p *Path) Transform(m Matrix) *Path {
	result := &Path{elements: make([]PathElement, 0, len(p.elements))}
	for _, elem := range p.elements {
		switch e := elem.(type) {
		case MoveTo:
			pt := m.TransformPoint(e.Point)
			result.MoveTo(pt.X, pt.Y)
		case LineTo:
			pt := m.TransformPoint(e.Point)
			result.LineTo(pt.X, pt.Y)
		case QuadTo:
			ctrl := m.TransformPoint(e.Control)
			pt := m.TransformPoint(e.Point)
			result.QuadraticTo(ctrl.X, ctrl.Y, pt.X, pt.Y)
		case CubicTo:
			ctrl1 := m.TransformPoint(e.Control1)
			ctrl2 := m.TransformPoint(e.Control2)
			pt := m.TransformPoint(e.Point)
			result.CubicTo(ctrl1.X, ctrl1.Y, ctrl2.X, ctrl2.Y, pt.X, pt.Y)
		case Close:
			result.Close()
		}
	}
	return result
}

// Clone creates a deep copy of the path.
func (p *Path) Clone() *Path {
	result := &Path{elements: make([]PathElement, len(p.elements))}
	copy(result.elements, p.elements)
	result.start = p.start
	result.current = p.current
	return result
}

// Rectangle adds a rectangle to the path.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// kappa is the cubic Bezier handle length for a quarter circle.
const kappa = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)

// Ellipse adds an ellipse to the path.
func (p *Path) Ellipse(cx, cy, rx, ry float64) {
	ox := rx * kappa
	oy := ry * kappa

	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+oy, cx+ox, cy+ry, cx, cy+ry)
	p.CubicTo(cx-ox, cy+ry, cx-rx, cy+oy, cx-rx, cy)
	p.CubicTo(cx-rx, cy-oy, cx-ox, cy-ry, cx, cy-ry)
	p.CubicTo(cx+ox, cy-ry, cx+rx, cy-oy, cx+rx, cy)
	p.Close()
}

// Corners holds per-corner radii in the order top-left, top-right,
// bottom-right, bottom-left.
type Corners [4]float64

// IsZero reports whether all radii are zero.
func (c Corners) IsZero() bool {
	return c == Corners{}
}

// RoundedRect adds a rectangle with independent corner radii.
// Radii are clamped to half of the shorter side. smoothing in [0, 1] pulls
// the curve handles toward the corner, approximating a continuous-curvature
// corner; 0 gives circular arcs.
func (p *Path) RoundedRect(x, y, w, h float64, radii Corners, smoothing float64) {
	if radii.IsZero() {
		p.Rectangle(x, y, w, h)
		return
	}
	maxR := math.Min(w, h) / 2
	var r Corners
	for i, v := range radii {
		r[i] = math.Max(0, math.Min(v, maxR))
	}
	k := kappa + (1-kappa)*clamp01(smoothing)*0.5

	p.MoveTo(x+r[0], y)
	p.LineTo(x+w-r[1], y)
	p.CubicTo(x+w-r[1]+r[1]*k, y, x+w, y+r[1]-r[1]*k, x+w, y+r[1])
	p.LineTo(x+w, y+h-r[2])
	p.CubicTo(x+w, y+h-r[2]+r[2]*k, x+w-r[2]+r[2]*k, y+h, x+w-r[2], y+h)
	p.LineTo(x+r[3], y+h)
	p.CubicTo(x+r[3]-r[3]*k, y+h, x, y+h-r[3]+r[3]*k, x, y+h-r[3])
	p.LineTo(x, y+r[0])
	p.CubicTo(x, y+r[0]-r[0]*k, x+r[0]-r[0]*k, y, x+r[0], y)
	p.Close()
}

// Polygon adds a closed polygon through pts.
func (p *Path) Polygon(pts []Point) {
	if len(pts) < 2 {
		return
	}
	p.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	p.Close()
}

// RegularPolygon adds a polygon with n sides inscribed in the ellipse
// that fills the given box, starting at the top center.
func (p *Path) RegularPolygon(box Rect, n int) {
	if n < 3 {
		return
	}
	c := box.Center()
	pts := make([]Point, n)
	for i := range pts {
		a := -math.Pi/2 + 2*math.Pi*float64(i)/float64(n)
		pts[i] = Pt(c.X+math.Cos(a)*box.W/2, c.Y+math.Sin(a)*box.H/2)
	}
	p.Polygon(pts)
}

// Star adds a star with n points inscribed in box. ratio is the inner
// radius relative to the outer radius.
func (p *Path) Star(box Rect, n int, ratio float64) {
	if n < 3 {
		return
	}
	c := box.Center()
	pts := make([]Point, 2*n)
	for i := range pts {
		a := -math.Pi/2 + math.Pi*float64(i)/float64(n)
		s := 1.0
		if i%2 == 1 {
			s = ratio
		}
		pts[i] = Pt(c.X+math.Cos(a)*box.W/2*s, c.Y+math.Sin(a)*box.H/2*s)
	}
	p.Polygon(pts)
}
