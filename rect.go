package layer

import "math"

// Rect is an axis-aligned rectangle given by its origin and size.
// A rectangle with non-positive width or height is empty; the zero
// value is the empty rectangle.
type Rect struct {
	X, Y, W, H float64
}

// NewRect creates a rectangle from origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectFromLTRB creates a rectangle from its edges.
func RectFromLTRB(left, top, right, bottom float64) Rect {
	return Rect{X: left, Y: top, W: right - left, H: bottom - top}
}

// BoundsOf returns the smallest rectangle containing all points.
func BoundsOf(pts ...Point) Rect {
	if len(pts) == 0 {
		return Rect{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := minX, minY
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return RectFromLTRB(minX, minY, maxX, maxY)
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Origin returns the top-left corner.
func (r Rect) Origin() Point { return Pt(r.X, r.Y) }

// Size returns the width and height as a vector.
func (r Rect) Size() Point { return Pt(r.W, r.H) }

// Center returns the center point.
func (r Rect) Center() Point { return Pt(r.X+r.W/2, r.Y+r.H/2) }

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return !(r.W > 0 && r.H > 0)
}

// Contains reports whether p lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// ContainsRect reports whether o lies entirely inside r.
// An empty o is contained in every rectangle.
func (r Rect) ContainsRect(o Rect) bool {
	if o.IsEmpty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Union returns the smallest rectangle containing both r and o.
// Empty rectangles do not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return RectFromLTRB(
		math.Min(r.X, o.X), math.Min(r.Y, o.Y),
		math.Max(r.Right(), o.Right()), math.Max(r.Bottom(), o.Bottom()),
	)
}

// Intersect returns the overlap of r and o, or the empty rectangle.
func (r Rect) Intersect(o Rect) Rect {
	out := RectFromLTRB(
		math.Max(r.X, o.X), math.Max(r.Y, o.Y),
		math.Min(r.Right(), o.Right()), math.Min(r.Bottom(), o.Bottom()),
	)
	if out.IsEmpty() {
		return Rect{}
	}
	return out
}

// Intersects reports whether r and o overlap.
func (r Rect) Intersects(o Rect) bool {
	return !r.Intersect(o).IsEmpty()
}

// Outset grows the rectangle by dx horizontally and dy vertically on each side.
// Negative values shrink it.
func (r Rect) Outset(dx, dy float64) Rect {
	return Rect{X: r.X - dx, Y: r.Y - dy, W: r.W + 2*dx, H: r.H + 2*dy}
}

// Offset moves the rectangle by (dx, dy).
func (r Rect) Offset(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// RoundOut returns the smallest rectangle with integer edges containing r.
func (r Rect) RoundOut() Rect {
	return RectFromLTRB(math.Floor(r.X), math.Floor(r.Y), math.Ceil(r.Right()), math.Ceil(r.Bottom()))
}
