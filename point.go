package layer

import "math"

// Point is a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale multiplies each component by the matching component of s.
// It maps normalized object coordinates into a size.
func (p Point) Scale(s Point) Point {
	return Point{X: p.X * s.X, Y: p.Y * s.Y}
}

func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the 3D cross product. Summed over the
// edges of a polygon it gives twice the signed area.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// Angle returns the direction of the vector in radians, measured from the
// positive x axis toward positive y (clockwise on screen).
func (p Point) Angle() float64 { return math.Atan2(p.Y, p.X) }

// Lerp interpolates between p (t=0) and q (t=1).
func (p Point) Lerp(q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}
