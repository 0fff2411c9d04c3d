package graph

import "github.com/gogpu/layer"

// Contour is an explicit geometry of a node, laid out in its frame.
type Contour interface {
	Shape(env *Env, frame layer.Rect, rule layer.FillRule) layer.Shape
}

// EllipseContour is the ellipse inscribed in the frame.
type EllipseContour struct{}

// Shape implements Contour.
func (EllipseContour) Shape(_ *Env, frame layer.Rect, rule layer.FillRule) layer.Shape {
	if frame.IsEmpty() {
		return emptyShape()
	}
	c := frame.Center()
	p := layer.NewPath()
	p.Ellipse(c.X, c.Y, frame.W/2, frame.H/2)
	return layer.NewPathShape(p, rule)
}

// RectangleContour is the frame rectangle with optional rounded corners.
type RectangleContour struct {
	Radius    layer.Corners
	Smoothing float64
}

// Shape implements Contour.
func (r RectangleContour) Shape(_ *Env, frame layer.Rect, rule layer.FillRule) layer.Shape {
	return roundedRect(frame, r.Radius, r.Smoothing, rule)
}

// StarContour is a star with Points tips inscribed in the frame. Ratio is
// the inner radius relative to the outer one.
type StarContour struct {
	Points int
	Ratio  float64
}

// Shape implements Contour.
func (s StarContour) Shape(_ *Env, frame layer.Rect, rule layer.FillRule) layer.Shape {
	if frame.IsEmpty() || s.Points < 3 {
		return emptyShape()
	}
	p := layer.NewPath()
	p.Star(frame, s.Points, s.Ratio)
	return layer.NewPathShape(p, rule)
}

// PolygonContour is a regular polygon inscribed in the frame.
type PolygonContour struct {
	Sides int
}

// Shape implements Contour.
func (s PolygonContour) Shape(_ *Env, frame layer.Rect, rule layer.FillRule) layer.Shape {
	if frame.IsEmpty() || s.Sides < 3 {
		return emptyShape()
	}
	p := layer.NewPath()
	p.RegularPolygon(frame, s.Sides)
	return layer.NewPathShape(p, rule)
}

// PointsContour is an explicit point list in local coordinates.
type PointsContour struct {
	Points []layer.Point
	Closed bool
}

// Shape implements Contour.
func (s PointsContour) Shape(_ *Env, _ layer.Rect, rule layer.FillRule) layer.Shape {
	if len(s.Points) < 2 {
		return emptyShape()
	}
	p := layer.NewPath()
	p.MoveTo(s.Points[0].X, s.Points[0].Y)
	for _, pt := range s.Points[1:] {
		p.LineTo(pt.X, pt.Y)
	}
	if s.Closed {
		p.Close()
	}
	return layer.NewPathShape(p, rule)
}

// PathContour is an explicit path in local coordinates.
type PathContour struct {
	Path *layer.Path
}

// Shape implements Contour.
func (s PathContour) Shape(_ *Env, _ layer.Rect, rule layer.FillRule) layer.Shape {
	if s.Path == nil {
		return emptyShape()
	}
	return layer.NewPathShape(s.Path, rule)
}

// ContourType selects how a node without an explicit contour derives its
// shape from its frame and children.
type ContourType uint8

const (
	ContourFrameOnly ContourType = iota
	ContourUnion
	ContourUnionWithFrame
	ContourIntersect
	ContourIntersectWithFrame
	// ContourObjectOps applies each child's BoolOp in order.
	ContourObjectOps
)

// BoolOp is the boolean operator a child applies against the shapes before
// it under ContourObjectOps.
type BoolOp uint8

const (
	// BoolNone starts a new disjoint sub-shape.
	BoolNone BoolOp = iota
	BoolUnion
	BoolSubtract
	BoolIntersect
	BoolExclude
)

func (op BoolOp) layerOp() layer.BoolOp {
	switch op {
	case BoolSubtract:
		return layer.OpDifference
	case BoolIntersect:
		return layer.OpIntersect
	case BoolExclude:
		return layer.OpXor
	default:
		return layer.OpUnion
	}
}

func roundedRect(frame layer.Rect, radius layer.Corners, smoothing float64, rule layer.FillRule) layer.Shape {
	if frame.IsEmpty() {
		return emptyShape()
	}
	p := layer.NewPath()
	p.RoundedRect(frame.X, frame.Y, frame.W, frame.H, radius, smoothing)
	return layer.NewPathShape(p, rule)
}

func emptyShape() layer.Shape {
	return layer.NewPathShape(layer.NewPath(), layer.FillNonZero)
}

// combineShapes folds shapes with op. It returns nil for no shapes.
func combineShapes(op layer.BoolOp, shapes []layer.Shape) layer.Shape {
	if len(shapes) == 0 {
		return nil
	}
	out := shapes[0]
	for _, s := range shapes[1:] {
		out = layer.Combine(op, out, s)
	}
	return out
}

// objectOps folds shapes left to right with their operators. BoolNone, and
// the first shape, start a new sub-shape; the result is the union of all
// sub-shapes.
func objectOps(shapes []layer.Shape, ops []BoolOp) layer.Shape {
	var parts []layer.Shape
	var cur layer.Shape
	for i, s := range shapes {
		if i == 0 || ops[i] == BoolNone {
			if i > 0 {
				parts = append(parts, cur)
			}
			cur = s
			continue
		}
		cur = layer.Combine(ops[i].layerOp(), cur, s)
	}
	if len(shapes) > 0 {
		parts = append(parts, cur)
	}
	var out layer.Shape
	for _, p := range parts {
		out = layer.Union(out, p)
	}
	return out
}
