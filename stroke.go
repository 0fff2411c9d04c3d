package layer

import (
	"iter"

	"honnef.co/go/curve"
)

// LineCap specifies the shape of open stroke ends.
type LineCap uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// LineJoin specifies the shape of stroke corners.
type LineJoin uint8

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// StrokeStyle describes how a path outline is expanded into a stroke.
type StrokeStyle struct {
	Width      float64
	Cap        LineCap
	Join       LineJoin
	MiterLimit float64
	Dash       []float64
	DashOffset float64
}

// StrokeShape expands the outline of s into a fillable shape.
// It returns nil when the width is not positive or s is empty.
func StrokeShape(s Shape, style StrokeStyle, tolerance float64) Shape {
	if style.Width <= 0 || IsEmptyShape(s) {
		return nil
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	if _, ok := s.(*CombinedShape); ok {
		grown, shrunk := strokeBand(s, style, tolerance)
		return Combine(OpDifference, grown, shrunk)
	}
	return strokeOutline(s, style, tolerance)
}

func strokeOutline(s Shape, style StrokeStyle, tolerance float64) Shape {
	if IsEmptyShape(s) {
		return nil
	}
	out := StrokePath(s.Outline(), style, tolerance)
	if out.IsEmpty() {
		return nil
	}
	return NewPathShape(out, FillNonZero)
}

// strokeBand returns s grown and shrunk by half the stroke width. Boolean
// combinations grow and shrink through their operands, so the band between
// the two follows the edge of the result and skips operand edges that end
// up inside or outside it.
func strokeBand(s Shape, style StrokeStyle, tolerance float64) (grown, shrunk Shape) {
	cs, ok := s.(*CombinedShape)
	if !ok {
		band := strokeOutline(s, style, tolerance)
		return Union(s, band), Difference(s, band)
	}
	ga, sa := strokeBand(cs.A, style, tolerance)
	gb, sb := strokeBand(cs.B, style, tolerance)
	switch cs.Op {
	case OpIntersect:
		return Intersect(ga, gb), Intersect(sa, sb)
	case OpDifference:
		return Difference(ga, sb), Difference(sa, gb)
	case OpXor:
		return Union(Difference(ga, sb), Difference(gb, sa)),
			Union(Difference(sa, gb), Difference(sb, ga))
	default:
		return Union(ga, gb), Union(sa, sb)
	}
}

// StrokePath returns the outline of the stroke of p as a path that must be
// filled with the non-zero rule.
func StrokePath(p *Path, style StrokeStyle, tolerance float64) *Path {
	seq := curveElements(p)
	if dash := validDash(style.Dash); dash != nil {
		seq = curve.Dash(seq, style.DashOffset, dash)
	}
	miter := style.MiterLimit
	if miter <= 0 {
		miter = 4
	}
	cs := curve.Stroke{
		Width:      style.Width,
		Join:       curveJoin(style.Join),
		MiterLimit: miter,
		StartCap:   curveCap(style.Cap),
		EndCap:     curveCap(style.Cap),
	}
	stroked := curve.StrokePath(seq, cs, curve.StrokeOpts{}, tolerance)
	return pathFromCurve(stroked)
}

// validDash drops patterns that cannot produce visible dashes.
func validDash(d []float64) []float64 {
	if len(d) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range d {
		if v < 0 {
			return nil
		}
		sum += v
	}
	if sum <= 0 {
		return nil
	}
	if len(d)%2 == 1 {
		d = append(append([]float64(nil), d...), d...)
	}
	return d
}

func curveJoin(j LineJoin) curve.Join {
	switch j {
	case JoinRound:
		return curve.RoundJoin
	case JoinBevel:
		return curve.BevelJoin
	default:
		return curve.MiterJoin
	}
}

func curveCap(c LineCap) curve.Cap {
	switch c {
	case CapRound:
		return curve.RoundCap
	case CapSquare:
		return curve.SquareCap
	default:
		return curve.ButtCap
	}
}

func cpt(p Point) curve.Point { return curve.Point{X: p.X, Y: p.Y} }

// curveElements adapts a Path to the element sequence used by curve.
func curveElements(p *Path) iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		for _, elem := range p.elements {
			var el curve.PathElement
			switch e := elem.(type) {
			case MoveTo:
				el = curve.PathElement{Kind: curve.MoveToKind, P0: cpt(e.Point)}
			case LineTo:
				el = curve.PathElement{Kind: curve.LineToKind, P0: cpt(e.Point)}
			case QuadTo:
				el = curve.PathElement{Kind: curve.QuadToKind, P0: cpt(e.Control), P1: cpt(e.Point)}
			case CubicTo:
				el = curve.PathElement{Kind: curve.CubicToKind, P0: cpt(e.Control1), P1: cpt(e.Control2), P2: cpt(e.Point)}
			case Close:
				el = curve.PathElement{Kind: curve.ClosePathKind}
			}
			if !yield(el) {
				return
			}
		}
	}
}

// pathFromCurve collects a curve element sequence into a Path.
func pathFromCurve(seq iter.Seq[curve.PathElement]) *Path {
	p := NewPath()
	for el := range seq {
		switch el.Kind {
		case curve.MoveToKind:
			p.MoveTo(el.P0.X, el.P0.Y)
		case curve.LineToKind:
			p.LineTo(el.P0.X, el.P0.Y)
		case curve.QuadToKind:
			p.QuadraticTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y)
		case curve.CubicToKind:
			p.CubicTo(el.P0.X, el.P0.Y, el.P1.X, el.P1.Y, el.P2.X, el.P2.Y)
		case curve.ClosePathKind:
			p.Close()
		}
	}
	return p
}
