package layer

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// coverage rasterizes shapes into 8-bit alpha masks in device space.
type coverage struct {
	w, h int
	z    *vector.Rasterizer
}

func newCoverage(w, h int) *coverage {
	return &coverage{w: w, h: h, z: vector.NewRasterizer(w, h)}
}

// shape returns the coverage of s mapped through m.
func (c *coverage) shape(s Shape, m Matrix) *image.Alpha {
	switch s := s.(type) {
	case nil:
		return c.empty()
	case *PathShape:
		return c.path(s.Path().Transform(m), s.Rule())
	case *CombinedShape:
		a := c.shape(s.A, m)
		b := c.shape(s.B, m)
		return combineAlpha(s.Op, a, b)
	default:
		if s.IsEmpty() {
			return c.empty()
		}
		return c.path(s.Outline().Transform(m), FillNonZero)
	}
}

func (c *coverage) empty() *image.Alpha {
	return image.NewAlpha(image.Rect(0, 0, c.w, c.h))
}

// path rasterizes a device-space path. The rasterizer accumulates absolute
// winding, which is non-zero filling; even-odd combines sub-paths by xor.
func (c *coverage) path(p *Path, rule FillRule) *image.Alpha {
	if p.IsEmpty() {
		return c.empty()
	}
	if rule == FillNonZero {
		return c.rasterize(p.Elements())
	}
	var out *image.Alpha
	for _, sub := range subpaths(p.Elements()) {
		a := c.rasterize(sub)
		if out == nil {
			out = a
			continue
		}
		out = combineAlpha(OpXor, out, a)
	}
	if out == nil {
		return c.empty()
	}
	return out
}

func (c *coverage) rasterize(elems []PathElement) *image.Alpha {
	c.z.Reset(c.w, c.h)
	c.z.DrawOp = draw.Src
	open := false
	for _, el := range elems {
		switch e := el.(type) {
		case MoveTo:
			// Fills close every sub-path implicitly.
			if open {
				c.z.ClosePath()
			}
			open = true
			c.z.MoveTo(float32(e.Point.X), float32(e.Point.Y))
		case LineTo:
			c.z.LineTo(float32(e.Point.X), float32(e.Point.Y))
		case QuadTo:
			c.z.QuadTo(float32(e.Control.X), float32(e.Control.Y), float32(e.Point.X), float32(e.Point.Y))
		case CubicTo:
			c.z.CubeTo(float32(e.Control1.X), float32(e.Control1.Y),
				float32(e.Control2.X), float32(e.Control2.Y),
				float32(e.Point.X), float32(e.Point.Y))
		case Close:
			c.z.ClosePath()
		}
	}
	if open {
		c.z.ClosePath()
	}
	dst := c.empty()
	c.z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

// subpaths splits elements at every MoveTo.
func subpaths(elems []PathElement) [][]PathElement {
	var out [][]PathElement
	start := 0
	for i, el := range elems {
		if _, ok := el.(MoveTo); ok && i > start {
			out = append(out, elems[start:i])
			start = i
		}
	}
	if start < len(elems) {
		out = append(out, elems[start:])
	}
	return out
}

// combineAlpha merges two coverages with a boolean operator.
func combineAlpha(op BoolOp, a, b *image.Alpha) *image.Alpha {
	out := image.NewAlpha(a.Rect)
	for i := range out.Pix {
		x, y := uint32(a.Pix[i]), uint32(b.Pix[i])
		var v uint32
		switch op {
		case OpIntersect:
			v = min(x, y)
		case OpDifference:
			v = x * (255 - y) / 255
		case OpXor:
			v = max(x, y) - min(x, y)
		default:
			v = max(x, y)
		}
		out.Pix[i] = uint8(v)
	}
	return out
}

// invertAlpha returns 1 - a.
func invertAlpha(a *image.Alpha) *image.Alpha {
	out := image.NewAlpha(a.Rect)
	for i, v := range a.Pix {
		out.Pix[i] = 255 - v
	}
	return out
}

// alphaBounds returns the smallest rectangle containing non-zero coverage.
func alphaBounds(a *image.Alpha) image.Rectangle {
	b := a.Rect
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := a.Pix[(y-b.Min.Y)*a.Stride : (y-b.Min.Y)*a.Stride+b.Dx()]
		for x, v := range row {
			if v == 0 {
				continue
			}
			minX = min(minX, b.Min.X+x)
			maxX = max(maxX, b.Min.X+x+1)
			minY = min(minY, y)
			maxY = max(maxY, y+1)
		}
	}
	if minX >= maxX || minY >= maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}
