package layer

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale is applied first, then the translation.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	got := m.TransformPoint(Pt(1, 1))
	if !near(got.X, 12, eps) || !near(got.Y, 2, eps) {
		t.Errorf("TransformPoint = %v, want (12, 2)", got)
	}
}

func TestMatrixInverse(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		ok   bool
	}{
		{"identity", Identity(), true},
		{"rotate", Rotate(0.7).Multiply(Translate(3, -4)), true},
		{"scale", Scale(2, 0.5), true},
		{"singular", Scale(0, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, ok := tt.m.Inverse()
			if ok != tt.ok {
				t.Fatalf("Inverse ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			p := Pt(5, 7)
			back := inv.TransformPoint(tt.m.TransformPoint(p))
			if !near(back.X, p.X, 1e-9) || !near(back.Y, p.Y, 1e-9) {
				t.Errorf("round trip = %v, want %v", back, p)
			}
		})
	}
}

func TestMatrixMapRect(t *testing.T) {
	r := NewRect(0, 0, 10, 20)
	got := Rotate(math.Pi / 2).MapRect(r)
	if !near(got.X, -20, 1e-9) || !near(got.Y, 0, 1e-9) || !near(got.W, 20, 1e-9) || !near(got.H, 10, 1e-9) {
		t.Errorf("MapRect = %+v", got)
	}
}

func TestRectUnionIgnoresEmpty(t *testing.T) {
	a := NewRect(0, 0, 10, 10)
	if got := a.Union(Rect{}); got != a {
		t.Errorf("Union(empty) = %+v, want %+v", got, a)
	}
	if got := (Rect{}).Union(a); got != a {
		t.Errorf("empty.Union = %+v, want %+v", got, a)
	}
	got := a.Union(NewRect(20, 5, 5, 10))
	if want := RectFromLTRB(0, 0, 25, 15); got != want {
		t.Errorf("Union = %+v, want %+v", got, want)
	}
}

func TestRectIntersect(t *testing.T) {
	got := NewRect(0, 0, 10, 10).Intersect(NewRect(5, 5, 10, 10))
	if want := NewRect(5, 5, 5, 5); got != want {
		t.Errorf("Intersect = %+v, want %+v", got, want)
	}
	if !NewRect(0, 0, 1, 1).Intersect(NewRect(2, 2, 1, 1)).IsEmpty() {
		t.Error("disjoint intersection not empty")
	}
}

func TestPathBoundsAndContains(t *testing.T) {
	p := NewPath()
	p.Ellipse(50, 50, 20, 10)
	b := p.Bounds()
	if !near(b.X, 30, 0.5) || !near(b.W, 40, 0.5) || !near(b.H, 20, 0.5) {
		t.Errorf("Bounds = %+v", b)
	}
	if !p.Contains(Pt(50, 50), FillNonZero) {
		t.Error("center not contained")
	}
	if p.Contains(Pt(50, 65), FillNonZero) {
		t.Error("point outside contained")
	}
}

func TestEvenOddHole(t *testing.T) {
	p := NewPath()
	p.Rectangle(0, 0, 10, 10)
	p.Rectangle(3, 3, 4, 4)
	if p.Contains(Pt(5, 5), FillEvenOdd) {
		t.Error("even-odd hole is filled")
	}
	if !p.Contains(Pt(5, 5), FillNonZero) {
		t.Error("non-zero same-direction rectangles leave a hole")
	}
}

func TestCombineShapes(t *testing.T) {
	a := RectShape(NewRect(0, 0, 10, 10))
	b := RectShape(NewRect(5, 0, 10, 10))
	tests := []struct {
		op     BoolOp
		pt     Point
		inside bool
		bounds Rect
	}{
		{OpUnion, Pt(12, 5), true, NewRect(0, 0, 15, 10)},
		{OpIntersect, Pt(2, 5), false, NewRect(5, 0, 5, 10)},
		{OpDifference, Pt(7, 5), false, NewRect(0, 0, 10, 10)},
		{OpXor, Pt(7, 5), false, NewRect(0, 0, 15, 10)},
		{OpXor, Pt(2, 5), true, NewRect(0, 0, 15, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			s := Combine(tt.op, a, b)
			if s.Contains(tt.pt) != tt.inside {
				t.Errorf("Contains(%v) = %v", tt.pt, !tt.inside)
			}
			if s.Bounds() != tt.bounds {
				t.Errorf("Bounds = %+v, want %+v", s.Bounds(), tt.bounds)
			}
		})
	}
}

func TestCombineFoldsEmpty(t *testing.T) {
	a := RectShape(NewRect(0, 0, 10, 10))
	if Intersect(a, nil) != nil {
		t.Error("intersect with nil should be nil")
	}
	if Union(nil, a) != Shape(a) {
		t.Error("union with nil should return the other operand")
	}
	if Difference(a, RectShape(NewRect(50, 50, 1, 1))) != Shape(a) {
		t.Error("difference with a disjoint shape should return a")
	}
}

func TestStrokeShapeBounds(t *testing.T) {
	sq := RectShape(NewRect(10, 10, 20, 20))
	s := StrokeShape(sq, StrokeStyle{Width: 4, Join: JoinMiter}, DefaultTolerance)
	if s == nil {
		t.Fatal("StrokeShape returned nil")
	}
	b := s.Bounds()
	if !near(b.X, 8, 0.3) || !near(b.Right(), 32, 0.3) {
		t.Errorf("stroke bounds = %+v, want about (8, 8, 24, 24)", b)
	}
	if StrokeShape(sq, StrokeStyle{Width: 0}, 0) != nil {
		t.Error("zero width stroke should be nil")
	}
}

func TestStrokeCombinedShapeFollowsResult(t *testing.T) {
	a := RectShape(NewRect(0, 0, 20, 20))
	b := RectShape(NewRect(10, 0, 20, 20))
	style := StrokeStyle{Width: 2, Join: JoinMiter}

	tests := []struct {
		name    string
		shape   Shape
		on, off []Point
	}{
		{
			name:  "Union",
			shape: Union(a, b),
			on:    []Point{Pt(0, 10), Pt(30, 10), Pt(15, 0), Pt(15, 20)},
			off:   []Point{Pt(10, 10), Pt(20, 10), Pt(15, 10)},
		},
		{
			name:  "Intersect",
			shape: Intersect(a, b),
			on:    []Point{Pt(10, 10), Pt(20, 10), Pt(15, 0)},
			off:   []Point{Pt(0, 10), Pt(30, 10), Pt(15, 10)},
		},
		{
			name:  "Difference",
			shape: Difference(a, b),
			on:    []Point{Pt(0, 10), Pt(10, 10), Pt(5, 0)},
			off:   []Point{Pt(20, 10), Pt(30, 10), Pt(5, 10)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := StrokeShape(tt.shape, style, DefaultTolerance)
			if s == nil {
				t.Fatal("StrokeShape returned nil")
			}
			for _, p := range tt.on {
				if !s.Contains(p) {
					t.Errorf("%v not on the border", p)
				}
			}
			for _, p := range tt.off {
				if s.Contains(p) {
					t.Errorf("%v on the border", p)
				}
			}
		})
	}
}
