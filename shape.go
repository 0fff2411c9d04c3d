package layer

// FillRule selects how path winding maps to coverage.
type FillRule uint8

const (
	// FillNonZero fills points with a non-zero winding number.
	FillNonZero FillRule = iota
	// FillEvenOdd fills points with an odd winding number.
	FillEvenOdd
)

// String returns the fill rule name.
func (r FillRule) String() string {
	if r == FillEvenOdd {
		return "EvenOdd"
	}
	return "NonZero"
}

// BoolOp is a boolean operator combining two shapes.
type BoolOp uint8

const (
	OpUnion BoolOp = iota
	OpDifference
	OpIntersect
	OpXor
)

var boolOpNames = [...]string{
	OpUnion:      "Union",
	OpDifference: "Difference",
	OpIntersect:  "Intersect",
	OpXor:        "Xor",
}

// String returns the operator name.
func (op BoolOp) String() string {
	if int(op) < len(boolOpNames) {
		return boolOpNames[op]
	}
	return unknownStr
}

const unknownStr = "Unknown"

// Shape is a closed region of the plane.
//
// Shapes are immutable. Leaves are filled paths; interior nodes combine two
// shapes with a BoolOp. Boolean combination is evaluated lazily: hit tests
// evaluate the operator on point membership and rasterizers evaluate it on
// coverage, so no path clipping is needed.
type Shape interface {
	// Bounds returns a rectangle that contains the shape.
	Bounds() Rect
	// Contains reports whether pt lies inside the shape.
	Contains(pt Point) bool
	// IsEmpty reports whether the shape encloses no area.
	IsEmpty() bool
	// Transform returns the shape mapped through m.
	Transform(m Matrix) Shape
	// Outline returns the boundary geometry used when the shape is stroked.
	Outline() *Path
}

// IsEmptyShape reports whether s is nil or encloses no area.
func IsEmptyShape(s Shape) bool {
	return s == nil || s.IsEmpty()
}

// PathShape is a shape given by a path and a fill rule.
type PathShape struct {
	path   *Path
	rule   FillRule
	bounds Rect
}

// NewPathShape creates a shape filling p with rule.
// The path is not copied and must not be modified afterwards.
func NewPathShape(p *Path, rule FillRule) *PathShape {
	if p == nil {
		p = NewPath()
	}
	return &PathShape{path: p, rule: rule, bounds: p.Bounds()}
}

// RectShape returns a rectangle shape.
func RectShape(r Rect) *PathShape {
	p := NewPath()
	p.Rectangle(r.X, r.Y, r.W, r.H)
	return &PathShape{path: p, bounds: r}
}

// Path returns the underlying path.
func (s *PathShape) Path() *Path { return s.path }

// Rule returns the fill rule.
func (s *PathShape) Rule() FillRule { return s.rule }

// Bounds implements Shape.
func (s *PathShape) Bounds() Rect { return s.bounds }

// Contains implements Shape.
func (s *PathShape) Contains(pt Point) bool {
	if !s.bounds.Outset(0.5, 0.5).Contains(pt) {
		return false
	}
	return s.path.Contains(pt, s.rule)
}

// IsEmpty implements Shape.
func (s *PathShape) IsEmpty() bool {
	return s.path.IsEmpty() || s.bounds.IsEmpty()
}

// Transform implements Shape.
func (s *PathShape) Transform(m Matrix) Shape {
	if m.IsIdentity() {
		return s
	}
	return NewPathShape(s.path.Transform(m), s.rule)
}

// Outline implements Shape.
func (s *PathShape) Outline() *Path { return s.path }

// CombinedShape is the boolean combination of two shapes.
type CombinedShape struct {
	Op   BoolOp
	A, B Shape
}

// Bounds implements Shape.
func (s *CombinedShape) Bounds() Rect {
	switch s.Op {
	case OpIntersect:
		return s.A.Bounds().Intersect(s.B.Bounds())
	case OpDifference:
		return s.A.Bounds()
	default:
		return s.A.Bounds().Union(s.B.Bounds())
	}
}

// Contains implements Shape.
func (s *CombinedShape) Contains(pt Point) bool {
	a, b := s.A.Contains(pt), s.B.Contains(pt)
	switch s.Op {
	case OpIntersect:
		return a && b
	case OpDifference:
		return a && !b
	case OpXor:
		return a != b
	default:
		return a || b
	}
}

// IsEmpty implements Shape.
func (s *CombinedShape) IsEmpty() bool {
	switch s.Op {
	case OpIntersect:
		return s.A.IsEmpty() || s.B.IsEmpty() || s.Bounds().IsEmpty()
	case OpDifference:
		return s.A.IsEmpty()
	default:
		return s.A.IsEmpty() && s.B.IsEmpty()
	}
}

// Transform implements Shape.
func (s *CombinedShape) Transform(m Matrix) Shape {
	if m.IsIdentity() {
		return s
	}
	return &CombinedShape{Op: s.Op, A: s.A.Transform(m), B: s.B.Transform(m)}
}

// Outline implements Shape. It concatenates the outlines of both operands,
// which traces the result only when the operands do not overlap.
// StrokeShape strokes a CombinedShape through its operands instead.
func (s *CombinedShape) Outline() *Path {
	p := s.A.Outline().Clone()
	p.Append(s.B.Outline())
	return p
}

// Combine applies op to a and b. Nil or empty operands are folded:
// combining with an empty shape never allocates a CombinedShape.
func Combine(op BoolOp, a, b Shape) Shape {
	ea, eb := IsEmptyShape(a), IsEmptyShape(b)
	switch op {
	case OpIntersect:
		if ea || eb || !a.Bounds().Intersects(b.Bounds()) {
			return nil
		}
	case OpDifference:
		if ea {
			return nil
		}
		if eb || !a.Bounds().Intersects(b.Bounds()) {
			return a
		}
	default:
		if ea && eb {
			return nil
		}
		if ea {
			return b
		}
		if eb {
			return a
		}
	}
	return &CombinedShape{Op: op, A: a, B: b}
}

// Union combines a and b with OpUnion.
func Union(a, b Shape) Shape { return Combine(OpUnion, a, b) }

// Intersect combines a and b with OpIntersect.
func Intersect(a, b Shape) Shape { return Combine(OpIntersect, a, b) }

// Difference combines a and b with OpDifference.
func Difference(a, b Shape) Shape { return Combine(OpDifference, a, b) }

// Xor combines a and b with OpXor.
func Xor(a, b Shape) Shape { return Combine(OpXor, a, b) }

// TransformShape maps s through m, keeping nil as nil.
func TransformShape(s Shape, m Matrix) Shape {
	if s == nil {
		return nil
	}
	return s.Transform(m)
}
