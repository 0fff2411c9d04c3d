package graph

import "github.com/gogpu/layer"

// StyledShape is a piece of a node's geometry with its own fills, such as
// one text run. Nil Fills means the style's fills.
type StyledShape struct {
	Shape layer.Shape
	Fills []Fill
}

// ObjectAttribute draws the fills and borders of a shape. Its value is the
// bounds of what it draws.
type ObjectAttribute struct {
	Attribute[layer.Rect]
	shape *ShapeAttribute
	style *Value[Style]
	runs  func(env *Env) []StyledShape

	pieces  []StyledShape
	strokes []layer.Shape
}

// NewObjectAttribute creates an object attribute. runs, when set, splits the
// shape into separately filled pieces.
func NewObjectAttribute(shape *ShapeAttribute, style *Value[Style], runs func(env *Env) []StyledShape) *ObjectAttribute {
	a := &ObjectAttribute{shape: shape, style: style, runs: runs}
	a.init("object", a.compute)
	a.Observe(&shape.Node)
	a.Observe(&style.Node)
	return a
}

func (a *ObjectAttribute) compute(env *Env) layer.Rect {
	a.pieces, a.strokes = nil, nil
	s := a.shape.Value()
	if layer.IsEmptyShape(s) {
		return layer.Rect{}
	}
	if a.runs != nil {
		a.pieces = a.runs(env)
	}
	st := a.style.Value()
	var b layer.Rect
	if st.hasFill() || len(a.pieces) > 0 {
		b = s.Bounds()
	}
	a.strokes = make([]layer.Shape, len(st.Borders))
	for i, border := range st.Borders {
		if !border.visible() {
			continue
		}
		stroke := layer.StrokeShape(s, border.strokeStyle(), env.Tolerance())
		if stroke == nil {
			continue
		}
		a.strokes[i] = stroke
		sb := stroke.Bounds()
		if border.Position == BorderInside {
			sb = sb.Intersect(s.Bounds())
		}
		b = b.Union(sb)
	}
	return b
}

// strokeStyle returns the stroke geometry of b. Inside and outside borders
// stroke twice the thickness; clipping keeps one half.
func (b Border) strokeStyle() layer.StrokeStyle {
	w := b.Thickness
	if b.Position != BorderCenter {
		w *= 2
	}
	return layer.StrokeStyle{
		Width:      w,
		Cap:        b.Cap,
		Join:       b.Join,
		MiterLimit: b.MiterLimit,
		Dash:       b.Dash,
		DashOffset: b.DashOffset,
	}
}

// renderFills paints the fills in declaration order.
func (a *ObjectAttribute) renderFills(c layer.Canvas, env *Env) {
	s := a.shape.Value()
	if layer.IsEmptyShape(s) {
		return
	}
	st := a.style.Value()
	bounds := s.Bounds()
	if len(a.pieces) == 0 {
		drawFills(c, env, s, st.Fills, bounds)
		return
	}
	for _, piece := range a.pieces {
		fills := piece.Fills
		if fills == nil {
			fills = st.Fills
		}
		drawFills(c, env, piece.Shape, fills, bounds)
	}
}

func drawFills(c layer.Canvas, env *Env, s layer.Shape, fills []Fill, bounds layer.Rect) {
	if layer.IsEmptyShape(s) {
		return
	}
	for _, f := range fills {
		if !f.Enabled || f.Type == nil {
			continue
		}
		if p := fillPaint(f.Type, f.Context, bounds, env); p != nil {
			c.DrawShape(s, p)
		}
	}
}

// renderBorders paints the borders in declaration order.
func (a *ObjectAttribute) renderBorders(c layer.Canvas, env *Env) {
	s := a.shape.Value()
	if layer.IsEmptyShape(s) {
		return
	}
	st := a.style.Value()
	bounds := s.Bounds()
	for i, b := range st.Borders {
		if i >= len(a.strokes) || a.strokes[i] == nil {
			continue
		}
		p := fillPaint(b.Type, b.Context, bounds, env)
		if p == nil {
			continue
		}
		switch b.Position {
		case BorderInside:
			c.Save()
			c.ClipShape(s, layer.ClipIntersect)
			c.DrawShape(a.strokes[i], p)
			c.Restore()
		case BorderOutside:
			c.Save()
			c.ClipShape(s, layer.ClipDifference)
			c.DrawShape(a.strokes[i], p)
			c.Restore()
		default:
			c.DrawShape(a.strokes[i], p)
		}
	}
}

// render paints fills and then borders.
func (a *ObjectAttribute) render(c layer.Canvas, env *Env) {
	a.renderFills(c, env)
	a.renderBorders(c, env)
}
