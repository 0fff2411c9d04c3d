package graph

import "github.com/gogpu/layer"

// StyleAttribute composes shadows, fills and borders in paint order. Its
// value is the bounds of everything it paints.
type StyleAttribute struct {
	Attribute[layer.Rect]
	style  *Value[Style]
	object *ObjectAttribute
	drop   *DropShadowAttribute
	inner  *InnerShadowAttribute
}

// NewStyleAttribute creates the style attribute of shape.
func NewStyleAttribute(shape *ShapeAttribute, style *Value[Style], runs func(env *Env) []StyledShape) *StyleAttribute {
	a := &StyleAttribute{
		style:  style,
		object: NewObjectAttribute(shape, style, runs),
		drop:   NewDropShadowAttribute(shape, style),
		inner:  NewInnerShadowAttribute(shape, style),
	}
	a.init("style", a.compute)
	a.Observe(&style.Node)
	a.Observe(&a.object.Node)
	a.Observe(&a.drop.Node)
	a.Observe(&a.inner.Node)
	return a
}

func (a *StyleAttribute) compute(*Env) layer.Rect {
	b := a.object.Value()
	if a.shadowed() {
		b = b.Union(a.drop.Value())
	}
	return b
}

// shadowed reports whether shadows are painted. Shadows follow the filled
// interior, so unfilled shapes cast none.
func (a *StyleAttribute) shadowed() bool {
	st := a.style.Value()
	return st.hasFill()
}

// ObjectBounds returns the bounds of the fills and borders.
func (a *StyleAttribute) ObjectBounds() layer.Rect { return a.object.Value() }

// render paints drop shadows, fills, inner shadows and borders.
func (a *StyleAttribute) render(c layer.Canvas, env *Env) {
	shadowed := a.shadowed()
	if shadowed {
		a.drop.render(c, env)
	}
	a.object.renderFills(c, env)
	if shadowed {
		a.inner.render(c, env)
	}
	a.object.renderBorders(c, env)
}

// renderAsMask paints only the object content.
func (a *StyleAttribute) renderAsMask(c layer.Canvas, env *Env) {
	a.object.render(c, env)
}
