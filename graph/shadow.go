package graph

import "github.com/gogpu/layer"

// shadowPass is one compiled shadow.
type shadowPass struct {
	filter layer.ImageFilter
	ctx    ContextSetting
	clip   bool
}

// spreadFilter grows (spread > 0) or shrinks the shape about the center of
// bounds. It returns nil when there is nothing to spread.
func spreadFilter(bounds layer.Rect, spread float64) layer.ImageFilter {
	if spread == 0 || bounds.IsEmpty() {
		return nil
	}
	sx := max(0, (bounds.W+2*spread)/bounds.W)
	sy := max(0, (bounds.H+2*spread)/bounds.H)
	c := bounds.Center()
	m := layer.Translate(c.X, c.Y).
		Multiply(layer.Scale(sx, sy)).
		Multiply(layer.Translate(-c.X, -c.Y))
	return &layer.MatrixFilter{Matrix: m}
}

// shadowColor applies the shadow's opacity to its color.
func shadowColor(c layer.RGBA, ctx ContextSetting) layer.RGBA {
	c.A *= clampUnit(ctx.Opacity)
	return c
}

// renderShadows draws every pass as a filtered silhouette of s. A clipped
// pass clears the shape interior from the filter output before it is
// composited, so the shadow never shows through a translucent fill.
func renderShadows(c layer.Canvas, env *Env, s layer.Shape, passes []shadowPass) {
	silhouette := layer.NewColorPaint(layer.Black)
	knockout := layer.NewColorPaint(layer.Black)
	knockout.BlendMode = layer.BlendDstOut
	for _, p := range passes {
		n := c.SaveCount()
		if !p.ctx.BlendMode.isNormal() {
			bp := layer.NewPaint(nil)
			p.ctx.BlendMode.apply(bp, env)
			c.SaveLayer(layer.LayerRec{Paint: bp})
		}
		if p.clip {
			c.SaveLayer(layer.LayerRec{})
		}
		fp := layer.NewPaint(nil)
		fp.ImageFilter = p.filter
		c.SaveLayer(layer.LayerRec{Paint: fp})
		c.DrawShape(s, silhouette)
		c.Restore()
		if p.clip {
			c.DrawShape(s, knockout)
		}
		c.RestoreToCount(n)
	}
}

// DropShadowAttribute compiles the outer shadows of a style. Its value is
// the bounds the shadows cover.
type DropShadowAttribute struct {
	Attribute[layer.Rect]
	shape  *ShapeAttribute
	style  *Value[Style]
	passes []shadowPass
}

// NewDropShadowAttribute creates a drop shadow attribute.
func NewDropShadowAttribute(shape *ShapeAttribute, style *Value[Style]) *DropShadowAttribute {
	a := &DropShadowAttribute{shape: shape, style: style}
	a.init("dropShadow", a.compute)
	a.Observe(&shape.Node)
	a.Observe(&style.Node)
	return a
}

func (a *DropShadowAttribute) compute(*Env) layer.Rect {
	a.passes = a.passes[:0]
	s := a.shape.Value()
	if layer.IsEmptyShape(s) {
		return layer.Rect{}
	}
	bounds := s.Bounds()
	var out layer.Rect
	for _, ds := range a.style.Value().DropShadows {
		if !ds.Enabled || ds.Color.A <= 0 {
			continue
		}
		sigma := layer.SigmaFromRadius(ds.Blur)
		f := &layer.DropShadowFilter{
			DX:         ds.OffsetX,
			DY:         ds.OffsetY,
			SigmaX:     sigma,
			SigmaY:     sigma,
			Color:      shadowColor(ds.Color, ds.Context),
			ShadowOnly: true,
			Input:      spreadFilter(bounds, ds.Spread),
		}
		a.passes = append(a.passes, shadowPass{filter: f, ctx: ds.Context, clip: !ds.ShowBehindTransparent})
		out = out.Union(f.FastBounds(bounds))
	}
	return out
}

func (a *DropShadowAttribute) render(c layer.Canvas, env *Env) {
	if len(a.passes) > 0 {
		renderShadows(c, env, a.shape.Value(), a.passes)
	}
}

// InnerShadowAttribute compiles the inner shadows of a style. Its value is
// the shape bounds when any inner shadow is enabled.
type InnerShadowAttribute struct {
	Attribute[layer.Rect]
	shape  *ShapeAttribute
	style  *Value[Style]
	passes []shadowPass
}

// NewInnerShadowAttribute creates an inner shadow attribute.
func NewInnerShadowAttribute(shape *ShapeAttribute, style *Value[Style]) *InnerShadowAttribute {
	a := &InnerShadowAttribute{shape: shape, style: style}
	a.init("innerShadow", a.compute)
	a.Observe(&shape.Node)
	a.Observe(&style.Node)
	return a
}

func (a *InnerShadowAttribute) compute(*Env) layer.Rect {
	a.passes = a.passes[:0]
	s := a.shape.Value()
	if layer.IsEmptyShape(s) {
		return layer.Rect{}
	}
	bounds := s.Bounds()
	for _, is := range a.style.Value().InnerShadows {
		if !is.Enabled || is.Color.A <= 0 {
			continue
		}
		sigma := layer.SigmaFromRadius(is.Blur)
		f := &layer.InnerShadowFilter{
			DX:     is.OffsetX,
			DY:     is.OffsetY,
			SigmaX: sigma,
			SigmaY: sigma,
			Color:  shadowColor(is.Color, is.Context),
			Input:  spreadFilter(bounds, -is.Spread),
		}
		a.passes = append(a.passes, shadowPass{filter: f, ctx: is.Context})
	}
	if len(a.passes) == 0 {
		return layer.Rect{}
	}
	return bounds
}

func (a *InnerShadowAttribute) render(c layer.Canvas, env *Env) {
	if len(a.passes) > 0 {
		renderShadows(c, env, a.shape.Value(), a.passes)
	}
}
